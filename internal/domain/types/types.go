// Package types contains common types used across the application
package types

// Entry represents a leaderboard entry: a user's best analyzed session.
type Entry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	Score      float64 `json:"score"`
	Pose       string  `json:"pose,omitempty"`
	SessionID  string  `json:"session_id,omitempty"`
	SkillLevel string  `json:"skill_level,omitempty"`
}
