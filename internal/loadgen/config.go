// Package loadgen drives a running pose service over HTTP: it submits
// synthetic sessions, then reads back ranks and the leaderboard and checks
// that they agree.
package loadgen

import (
	"errors"
	"time"
)

// Config holds configuration for a load run.
type Config struct {
	BaseURL       string        // Base URL of the service
	NumSessions   int           // Number of sessions to submit
	NumUsers      int           // Sessions are spread over this many users
	DuplicateRate float64       // Fraction of sessions re-sent with the same id
	Frames        int           // Frames per session for stability; 0 sends snapshots only
	TopN          int           // Number of top entries to fetch
	Workers       int           // Number of concurrent HTTP workers
	Timeout       time.Duration // HTTP request timeout
	Settle        time.Duration // Wait between submitting and reading back
	OutputFile    string        // Generated sessions are written here when set
	Seed          uint64        // Generator seed; 0 picks one from the clock
	Verbose       bool          // Log every failed request
}

// Validate reports the first unusable field.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return errors.New("base url is required")
	case c.NumSessions < 1:
		return errors.New("sessions must be positive")
	case c.NumUsers < 1:
		return errors.New("users must be positive")
	case c.Workers < 1:
		return errors.New("workers must be positive")
	case c.DuplicateRate < 0 || c.DuplicateRate > 1:
		return errors.New("duplicate rate must be within [0, 1]")
	}
	return nil
}

// Session is the POST /sessions body.
type Session struct {
	SessionID  string        `json:"session_id"`
	UserID     string        `json:"user_id"`
	Pose       string        `json:"pose"`
	Confidence float64       `json:"confidence"`
	Landmarks  [][]float64   `json:"landmarks"`
	Frames     [][][]float64 `json:"frames,omitempty"`
	TS         string        `json:"ts"`
}

// Entry is a leaderboard or rank response.
type Entry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	Score      float64 `json:"score"`
	Pose       string  `json:"pose,omitempty"`
	SessionID  string  `json:"session_id,omitempty"`
	SkillLevel string  `json:"skill_level,omitempty"`
}

// ackResponse is the POST /sessions response.
type ackResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds run statistics.
type Stats struct {
	Generated          int
	Submitted          int
	Accepted           int
	Duplicate          int
	Rejected           int
	Failed             int
	RanksRetrieved     int
	LeaderboardEntries int
	Mismatches         int
	Duration           time.Duration
}
