// Package repository keeps the leaderboard: each user's best global score
// across analyzed sessions.
package repository

import "context"

// Entry represents a leaderboard row.
type Entry struct {
	Rank       int
	UserID     string
	Score      float64
	SessionID  string
	Pose       string
	SkillLevel string
}

// Meta describes the session that produced a best score.
type Meta struct {
	SessionID  string
	Pose       string
	SkillLevel string
}

// Store provides read/write access to the ranking state.
type Store interface {
	// UpdateBest sets a new best score for userID if higher than the existing one.
	// Returns true if the store updated the score, false otherwise.
	UpdateBest(ctx context.Context, userID string, score float64) (bool, error)
	// UpdateBestWithMeta is UpdateBest that also keeps the session behind the score.
	UpdateBestWithMeta(ctx context.Context, userID string, score float64, meta Meta) (bool, error)

	// Rank returns the current rank and score for a user.
	// Returns ErrNotFound if the user is unknown.
	Rank(ctx context.Context, userID string) (Entry, error)

	// TopN returns the top-N entries ordered by score desc.
	TopN(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of users on the leaderboard.
	Count(ctx context.Context) int
}
