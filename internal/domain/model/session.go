// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"time"

	"github.com/okian/asana/internal/domain/landmark"
)

// Validation errors for submitted sessions.
var (
	ErrMissingSessionID = errors.New("session_id is required")
	ErrMissingUserID    = errors.New("user_id is required")
	ErrMissingPose      = errors.New("pose is required")
	ErrConfidenceRange  = errors.New("confidence must be within [0, 1]")
)

// Session is one practice attempt submitted for asynchronous analysis.
type Session struct {
	SessionID  string         // unique id for idempotency
	UserID     string         // practitioner identifier
	Pose       string         // pose name reported by the upstream classifier
	Confidence float64        // classifier confidence in [0, 1]
	Landmarks  landmark.Set   // snapshot to score
	Frames     []landmark.Set // optional temporal sequence for stability
	TS         time.Time      // capture time
}

// Validate checks the identifying fields of s. Landmark values are checked
// by the analysis engine.
func (s *Session) Validate() error {
	switch {
	case s.SessionID == "":
		return ErrMissingSessionID
	case s.UserID == "":
		return ErrMissingUserID
	case s.Pose == "":
		return ErrMissingPose
	case s.Confidence < 0 || s.Confidence > 1:
		return ErrConfidenceRange
	}
	return nil
}

// UserScore captures a user's best global score used for ranking.
type UserScore struct {
	UserID string
	Score  float64
}
