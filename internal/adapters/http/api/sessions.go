package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/asana/internal/adapters/mq/queue"
	"github.com/okian/asana/internal/domain/model"
	"github.com/okian/asana/pkg/metrics"
)

// sessionRequest mirrors the OpenAPI schema for POST /sessions.
type sessionRequest struct {
	SessionID  string   `json:"session_id"`
	UserID     string   `json:"user_id"`
	Pose       string   `json:"pose"`
	Confidence *float64 `json:"confidence,omitempty"`
	Landmarks  Rows     `json:"landmarks"`
	Frames     []Rows   `json:"frames,omitempty"`
	TS         string   `json:"ts"`
}

// session converts the request, generating a session ID when none is given.
func (req *sessionRequest) session() (model.Session, error) {
	s := model.Session{
		SessionID:  strings.TrimSpace(req.SessionID),
		UserID:     strings.TrimSpace(req.UserID),
		Pose:       req.Pose,
		Confidence: 1,
		TS:         time.Now().UTC(),
	}
	if s.SessionID == "" {
		s.SessionID = uuid.NewString()
	}
	if req.Confidence != nil {
		s.Confidence = *req.Confidence
	}
	if req.TS != "" {
		ts, err := time.Parse(time.RFC3339, req.TS)
		if err != nil {
			return model.Session{}, errors.New("invalid ts; must be RFC3339")
		}
		s.TS = ts
	}
	if err := s.Validate(); err != nil {
		return model.Session{}, err
	}

	var err error
	if s.Landmarks, s.Frames, err = parseLandmarks(req.Landmarks, req.Frames); err != nil {
		return model.Session{}, err
	}
	return s, nil
}

type ackResponse struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
	Duplicate bool   `json:"duplicate"`
}

// SessionsHandler accepts sessions for asynchronous analysis.
type SessionsHandler struct {
	deps          SessionDependencies
	minConfidence float64
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies, minConfidence float64) *SessionsHandler {
	return &SessionsHandler{deps: deps, minConfidence: minConfidence}
}

// HandlePostSession handles POST /sessions requests.
func (h *SessionsHandler) HandlePostSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.RecordSessionRejected("bad_request")
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	s, err := req.session()
	if err != nil {
		metrics.RecordSessionRejected("bad_request")
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if s.Confidence < h.minConfidence {
		metrics.RecordSessionRejected("low_confidence")
		writeError(w, http.StatusUnprocessableEntity, "low_confidence",
			WrapKind(op, ErrLowConfidence, fmt.Errorf("%.2f < %.2f", s.Confidence, h.minConfidence)))
		return
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), s.SessionID) {
		metrics.RecordSessionDuplicate()
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", SessionID: s.SessionID, Duplicate: true})
		return
	}

	if err := h.deps.Enqueue(r.Context(), s); err != nil {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), s.SessionID)
		if errors.Is(err, queue.ErrClosed) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
			return
		}
		metrics.RecordSessionRejected("backpressure")
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", SessionID: s.SessionID})
}
