package api

import (
	"net/http"

	"github.com/okian/asana/internal/adapters/history"
)

type historyResponse struct {
	UserID   string           `json:"user_id"`
	Summary  history.Summary  `json:"summary"`
	Sessions []history.Record `json:"sessions"`
}

type deleteResponse struct {
	UserID  string `json:"user_id"`
	Deleted int64  `json:"deleted"`
}

// HistoryHandler serves a user's stored sessions.
type HistoryHandler struct {
	deps     HistoryDependencies
	maxLimit int
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies, maxLimit int) *HistoryHandler {
	return &HistoryHandler{deps: deps, maxLimit: maxLimit}
}

// HandleHistory handles GET and DELETE /history/{user_id}.
func (h *HistoryHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.history"
	userID := pathParam(r.URL.Path, "/history/")

	switch r.Method {
	case http.MethodGet:
		if userID == "" {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errMissingUserID))
			return
		}
		limit, err := queryLimit(r, h.maxLimit, h.maxLimit)
		if err != nil {
			writeLimitError(w, op, err)
			return
		}
		records, summary, err := h.deps.History(r.Context(), userID, limit)
		if err != nil {
			writeStoreError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, historyResponse{UserID: userID, Summary: summary, Sessions: records})
	case http.MethodDelete:
		if userID == "" {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errMissingUserID))
			return
		}
		n, err := h.deps.DeleteHistory(r.Context(), userID)
		if err != nil {
			writeStoreError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, deleteResponse{UserID: userID, Deleted: n})
	default:
		http.NotFound(w, r)
	}
}
