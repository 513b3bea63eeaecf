package api

import (
	"context"
	"net/http"
)

// RankDependencies looks up one user's standing.
type RankDependencies interface {
	Rank(ctx context.Context, userID string) (Entry, error)
}

// RankHandler serves GET /rank/{user_id}.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank returns the user's competition rank, best score and the
// session that produced it. Users without a scored session are not found.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_rank"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID := pathParam(r.URL.Path, "/rank/")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errMissingUserID))
		return
	}
	entry, err := h.deps.Rank(r.Context(), userID)
	if err != nil {
		writeStoreError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
