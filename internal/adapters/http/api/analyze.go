package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/asana/internal/domain/analysis"
)

// analyzeRequest mirrors the OpenAPI schema for POST /analyze.
type analyzeRequest struct {
	Pose               string `json:"pose"`
	Landmarks          Rows   `json:"landmarks"`
	Frames             []Rows `json:"frames,omitempty"`
	IncludeGlobalScore *bool  `json:"include_global_score,omitempty"`
}

type posesResponse struct {
	Poses []analysis.Pose `json:"poses"`
}

// AnalyzeHandler serves synchronous pose analysis.
type AnalyzeHandler struct {
	deps AnalysisDependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps AnalysisDependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// HandleAnalyze handles POST /analyze. An unsupported pose or invalid
// landmark values yield 422 with the failed Result.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Pose) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("missing pose")))
		return
	}
	lm, frames, err := parseLandmarks(req.Landmarks, req.Frames)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	opts := []analysis.Option{analysis.WithFrames(frames)}
	if req.IncludeGlobalScore != nil && !*req.IncludeGlobalScore {
		opts = append(opts, analysis.WithoutAggregates())
	}
	res := h.deps.Analyze(r.Context(), req.Pose, lm, opts...)
	if !res.OK() {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandlePoses handles GET /poses.
func (h *AnalyzeHandler) HandlePoses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, posesResponse{Poses: h.deps.Poses()})
}
