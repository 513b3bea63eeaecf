package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/okian/asana/internal/domain/recommend"
	"github.com/okian/asana/internal/domain/scoring"
)

type recommendationRequest struct {
	Pose       string             `json:"pose"`
	Indicators map[string]float64 `json:"indicators"`
	TopN       int                `json:"top_n,omitempty"`
	SkillLevel string             `json:"skill_level,omitempty"`
}

func (req *recommendationRequest) validate() error {
	if strings.TrimSpace(req.Pose) == "" {
		return errors.New("missing pose")
	}
	if len(req.Indicators) == 0 {
		return errors.New("missing indicators")
	}
	for name, v := range req.Indicators {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Errorf("indicator %q must be within [0, 100]", name)
		}
	}
	if req.TopN < 0 {
		return errors.New("top_n must not be negative")
	}
	return nil
}

type recommendationResponse struct {
	Pose            string                     `json:"pose"`
	SkillLevel      scoring.SkillLevel         `json:"skill_level"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// RecommendationsHandler serves exercise recommendations.
type RecommendationsHandler struct {
	deps        RecommendationDependencies
	defaultTopN int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies, defaultTopN int) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps, defaultTopN: defaultTopN}
}

// HandleRecommendations handles POST /recommendations. Without an explicit
// skill_level the level is derived from the indicators' global score.
func (h *RecommendationsHandler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommendations"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	skill := scoring.SkillLevelFor(scoring.GlobalScore(req.Indicators))
	if req.SkillLevel != "" {
		skill = scoring.ParseSkillLevel(req.SkillLevel)
	}
	topN := req.TopN
	if topN == 0 {
		topN = h.defaultTopN
	}

	recs := h.deps.Recommend(r.Context(), req.Pose, req.Indicators, topN, skill)
	writeJSON(w, http.StatusOK, recommendationResponse{Pose: req.Pose, SkillLevel: skill, Recommendations: recs})
}
