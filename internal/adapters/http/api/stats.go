package api

import (
	"net/http"
)

// StatsProvider reports service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

type limitsView struct {
	MaxLeaderboardLimit int     `json:"max_leaderboard_limit"`
	HistoryLimit        int     `json:"history_limit"`
	MinConfidence       float64 `json:"min_confidence"`
	RecommendationTopN  int     `json:"recommendation_top_n"`
}

// StatsHandler serves GET /stats: the provider's figures plus the limits
// this server enforces.
type StatsHandler struct {
	provider StatsProvider
	limits   limitsView
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(provider StatsProvider, opts ...Option) *StatsHandler {
	cfg := newSettings(opts)
	return &StatsHandler{
		provider: provider,
		limits: limitsView{
			MaxLeaderboardLimit: cfg.maxLeaderboardLimit,
			HistoryLimit:        cfg.historyLimit,
			MinConfidence:       cfg.minConfidence,
			RecommendationTopN:  cfg.recommendationTopN,
		},
	}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats := h.provider.GetStats()
	out := make(map[string]interface{}, len(stats)+1)
	for k, v := range stats {
		out[k] = v
	}
	out["limits"] = h.limits
	writeJSON(w, http.StatusOK, out)
}
