// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/asana/internal/adapters/history"
	"github.com/okian/asana/internal/domain/analysis"
	"github.com/okian/asana/internal/domain/dedupe"
	"github.com/okian/asana/internal/domain/landmark"
	"github.com/okian/asana/internal/domain/model"
	"github.com/okian/asana/internal/domain/recommend"
	"github.com/okian/asana/internal/domain/scoring"
	"github.com/okian/asana/internal/domain/types"
)

// Defaults used when no Option overrides them.
const (
	defaultMaxLeaderboardLimit = 100
	defaultHistoryLimit        = 50
	defaultMinConfidence       = 0.5
)

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// AnalysisDependencies runs the pose quality engine synchronously.
type AnalysisDependencies interface {
	Analyze(ctx context.Context, pose string, lm landmark.Set, opts ...analysis.Option) analysis.Result
	Poses() []analysis.Pose
}

// SessionDependencies accepts sessions for asynchronous analysis.
type SessionDependencies interface {
	dedupe.Deduper

	// Enqueue pushes a session for async processing.
	Enqueue(ctx context.Context, s model.Session) error
}

// RecommendationDependencies turns indicator scores into exercises.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, pose string, indicators map[string]float64, topN int, skill scoring.SkillLevel) []recommend.Recommendation
}

// HistoryDependencies reads and clears stored sessions.
type HistoryDependencies interface {
	History(ctx context.Context, userID string, limit int) ([]history.Record, history.Summary, error)
	DeleteHistory(ctx context.Context, userID string) (int64, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AnalysisDependencies
	SessionDependencies
	RecommendationDependencies
	LeaderboardDependencies
	RankDependencies
	HistoryDependencies
	StatsProvider
}

// Option configures a Server.
type Option func(*settings)

type settings struct {
	maxLeaderboardLimit int
	historyLimit        int
	minConfidence       float64
	recommendationTopN  int
}

func newSettings(opts []Option) settings {
	cfg := settings{
		maxLeaderboardLimit: defaultMaxLeaderboardLimit,
		historyLimit:        defaultHistoryLimit,
		minConfidence:       defaultMinConfidence,
		recommendationTopN:  recommend.DefaultTopN,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxLeaderboardLimit caps GET /leaderboard?limit.
func WithMaxLeaderboardLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxLeaderboardLimit = n
		}
	}
}

// WithHistoryLimit sets the default and maximum GET /history page size.
func WithHistoryLimit(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithMinConfidence rejects sessions with a lower classifier confidence.
func WithMinConfidence(c float64) Option {
	return func(s *settings) {
		if c >= 0 && c <= 1 {
			s.minConfidence = c
		}
	}
}

// WithRecommendationTopN sets how many exercises are returned by default.
func WithRecommendationTopN(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.recommendationTopN = n
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	analyzeHandler         *AnalyzeHandler
	sessionsHandler        *SessionsHandler
	recommendationsHandler *RecommendationsHandler
	leaderboardHandler     *LeaderboardHandler
	rankHandler            *RankHandler
	historyHandler         *HistoryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	cfg := newSettings(opts)

	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(deps, opts...),
		analyzeHandler:         NewAnalyzeHandler(deps),
		sessionsHandler:        NewSessionsHandler(deps, cfg.minConfidence),
		recommendationsHandler: NewRecommendationsHandler(deps, cfg.recommendationTopN),
		leaderboardHandler:     NewLeaderboardHandler(deps, cfg.maxLeaderboardLimit),
		rankHandler:            NewRankHandler(deps),
		historyHandler:         NewHistoryHandler(deps, cfg.historyLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/poses", MetricsMiddleware(s.analyzeHandler.HandlePoses, "poses"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandlePostSession, "sessions"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleRecommendations, "recommendations"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/history/", MetricsMiddleware(s.historyHandler.HandleHistory, "history"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// pathParam returns the single path segment after prefix, or "".
func pathParam(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	if rest == path || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}

var errMissingUserID = errors.New("missing user id")

// queryLimit parses ?limit. An absent limit yields def, or an error when def
// is 0.
func queryLimit(r *http.Request, def, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		if def > 0 {
			return def, nil
		}
		return 0, fmt.Errorf("%w: limit is required", ErrBadRequest)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)
	}
	if n > maxLimit {
		return 0, fmt.Errorf("%w: %d > %d", ErrLimitExceeded, n, maxLimit)
	}
	return n, nil
}
