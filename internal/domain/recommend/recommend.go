// Package recommend suggests targeted exercises for the weakest indicators
// of an analysis.
package recommend

import (
	"fmt"
	"sort"

	"github.com/okian/asana/internal/domain/scoring"
)

// DefaultTopN is the number of recommendations RecommendMany returns when
// topN is not positive.
const DefaultTopN = 3

const fallbackMotivation = "Keep practicing regularly!"

// Exercise is a catalog entry.
type Exercise struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Difficulty  string   `json:"difficulty"`
	Steps       []string `json:"steps"`
	Benefit     string   `json:"benefit"`
}

// Recommendation is an exercise targeted at one indicator.
type Recommendation struct {
	Exercise
	TargetIndicator  string              `json:"target_indicator"`
	CurrentScore     float64             `json:"current_score"`
	ImprovementLevel scoring.Improvement `json:"improvement_level"`
	Pose             string              `json:"pose"`
	Motivation       string              `json:"motivation"`
	Generic          bool                `json:"generic,omitempty"`
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithExercise adds or replaces the exercise for a pose indicator.
func WithExercise(pose, indicator string, ex Exercise) Option {
	return func(r *Recommender) {
		if r.catalog[pose] == nil {
			r.catalog[pose] = map[string]Exercise{}
		}
		r.catalog[pose][indicator] = ex
	}
}

// Recommender looks up exercises by pose and indicator. It is read-only
// after construction and safe for concurrent use.
type Recommender struct {
	catalog map[string]map[string]Exercise
}

// New creates a Recommender over the built-in catalog.
func New(opts ...Option) *Recommender {
	r := &Recommender{catalog: defaultCatalog()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend returns an exercise for the priority indicator of pose. An
// indicator without a catalog entry gets a generic recommendation. ok is
// false when pose or the priority name is empty.
func (r *Recommender) Recommend(pose string, p scoring.Priority, skill scoring.SkillLevel) (Recommendation, bool) {
	if pose == "" || p.Name == "" {
		return Recommendation{}, false
	}
	tier := p.ImprovementNeeded
	if tier == "" {
		tier = scoring.ImprovementFor(p.Score)
	}

	ex, found := r.catalog[pose][p.Name]
	if !found {
		return generic(pose, p.Name, p.Score, tier), true
	}
	ex.Steps = append([]string(nil), ex.Steps...)
	return Recommendation{
		Exercise:         ex,
		TargetIndicator:  p.Name,
		CurrentScore:     p.Score,
		ImprovementLevel: tier,
		Pose:             pose,
		Motivation:       motivation(tier, skill, p.Name),
	}, true
}

// RecommendMany recommends exercises for the topN weakest indicators, weakest
// first. Equal scores are ordered by indicator name.
func (r *Recommender) RecommendMany(pose string, indicators map[string]float64, topN int, skill scoring.SkillLevel) []Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}
	names := make([]string, 0, len(indicators))
	for name := range indicators {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := indicators[names[i]], indicators[names[j]]
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	if len(names) > topN {
		names = names[:topN]
	}

	out := make([]Recommendation, 0, len(names))
	for _, name := range names {
		score := indicators[name]
		p := scoring.Priority{Name: name, Score: score, ImprovementNeeded: scoring.ImprovementFor(score)}
		if rec, ok := r.Recommend(pose, p, skill); ok {
			out = append(out, rec)
		}
	}
	return out
}

func generic(pose, indicator string, score float64, tier scoring.Improvement) Recommendation {
	return Recommendation{
		Exercise: Exercise{
			Title:       fmt.Sprintf("Improve %s in %s", indicator, pose),
			Description: "Work on this aspect by practicing the pose regularly",
			Duration:    "5 minutes",
			Difficulty:  "intermediate",
			Steps: []string{
				fmt.Sprintf("Practice %s daily", pose),
				fmt.Sprintf("Focus specifically on %s", indicator),
				"Use a mirror to check your form",
				"Film yourself to track your progress",
			},
			Benefit: fmt.Sprintf("Gradually improves %s", indicator),
		},
		TargetIndicator:  indicator,
		CurrentScore:     score,
		ImprovementLevel: tier,
		Pose:             pose,
		Motivation:       "Regular practice is the key to progress!",
		Generic:          true,
	}
}
