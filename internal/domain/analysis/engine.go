package analysis

import (
	"fmt"

	"github.com/okian/asana/internal/domain/landmark"
	"github.com/okian/asana/internal/domain/scoring"
)

// Stability feedback thresholds.
const (
	stabilityPoor = 60.0
	stabilityGood = 80.0
)

// Result is the outcome of one analysis. A failed analysis carries Error and
// no Indicators.
type Result struct {
	Pose         string             `json:"pose"`
	Indicators   Indicators         `json:"indicators,omitempty"`
	Feedback     []string           `json:"feedback,omitempty"`
	Measurements Measurements       `json:"measurements,omitempty"`
	Stability    *float64           `json:"stability,omitempty"`
	GlobalScore  *float64           `json:"global_score,omitempty"`
	Priority     *scoring.Priority  `json:"priority_indicator,omitempty"`
	SkillLevel   scoring.SkillLevel `json:"skill_level,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// OK reports whether the analysis succeeded.
func (r Result) OK() bool {
	return r.Indicators != nil
}

// Scores returns the indicator set used for aggregation: the analyzer's
// indicators plus stability when it was measured.
func (r Result) Scores() map[string]float64 {
	out := make(map[string]float64, len(r.Indicators)+1)
	for k, v := range r.Indicators {
		out[k] = v
	}
	if r.Stability != nil {
		out["stability"] = *r.Stability
	}
	return out
}

// Option configures a single Analyze call.
type Option func(*options)

type options struct {
	frames     []landmark.Set
	aggregates bool
}

// WithFrames supplies a temporal sequence for stability analysis. Stability
// is measured only when at least two frames are given.
func WithFrames(frames []landmark.Set) Option {
	return func(o *options) {
		o.frames = frames
	}
}

// WithoutAggregates skips the global score, priority indicator and skill level.
func WithoutAggregates() Option {
	return func(o *options) {
		o.aggregates = false
	}
}

// Engine dispatches a pose to its analyzer and aggregates the result.
// It holds no mutable state and is safe for concurrent use.
type Engine struct{}

// NewEngine creates an Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Poses lists the poses the engine can analyze.
func (e *Engine) Poses() []Pose {
	return Poses()
}

// Analyze scores lm as the pose named pose.
func (e *Engine) Analyze(pose string, lm landmark.Set, opts ...Option) Result {
	o := options{aggregates: true}
	for _, opt := range opts {
		opt(&o)
	}

	p, err := ParsePose(pose)
	if err != nil {
		return Result{Pose: pose, Error: ErrUnsupportedPose.Error()}
	}
	if err := validate(lm, o.frames); err != nil {
		return Result{Pose: pose, Error: err.Error()}
	}

	indicators, measurements, feedback := p.Analyzer().Analyze(lm)
	res := Result{
		Pose:         pose,
		Indicators:   indicators,
		Feedback:     feedback,
		Measurements: measurements,
	}

	if len(o.frames) > 1 {
		s := scoring.Round(Stability(o.frames))
		res.Stability = &s
		switch {
		case s < stabilityPoor:
			res.Feedback = append(res.Feedback, "⚠️ Unstable posture. Work on your core strength.")
		case s < stabilityGood:
			res.Feedback = append(res.Feedback, "✓ Good stability, keep it up.")
		default:
			res.Feedback = append(res.Feedback, "✓✓ Excellent stability!")
		}
	}

	if o.aggregates {
		scores := res.Scores()
		global := scoring.GlobalScore(scores)
		res.GlobalScore = &global
		if pr, ok := scoring.PriorityIndicator(scores); ok {
			res.Priority = &pr
		}
		res.SkillLevel = scoring.SkillLevelFor(global)
	}
	return res
}

func validate(lm landmark.Set, frames []landmark.Set) error {
	if err := lm.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLandmarks, err)
	}
	if len(frames) < 2 {
		// a lone frame never feeds Stability
		return nil
	}
	for i := range frames {
		if err := frames[i].Validate(); err != nil {
			return fmt.Errorf("%w: frame %d: %w", ErrInvalidLandmarks, i, err)
		}
	}
	return nil
}
