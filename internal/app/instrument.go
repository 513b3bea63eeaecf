package service

import (
	"time"

	"github.com/okian/asana/internal/domain/analysis"
	"github.com/okian/asana/internal/domain/landmark"
	"github.com/okian/asana/pkg/metrics"
)

// instrumentedEngine records analysis metrics around the engine. It serves
// both the synchronous API and the worker pool.
type instrumentedEngine struct {
	engine *analysis.Engine
}

func (e instrumentedEngine) Analyze(pose string, lm landmark.Set, opts ...analysis.Option) analysis.Result {
	start := time.Now()
	res := e.engine.Analyze(pose, lm, opts...)
	latency := float64(time.Since(start).Microseconds()) / 1000

	label, outcome := res.Pose, metrics.OutcomeOK
	switch {
	case res.OK():
	case res.Error == analysis.ErrUnsupportedPose.Error():
		// free-form names would blow up label cardinality
		label, outcome = "unknown", metrics.OutcomeUnsupported
	default:
		outcome = metrics.OutcomeInvalid
	}

	var score float64
	if res.GlobalScore != nil {
		score = *res.GlobalScore
	}
	metrics.RecordAnalysis(label, outcome, score, string(res.SkillLevel), latency)
	return res
}
