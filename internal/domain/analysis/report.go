package analysis

import (
	"math"

	"github.com/okian/asana/internal/domain/geometry"
	"github.com/okian/asana/internal/domain/scoring"
)

const maxIndicator = 100.0

// report accumulates an analyzer's output in evaluation order.
type report struct {
	indicators   Indicators
	measurements Measurements
	feedback     []string
}

func newReport() *report {
	return &report{indicators: Indicators{}, measurements: Measurements{}}
}

// score records an indicator. NaN becomes 0 and the value is bounded to
// [0, 100] and rounded to one decimal.
func (r *report) score(name string, v float64) float64 {
	v = sanitize(v)
	r.indicators[name] = v
	return v
}

func (r *report) measure(name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	r.measurements[name] = scoring.Round(v)
}

func (r *report) say(msg string) {
	r.feedback = append(r.feedback, msg)
}

func (r *report) result() (Indicators, Measurements, []string) {
	if len(r.measurements) == 0 {
		return r.indicators, nil, r.feedback
	}
	return r.indicators, r.measurements, r.feedback
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return scoring.Round(geometry.ClampScore(v))
}

func mean2(a, b float64) float64 {
	return (a + b) / 2
}
