// Package scoring derives the aggregate figures of an analysis from its
// indicator set: the global score, the priority (weakest) indicator, and the
// skill level. Every function here is a pure function of its arguments.
package scoring

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Improvement is the tier of work an indicator still needs.
type Improvement string

// Improvement tiers, from least to most work needed.
const (
	ImprovementMinimal   Improvement = "minimal"
	ImprovementModerate  Improvement = "moderate"
	ImprovementImportant Improvement = "important"
	ImprovementCritical  Improvement = "critical"
)

// SkillLevel is the coarse classification of a global score.
type SkillLevel string

// Skill levels, from lowest to highest.
const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// Tier thresholds. A value at the threshold belongs to the higher tier.
const (
	minimalThreshold   = 85.0
	moderateThreshold  = 70.0
	importantThreshold = 50.0

	expertThreshold       = 90.0
	advancedThreshold     = 80.0
	intermediateThreshold = 60.0
)

// Priority names the weakest indicator of a set.
type Priority struct {
	Name              string      `json:"name"`
	Score             float64     `json:"score"`
	ImprovementNeeded Improvement `json:"improvement_needed"`
}

// GlobalScore returns the mean of all indicator values rounded to one
// decimal, or 0 for an empty set.
func GlobalScore(indicators map[string]float64) float64 {
	if len(indicators) == 0 {
		return 0
	}
	names := sortedNames(indicators)
	values := make([]float64, 0, len(names))
	for _, name := range names {
		values = append(values, indicators[name])
	}
	return Round(stat.Mean(values, nil))
}

// PriorityIndicator returns the indicator with the lowest value. Among equal
// minima the lexicographically smallest name wins. ok is false when the set
// is empty.
func PriorityIndicator(indicators map[string]float64) (p Priority, ok bool) {
	for _, name := range sortedNames(indicators) {
		score := indicators[name]
		if !ok || score < p.Score {
			p = Priority{Name: name, Score: score}
			ok = true
		}
	}
	if ok {
		p.ImprovementNeeded = ImprovementFor(p.Score)
	}
	return p, ok
}

// ImprovementFor maps an indicator value to its improvement tier.
func ImprovementFor(score float64) Improvement {
	switch {
	case score >= minimalThreshold:
		return ImprovementMinimal
	case score >= moderateThreshold:
		return ImprovementModerate
	case score >= importantThreshold:
		return ImprovementImportant
	default:
		return ImprovementCritical
	}
}

// SkillLevelFor classifies a global score.
func SkillLevelFor(globalScore float64) SkillLevel {
	switch {
	case globalScore >= expertThreshold:
		return SkillExpert
	case globalScore >= advancedThreshold:
		return SkillAdvanced
	case globalScore >= intermediateThreshold:
		return SkillIntermediate
	default:
		return SkillBeginner
	}
}

// ParseSkillLevel returns the skill level named s, falling back to beginner.
func ParseSkillLevel(s string) SkillLevel {
	switch lvl := SkillLevel(s); lvl {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return lvl
	default:
		return SkillBeginner
	}
}

// Round rounds v to one decimal place. Ties on the exact binary value go to
// the even digit, so 0.25 becomes 0.2 while 0.45 (stored as 0.4500000000000000111)
// becomes 0.5.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return math.Round(v*10) / 10
	}
	return r
}

func sortedNames(indicators map[string]float64) []string {
	names := make([]string, 0, len(indicators))
	for name := range indicators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
