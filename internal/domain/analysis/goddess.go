package analysis

import (
	"math"

	"github.com/okian/asana/internal/domain/geometry"
	"github.com/okian/asana/internal/domain/landmark"
)

// Goddess pose thresholds.
const (
	goddessStanceWide      = 2.5
	goddessStanceFair      = 2.0
	goddessStanceFairScore = 80.0
	goddessStanceNarrow    = 60.0
	goddessKneeTarget      = 90.0
	goddessKneePerfectLo   = 85.0
	goddessKneePerfectHi   = 95.0
	goddessKneeShallow     = 120.0
	goddessKneeAlignScale  = 300.0
	goddessKneeAlignMin    = 70.0
	goddessBackGood        = 80.0
	goddessBackFair        = 65.0
	goddessSymmetryMin     = 75.0
)

// goddess checks a wide stance, a deep squat with knees tracking over the
// feet, an upright back and even weight on both legs.
type goddess struct{}

func (goddess) Analyze(lm landmark.Set) (Indicators, Measurements, []string) {
	r := newReport()

	nose := lm.At(landmark.Nose)
	lHip, rHip := lm.At(landmark.LeftHip), lm.At(landmark.RightHip)
	lKnee, rKnee := lm.At(landmark.LeftKnee), lm.At(landmark.RightKnee)
	lAnkle, rAnkle := lm.At(landmark.LeftAnkle), lm.At(landmark.RightAnkle)
	midHip := geometry.Midpoint(lHip, rHip)

	ratio := geometry.Distance(lAnkle, rAnkle) / (geometry.Distance(lHip, rHip) + geometry.Epsilon)
	switch {
	case ratio >= goddessStanceWide:
		r.score("stance_width", maxIndicator)
		r.say("✓✓ Perfect stance width!")
	case ratio >= goddessStanceFair:
		r.score("stance_width", goddessStanceFairScore)
		r.say("✓ Good stance, you can widen it a little more.")
	default:
		r.score("stance_width", goddessStanceNarrow)
		r.say("💡 Widen your stance (wider than the shoulders).")
	}

	knee := mean2(kneeAngle(&lm, Left), kneeAngle(&lm, Right))
	r.score("squat_depth", maxIndicator-math.Abs(goddessKneeTarget-knee))
	r.score("knee_angle", knee)
	r.measure("knee_angle", knee)
	switch {
	case knee >= goddessKneePerfectLo && knee <= goddessKneePerfectHi:
		r.say("✓✓ Perfect squat depth!")
	case knee > goddessKneeShallow:
		r.say("💪 Sink lower! Aim for thighs parallel to the floor.")
	default:
		r.say("✓ Good squat depth.")
	}

	drift := mean2(math.Abs(lKnee.X-lAnkle.X), math.Abs(rKnee.X-rAnkle.X))
	if r.score("knee_alignment", maxIndicator-drift*goddessKneeAlignScale) < goddessKneeAlignMin {
		r.say("⚠️ Knees caving in. Push them out in line with the feet.")
	} else {
		r.say("✓ Good knee position.")
	}

	switch back := r.score("back_position", geometry.VerticalAlignment(nose, midHip)); {
	case back >= goddessBackGood:
		r.say("✓✓ Back nice and straight!")
	case back >= goddessBackFair:
		r.say("✓ Back fairly straight, well done.")
	default:
		r.say("💡 Straighten the back and open the chest.")
	}

	if r.score("symmetry", geometry.Symmetry(lKnee, rKnee, midHip)) < goddessSymmetryMin {
		r.say("⚠️ Asymmetry detected. Balance the weight on both legs.")
	}

	return r.result()
}
