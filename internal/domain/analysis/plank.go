package analysis

import (
	"math"

	"github.com/okian/asana/internal/domain/geometry"
	"github.com/okian/asana/internal/domain/landmark"
	"gonum.org/v1/gonum/spatial/r3"
)

// Plank thresholds. Distances are in normalized image units.
const (
	plankDeviationScale   = 300.0
	plankAlignGood        = 85.0
	plankAlignFair        = 70.0
	plankKneesDownGap     = 0.05
	plankKneesDownScore   = 40.0
	plankSymmetryMin      = 80.0
	plankShoulderWristMin = 70.0
)

// plank checks a straight shoulder-hip-ankle line, knees off the floor,
// even shoulders and shoulders stacked over wrists.
type plank struct{}

func (plank) Analyze(lm landmark.Set) (Indicators, Measurements, []string) {
	r := newReport()

	lShoulder, rShoulder := lm.At(landmark.LeftShoulder), lm.At(landmark.RightShoulder)
	lWrist, rWrist := lm.At(landmark.LeftWrist), lm.At(landmark.RightWrist)
	lHip, rHip := lm.At(landmark.LeftHip), lm.At(landmark.RightHip)
	lKnee, rKnee := lm.At(landmark.LeftKnee), lm.At(landmark.RightKnee)
	lAnkle, rAnkle := lm.At(landmark.LeftAnkle), lm.At(landmark.RightAnkle)

	midShoulder := geometry.Midpoint(lShoulder, rShoulder)
	midHip := geometry.Midpoint(lHip, rHip)
	midAnkle := geometry.Midpoint(lAnkle, rAnkle)

	deviation := lineDeviation(midHip, midShoulder, midAnkle)
	switch alignment := r.score("alignment", maxIndicator-deviation*plankDeviationScale); {
	case alignment >= plankAlignGood:
		r.say("✓✓ Perfect alignment! Body in a straight line.")
	case alignment >= plankAlignFair:
		r.say("✓ Good overall alignment.")
	case midHip.Y < midShoulder.Y:
		r.say("⚠️ Hips too high. Engage the core and lower them a little.")
	default:
		r.say("⚠️ Hips sagging. Tighten the abdominals!")
	}

	kneeHeight := mean2(lKnee.Y, rKnee.Y)
	ankleHeight := mean2(lAnkle.Y, rAnkle.Y)
	if math.Abs(kneeHeight-ankleHeight) < plankKneesDownGap {
		r.score("core_strength", plankKneesDownScore)
		r.say("💡 Knees on the floor detected. A modified plank is a good start!")
		r.say("💪 To progress, try 10 seconds on your toes.")
	} else {
		r.score("core_strength", maxIndicator)
		r.say("✓✓ Full plank! Excellent core strength.")
	}

	if r.score("symmetry", geometry.Symmetry(lShoulder, rShoulder, midHip)) < plankSymmetryMin {
		r.say("⚠️ Asymmetry detected. Spread the weight evenly.")
	}

	midWrist := geometry.Midpoint(lWrist, rWrist)
	if r.score("shoulder_position", geometry.VerticalAlignment(midShoulder, midWrist)) < plankShoulderWristMin {
		r.say("💡 Shoulders are not stacked over the wrists. Adjust your position.")
	}

	return r.result()
}

// lineDeviation returns the distance of p from the line through from and to.
func lineDeviation(p, from, to r3.Vec) float64 {
	ref := r3.Sub(to, from)
	unit := r3.Scale(1/(r3.Norm(ref)+geometry.Epsilon), ref)
	v := r3.Sub(p, from)
	projection := r3.Scale(r3.Dot(v, unit), unit)
	return r3.Norm(r3.Sub(v, projection))
}
