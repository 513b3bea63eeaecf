package analysis

import (
	"math"

	"github.com/okian/asana/internal/domain/geometry"
	"github.com/okian/asana/internal/domain/landmark"
)

// Downward-facing dog thresholds. Angles are in degrees.
const (
	downdogHipIdealMin    = 90.0
	downdogHipIdealMax    = 120.0
	downdogHipFairMin     = 80.0
	downdogHipFairMax     = 140.0
	downdogArmStraight    = 160.0
	downdogArmAlmost      = 140.0
	downdogLegStraight    = 160.0
	downdogLegAlmost      = 140.0
	downdogSymmetryMin    = 70.0
	downdogHeadScale      = 200.0
	downdogHeadMin        = 60.0
	downdogBentArmScore   = 50.0
	downdogBentLegScore   = 60.0
	downdogFairScore      = 75.0
	downdogPoorAlignScore = 50.0
)

// downdog checks the inverted V: hip angle, straight arms and legs,
// even hands and a relaxed neck.
type downdog struct{}

func (downdog) Analyze(lm landmark.Set) (Indicators, Measurements, []string) {
	r := newReport()

	nose := lm.At(landmark.Nose)
	lShoulder, rShoulder := lm.At(landmark.LeftShoulder), lm.At(landmark.RightShoulder)
	lElbow, rElbow := lm.At(landmark.LeftElbow), lm.At(landmark.RightElbow)
	lWrist, rWrist := lm.At(landmark.LeftWrist), lm.At(landmark.RightWrist)
	lHip, rHip := lm.At(landmark.LeftHip), lm.At(landmark.RightHip)
	lKnee, rKnee := lm.At(landmark.LeftKnee), lm.At(landmark.RightKnee)
	lAnkle, rAnkle := lm.At(landmark.LeftAnkle), lm.At(landmark.RightAnkle)

	midShoulder := geometry.Midpoint(lShoulder, rShoulder)
	midHip := geometry.Midpoint(lHip, rHip)
	midAnkle := geometry.Midpoint(lAnkle, rAnkle)

	hip := geometry.Angle(midShoulder, midHip, midAnkle)
	switch {
	case hip >= downdogHipIdealMin && hip <= downdogHipIdealMax:
		r.score("alignment", maxIndicator)
		r.say("✓✓ Excellent back and leg alignment.")
	case (hip >= downdogHipFairMin && hip < downdogHipIdealMin) || (hip > downdogHipIdealMax && hip <= downdogHipFairMax):
		r.score("alignment", downdogFairScore)
		r.say("✓ Good overall alignment, keep going.")
	default:
		r.score("alignment", downdogPoorAlignScore)
		if hip < downdogHipFairMin {
			r.say("⚠️ Hips too low. Push them further up.")
		} else {
			r.say("⚠️ Hips too high or back too rounded.")
		}
	}

	elbow := mean2(geometry.Angle(lShoulder, lElbow, lWrist), geometry.Angle(rShoulder, rElbow, rWrist))
	switch {
	case elbow >= downdogArmStraight:
		r.score("shoulder_opening", maxIndicator)
		r.say("✓✓ Arms straight, shoulders open.")
	case elbow >= downdogArmAlmost:
		r.score("shoulder_opening", downdogFairScore)
		r.say("✓ Arms almost straight. Press a little more through the hands.")
	default:
		r.score("shoulder_opening", downdogBentArmScore)
		r.say("⚠️ Arms bent. Straighten the elbows and push the floor away.")
	}

	knee := mean2(geometry.Angle(lHip, lKnee, lAnkle), geometry.Angle(rHip, rKnee, rAnkle))
	switch {
	case knee >= downdogLegStraight:
		r.score("leg_extension", maxIndicator)
		r.say("✓✓ Legs fully extended.")
	case knee >= downdogLegAlmost:
		r.score("leg_extension", downdogFairScore)
		r.say("✓ Legs almost straight. That is already very good!")
	default:
		r.score("leg_extension", downdogBentLegScore)
		r.say("💡 Bent knees are normal at first. Focus on the back first.")
	}

	if r.score("symmetry", geometry.Symmetry(lWrist, rWrist, midShoulder)) < downdogSymmetryMin {
		r.say("⚠️ Asymmetry detected. Check that your hands are the same distance apart.")
	}

	head := maxIndicator - math.Abs(nose.Y-midShoulder.Y)*downdogHeadScale
	if r.score("head_position", head) < downdogHeadMin {
		r.say("💡 Relax the neck and let the head hang naturally.")
	}

	return r.result()
}
