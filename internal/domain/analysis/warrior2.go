package analysis

import (
	"math"

	"github.com/okian/asana/internal/domain/geometry"
	"github.com/okian/asana/internal/domain/landmark"
)

// Warrior II thresholds. Angles are in degrees.
const (
	warriorArmsGood      = 85.0
	warriorArmsFair      = 70.0
	warriorArmStraight   = 160.0
	warriorKneeTarget    = 90.0
	warriorKneePerfectLo = 85.0
	warriorKneePerfectHi = 95.0
	warriorKneeGoodLo    = 75.0
	warriorKneeAnkleMin  = 60.0
	warriorHipScale      = 200.0
	warriorHipOpenMin    = 60.0
	warriorHipOpenGood   = 80.0
	warriorShoulderMin   = 75.0
)

// warrior2 checks horizontal straight arms, a 90 degree front knee stacked
// over the ankle, open hips and level shoulders.
type warrior2 struct{}

func (warrior2) Analyze(lm landmark.Set) (Indicators, Measurements, []string) {
	r := newReport()

	lShoulder, rShoulder := lm.At(landmark.LeftShoulder), lm.At(landmark.RightShoulder)
	lElbow, rElbow := lm.At(landmark.LeftElbow), lm.At(landmark.RightElbow)
	lWrist, rWrist := lm.At(landmark.LeftWrist), lm.At(landmark.RightWrist)
	lHip, rHip := lm.At(landmark.LeftHip), lm.At(landmark.RightHip)

	leftKnee := kneeAngle(&lm, Left)
	rightKnee := kneeAngle(&lm, Right)
	front := frontLeg(leftKnee, rightKnee)
	knee := rightKnee
	if front == Left {
		knee = leftKnee
	}
	fl := legOf(front)

	arms := r.score("arms_alignment", geometry.HorizontalAlignment(lWrist, rWrist))
	extension := mean2(geometry.Angle(lShoulder, lElbow, lWrist), geometry.Angle(rShoulder, rElbow, rWrist))
	switch {
	case arms >= warriorArmsGood && extension >= warriorArmStraight:
		r.say("✓✓ Arms perfectly level and extended!")
	case arms >= warriorArmsFair:
		r.say("✓ Arms well extended to the sides.")
	default:
		r.say("⚠️ Bring the arms level, stretched out to the sides.")
	}

	r.score("front_knee_angle", knee)
	r.measure("front_knee_angle", knee)
	r.score("knee_flexion_quality", maxIndicator-math.Abs(warriorKneeTarget-knee))
	switch {
	case knee >= warriorKneePerfectLo && knee <= warriorKneePerfectHi:
		r.say("✓✓ Front knee bent to a perfect 90°!")
	case knee >= warriorKneeGoodLo && knee < warriorKneePerfectLo:
		r.say("💪 Knee well bent! You can sink a little lower.")
	case knee < warriorKneeGoodLo:
		r.say("⚠️ Careful: knee bent too far, come up slightly.")
	default:
		r.say("💡 Bend the front knee more (target: 90°).")
	}

	if r.score("knee_ankle_alignment", geometry.VerticalAlignment(lm.At(fl.knee), lm.At(fl.ankle))) < warriorKneeAnkleMin {
		r.say("⚠️ Knee goes past the ankle. Step the back foot out a little.")
	}

	hip := math.Min(maxIndicator, math.Abs(lHip.X-rHip.X)*warriorHipScale)
	switch hip = r.score("hip_opening", hip); {
	case hip < warriorHipOpenMin:
		r.say("💡 Open the hips more to the side.")
	case hip >= warriorHipOpenGood:
		r.say("✓✓ Excellent hip opening!")
	}

	if r.score("shoulder_level", geometry.HorizontalAlignment(lShoulder, rShoulder)) < warriorShoulderMin {
		r.say("⚠️ Keep the shoulders level.")
	}

	return r.result()
}

func kneeAngle(lm *landmark.Set, s Side) float64 {
	l := legOf(s)
	return geometry.Angle(lm.At(l.hip), lm.At(l.knee), lm.At(l.ankle))
}
