package analysis

import (
	"math"

	"github.com/okian/asana/internal/domain/geometry"
	"github.com/okian/asana/internal/domain/landmark"
)

// Tree pose thresholds.
const (
	treeAlignGood     = 80.0
	treeAlignFair     = 65.0
	treeFootHigh      = 0.15
	treeFootCalf      = 0.25
	treeFootCalfScore = 75.0
	treeFootLowScore  = 50.0
	treeHipScale      = 200.0
	treeHipOpenMin    = 50.0
	treeHipOpenGood   = 80.0
	treeShoulderMin   = 70.0
)

// tree checks balance on one leg: vertical alignment, raised foot height,
// hip opening and level shoulders.
type tree struct{}

func (tree) Analyze(lm landmark.Set) (Indicators, Measurements, []string) {
	r := newReport()

	nose := lm.At(landmark.Nose)
	lShoulder, rShoulder := lm.At(landmark.LeftShoulder), lm.At(landmark.RightShoulder)
	midHip := geometry.Midpoint(lm.At(landmark.LeftHip), lm.At(landmark.RightHip))

	raised := raisedLeg(kneeSpread(&lm, Left), kneeSpread(&lm, Right))
	up, standing := legOf(raised), legOf(raised.Other())
	raisedKnee, raisedAnkle := lm.At(up.knee), lm.At(up.ankle)
	standingHip, standingAnkle := lm.At(standing.hip), lm.At(standing.ankle)

	alignment := mean2(
		geometry.VerticalAlignment(nose, midHip),
		geometry.VerticalAlignment(standingHip, standingAnkle),
	)
	switch alignment = r.score("alignment", alignment); {
	case alignment >= treeAlignGood:
		r.say("✓✓ Excellent vertical alignment! Perfect balance.")
	case alignment >= treeAlignFair:
		r.say("✓ Good balance, body nearly aligned.")
	default:
		r.say("⚠️ Body off balance. Fix your gaze on a point and engage the core.")
	}

	switch foot := math.Abs(raisedAnkle.Y - standingHip.Y); {
	case foot < treeFootHigh:
		r.score("foot_height", maxIndicator)
		r.say("✓✓ Foot placed high on the thigh.")
	case foot < treeFootCalf:
		r.score("foot_height", treeFootCalfScore)
		r.say("✓ Foot on the calf. That is already very good!")
	default:
		r.score("foot_height", treeFootLowScore)
		r.say("💡 Foot near the floor. Try to bring it up gradually.")
	}

	hip := math.Min(maxIndicator, math.Abs(raisedKnee.X-standingHip.X)*treeHipScale)
	switch hip = r.score("hip_opening", hip); {
	case hip < treeHipOpenMin:
		r.say("💡 Open the hip more for extra stability.")
	case hip >= treeHipOpenGood:
		r.say("✓✓ Excellent hip opening!")
	}

	if r.score("shoulder_level", geometry.HorizontalAlignment(lShoulder, rShoulder)) < treeShoulderMin {
		r.say("⚠️ Shoulders uneven. Keep them level.")
	}

	return r.result()
}

func kneeSpread(lm *landmark.Set, s Side) float64 {
	l := legOf(s)
	return math.Abs(lm.At(l.knee).X - lm.At(l.hip).X)
}
