package analysis

import "github.com/okian/asana/internal/domain/landmark"

const referenceVisibility = 0.99

// xy is an image-plane position.
type xy struct{ X, Y float64 }

// joints places the landmarks the analyzers read. Face, hand and foot
// landmarks are derived from them.
type joints struct {
	nose                 xy
	lShoulder, rShoulder xy
	lElbow, rElbow       xy
	lWrist, rWrist       xy
	lHip, rHip           xy
	lKnee, rKnee         xy
	lAnkle, rAnkle       xy
}

// references holds front and side view skeletons of well-executed poses,
// in normalized image coordinates with Y growing downwards.
var references = map[Pose]joints{
	Downdog: {
		nose:      xy{0.10, 0.45},
		lShoulder: xy{0.15, 0.40},
		rShoulder: xy{0.15, 0.40},
		lElbow:    xy{0.075, 0.55},
		rElbow:    xy{0.075, 0.55},
		lWrist:    xy{0.00, 0.70},
		rWrist:    xy{0.00, 0.70},
		lHip:      xy{0.50, 0.30},
		rHip:      xy{0.50, 0.30},
		lKnee:     xy{0.60, 0.525},
		rKnee:     xy{0.60, 0.525},
		lAnkle:    xy{0.70, 0.75},
		rAnkle:    xy{0.70, 0.75},
	},
	Plank: {
		nose:      xy{0.10, 0.35},
		lShoulder: xy{0.20, 0.40},
		rShoulder: xy{0.20, 0.40},
		lElbow:    xy{0.20, 0.55},
		rElbow:    xy{0.20, 0.55},
		lWrist:    xy{0.20, 0.70},
		rWrist:    xy{0.20, 0.70},
		lHip:      xy{0.50, 0.55},
		rHip:      xy{0.50, 0.55},
		lKnee:     xy{0.65, 0.625},
		rKnee:     xy{0.65, 0.625},
		lAnkle:    xy{0.80, 0.70},
		rAnkle:    xy{0.80, 0.70},
	},
	Tree: {
		nose:      xy{0.50, 0.15},
		lShoulder: xy{0.45, 0.30},
		rShoulder: xy{0.55, 0.30},
		lElbow:    xy{0.47, 0.20},
		rElbow:    xy{0.53, 0.20},
		lWrist:    xy{0.50, 0.08},
		rWrist:    xy{0.50, 0.08},
		lHip:      xy{0.46, 0.55},
		rHip:      xy{0.54, 0.55},
		lKnee:     xy{0.46, 0.72},
		rKnee:     xy{0.88, 0.70},
		lAnkle:    xy{0.46, 0.90},
		rAnkle:    xy{0.48, 0.65},
	},
	Warrior2: {
		nose:      xy{0.50, 0.15},
		lShoulder: xy{0.42, 0.30},
		rShoulder: xy{0.58, 0.30},
		lElbow:    xy{0.25, 0.30},
		rElbow:    xy{0.75, 0.30},
		lWrist:    xy{0.08, 0.30},
		rWrist:    xy{0.92, 0.30},
		lHip:      xy{0.35, 0.55},
		rHip:      xy{0.65, 0.55},
		lKnee:     xy{0.15, 0.55},
		rKnee:     xy{0.75, 0.68},
		lAnkle:    xy{0.15, 0.80},
		rAnkle:    xy{0.85, 0.81},
	},
	Goddess: {
		nose:      xy{0.50, 0.10},
		lShoulder: xy{0.42, 0.25},
		rShoulder: xy{0.58, 0.25},
		lElbow:    xy{0.35, 0.15},
		rElbow:    xy{0.65, 0.15},
		lWrist:    xy{0.40, 0.05},
		rWrist:    xy{0.60, 0.05},
		lHip:      xy{0.45, 0.50},
		rHip:      xy{0.55, 0.50},
		lKnee:     xy{0.20, 0.50},
		rKnee:     xy{0.80, 0.50},
		lAnkle:    xy{0.20, 0.85},
		rAnkle:    xy{0.80, 0.85},
	},
}

// ReferenceLandmarks returns a landmark set of p performed well. It reports
// false when p is not supported.
func ReferenceLandmarks(p Pose) (landmark.Set, bool) {
	j, ok := references[p]
	if !ok {
		return landmark.Set{}, false
	}
	var s landmark.Set
	put := func(pt xy, idx ...int) {
		for _, i := range idx {
			s[i] = landmark.Landmark{X: pt.X, Y: pt.Y, Visibility: referenceVisibility}
		}
	}
	put(j.nose, landmark.Nose,
		landmark.LeftEyeInner, landmark.LeftEye, landmark.LeftEyeOuter,
		landmark.RightEyeInner, landmark.RightEye, landmark.RightEyeOuter,
		landmark.LeftEar, landmark.RightEar, landmark.MouthLeft, landmark.MouthRight)
	put(j.lShoulder, landmark.LeftShoulder)
	put(j.rShoulder, landmark.RightShoulder)
	put(j.lElbow, landmark.LeftElbow)
	put(j.rElbow, landmark.RightElbow)
	put(j.lWrist, landmark.LeftWrist, landmark.LeftPinky, landmark.LeftIndex, landmark.LeftThumb)
	put(j.rWrist, landmark.RightWrist, landmark.RightPinky, landmark.RightIndex, landmark.RightThumb)
	put(j.lHip, landmark.LeftHip)
	put(j.rHip, landmark.RightHip)
	put(j.lKnee, landmark.LeftKnee)
	put(j.rKnee, landmark.RightKnee)
	put(j.lAnkle, landmark.LeftAnkle, landmark.LeftHeel, landmark.LeftFootIndex)
	put(j.rAnkle, landmark.RightAnkle, landmark.RightHeel, landmark.RightFootIndex)
	return s, true
}
