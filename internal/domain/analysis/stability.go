package analysis

import (
	"math"

	"github.com/okian/asana/internal/domain/geometry"
	"github.com/okian/asana/internal/domain/landmark"
)

const stabilityScale = 500.0

// stabilityAnchors are the joints tracked across frames: nose, shoulders, hips.
var stabilityAnchors = [...]int{
	landmark.Nose,
	landmark.LeftShoulder,
	landmark.RightShoulder,
	landmark.LeftHip,
	landmark.RightHip,
}

// Stability scores how still the anchor joints stay across consecutive
// frames. It returns 100 for fewer than two frames and never goes below 0.
func Stability(frames []landmark.Set) float64 {
	if len(frames) < 2 {
		return maxIndicator
	}
	var total float64
	var n int
	for i := 0; i < len(frames)-1; i++ {
		for _, idx := range stabilityAnchors {
			total += geometry.Distance(frames[i].At(idx), frames[i+1].At(idx))
			n++
		}
	}
	return math.Max(0, maxIndicator-total/float64(n)*stabilityScale)
}
