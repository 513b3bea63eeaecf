package analysis

import (
	"fmt"

	"github.com/okian/asana/internal/domain/landmark"
)

// Pose identifies a supported yoga pose.
type Pose string

// Supported poses. Names are matched case-sensitively.
const (
	Downdog  Pose = "downdog"
	Plank    Pose = "plank"
	Tree     Pose = "tree"
	Warrior2 Pose = "warrior2"
	Goddess  Pose = "goddess"
)

var supported = []Pose{Downdog, Plank, Tree, Warrior2, Goddess}

// Indicators maps an indicator name to its 0-100 score.
type Indicators map[string]float64

// Measurements maps a measurement name to a raw value, such as a joint
// angle in degrees.
type Measurements map[string]float64

// Analyzer scores one pose from a single landmark snapshot.
type Analyzer interface {
	Analyze(lm landmark.Set) (Indicators, Measurements, []string)
}

// ParsePose returns the pose named name.
func ParsePose(name string) (Pose, error) {
	p := Pose(name)
	if p.Analyzer() == nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPose, name)
	}
	return p, nil
}

// Poses lists every supported pose.
func Poses() []Pose {
	out := make([]Pose, len(supported))
	copy(out, supported)
	return out
}

// Analyzer returns the analyzer for p, or nil when p is not supported.
func (p Pose) Analyzer() Analyzer {
	switch p {
	case Downdog:
		return downdog{}
	case Plank:
		return plank{}
	case Tree:
		return tree{}
	case Warrior2:
		return warrior2{}
	case Goddess:
		return goddess{}
	default:
		return nil
	}
}

func (p Pose) String() string { return string(p) }
