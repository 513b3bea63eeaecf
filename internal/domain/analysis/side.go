package analysis

import "github.com/okian/asana/internal/domain/landmark"

// Side is a body side.
type Side int

// Body sides.
const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

// leg holds the landmark indices of one leg.
type leg struct {
	hip, knee, ankle int
}

func legOf(s Side) leg {
	if s == Left {
		return leg{hip: landmark.LeftHip, knee: landmark.LeftKnee, ankle: landmark.LeftAnkle}
	}
	return leg{hip: landmark.RightHip, knee: landmark.RightKnee, ankle: landmark.RightAnkle}
}

// raisedLeg picks the raised leg of a tree pose from the lateral knee spread
// of each leg. The left leg is raised only when its spread is strictly
// larger; ties go to the right leg.
func raisedLeg(leftSpread, rightSpread float64) Side {
	if leftSpread > rightSpread {
		return Left
	}
	return Right
}

// frontLeg picks the bent front leg of a warrior II from the knee angle of
// each leg. The left leg is in front only when its angle is strictly
// smaller; ties go to the right leg.
func frontLeg(leftAngle, rightAngle float64) Side {
	if leftAngle < rightAngle {
		return Left
	}
	return Right
}
