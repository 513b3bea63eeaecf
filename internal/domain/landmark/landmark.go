// Package landmark defines the 33-point body landmark set consumed by the
// pose quality engine.
package landmark

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Body landmark indices following the MediaPipe Pose convention.
// The engine addresses joints by these indices; they must never be reordered.
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	Count          = 33
	FieldsPerPoint = 4
)

// Landmark is one body keypoint. X and Y are image-relative (usually 0-1),
// Z is a relative depth and Visibility a detection confidence in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Vec returns the landmark position without its visibility.
func (l Landmark) Vec() r3.Vec {
	return r3.Vec{X: l.X, Y: l.Y, Z: l.Z}
}

// Set is a complete body skeleton indexed by the constants above.
type Set [Count]Landmark

// NewSet copies points into a Set. It fails unless exactly Count points are given.
func NewSet(points []Landmark) (Set, error) {
	var s Set
	if len(points) != Count {
		return s, fmt.Errorf("%w: got %d, want %d", ErrLandmarkCount, len(points), Count)
	}
	copy(s[:], points)
	return s, nil
}

// FromRows builds a Set from [x, y, z, visibility] rows.
func FromRows(rows [][]float64) (Set, error) {
	var s Set
	if len(rows) != Count {
		return s, fmt.Errorf("%w: got %d, want %d", ErrLandmarkCount, len(rows), Count)
	}
	for i, row := range rows {
		if len(row) != FieldsPerPoint {
			return s, fmt.Errorf("%w: row %d has %d fields", ErrFieldCount, i, len(row))
		}
		s[i] = Landmark{X: row[0], Y: row[1], Z: row[2], Visibility: row[3]}
	}
	return s, nil
}

// At returns the position of landmark idx.
func (s *Set) At(idx int) r3.Vec {
	return s[idx].Vec()
}

// Validate reports the first non-finite value in the set.
func (s *Set) Validate() error {
	for i, l := range s {
		for _, v := range [...]float64{l.X, l.Y, l.Z, l.Visibility} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: landmark %d", ErrNonFinite, i)
			}
		}
	}
	return nil
}

// Rows is the inverse of FromRows.
func (s *Set) Rows() [][]float64 {
	rows := make([][]float64, Count)
	for i, l := range s {
		rows[i] = []float64{l.X, l.Y, l.Z, l.Visibility}
	}
	return rows
}
