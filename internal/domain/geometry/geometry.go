// Package geometry holds the angle, distance, alignment and symmetry
// primitives the pose analyzers are built from. All functions are pure.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Epsilon guards denominators against zero-length rays.
	Epsilon = 1e-6

	// AlignmentReference is the coordinate difference (normalized image
	// units) at which an alignment score reaches 0.
	AlignmentReference = 0.1

	maxScore = 100.0
)

// Angle returns the angle at vertex b between rays b->a and b->c, in degrees.
func Angle(a, b, c r3.Vec) float64 {
	ba := r3.Sub(a, b)
	bc := r3.Sub(c, b)
	cosine := r3.Dot(ba, bc) / (r3.Norm(ba)*r3.Norm(bc) + Epsilon)
	return math.Acos(clip(cosine, -1, 1)) * 180 / math.Pi
}

// Angle2D is Angle restricted to the image plane; depth is ignored.
func Angle2D(a, b, c r3.Vec) float64 {
	return Angle(flatten(a), flatten(b), flatten(c))
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Distance2D returns the Euclidean distance between a and b in the image plane.
func Distance2D(a, b r3.Vec) float64 {
	return Distance(flatten(a), flatten(b))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

// HorizontalAlignment scores how level two points are: 100 for equal Y,
// falling linearly to 0 at AlignmentReference.
func HorizontalAlignment(p1, p2 r3.Vec) float64 {
	return alignment(math.Abs(p1.Y - p2.Y))
}

// VerticalAlignment scores how plumb two points are, using X instead of Y.
func VerticalAlignment(p1, p2 r3.Vec) float64 {
	return alignment(math.Abs(p1.X - p2.X))
}

// Symmetry compares the distances of left and right from center.
// It returns 100 when they match, or when both are effectively zero.
func Symmetry(left, right, center r3.Vec) float64 {
	dl := Distance(left, center)
	dr := Distance(right, center)
	avg := (dl + dr) / 2
	if avg < Epsilon {
		return maxScore
	}
	return ClampScore(maxScore - math.Abs(dl-dr)/avg*maxScore)
}

// ClampScore bounds v to [0, 100].
func ClampScore(v float64) float64 {
	return clip(v, 0, maxScore)
}

func alignment(diff float64) float64 {
	return ClampScore(maxScore - diff/AlignmentReference*maxScore)
}

func flatten(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y}
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
