package geometry_test

import (
	"math"
	"testing"

	"github.com/okian/asana/internal/domain/geometry"
	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAngle(t *testing.T) {
	Convey("Given three points", t, func() {
		a := r3.Vec{X: 1, Y: 0, Z: 0}
		b := r3.Vec{}
		c := r3.Vec{X: 0, Y: 1, Z: 0}

		Convey("Then a right angle measures 90 degrees", func() {
			So(geometry.Angle(a, b, c), ShouldAlmostEqual, 90, 1e-6)
		})

		Convey("Then a straight line measures close to 180 degrees", func() {
			So(geometry.Angle(a, b, r3.Vec{X: -1}), ShouldAlmostEqual, 180, 0.2)
		})

		Convey("Then the vertex angle is symmetric in its outer points", func() {
			p := r3.Vec{X: 0.3, Y: -0.7, Z: 0.2}
			q := r3.Vec{X: -0.4, Y: 0.1, Z: 0.9}
			v := r3.Vec{X: 0.05, Y: 0.05, Z: -0.1}
			So(geometry.Angle(p, v, q), ShouldEqual, geometry.Angle(q, v, p))
		})

		Convey("Then coincident points do not produce NaN", func() {
			got := geometry.Angle(b, b, b)
			So(math.IsNaN(got), ShouldBeFalse)
			So(got, ShouldAlmostEqual, 90, 1e-9)
		})
	})
}

func TestAngleRange(t *testing.T) {
	Convey("Given a grid of point triples", t, func() {
		coords := []float64{-1, -0.25, 0, 0.5, 1}
		Convey("Then every angle lies in [0, 180]", func() {
			for _, x := range coords {
				for _, y := range coords {
					for _, z := range coords {
						a := r3.Vec{X: x, Y: y, Z: z}
						c := r3.Vec{X: z, Y: x, Z: -y}
						got := geometry.Angle(a, r3.Vec{X: 0.1, Y: 0.2}, c)
						So(got, ShouldBeBetweenOrEqual, 0, 180)
					}
				}
			}
		})
	})
}

func TestAngle2D(t *testing.T) {
	Convey("Given points that differ only in depth", t, func() {
		a := r3.Vec{X: 1, Y: 0, Z: 5}
		b := r3.Vec{Z: -3}
		c := r3.Vec{X: 0, Y: 1, Z: 2}

		Convey("Then depth is ignored", func() {
			So(geometry.Angle2D(a, b, c), ShouldAlmostEqual, 90, 1e-6)
		})
	})
}

func TestDistance(t *testing.T) {
	Convey("Given two points", t, func() {
		a := r3.Vec{X: 1, Y: 2, Z: 2}
		b := r3.Vec{}

		Convey("Then distance is symmetric", func() {
			So(geometry.Distance(a, b), ShouldEqual, geometry.Distance(b, a))
			So(geometry.Distance(a, b), ShouldAlmostEqual, 3, 1e-12)
		})

		Convey("Then the distance from a point to itself is zero", func() {
			So(geometry.Distance(a, a), ShouldEqual, 0)
		})

		Convey("Then the 2D distance drops depth", func() {
			So(geometry.Distance2D(a, b), ShouldAlmostEqual, math.Sqrt(5), 1e-12)
		})
	})
}

func TestAlignment(t *testing.T) {
	Convey("Given alignment scores", t, func() {
		p := r3.Vec{X: 0.4, Y: 0.6, Z: 0.1}

		Convey("Then identical points are perfectly aligned", func() {
			So(geometry.HorizontalAlignment(p, p), ShouldEqual, 100)
			So(geometry.VerticalAlignment(p, p), ShouldEqual, 100)
		})

		Convey("Then the score falls linearly with the offset", func() {
			q := r3.Vec{X: 0.45, Y: 0.65}
			So(geometry.HorizontalAlignment(p, q), ShouldAlmostEqual, 50, 1e-9)
			So(geometry.VerticalAlignment(p, q), ShouldAlmostEqual, 50, 1e-9)
		})

		Convey("Then offsets past the reference clamp to zero", func() {
			q := r3.Vec{X: 0.9, Y: 0.1}
			So(geometry.HorizontalAlignment(p, q), ShouldEqual, 0)
			So(geometry.VerticalAlignment(p, q), ShouldEqual, 0)
		})
	})
}

func TestSymmetry(t *testing.T) {
	Convey("Given symmetry scores", t, func() {
		center := r3.Vec{X: 0.5, Y: 0.5}

		Convey("Then equal left and right points are fully symmetric", func() {
			p := r3.Vec{X: 0.2, Y: 0.9, Z: 0.3}
			So(geometry.Symmetry(p, p, center), ShouldEqual, 100)
			So(geometry.Symmetry(p, p, r3.Vec{X: -4, Y: 7}), ShouldEqual, 100)
		})

		Convey("Then mirrored points are fully symmetric", func() {
			l := r3.Vec{X: 0.3, Y: 0.5}
			r := r3.Vec{X: 0.7, Y: 0.5}
			So(geometry.Symmetry(l, r, center), ShouldAlmostEqual, 100, 1e-9)
		})

		Convey("Then a relative difference lowers the score", func() {
			l := r3.Vec{X: 0.4, Y: 0.5}
			r := r3.Vec{X: 0.8, Y: 0.5}
			// dL = 0.1, dR = 0.3, avg = 0.2 -> 100 - 100 = 0
			So(geometry.Symmetry(l, r, center), ShouldAlmostEqual, 0, 1e-9)
		})

		Convey("Then all points at the center score 100", func() {
			So(geometry.Symmetry(center, center, center), ShouldEqual, 100)
		})
	})
}

func TestMidpoint(t *testing.T) {
	got := geometry.Midpoint(r3.Vec{X: 0, Y: 1, Z: 2}, r3.Vec{X: 2, Y: 3, Z: 4})
	want := r3.Vec{X: 1, Y: 2, Z: 3}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}
