// Package geometry contains the pure math underneath the board: points,
// vectors, rectangles, segments, tolerance-based belonging predicates and
// the zoom/translate transforms everything else is built on.
package geometry

import "math"

// Point is a 2D coordinate in board units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec is a 2D offset between points.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Add returns the point offset by d.
func (p Point) Add(d Vec) Point { return Point{X: p.X + d.X, Y: p.Y + d.Y} }

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Vec { return Vec{X: p.X - q.X, Y: p.Y - q.Y} }

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Over reports whether p lies within tolerance of q.
func (p Point) Over(q Point, tolerance float64) bool {
	return p.Distance(q) <= tolerance
}

// Zoom scales the point about the origin.
func (p Point) Zoom(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Zoom scales the vector.
func (v Vec) Zoom(factor float64) Vec {
	return Vec{X: v.X * factor, Y: v.Y * factor}
}

// Neg returns the opposite vector.
func (v Vec) Neg() Vec { return Vec{X: -v.X, Y: -v.Y} }

// IsZero reports whether the vector is exactly zero.
func (v Vec) IsZero() bool { return v.X == 0 && v.Y == 0 }

// AngleOf returns the angle of the direction from a to b.
//
// The convention is atan2(dx, dy): the angle is measured from the vertical
// axis, not the horizontal one. All arrowhead and edge math depends on
// this; PointByAngle is its inverse.
func AngleOf(a, b Point) float64 {
	return math.Atan2(b.X-a.X, b.Y-a.Y)
}

// PointByAngle returns the point at the given distance from origin along
// the direction described by angle (in the AngleOf convention).
func PointByAngle(origin Point, angle, distance float64) Point {
	return Point{
		X: origin.X + distance*math.Sin(angle),
		Y: origin.Y + distance*math.Cos(angle),
	}
}
