// Package figure holds the closed set of drawable primitives a cell is
// made of. The set is fixed: a render layer switches over the concrete
// types and needs no other case. Every variant supports the same three
// operations: translate by an offset, zoom about the origin, and
// tolerance-based containment.
package figure

import (
	"image/color"

	"dboard/geometry"
)

// Shape is one drawable primitive. The interface is closed: only the
// variants in this package implement it, so a type switch over them is
// exhaustive.
//
// Translate and Zoom mutate the shape in place. Zoom scales every
// coordinate about the origin, nested composites included; compensating
// the resulting offset is the caller's concern. Contains returns nil when
// the point does not land on the shape.
type Shape interface {
	Translate(delta geometry.Vec)
	Zoom(factor float64)
	Contains(p geometry.Point, tolerance float64) *geometry.Hit

	// closed restricts the variant set to this package.
	closed()
}

// LineSegment is a straight stroke between two points.
type LineSegment struct {
	Points [2]geometry.Point `json:"points"`
	Stroke Stroke            `json:"stroke"`
}

// Path is an open polyline.
type Path struct {
	Points []geometry.Point `json:"points"`
	Stroke Stroke           `json:"stroke"`
}

// Rect is a filled, stroked rectangle.
type Rect struct {
	Rect   geometry.Rect `json:"rect"`
	Fill   color.RGBA    `json:"fill"`
	Stroke Stroke        `json:"stroke"`
}

// Text is a block of text anchored at Pos and laid out inside Bounds.
type Text struct {
	Content string         `json:"content"`
	Pos     geometry.Point `json:"pos"`
	Bounds  geometry.Rect  `json:"bounds"`
}

// Vertex is one mesh vertex.
type Vertex struct {
	Pos   geometry.Point `json:"pos"`
	Color color.RGBA     `json:"color"`
}

// Mesh is a raw triangle list.
type Mesh struct {
	Vertices []Vertex `json:"vertices"`
}

// QuadraticBezier is a quadratic curve: start, control, end.
type QuadraticBezier struct {
	Points [3]geometry.Point `json:"points"`
	Stroke Stroke            `json:"stroke"`
}

// CubicBezier is a cubic curve: start, two controls, end.
type CubicBezier struct {
	Points [4]geometry.Point `json:"points"`
	Stroke Stroke            `json:"stroke"`
}

// Composite groups shapes so they transform as one.
type Composite struct {
	Shapes []Shape `json:"shapes"`
}

func (*LineSegment) closed()     {}
func (*Path) closed()            {}
func (*Rect) closed()            {}
func (*Text) closed()            {}
func (*Mesh) closed()            {}
func (*QuadraticBezier) closed() {}
func (*CubicBezier) closed()     {}
func (*Composite) closed()       {}

// Translate implementations.

func (s *LineSegment) Translate(delta geometry.Vec) {
	s.Points[0] = s.Points[0].Add(delta)
	s.Points[1] = s.Points[1].Add(delta)
}

func (s *Path) Translate(delta geometry.Vec) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Add(delta)
	}
}

func (s *Rect) Translate(delta geometry.Vec) {
	s.Rect = s.Rect.Translate(delta)
}

func (s *Text) Translate(delta geometry.Vec) {
	s.Pos = s.Pos.Add(delta)
	s.Bounds = s.Bounds.Translate(delta)
}

func (s *Mesh) Translate(delta geometry.Vec) {
	for i := range s.Vertices {
		s.Vertices[i].Pos = s.Vertices[i].Pos.Add(delta)
	}
}

func (s *QuadraticBezier) Translate(delta geometry.Vec) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Add(delta)
	}
}

func (s *CubicBezier) Translate(delta geometry.Vec) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Add(delta)
	}
}

func (s *Composite) Translate(delta geometry.Vec) {
	for _, child := range s.Shapes {
		child.Translate(delta)
	}
}

// Zoom implementations.

func (s *LineSegment) Zoom(factor float64) {
	s.Points[0] = s.Points[0].Zoom(factor)
	s.Points[1] = s.Points[1].Zoom(factor)
}

func (s *Path) Zoom(factor float64) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Zoom(factor)
	}
}

func (s *Rect) Zoom(factor float64) {
	s.Rect = s.Rect.Zoom(factor)
}

func (s *Text) Zoom(factor float64) {
	s.Pos = s.Pos.Zoom(factor)
	s.Bounds = s.Bounds.Zoom(factor)
}

func (s *Mesh) Zoom(factor float64) {
	for i := range s.Vertices {
		s.Vertices[i].Pos = s.Vertices[i].Pos.Zoom(factor)
	}
}

func (s *QuadraticBezier) Zoom(factor float64) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Zoom(factor)
	}
}

func (s *CubicBezier) Zoom(factor float64) {
	for i := range s.Points {
		s.Points[i] = s.Points[i].Zoom(factor)
	}
}

func (s *Composite) Zoom(factor float64) {
	for _, child := range s.Shapes {
		child.Zoom(factor)
	}
}

// Contains implementations. Curves and meshes have no belonging predicate
// and never match, which keeps hit-testing total without a failure path.

func (s *LineSegment) Contains(p geometry.Point, tolerance float64) *geometry.Hit {
	if geometry.BelongsToSegment(p, geometry.Seg(s.Points[0], s.Points[1]), tolerance) {
		return &geometry.Hit{Kind: geometry.HitInterior, At: p}
	}
	return nil
}

func (s *Path) Contains(p geometry.Point, tolerance float64) *geometry.Hit {
	if geometry.BelongsToPath(p, s.Points, tolerance) {
		return &geometry.Hit{Kind: geometry.HitInterior, At: p}
	}
	return nil
}

func (s *Rect) Contains(p geometry.Point, tolerance float64) *geometry.Hit {
	return geometry.ClassifyInRect(s.Rect, p, tolerance)
}

func (s *Text) Contains(p geometry.Point, tolerance float64) *geometry.Hit {
	return geometry.ClassifyInRect(s.Bounds, p, tolerance)
}

func (s *Mesh) Contains(geometry.Point, float64) *geometry.Hit { return nil }

func (s *QuadraticBezier) Contains(geometry.Point, float64) *geometry.Hit { return nil }

func (s *CubicBezier) Contains(geometry.Point, float64) *geometry.Hit { return nil }

func (s *Composite) Contains(p geometry.Point, tolerance float64) *geometry.Hit {
	for _, child := range s.Shapes {
		if hit := child.Contains(p, tolerance); hit != nil {
			return hit
		}
	}
	return nil
}
