package geometry

// Rect is an axis-aligned rectangle. Min is the top-left corner, Max the
// bottom-right (screen orientation: Y grows downward).
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// RectFromPoints builds a rectangle from two opposite corners in any order.
func RectFromPoints(a, b Point) Rect {
	r := Rect{Min: a, Max: b}
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// IsDegenerate reports whether the rectangle has zero area.
func (r Rect) IsDegenerate() bool { return r.Width() == 0 || r.Height() == 0 }

// Corner accessors, named for screen orientation.

func (r Rect) LeftTop() Point     { return r.Min }
func (r Rect) RightTop() Point    { return Point{X: r.Max.X, Y: r.Min.Y} }
func (r Rect) LeftBottom() Point  { return Point{X: r.Min.X, Y: r.Max.Y} }
func (r Rect) RightBottom() Point { return r.Max }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// RightCenter returns the midpoint of the right side.
func (r Rect) RightCenter() Point {
	return Point{X: r.Max.X, Y: (r.Min.Y + r.Max.Y) / 2}
}

// LeftCenter returns the midpoint of the left side.
func (r Rect) LeftCenter() Point {
	return Point{X: r.Min.X, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether the point lies inside the rectangle, borders
// included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Translate returns the rectangle offset by d.
func (r Rect) Translate(d Vec) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Zoom scales the rectangle about the origin.
func (r Rect) Zoom(factor float64) Rect {
	return Rect{Min: r.Min.Zoom(factor), Max: r.Max.Zoom(factor)}
}
