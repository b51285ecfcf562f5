// Package scene is the diagram entity graph: cells (connectable shapes and
// edges), their connection-point geometry, and the id-keyed store that owns
// them. Edges reference the cells they connect by id only; the store is the
// single owner of every cell.
package scene

import (
	"dboard/figure"
	"dboard/geometry"
)

// Tolerances, in board units.
const (
	// HitTolerance is the default distance within which a point belongs
	// to a cell feature (side, corner, outline).
	HitTolerance = 5.0
	// ConnectTolerance is the wider distance within which a pointer
	// snaps onto a connection point.
	ConnectTolerance = 7.0
)

// ID identifies a cell. Ids are process-unique while the cell lives and
// are handed out by the store.
type ID int

// State is a cell's interaction state.
type State int

const (
	StateFree State = iota
	StateHovered
	StateSelected
	StateDragging
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateFree:
		return "Free"
	case StateHovered:
		return "Hovered"
	case StateSelected:
		return "Selected"
	case StateDragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// Role distinguishes the two cell kinds. The set is closed: a cell is
// either a Connectable or an Edge.
type Role interface {
	role()
}

// Connectable is the role of a placeable shape other cells may connect to.
type Connectable struct {
	// Edges lists the ids of edge cells incident to this cell.
	Edges []ID
}

func (*Connectable) role() {}

// Cell is one entity of the diagram graph.
type Cell struct {
	ID               ID
	Role             Role
	Shapes           []figure.Shape
	ConnectionPoints []geometry.Point
	State            State

	// Last applied view transform. The coordinate store is absolute, so
	// zoom and scroll are applied as deltas against these.
	zoomFactor  float64
	scrollDelta geometry.Vec
}

// NewCell creates an empty connectable cell.
func NewCell(id ID) *Cell {
	return &Cell{
		ID:         id,
		Role:       &Connectable{},
		zoomFactor: 1,
	}
}

// NewRectCell creates a connectable cell made of a filled rectangle with a
// centered text block, with its connection points computed.
func NewRectCell(id ID, rect geometry.Rect, text string) *Cell {
	c := NewCell(id)
	c.Shapes = []figure.Shape{
		&figure.Rect{Rect: rect, Fill: figure.DefaultFill(), Stroke: figure.DefaultStroke()},
		&figure.Text{Content: text, Pos: rect.Center(), Bounds: rect},
	}
	c.RecomputeConnectionPoints()
	return c
}

// NewEdgeCell wraps an edge in a cell.
func NewEdgeCell(id ID, e *Edge) *Cell {
	return &Cell{ID: id, Role: e, zoomFactor: 1}
}

// AsEdge returns the edge role, or nil for connectables.
func (c *Cell) AsEdge() *Edge {
	e, _ := c.Role.(*Edge)
	return e
}

// AsConnectable returns the connectable role, or nil for edges.
func (c *Cell) AsConnectable() *Connectable {
	con, _ := c.Role.(*Connectable)
	return con
}

// Bounds returns the union of the cell's shape geometry. A cell with no
// extent yields a degenerate rectangle.
func (c *Cell) Bounds() geometry.Rect {
	var r geometry.Rect
	first := true
	grow := func(p geometry.Point) {
		if first {
			r = geometry.Rect{Min: p, Max: p}
			first = false
			return
		}
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	var walk func(shapes []figure.Shape)
	walk = func(shapes []figure.Shape) {
		for _, s := range shapes {
			switch v := s.(type) {
			case *figure.LineSegment:
				grow(v.Points[0])
				grow(v.Points[1])
			case *figure.Path:
				for _, p := range v.Points {
					grow(p)
				}
			case *figure.Rect:
				grow(v.Rect.Min)
				grow(v.Rect.Max)
			case *figure.Text:
				grow(v.Bounds.Min)
				grow(v.Bounds.Max)
			case *figure.Mesh:
				for _, vtx := range v.Vertices {
					grow(vtx.Pos)
				}
			case *figure.QuadraticBezier:
				for _, p := range v.Points {
					grow(p)
				}
			case *figure.CubicBezier:
				for _, p := range v.Points {
					grow(p)
				}
			case *figure.Composite:
				walk(v.Shapes)
			}
		}
	}
	walk(c.Shapes)
	return r
}

// RecomputeConnectionPoints regenerates the connection points from the
// cell's current bounding geometry: each side of the bounds is split four
// ways and the three interior points per side are kept, so a rectangular
// cell carries twelve points and no duplicates at the corners. Must be
// called after any geometry mutation, before an edge reads the points.
// Edge cells have no connection points.
func (c *Cell) RecomputeConnectionPoints() {
	if c.AsEdge() != nil {
		return
	}
	bounds := c.Bounds()
	if bounds.IsDegenerate() {
		c.ConnectionPoints = nil
		return
	}
	sides := []geometry.Segment{
		geometry.Seg(bounds.LeftTop(), bounds.RightTop()),
		geometry.Seg(bounds.RightTop(), bounds.RightBottom()),
		geometry.Seg(bounds.RightBottom(), bounds.LeftBottom()),
		geometry.Seg(bounds.LeftBottom(), bounds.LeftTop()),
	}
	points := make([]geometry.Point, 0, 12)
	for _, side := range sides {
		split := side.Split(4)
		points = append(points, split[1:4]...)
	}
	c.ConnectionPoints = points
}

// FindConnectionPoint returns the first connection point within tolerance
// of p, lowest index winning a tie.
func (c *Cell) FindConnectionPoint(p geometry.Point, tolerance float64) *geometry.Hit {
	for i, cp := range c.ConnectionPoints {
		if cp.Over(p, tolerance) {
			return &geometry.Hit{Kind: geometry.HitConnection, Index: i, At: p}
		}
	}
	return nil
}

// Contains hit-tests the cell. Edge cells defer to the edge polyline. A
// selected connectable only matches on its connection points, so dragging
// a selected cell anywhere but a corner or side spawns an edge instead of
// resizing. Otherwise shapes are searched in reverse add order, so the
// most recently added shape wins overlapping hits.
func (c *Cell) Contains(p geometry.Point, tolerance float64) *geometry.Hit {
	if e := c.AsEdge(); e != nil {
		return e.Contains(p)
	}
	if c.State == StateSelected {
		return c.FindConnectionPoint(p, tolerance)
	}
	for i := len(c.Shapes) - 1; i >= 0; i-- {
		if hit := c.Shapes[i].Contains(p, tolerance); hit != nil {
			return hit
		}
	}
	return nil
}

// Translate moves the cell's shapes and connection points by delta.
func (c *Cell) Translate(delta geometry.Vec) {
	if e := c.AsEdge(); e != nil {
		e.Translate(delta)
		return
	}
	for _, s := range c.Shapes {
		s.Translate(delta)
	}
	for i := range c.ConnectionPoints {
		c.ConnectionPoints[i] = c.ConnectionPoints[i].Add(delta)
	}
}

// ApplyTransform brings the cell to the given absolute view transform.
// Zoom is applied relative to the last factor this cell saw, and the
// scroll translation only when it differs from the last applied one; the
// underlying coordinates are absolute, so repeating an absolute transform
// here would compound.
func (c *Cell) ApplyTransform(zoomFactor float64, scroll geometry.Vec) {
	if e := c.AsEdge(); e != nil {
		e.ApplyTransform(zoomFactor, scroll)
		return
	}
	if zoomFactor > 0 && zoomFactor != c.zoomFactor {
		factor := zoomFactor / c.zoomFactor
		for _, s := range c.Shapes {
			s.Zoom(factor)
		}
		c.zoomFactor = zoomFactor
	}
	if scroll != c.scrollDelta {
		for _, s := range c.Shapes {
			s.Translate(scroll)
		}
		c.scrollDelta = scroll
	}
	c.RecomputeConnectionPoints()
}

// SeedTransform records the accumulated view transform without touching
// geometry. Cells created from pointer positions are already in view
// coordinates; seeding keeps the next ApplyTransform from re-applying the
// accumulated zoom and scroll to them.
func (c *Cell) SeedTransform(zoomFactor float64, scroll geometry.Vec) {
	if e := c.AsEdge(); e != nil {
		e.SeedTransform(zoomFactor, scroll)
		return
	}
	if zoomFactor > 0 {
		c.zoomFactor = zoomFactor
	}
	c.scrollDelta = scroll
}

// Rect returns the rectangle of the cell's primary rect shape, or the
// bounds when the cell has none.
func (c *Cell) Rect() geometry.Rect {
	for _, s := range c.Shapes {
		if r, ok := s.(*figure.Rect); ok {
			return r.Rect
		}
	}
	return c.Bounds()
}

// SetRect reshapes the cell's primary rectangle in place, keeping any text
// block's bounds in sync, and recomputes the connection points.
func (c *Cell) SetRect(rect geometry.Rect) {
	for _, s := range c.Shapes {
		switch v := s.(type) {
		case *figure.Rect:
			v.Rect = rect
		case *figure.Text:
			v.Bounds = rect
			v.Pos = rect.Center()
		}
	}
	c.RecomputeConnectionPoints()
}

// Text returns the content of the cell's text block, if any.
func (c *Cell) Text() string {
	for _, s := range c.Shapes {
		if t, ok := s.(*figure.Text); ok {
			return t.Content
		}
	}
	return ""
}

// SetText replaces the content of the cell's text block.
func (c *Cell) SetText(content string) {
	for _, s := range c.Shapes {
		if t, ok := s.(*figure.Text); ok {
			t.Content = content
			return
		}
	}
}
