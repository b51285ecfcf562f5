package scene

import (
	"math"

	"dboard/figure"
	"dboard/geometry"
)

// Edge geometry constants.
const (
	// EdgeTolerance is the vertex/segment belonging distance for edge
	// hit tests.
	EdgeTolerance = 3.0
	// ArrowWingAngle is the angular spread of an arrowhead wedge, in
	// degrees.
	ArrowWingAngle = 15.0
	// ArrowWingSize is the arrowhead length in board units.
	ArrowWingSize = 20.0
)

// Endpoint is one end of an edge: bound to a cell's connection point, or
// free-floating at a fixed position. The set is closed.
type Endpoint interface {
	endpoint()
}

// Bound references a connection point on another cell. The reference is
// weak: it holds only the id and point index, and is resolved against the
// store on every recompute.
type Bound struct {
	Cell  ID
	Index int
}

// Free pins the endpoint at an arbitrary position.
type Free struct {
	At geometry.Point
}

func (Bound) endpoint() {}
func (Free) endpoint()  {}

// Edge is the role of a cell connecting two endpoints with a polyline.
// Points always holds at least two entries; the first and last are kept in
// sync with the resolved endpoints by Recompute, intermediate waypoints
// are preserved verbatim.
type Edge struct {
	Start Endpoint
	End   Endpoint
	// Points is the resolved polyline, endpoints included.
	Points     []geometry.Point
	Stroke     figure.Stroke
	ArrowStart bool
	ArrowEnd   bool

	zoomFactor  float64
	scrollDelta geometry.Vec
}

func (*Edge) role() {}

// NewEdge builds an edge between two endpoints. Bound endpoints resolve on
// the first Recompute; until then their polyline slot is the zero point.
func NewEdge(start, end Endpoint) *Edge {
	e := &Edge{
		Start:      start,
		End:        end,
		Points:     make([]geometry.Point, 2),
		Stroke:     figure.DefaultStroke(),
		ArrowEnd:   true,
		zoomFactor: 1,
	}
	if f, ok := start.(Free); ok {
		e.Points[0] = f.At
	}
	if f, ok := end.(Free); ok {
		e.Points[1] = f.At
	}
	return e
}

// resolve looks an endpoint up, falling back to the last resolved
// position. A bound endpoint whose cell is missing from the store keeps
// its last position and stays bound: the cell may only be absent for a
// frame, and confirmed deletion is handled by Store.Remove degrading the
// endpoint to Free.
func resolve(s *Store, ep Endpoint, last geometry.Point) geometry.Point {
	switch v := ep.(type) {
	case Free:
		return v.At
	case Bound:
		if c, ok := s.Get(v.Cell); ok && v.Index < len(c.ConnectionPoints) {
			return c.ConnectionPoints[v.Index]
		}
	}
	return last
}

// Recompute re-resolves both endpoints against the store and overwrites
// the first and last polyline points in place. Waypoints between them are
// untouched.
func (e *Edge) Recompute(s *Store) {
	last := len(e.Points) - 1
	e.Points[0] = resolve(s, e.Start, e.Points[0])
	e.Points[last] = resolve(s, e.End, e.Points[last])
}

// SetFreeEnd detaches the end of the edge and pins it at p.
func (e *Edge) SetFreeEnd(p geometry.Point) {
	e.End = Free{At: p}
	e.Points[len(e.Points)-1] = p
}

// StartCell returns the id of the cell the start is bound to, if any.
func (e *Edge) StartCell() (ID, bool) {
	b, ok := e.Start.(Bound)
	return b.Cell, ok
}

// EndCell returns the id of the cell the end is bound to, if any.
func (e *Edge) EndCell() (ID, bool) {
	b, ok := e.End.(Bound)
	return b.Cell, ok
}

// Detach degrades any endpoint bound to the given cell into a free
// endpoint at its last resolved position. Called by the store when a cell
// is deleted for good.
func (e *Edge) Detach(cell ID) {
	if b, ok := e.Start.(Bound); ok && b.Cell == cell {
		e.Start = Free{At: e.Points[0]}
	}
	if b, ok := e.End.(Bound); ok && b.Cell == cell {
		e.End = Free{At: e.Points[len(e.Points)-1]}
	}
}

// InsertWaypoint adds an intermediate vertex after the given polyline
// index. The endpoints themselves cannot be displaced.
func (e *Edge) InsertWaypoint(after int, p geometry.Point) {
	if after < 0 || after >= len(e.Points)-1 {
		return
	}
	e.Points = append(e.Points[:after+1], append([]geometry.Point{p}, e.Points[after+1:]...)...)
}

// Contains hit-tests the polyline. Vertices are tried first, in order, so
// the lowest index wins a tie and a hit reports "landed on a waypoint" as
// a connection hit with the vertex index; segments between consecutive
// vertices classify as interior. Nil when nothing matches.
func (e *Edge) Contains(p geometry.Point) *geometry.Hit {
	if len(e.Points) == 0 {
		return nil
	}
	if p.Over(e.Points[0], EdgeTolerance) {
		return &geometry.Hit{Kind: geometry.HitConnection, Index: 0, At: p}
	}
	for i := 1; i < len(e.Points); i++ {
		if p.Over(e.Points[i], EdgeTolerance) {
			return &geometry.Hit{Kind: geometry.HitConnection, Index: i, At: p}
		}
		if geometry.BelongsToSegment(p, geometry.Seg(e.Points[i-1], e.Points[i]), EdgeTolerance) {
			return &geometry.Hit{Kind: geometry.HitInterior, At: p}
		}
	}
	return nil
}

// Translate moves the whole polyline. Bound endpoints re-resolve on the
// next recompute; free endpoints move with their points.
func (e *Edge) Translate(delta geometry.Vec) {
	for i := range e.Points {
		e.Points[i] = e.Points[i].Add(delta)
	}
	if f, ok := e.Start.(Free); ok {
		e.Start = Free{At: f.At.Add(delta)}
	}
	if f, ok := e.End.(Free); ok {
		e.End = Free{At: f.At.Add(delta)}
	}
}

// ApplyTransform brings the polyline to the given absolute view transform,
// with the same delta-of-delta discipline as cells: zoom relative to the
// last applied factor, scroll only when it changed.
func (e *Edge) ApplyTransform(zoomFactor float64, scroll geometry.Vec) {
	if zoomFactor > 0 && zoomFactor != e.zoomFactor {
		factor := zoomFactor / e.zoomFactor
		for i := range e.Points {
			e.Points[i] = e.Points[i].Zoom(factor)
		}
		if f, ok := e.Start.(Free); ok {
			e.Start = Free{At: f.At.Zoom(factor)}
		}
		if f, ok := e.End.(Free); ok {
			e.End = Free{At: f.At.Zoom(factor)}
		}
		e.zoomFactor = zoomFactor
	}
	if scroll != e.scrollDelta {
		e.Translate(scroll)
		e.scrollDelta = scroll
	}
}

// SeedTransform records the accumulated view transform without moving the
// polyline, for edges drawn directly in view coordinates.
func (e *Edge) SeedTransform(zoomFactor float64, scroll geometry.Vec) {
	if zoomFactor > 0 {
		e.zoomFactor = zoomFactor
	}
	e.scrollDelta = scroll
}

// StartArrowhead returns the wedge polygon for the start arrow, oriented
// against the first segment, or nil when the edge has no start arrow.
func (e *Edge) StartArrowhead() []geometry.Point {
	if !e.ArrowStart || len(e.Points) < 2 {
		return nil
	}
	return arrowWedge(geometry.Seg(e.Points[1], e.Points[0]))
}

// EndArrowhead returns the wedge polygon for the end arrow, or nil when
// the edge has no end arrow.
func (e *Edge) EndArrowhead() []geometry.Point {
	if !e.ArrowEnd || len(e.Points) < 2 {
		return nil
	}
	last := len(e.Points) - 1
	return arrowWedge(geometry.Seg(e.Points[last-1], e.Points[last]))
}

// arrowWedge computes the three-point arrowhead at the segment's end: two
// wings spread ArrowWingAngle degrees either side of the reversed segment
// direction, with a shortened center spine. The polygon closes on the tip.
func arrowWedge(line geometry.Segment) []geometry.Point {
	lineAngle := line.Angle()
	spread := ArrowWingAngle * math.Pi / 180
	left := geometry.PointByAngle(line.End, lineAngle+spread+math.Pi, ArrowWingSize)
	right := geometry.PointByAngle(line.End, lineAngle-spread+math.Pi, ArrowWingSize)
	center := line.PointFromEnd(ArrowWingSize / 1.5)
	return []geometry.Point{line.End, left, center, right, line.End}
}
