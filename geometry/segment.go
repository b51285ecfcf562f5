package geometry

// Segment is a directed two-point line.
type Segment struct {
	Start Point
	End   Point
}

// Seg is shorthand for constructing a Segment.
func Seg(start, end Point) Segment { return Segment{Start: start, End: end} }

// Angle returns the segment's direction in the AngleOf convention.
func (s Segment) Angle() float64 { return AngleOf(s.Start, s.End) }

// Center returns the midpoint of the segment.
func (s Segment) Center() Point {
	return Point{X: (s.Start.X + s.End.X) / 2, Y: (s.Start.Y + s.End.Y) / 2}
}

// PointFromEnd returns the point on the segment at the given distance back
// from its end.
func (s Segment) PointFromEnd(distance float64) Point {
	return PointByAngle(s.End, s.Angle(), -distance)
}

// Translate returns the segment offset by d.
func (s Segment) Translate(d Vec) Segment {
	return Segment{Start: s.Start.Add(d), End: s.End.Add(d)}
}

// Zoom scales both endpoints about the origin.
func (s Segment) Zoom(factor float64) Segment {
	return Segment{Start: s.Start.Zoom(factor), End: s.End.Zoom(factor)}
}

// Split divides the segment into n equal parts and returns the n+1 points
// including both endpoints. The endpoints are returned verbatim, never
// recomputed, so Split(n)[0] == Start and Split(n)[n] == End exactly.
func (s Segment) Split(n int) []Point {
	if n < 1 {
		return []Point{s.Start, s.End}
	}
	dx := (s.End.X - s.Start.X) / float64(n)
	dy := (s.End.Y - s.Start.Y) / float64(n)
	points := make([]Point, 0, n+1)
	points = append(points, s.Start)
	for i := 1; i < n; i++ {
		points = append(points, Point{
			X: s.Start.X + dx*float64(i),
			Y: s.Start.Y + dy*float64(i),
		})
	}
	return append(points, s.End)
}

// BelongsToSegment reports whether p lies on the segment within tolerance.
//
// Axis-aligned segments check the perpendicular coordinate against the
// tolerance and the parallel coordinate against the tolerance-expanded
// span. Oblique segments project p onto the segment's line through its
// slope and intercept and require both residuals within tolerance plus the
// projection inside the expanded span. A zero-length segment matches only
// points within tolerance of the shared endpoint.
func BelongsToSegment(p Point, seg Segment, tolerance float64) bool {
	a, b := seg.Start, seg.End
	dx, dy := b.X-a.X, b.Y-a.Y

	switch {
	case dx == 0 && dy == 0:
		return p.Over(a, tolerance)
	case dx == 0: // vertical
		return abs(p.X-a.X) <= tolerance && inSpan(p.Y, a.Y, b.Y, tolerance)
	case dy == 0: // horizontal
		return abs(p.Y-a.Y) <= tolerance && inSpan(p.X, a.X, b.X, tolerance)
	}

	k := dy / dx
	c := a.Y - a.X*k
	y := k*p.X + c       // line y at p.X
	x := (p.Y - c) / k   // line x at p.Y
	return abs(p.Y-y) <= tolerance && abs(p.X-x) <= tolerance &&
		inSpan(p.X, a.X, b.X, tolerance) && inSpan(p.Y, a.Y, b.Y, tolerance)
}

// BelongsToPath reports whether p lies on any consecutive-pair segment of
// the polyline within tolerance.
func BelongsToPath(p Point, points []Point, tolerance float64) bool {
	for i := 1; i < len(points); i++ {
		if BelongsToSegment(p, Seg(points[i-1], points[i]), tolerance) {
			return true
		}
	}
	return false
}

// inSpan reports whether v lies inside [lo, hi] expanded by tolerance,
// where lo/hi may arrive in either order.
func inSpan(v, a, b, tolerance float64) bool {
	if a > b {
		a, b = b, a
	}
	return v >= a-tolerance && v <= b+tolerance
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
