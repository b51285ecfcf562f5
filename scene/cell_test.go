package scene

import (
	"testing"

	"dboard/figure"
	"dboard/geometry"
)

func TestRectCellConnectionPoints(t *testing.T) {
	c := NewRectCell(1, geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(100, 50)), "")
	if len(c.ConnectionPoints) != 12 {
		t.Fatalf("expected 12 connection points, got %d", len(c.ConnectionPoints))
	}
	// No corners, no duplicates.
	seen := map[geometry.Point]bool{}
	corners := map[geometry.Point]bool{
		geometry.Pt(0, 0): true, geometry.Pt(100, 0): true,
		geometry.Pt(0, 50): true, geometry.Pt(100, 50): true,
	}
	for _, p := range c.ConnectionPoints {
		if seen[p] {
			t.Errorf("duplicate connection point %v", p)
		}
		if corners[p] {
			t.Errorf("corner %v must not be a connection point", p)
		}
		seen[p] = true
	}
	// The right-center point must be present.
	if !seen[geometry.Pt(100, 25)] {
		t.Error("right-center connection point missing")
	}
}

func TestConnectionPointsDegenerate(t *testing.T) {
	c := NewRectCell(1, geometry.RectFromPoints(geometry.Pt(5, 5), geometry.Pt(5, 50)), "")
	if len(c.ConnectionPoints) != 0 {
		t.Errorf("zero-area cell must have no connection points, got %d", len(c.ConnectionPoints))
	}
}

func TestCellTranslateRoundTrip(t *testing.T) {
	c := NewRectCell(1, geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(40, 40)), "x")
	original := append([]geometry.Point(nil), c.ConnectionPoints...)
	rect := c.Rect()

	d := geometry.V(12.5, -3.75)
	c.Translate(d)
	c.Translate(d.Neg())

	if c.Rect() != rect {
		t.Errorf("rect changed after round trip: %v != %v", c.Rect(), rect)
	}
	for i, p := range c.ConnectionPoints {
		if p != original[i] {
			t.Errorf("connection point %d moved: %v != %v", i, p, original[i])
		}
	}
}

func TestSelectedCellOnlyMatchesConnectionPoints(t *testing.T) {
	c := NewRectCell(1, geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(100, 50)), "")

	// Free: interior hit.
	hit := c.Contains(geometry.Pt(50, 25), HitTolerance)
	if hit == nil || hit.Kind != geometry.HitInterior {
		t.Fatalf("expected interior hit, got %v", hit)
	}

	// Selected: the interior no longer matches, connection points do.
	c.State = StateSelected
	if hit := c.Contains(geometry.Pt(50, 40), HitTolerance); hit != nil {
		t.Errorf("selected cell must not match its interior, got %v", hit.Kind)
	}
	hit = c.Contains(geometry.Pt(100, 25), ConnectTolerance)
	if hit == nil || hit.Kind != geometry.HitConnection {
		t.Fatalf("expected connection hit on right-center, got %v", hit)
	}
}

func TestReverseShapeOrderWins(t *testing.T) {
	c := NewCell(1)
	under := &figure.Rect{Rect: geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(100, 100))}
	over := &figure.Rect{Rect: geometry.RectFromPoints(geometry.Pt(10, 10), geometry.Pt(50, 90))}
	c.Shapes = append(c.Shapes, figure.Shape(under), figure.Shape(over))

	// Both rects contain (50,50). For the later-added one the point sits
	// on its right side, so a right-side resize hit proves the top shape
	// was tested first.
	hit := c.Contains(geometry.Pt(50, 50), HitTolerance)
	if hit == nil || hit.Kind != geometry.HitResizeRtoL {
		t.Fatalf("expected the later shape's classification, got %v", hit)
	}

	// A point only the bottom rect covers still matches through the stack.
	hit = c.Contains(geometry.Pt(80, 50), HitTolerance)
	if hit == nil || hit.Kind != geometry.HitInterior {
		t.Fatalf("underlying shape must match away from the top one, got %v", hit)
	}
}

func TestApplyTransformZoomIdempotentAtSameFactor(t *testing.T) {
	c := NewRectCell(1, geometry.RectFromPoints(geometry.Pt(10, 10), geometry.Pt(30, 30)), "")
	c.ApplyTransform(2, geometry.V(0, 0))
	after := c.Rect()
	c.ApplyTransform(2, geometry.V(0, 0))
	if c.Rect() != after {
		t.Errorf("repeated transform at the same factor must not compound: %v != %v", c.Rect(), after)
	}
	if after.Min != geometry.Pt(20, 20) || after.Max != geometry.Pt(60, 60) {
		t.Errorf("zoom applied wrong: %v", after)
	}
}

func TestApplyTransformScrollOnlyOnChange(t *testing.T) {
	c := NewRectCell(1, geometry.RectFromPoints(geometry.Pt(0, 0), geometry.Pt(10, 10)), "")
	scroll := geometry.V(5, 5)
	c.ApplyTransform(1, scroll)
	if c.Rect().Min != geometry.Pt(5, 5) {
		t.Fatalf("scroll not applied: %v", c.Rect())
	}
	c.ApplyTransform(1, scroll)
	if c.Rect().Min != geometry.Pt(5, 5) {
		t.Errorf("unchanged scroll must not re-apply: %v", c.Rect())
	}
}
