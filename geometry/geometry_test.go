package geometry

import (
	"math"
	"testing"
)

func TestPointZoom(t *testing.T) {
	p := Pt(10, 10).Zoom(2)
	if p != Pt(20, 20) {
		t.Errorf("expected (20,20), got %v", p)
	}
}

func TestVecZoom(t *testing.T) {
	v := V(10, 10).Zoom(2)
	if v != V(20, 20) {
		t.Errorf("expected (20,20), got %v", v)
	}
}

func TestRectZoom(t *testing.T) {
	factor := 0.05
	r := RectFromPoints(Pt(2, 2), Pt(7, 9)).Zoom(factor)
	want := RectFromPoints(Pt(2*factor, 2*factor), Pt(7*factor, 9*factor))
	if r != want {
		t.Errorf("expected %v, got %v", want, r)
	}
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Pt(7, 9), Pt(2, 2))
	if r.Min != Pt(2, 2) || r.Max != Pt(7, 9) {
		t.Errorf("corners not normalized: %v", r)
	}
}

func TestPointOver(t *testing.T) {
	p := Pt(5, 5)
	if !p.Over(Pt(5, 5), 5) {
		t.Error("point should be over itself")
	}
	if !p.Over(Pt(2, 2), 5) {
		t.Error("point within tolerance should match")
	}
	if p.Over(Pt(20, 20), 5) {
		t.Error("distant point should not match")
	}
}

func TestSplit(t *testing.T) {
	line := Seg(Pt(0, 0), Pt(40, 0))
	parts := line.Split(4)
	if len(parts) != 5 {
		t.Fatalf("expected 5 points, got %d", len(parts))
	}
	want := []Point{Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(30, 0), Pt(40, 0)}
	for i, p := range parts {
		if p != want[i] {
			t.Errorf("parts[%d]: expected %v, got %v", i, want[i], p)
		}
	}
	if parts[0] != line.Start || parts[4] != line.End {
		t.Error("split must return the exact endpoints")
	}
}

func TestSplitObliqueEndpointsExact(t *testing.T) {
	line := Seg(Pt(1.3, 2.7), Pt(97.1, 53.9))
	parts := line.Split(7)
	if len(parts) != 8 {
		t.Fatalf("expected 8 points, got %d", len(parts))
	}
	if parts[0] != line.Start || parts[7] != line.End {
		t.Error("split endpoints must be verbatim")
	}
}

func TestBelongsToSegmentEndpoints(t *testing.T) {
	segments := []Segment{
		Seg(Pt(1, 2), Pt(1, 5)),    // vertical
		Seg(Pt(1, 2), Pt(10, 2)),   // horizontal
		Seg(Pt(1, 1), Pt(100, 100)), // oblique
		Seg(Pt(3, 3), Pt(3, 3)),    // degenerate
	}
	for _, seg := range segments {
		if !BelongsToSegment(seg.Start, seg, 3) {
			t.Errorf("start of %v must belong to itself", seg)
		}
		if !BelongsToSegment(seg.End, seg, 3) {
			t.Errorf("end of %v must belong to itself", seg)
		}
	}
}

func TestBelongsToSegment(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		p    Point
		want bool
	}{
		{"vertical on line", Seg(Pt(1, 2), Pt(1, 5)), Pt(1, 3), true},
		{"vertical near", Seg(Pt(1, 2), Pt(1, 5)), Pt(3, 5), true},
		{"vertical near left", Seg(Pt(1, 2), Pt(1, 5)), Pt(0, 5), true},
		{"vertical too far", Seg(Pt(1, 2), Pt(1, 5)), Pt(4.1, 5), false},
		{"horizontal near", Seg(Pt(1, 2), Pt(10, 2)), Pt(1, 3), true},
		{"horizontal start edge", Seg(Pt(1, 2), Pt(10, 2)), Pt(0, 2), true},
		{"horizontal off", Seg(Pt(1, 2), Pt(10, 2)), Pt(4.1, 6), false},
		{"diagonal start", Seg(Pt(1, 1), Pt(100, 100)), Pt(1, 1), true},
		{"diagonal end", Seg(Pt(1, 1), Pt(100, 100)), Pt(100, 100), true},
		{"diagonal near", Seg(Pt(1, 1), Pt(100, 100)), Pt(53, 50), true},
		{"diagonal close", Seg(Pt(1, 1), Pt(100, 100)), Pt(100, 98), true},
		{"diagonal off", Seg(Pt(1, 1), Pt(100, 100)), Pt(104, 97), false},
		{"shallow near end", Seg(Pt(1, 1), Pt(200, 100)), Pt(199, 100), true},
		{"shallow middle", Seg(Pt(1, 1), Pt(200, 100)), Pt(102, 50), true},
		{"shallow off", Seg(Pt(1, 1), Pt(200, 100)), Pt(77, 35), false},
		{"flat past end", Seg(Pt(1, 1), Pt(30, 10)), Pt(31, 10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BelongsToSegment(tt.p, tt.seg, 3); got != tt.want {
				t.Errorf("BelongsToSegment(%v, %v) = %v, want %v", tt.p, tt.seg, got, tt.want)
			}
		})
	}
}

func TestBelongsToPath(t *testing.T) {
	path := []Point{Pt(1, 2), Pt(1, 5), Pt(3, 30)}
	if !BelongsToPath(Pt(1, 5), path, 3) {
		t.Error("vertex must belong to path")
	}
	if !BelongsToPath(Pt(2, 15), path, 3) {
		t.Error("point on second segment must belong to path")
	}
	if BelongsToPath(Pt(30, 30), path, 3) {
		t.Error("distant point must not belong to path")
	}
}

func TestAngleConvention(t *testing.T) {
	// The angle is measured from the vertical axis: straight down is 0,
	// straight right is pi/2.
	if a := AngleOf(Pt(0, 0), Pt(0, 10)); a != 0 {
		t.Errorf("downward angle: expected 0, got %v", a)
	}
	if a := AngleOf(Pt(0, 0), Pt(10, 0)); math.Abs(a-math.Pi/2) > 1e-9 {
		t.Errorf("rightward angle: expected pi/2, got %v", a)
	}
}

func TestPointByAngle(t *testing.T) {
	end := PointByAngle(Pt(0, 0), math.Pi/2, 10)
	if math.Round(end.X) != 10 || math.Round(end.Y) != 0 {
		t.Errorf("expected (10,0), got %v", end)
	}
}

func TestPointFromEnd(t *testing.T) {
	line := Seg(Pt(0, 0), Pt(10, 0))
	p := line.PointFromEnd(2)
	if math.Round(p.X) != 8 || math.Round(p.Y) != 0 {
		t.Errorf("expected (8,0), got %v", p)
	}

	line = Seg(Pt(0, 0), Pt(0, 10))
	p = line.PointFromEnd(2)
	if math.Round(p.X) != 0 || math.Round(p.Y) != 8 {
		t.Errorf("expected (0,8), got %v", p)
	}
}

func TestClassifyInRectCorners(t *testing.T) {
	r := RectFromPoints(Pt(0, 0), Pt(100, 50))
	tests := []struct {
		name string
		p    Point
		want HitKind
	}{
		{"top-left corner", Pt(2, 2), HitResizeTLtoBR},
		{"top-right corner", Pt(98, 2), HitResizeTRtoBL},
		{"bottom-left corner", Pt(2, 48), HitResizeBLtoTR},
		{"bottom-right corner", Pt(98, 48), HitResizeBRtoTL},
		{"left side", Pt(2, 25), HitResizeLtoR},
		{"right side", Pt(98, 25), HitResizeRtoL},
		{"top side", Pt(50, 2), HitResizeTtoB},
		{"bottom side", Pt(50, 48), HitResizeBtoT},
		{"interior", Pt(50, 25), HitInterior},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := ClassifyInRect(r, tt.p, 5)
			if hit == nil {
				t.Fatal("expected a hit, got none")
			}
			if hit.Kind != tt.want {
				t.Errorf("expected %v, got %v", tt.want, hit.Kind)
			}
		})
	}
}

func TestClassifyInRectOutside(t *testing.T) {
	r := RectFromPoints(Pt(0, 0), Pt(100, 50))
	if hit := ClassifyInRect(r, Pt(-1, 25), 5); hit != nil {
		t.Errorf("point outside the rect must not match, got %v", hit.Kind)
	}
}

func TestClassifyInRectDegenerate(t *testing.T) {
	r := RectFromPoints(Pt(10, 10), Pt(10, 40))
	if hit := ClassifyInRect(r, Pt(10, 20), 5); hit != nil {
		t.Errorf("degenerate rect must not match, got %v", hit.Kind)
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	r := RectFromPoints(Pt(3, 4), Pt(30, 40))
	d := V(17.5, -9.25)
	back := r.Translate(d).Translate(d.Neg())
	if back != r {
		t.Errorf("translate round trip changed the rect: %v != %v", back, r)
	}
}
