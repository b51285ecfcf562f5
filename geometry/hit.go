package geometry

// HitKind classifies how a point lands on a figure: plain interior, one of
// the connection points, or one of the eight resize zones. Resize kinds
// are named by the drag they start: ResizeLtoR drags the left side,
// ResizeTLtoBR drags the top-left corner, and so on.
type HitKind int

const (
	HitInterior HitKind = iota
	HitConnection
	HitResizeLtoR
	HitResizeRtoL
	HitResizeTtoB
	HitResizeBtoT
	HitResizeTLtoBR
	HitResizeBRtoTL
	HitResizeTRtoBL
	HitResizeBLtoTR
)

// String returns the name of the hit kind.
func (k HitKind) String() string {
	switch k {
	case HitInterior:
		return "Interior"
	case HitConnection:
		return "Connection"
	case HitResizeLtoR:
		return "ResizeLtoR"
	case HitResizeRtoL:
		return "ResizeRtoL"
	case HitResizeTtoB:
		return "ResizeTtoB"
	case HitResizeBtoT:
		return "ResizeBtoT"
	case HitResizeTLtoBR:
		return "ResizeTLtoBR"
	case HitResizeBRtoTL:
		return "ResizeBRtoTL"
	case HitResizeTRtoBL:
		return "ResizeTRtoBL"
	case HitResizeBLtoTR:
		return "ResizeBLtoTR"
	default:
		return "Unknown"
	}
}

// IsResize reports whether the kind is one of the eight resize zones.
func (k HitKind) IsResize() bool {
	return k >= HitResizeLtoR && k <= HitResizeBLtoTR
}

// Hit is the result of a tolerance-based hit test. A nil *Hit means no
// match.
type Hit struct {
	Kind  HitKind
	Index int   // connection point index, valid when Kind == HitConnection
	At    Point // the pointer position that produced the hit
}

// ClassifyInRect locates a point inside a rectangle. Corners win over
// sides (a point within tolerance of a corner is never classified as the
// adjacent side), sides win over the interior, and a point outside the
// rectangle never matches regardless of tolerance. A degenerate rectangle
// matches nothing.
func ClassifyInRect(r Rect, p Point, tolerance float64) *Hit {
	if r.IsDegenerate() || !r.Contains(p) {
		return nil
	}
	switch {
	case p.Over(r.RightTop(), tolerance):
		return &Hit{Kind: HitResizeTRtoBL, At: p}
	case p.Over(r.LeftTop(), tolerance):
		return &Hit{Kind: HitResizeTLtoBR, At: p}
	case p.Over(r.LeftBottom(), tolerance):
		return &Hit{Kind: HitResizeBLtoTR, At: p}
	case p.Over(r.RightBottom(), tolerance):
		return &Hit{Kind: HitResizeBRtoTL, At: p}
	case BelongsToSegment(p, Seg(r.RightTop(), r.RightBottom()), tolerance):
		return &Hit{Kind: HitResizeRtoL, At: p}
	case BelongsToSegment(p, Seg(r.LeftTop(), r.LeftBottom()), tolerance):
		return &Hit{Kind: HitResizeLtoR, At: p}
	case BelongsToSegment(p, Seg(r.LeftTop(), r.RightTop()), tolerance):
		return &Hit{Kind: HitResizeTtoB, At: p}
	case BelongsToSegment(p, Seg(r.LeftBottom(), r.RightBottom()), tolerance):
		return &Hit{Kind: HitResizeBtoT, At: p}
	default:
		return &Hit{Kind: HitInterior, At: p}
	}
}
