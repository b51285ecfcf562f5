package editor

import "dboard/geometry"

// DragMode names what a drag in progress is doing to its target.
type DragMode int

const (
	// Move translates the whole cell by the pointer delta.
	Move DragMode = iota
	// Extend grows a rubber-band rectangle toward the pointer.
	Extend
	// ResizeLtoR through ResizeBLtoTR move one side or one corner of the
	// target rectangle. The name reads as "dragging the <from> feature
	// toward <to>": ResizeLtoR drags the left side, ResizeTLtoBR the
	// top-left corner.
	ResizeLtoR
	ResizeRtoL
	ResizeTtoB
	ResizeBtoT
	ResizeTLtoBR
	ResizeBRtoTL
	ResizeTRtoBL
	ResizeBLtoTR
)

// String returns the name of the mode.
func (m DragMode) String() string {
	switch m {
	case Move:
		return "Move"
	case Extend:
		return "Extend"
	case ResizeLtoR:
		return "ResizeLtoR"
	case ResizeRtoL:
		return "ResizeRtoL"
	case ResizeTtoB:
		return "ResizeTtoB"
	case ResizeBtoT:
		return "ResizeBtoT"
	case ResizeTLtoBR:
		return "ResizeTLtoBR"
	case ResizeBRtoTL:
		return "ResizeBRtoTL"
	case ResizeTRtoBL:
		return "ResizeTRtoBL"
	case ResizeBLtoTR:
		return "ResizeBLtoTR"
	default:
		return "Unknown"
	}
}

// modeForHit maps a hit classification to the drag mode it starts.
// Anything that is not a side or corner moves the cell.
func modeForHit(h *geometry.Hit) DragMode {
	if h == nil {
		return Move
	}
	switch h.Kind {
	case geometry.HitResizeLtoR:
		return ResizeLtoR
	case geometry.HitResizeRtoL:
		return ResizeRtoL
	case geometry.HitResizeTtoB:
		return ResizeTtoB
	case geometry.HitResizeBtoT:
		return ResizeBtoT
	case geometry.HitResizeTLtoBR:
		return ResizeTLtoBR
	case geometry.HitResizeBRtoTL:
		return ResizeBRtoTL
	case geometry.HitResizeTRtoBL:
		return ResizeTRtoBL
	case geometry.HitResizeBLtoTR:
		return ResizeBLtoTR
	default:
		return Move
	}
}

// resizeRect applies one drag step of a resize mode: only the sides the
// mode names follow the pointer, the rest of the rectangle stays put.
func resizeRect(r geometry.Rect, mode DragMode, p geometry.Point) geometry.Rect {
	switch mode {
	case ResizeLtoR:
		r.Min.X = p.X
	case ResizeRtoL:
		r.Max.X = p.X
	case ResizeTtoB:
		r.Min.Y = p.Y
	case ResizeBtoT:
		r.Max.Y = p.Y
	case ResizeTLtoBR:
		r.Min.X = p.X
		r.Min.Y = p.Y
	case ResizeBRtoTL:
		r.Max.X = p.X
		r.Max.Y = p.Y
	case ResizeTRtoBL:
		r.Max.X = p.X
		r.Min.Y = p.Y
	case ResizeBLtoTR:
		r.Min.X = p.X
		r.Max.Y = p.Y
	}
	return r
}
