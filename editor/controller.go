// Package editor turns raw pointer and frame signals into scene mutations
// and outgoing edit events. The controller is the single writer of its
// store; frontends feed it hover, click, drag and frame signals and render
// whatever state it exposes.
package editor

import (
	"strconv"

	"dboard/geometry"
	"dboard/scene"
	"dboard/wire"
)

// DefaultCellText is the label a freshly placed rectangle starts with.
const DefaultCellText = "New figure"

// Phase is what the controller is currently doing with the pointer.
type Phase int

const (
	Idle Phase = iota
	Hovering
	Placing
	DraggingCell
	DraggingEdge
)

// Controller owns a cell store and drives it from pointer signals.
// It is not safe for concurrent use; one input loop feeds it.
type Controller struct {
	store  *scene.Store
	header wire.Header

	zoomFactor  float64
	scrollDelta geometry.Vec

	phase   Phase
	hovered scene.ID

	mode      DragMode
	anchor    geometry.Point
	dragCell  scene.ID
	prevState scene.State

	pendingCell *scene.Cell
	pendingEdge *scene.Edge
	edgeStart   scene.ID
	snapTarget  scene.ID

	outgoing []wire.Event

	// OnEditText fires on a double click over a cell. Editing the label
	// is the frontend's business; the controller never changes geometry
	// on a double click.
	OnEditText func(id scene.ID)
}

// NewController wires a controller to a store. Board and user name the
// sender in every outgoing event.
func NewController(store *scene.Store, board, user string) *Controller {
	return &Controller{
		store:      store,
		header:     wire.Header{Board: board, User: user},
		zoomFactor: 1,
	}
}

// Store returns the controller's cell store.
func (c *Controller) Store() *scene.Store { return c.store }

// Phase returns what the pointer is doing right now.
func (c *Controller) Phase() Phase { return c.phase }

// Hovered returns the cell under the pointer, or 0.
func (c *Controller) Hovered() scene.ID { return c.hovered }

// SnapTarget returns the cell a dragged edge end would bind to, or 0.
func (c *Controller) SnapTarget() scene.ID { return c.snapTarget }

// PendingCell returns the rubber-band cell of a placement drag, for
// preview rendering. Nil outside a placement.
func (c *Controller) PendingCell() *scene.Cell { return c.pendingCell }

// PendingEdge returns the edge of an edge drag in progress. Nil outside
// an edge drag.
func (c *Controller) PendingEdge() *scene.Edge { return c.pendingEdge }

// ZoomFactor returns the accumulated zoom factor.
func (c *Controller) ZoomFactor() float64 { return c.zoomFactor }

// Drain returns the outgoing events queued since the last call and
// clears the queue. The caller feeds them to a batcher.
func (c *Controller) Drain() []wire.Event {
	out := c.outgoing
	c.outgoing = nil
	return out
}

// Frame folds one frame's zoom delta and scroll into the accumulated
// transform and pushes it to every cell. Zoom accumulates as
// factor += delta - 1 and never drops to zero or below; each cell works
// out its own incremental change from the accumulated values.
func (c *Controller) Frame(zoomDelta float64, scroll geometry.Vec) {
	if zoomDelta != 0 && zoomDelta != 1 {
		next := c.zoomFactor + zoomDelta - 1
		if next > 0 {
			c.zoomFactor = next
		}
	}
	if !scroll.IsZero() {
		c.scrollDelta = scroll
	}
	for cell := range c.store.InOrder() {
		cell.ApplyTransform(c.zoomFactor, c.scrollDelta)
	}
	c.store.RecomputeEdges()
}

// Hover reacts to pointer motion with no button held. During an edge drag
// it re-evaluates the provisional snap instead; otherwise it retargets
// the hovered cell, later cells in paint order winning.
func (c *Controller) Hover(p geometry.Point) {
	c.emitPointer(p)
	switch c.phase {
	case DraggingEdge:
		c.snapEdge(p)
		return
	case Placing, DraggingCell:
		return
	}

	var target *scene.Cell
	for cell := range c.store.InOrder() {
		if cell.Contains(p, scene.HitTolerance) != nil {
			target = cell
		}
	}
	if c.hovered != 0 && (target == nil || target.ID != c.hovered) {
		if prev, ok := c.store.Get(c.hovered); ok && prev.State == scene.StateHovered {
			prev.State = scene.StateFree
		}
		c.hovered = 0
	}
	if target == nil {
		c.phase = Idle
		return
	}
	c.hovered = target.ID
	if target.State != scene.StateSelected {
		target.State = scene.StateHovered
	}
	c.phase = Hovering
}

// Click selects the hovered cell and deselects everything else. Clicking
// empty space clears the selection.
func (c *Controller) Click(p geometry.Point) {
	for cell := range c.store.InOrder() {
		if cell.State == scene.StateSelected {
			cell.State = scene.StateFree
		}
	}
	if c.hovered == 0 {
		return
	}
	if cell, ok := c.store.Get(c.hovered); ok {
		cell.State = scene.StateSelected
	}
}

// DoubleClick asks the frontend to edit the hovered cell's label.
func (c *Controller) DoubleClick(p geometry.Point) {
	if c.hovered == 0 || c.OnEditText == nil {
		return
	}
	c.OnEditText(c.hovered)
}

// DragStart begins a drag. Precedence: a connection point of the selected
// cell starts a new edge; a hovered or selected cell starts a move or
// resize; empty space starts a placement rubber-band.
func (c *Controller) DragStart(p geometry.Point) {
	if sel := c.selectedCell(); sel != nil {
		if hit := sel.FindConnectionPoint(p, scene.ConnectTolerance); hit != nil {
			c.pendingEdge = scene.NewEdge(
				scene.Bound{Cell: sel.ID, Index: hit.Index},
				scene.Free{At: p},
			)
			c.pendingEdge.Recompute(c.store)
			c.edgeStart = sel.ID
			c.snapTarget = 0
			c.phase = DraggingEdge
			return
		}
		if hit := classifyCell(sel, p); hit != nil {
			c.beginCellDrag(sel, modeForHit(hit), p)
			return
		}
	}

	if c.hovered != 0 {
		if cell, ok := c.store.Get(c.hovered); ok {
			c.beginCellDrag(cell, modeForHit(classifyCell(cell, p)), p)
			return
		}
		c.hovered = 0
	}

	c.pendingCell = scene.NewRectCell(0, geometry.RectFromPoints(p, p), DefaultCellText)
	c.mode = Extend
	c.anchor = p
	c.phase = Placing
}

// classifyCell is the drag-mode hit test. Unlike Cell.Contains it ignores
// the selection state, so a selected cell's body still starts a move.
func classifyCell(cell *scene.Cell, p geometry.Point) *geometry.Hit {
	if e := cell.AsEdge(); e != nil {
		return e.Contains(p)
	}
	return geometry.ClassifyInRect(cell.Rect(), p, scene.HitTolerance)
}

func (c *Controller) beginCellDrag(cell *scene.Cell, mode DragMode, p geometry.Point) {
	if cell.AsEdge() != nil {
		mode = Move
	}
	c.mode = mode
	c.dragCell = cell.ID
	c.anchor = p
	c.prevState = cell.State
	cell.State = scene.StateDragging
	c.phase = DraggingCell
}

// DragMove advances the drag in progress to the pointer.
func (c *Controller) DragMove(p geometry.Point) {
	c.emitPointer(p)
	switch c.phase {
	case DraggingEdge:
		c.snapEdge(p)
	case DraggingCell:
		cell, ok := c.store.Get(c.dragCell)
		if !ok {
			c.phase = Idle
			return
		}
		if c.mode == Move {
			cell.Translate(p.Sub(c.anchor))
			c.anchor = p
		} else {
			cell.SetRect(resizeRect(cell.Rect(), c.mode, p))
		}
		c.store.RecomputeEdges()
	case Placing:
		rect := c.pendingCell.Rect()
		rect.Max = p
		c.pendingCell.SetRect(rect)
	}
}

// DragRelease commits the drag in progress.
func (c *Controller) DragRelease(p geometry.Point) {
	switch c.phase {
	case DraggingEdge:
		c.snapEdge(p)
		c.commitEdge()
	case DraggingCell:
		c.DragMove(p)
		if cell, ok := c.store.Get(c.dragCell); ok {
			cell.State = c.prevState
		}
		c.dragCell = 0
	case Placing:
		c.commitPlacement(p)
	}
	c.snapTarget = 0
	c.phase = Idle
}

func (c *Controller) selectedCell() *scene.Cell {
	for cell := range c.store.InOrder() {
		if cell.State == scene.StateSelected {
			return cell
		}
	}
	return nil
}

// snapEdge moves the dragged end to the pointer and binds it to the
// nearest connection point of any other cell within snapping distance.
// The edge's own start cell never snaps.
func (c *Controller) snapEdge(p geometry.Point) {
	c.pendingEdge.SetFreeEnd(p)
	c.snapTarget = 0
	for cell := range c.store.InOrder() {
		if cell.ID == c.edgeStart {
			continue
		}
		if hit := cell.FindConnectionPoint(p, scene.ConnectTolerance); hit != nil {
			c.pendingEdge.End = scene.Bound{Cell: cell.ID, Index: hit.Index}
			c.snapTarget = cell.ID
		}
	}
	c.pendingEdge.Recompute(c.store)
}

func (c *Controller) commitEdge() {
	edge := c.pendingEdge
	c.pendingEdge = nil
	id := c.store.NextID()
	cell := scene.NewEdgeCell(id, edge)
	cell.SeedTransform(c.zoomFactor, c.scrollDelta)
	c.store.Insert(cell)
	c.attachIncidence(edge.Start, id)
	c.attachIncidence(edge.End, id)
	edge.Recompute(c.store)

	ev := wire.AddArrow{Req: c.header}
	if start, ok := edge.StartCell(); ok {
		ev.StartID = strconv.Itoa(int(start))
	}
	if end, ok := edge.EndCell(); ok {
		ev.EndID = strconv.Itoa(int(end))
	}
	c.outgoing = append(c.outgoing, ev)
	c.edgeStart = 0
}

func (c *Controller) commitPlacement(p geometry.Point) {
	pending := c.pendingCell
	c.pendingCell = nil
	rect := geometry.RectFromPoints(c.anchor, p)
	if rect.IsDegenerate() {
		return
	}
	cell := scene.NewRectCell(c.store.NextID(), rect, pending.Text())
	cell.SeedTransform(c.zoomFactor, c.scrollDelta)
	c.store.Insert(cell)
	c.outgoing = append(c.outgoing, wire.AddFigure{
		Req:  c.header,
		Rect: rect,
		Text: cell.Text(),
	})
}

func (c *Controller) attachIncidence(ep scene.Endpoint, edge scene.ID) {
	b, ok := ep.(scene.Bound)
	if !ok {
		return
	}
	if con, err := c.store.Connectable(b.Cell); err == nil {
		con.Edges = append(con.Edges, edge)
	}
}

func (c *Controller) emitPointer(p geometry.Point) {
	c.outgoing = append(c.outgoing, wire.MousePosition{Header: c.header, Position: p})
}
