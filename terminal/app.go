// Package terminal is the tcell frontend: it translates terminal mouse
// and key events into controller signals and draws a coarse projection
// of the board into character cells.
package terminal

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"dboard/editor"
	"dboard/geometry"
	"dboard/scene"
	"dboard/wire"
)

const (
	// cellWidth and cellHeight map board units to character cells. A
	// terminal cell is roughly twice as tall as it is wide.
	cellWidth  = 8.0
	cellHeight = 16.0

	// dragThreshold is how far, in board units, the pointer must travel
	// with the button held before a press becomes a drag.
	dragThreshold = 4.0

	doubleClickWindow = 400 * time.Millisecond
)

// remoteBatch delivers a decoded inbound batch to the event loop, so all
// store access stays on one goroutine.
type remoteBatch struct {
	tcell.EventTime
	events []wire.Event
}

// App runs the interactive board session in a terminal.
type App struct {
	screen  tcell.Screen
	ctrl    *editor.Controller
	cursors wire.Cursors
	log     *slog.Logger

	// Send receives every drained outgoing batch. Nil for offline boards.
	Send func([]wire.Event)
	// OnSave fires on the save key.
	OnSave func(*scene.Store) error

	mouseDown bool
	dragging  bool
	pressed   geometry.Point
	lastClick time.Time

	editing scene.ID
	buffer  []rune

	status string
}

// NewApp initializes the terminal and hooks the controller's text
// editing callback. Callers must Run and eventually let Run restore the
// terminal.
func NewApp(ctrl *editor.Controller, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	a := &App{
		screen:  screen,
		ctrl:    ctrl,
		cursors: wire.Cursors{},
		log:     log,
	}
	ctrl.OnEditText = a.beginEdit
	return a, nil
}

// Deliver posts an inbound batch to the event loop. Safe to call from
// the network goroutine.
func (a *App) Deliver(events []wire.Event) {
	ev := &remoteBatch{events: events}
	ev.SetEventNow()
	a.screen.PostEvent(ev)
}

// Run drives the event loop until quit. It restores the terminal on the
// way out, panics included.
func (a *App) Run() error {
	defer a.screen.Fini()
	a.draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if a.editing != 0 {
				a.editKey(ev)
				break
			}
			if done := a.key(ev); done {
				return nil
			}
		case *tcell.EventMouse:
			a.mouse(ev)
		case *remoteBatch:
			wire.Apply(ev.events, a.ctrl.Store(), a.cursors)
		}
		a.flushOutgoing()
		a.draw()
	}
}

func (a *App) flushOutgoing() {
	events := a.ctrl.Drain()
	if len(events) == 0 || a.Send == nil {
		return
	}
	a.Send(events)
}

// key handles a keystroke outside text editing. Returns true to quit.
func (a *App) key(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
		return true
	case ev.Rune() == 's':
		if a.OnSave == nil {
			break
		}
		if err := a.OnSave(a.ctrl.Store()); err != nil {
			a.status = fmt.Sprintf("save failed: %v", err)
			a.log.Error("save failed", "err", err)
		} else {
			a.status = "saved"
		}
	case ev.Key() == tcell.KeyDelete, ev.Key() == tcell.KeyBackspace2:
		a.deleteSelected()
	case ev.Rune() == '+':
		a.ctrl.Frame(1.1, geometry.V(0, 0))
	case ev.Rune() == '-':
		a.ctrl.Frame(0.9, geometry.V(0, 0))
	}
	return false
}

func (a *App) deleteSelected() {
	var selected scene.ID
	for cell := range a.ctrl.Store().InOrder() {
		if cell.State == scene.StateSelected {
			selected = cell.ID
		}
	}
	if selected != 0 {
		a.ctrl.Store().Remove(selected)
		a.ctrl.Store().RecomputeEdges()
	}
}

func (a *App) mouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	p := geometry.Pt(float64(cx)*cellWidth, float64(cy)*cellHeight)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		a.ctrl.Frame(1.05, geometry.V(0, 0))
	case buttons&tcell.WheelDown != 0:
		a.ctrl.Frame(0.95, geometry.V(0, 0))
	case buttons&tcell.Button1 != 0:
		if !a.mouseDown {
			a.mouseDown = true
			a.dragging = false
			a.pressed = p
			break
		}
		if !a.dragging && p.Distance(a.pressed) > dragThreshold {
			a.ctrl.DragStart(a.pressed)
			a.dragging = true
		}
		if a.dragging {
			a.ctrl.DragMove(p)
		}
	default:
		if !a.mouseDown {
			a.ctrl.Hover(p)
			break
		}
		a.mouseDown = false
		if a.dragging {
			a.ctrl.DragRelease(p)
			a.dragging = false
			break
		}
		now := time.Now()
		if now.Sub(a.lastClick) < doubleClickWindow {
			a.ctrl.DoubleClick(p)
		} else {
			a.ctrl.Click(p)
		}
		a.lastClick = now
	}
}

// Text editing happens inline on the status row.

func (a *App) beginEdit(id scene.ID) {
	cell, ok := a.ctrl.Store().Get(id)
	if !ok {
		return
	}
	a.editing = id
	a.buffer = []rune(cell.Text())
}

func (a *App) editKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		if cell, ok := a.ctrl.Store().Get(a.editing); ok {
			cell.SetText(string(a.buffer))
		}
		a.editing = 0
	case tcell.KeyEscape:
		a.editing = 0
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(a.buffer) > 0 {
			a.buffer = a.buffer[:len(a.buffer)-1]
		}
	default:
		if r := ev.Rune(); r != 0 {
			a.buffer = append(a.buffer, r)
		}
	}
}

// Drawing.

func toCell(p geometry.Point) (int, int) {
	return int(math.Round(p.X / cellWidth)), int(math.Round(p.Y / cellHeight))
}

var (
	styleDefault  = tcell.StyleDefault
	styleHovered  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleCursor   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus   = tcell.StyleDefault.Reverse(true)
)

func (a *App) draw() {
	a.screen.Clear()
	for cell := range a.ctrl.Store().InOrder() {
		if e := cell.AsEdge(); e != nil {
			a.drawEdge(e, a.cellStyle(cell))
			continue
		}
		a.drawBox(cell)
	}
	if pending := a.ctrl.PendingCell(); pending != nil {
		a.drawBox(pending)
	}
	if pending := a.ctrl.PendingEdge(); pending != nil {
		a.drawEdge(pending, styleSelected)
	}
	for user, pos := range a.cursors {
		x, y := toCell(pos)
		a.screen.SetContent(x, y, '▲', nil, styleCursor)
		for i, r := range truncate(user, 8) {
			a.screen.SetContent(x+1+i, y, r, nil, styleCursor)
		}
	}
	a.drawStatus()
	a.screen.Show()
}

func (a *App) cellStyle(cell *scene.Cell) tcell.Style {
	switch cell.State {
	case scene.StateHovered:
		return styleHovered
	case scene.StateSelected, scene.StateDragging:
		return styleSelected
	default:
		if cell.ID != 0 && cell.ID == a.ctrl.SnapTarget() {
			return styleSelected
		}
		return styleDefault
	}
}

func (a *App) drawBox(cell *scene.Cell) {
	style := a.cellStyle(cell)
	r := cell.Rect()
	x1, y1 := toCell(r.Min)
	x2, y2 := toCell(r.Max)
	if x2 <= x1 {
		x2 = x1 + 1
	}
	if y2 <= y1 {
		y2 = y1 + 1
	}
	for x := x1 + 1; x < x2; x++ {
		a.screen.SetContent(x, y1, tcell.RuneHLine, nil, style)
		a.screen.SetContent(x, y2, tcell.RuneHLine, nil, style)
	}
	for y := y1 + 1; y < y2; y++ {
		a.screen.SetContent(x1, y, tcell.RuneVLine, nil, style)
		a.screen.SetContent(x2, y, tcell.RuneVLine, nil, style)
	}
	a.screen.SetContent(x1, y1, tcell.RuneULCorner, nil, style)
	a.screen.SetContent(x2, y1, tcell.RuneURCorner, nil, style)
	a.screen.SetContent(x1, y2, tcell.RuneLLCorner, nil, style)
	a.screen.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)

	label := truncate(cell.Text(), x2-x1-1)
	lx := x1 + 1 + (x2-x1-1-len([]rune(label)))/2
	ly := (y1 + y2) / 2
	for i, r := range label {
		a.screen.SetContent(lx+i, ly, r, nil, style)
	}
}

func (a *App) drawEdge(e *scene.Edge, style tcell.Style) {
	for i := 0; i < len(e.Points)-1; i++ {
		a.plotLine(e.Points[i], e.Points[i+1], style)
	}
	if len(e.Points) >= 2 {
		if e.ArrowEnd {
			x, y := toCell(e.Points[len(e.Points)-1])
			a.screen.SetContent(x, y, '►', nil, style)
		}
		if e.ArrowStart {
			x, y := toCell(e.Points[0])
			a.screen.SetContent(x, y, '◄', nil, style)
		}
	}
}

// plotLine samples the segment at sub-cell steps. Crude, but edges are
// thin and the board is sparse.
func (a *App) plotLine(from, to geometry.Point, style tcell.Style) {
	seg := geometry.Seg(from, to)
	steps := int(from.Distance(to)/math.Min(cellWidth, cellHeight)) + 1
	for _, p := range seg.Split(steps) {
		x, y := toCell(p)
		a.screen.SetContent(x, y, '·', nil, style)
	}
}

func (a *App) drawStatus() {
	width, height := a.screen.Size()
	row := height - 1
	line := a.status
	if a.editing != 0 {
		line = "text: " + string(a.buffer) + "▏ (enter to apply, esc to cancel)"
	} else if line == "" {
		line = fmt.Sprintf("zoom %.2f · drag to place, click to select, q to quit", a.ctrl.ZoomFactor())
	}
	for x := 0; x < width; x++ {
		a.screen.SetContent(x, row, ' ', nil, styleStatus)
	}
	for i, r := range truncate(line, width) {
		a.screen.SetContent(i, row, r, nil, styleStatus)
	}
	a.status = ""
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
