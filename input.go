package calendar

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	clickDeadZone    = 4.0 // pixels the pointer may move between press and release
	doubleClickTicks = 18  // max ticks between the clicks of a double click
)

// Key is a keyboard command understood by App.
type Key int

const (
	KeyNone Key = iota
	KeyDelete
	KeyEscape
	KeyToggleDebug
)

type pointerState struct {
	down           bool
	startX, startY float64
	lastX, lastY   float64
	seen           bool
}

type clickRecord struct {
	tick  uint64
	x, y  float64
	valid bool
}

// processInput handles one injected pointer event or, when none is queued,
// the real mouse.
func (a *App) processInput() {
	if a.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	a.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processKeys handles one injected key or, when none is queued, the real
// keyboard.
func (a *App) processKeys() {
	if len(a.keyQueue) > 0 {
		k := a.keyQueue[0]
		a.keyQueue = a.keyQueue[1:]
		a.handleKey(k)
		return
	}
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyD):
		a.handleKey(KeyToggleDebug)
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		a.handleKey(KeyDelete)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		a.handleKey(KeyEscape)
	}
}

func (a *App) handleKey(k Key) {
	switch k {
	case KeyToggleDebug:
		a.SetDebug(!a.debug)
		a.log.Info("calendar: debug mode", "on", a.debug)
	case KeyDelete:
		a.DeleteSelected()
	case KeyEscape:
		a.ClearSelection()
	}
}

// processPointer runs the pointer state machine: moves update hover, and a
// press followed by a release within the dead zone is a click.
func (a *App) processPointer(x, y float64, pressed bool) {
	ps := &a.pointer
	if !ps.seen || x != ps.lastX || y != ps.lastY {
		a.pointerMove(x, y)
		ps.seen = true
	}
	ps.lastX, ps.lastY = x, y

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
	case !pressed && ps.down:
		ps.down = false
		if math.Hypot(x-ps.startX, y-ps.startY) <= clickDeadZone {
			a.pointerClick(x, y)
		}
	}
}

// pointerMove offers the move to the widgets first and forwards it to the
// calendar in region-local coordinates when no widget is hit.
func (a *App) pointerMove(x, y float64) {
	if a.widgets.HandleMouseMove(Vec2{X: x, Y: y}) {
		a.cal.ClearHover(a.state)
		return
	}
	if !a.regions.ContainsPoint(RegionCalendar, x, y) {
		a.cal.ClearHover(a.state)
		return
	}
	if p, ok := a.regions.GlobalToRegion(RegionCalendar, x, y); ok {
		a.cal.HandleMouseMove(p.X, p.Y, a.state)
	}
}

// pointerClick dispatches a click. A second click on empty calendar space
// shortly after the first creates an event.
func (a *App) pointerClick(x, y float64) {
	p := Vec2{X: x, Y: y}
	if w, ok := a.widgets.HitTest(p); ok {
		a.widgets.HandleClick(p)
		a.metrics.widgetClicked(w.ID())
		a.lastClick = clickRecord{}
		return
	}
	if !a.regions.ContainsPoint(RegionCalendar, x, y) {
		return
	}
	local, ok := a.regions.GlobalToRegion(RegionCalendar, x, y)
	if !ok {
		return
	}

	double := a.lastClick.valid &&
		a.tick-a.lastClick.tick <= doubleClickTicks &&
		math.Hypot(x-a.lastClick.x, y-a.lastClick.y) <= clickDeadZone
	a.lastClick = clickRecord{tick: a.tick, x: x, y: y, valid: !double}

	if _, hit := a.cal.HandleClick(local.X, local.Y, a.state); hit {
		a.updateStatus()
		return
	}
	a.updateStatus()
	if double {
		a.CreateEventAt(local.X, local.Y)
	}
}
