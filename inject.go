package calendar

// syntheticPointerEvent is a queued pointer event in canvas coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectMove queues a pointer move with the button up. Each queued event is
// consumed by one Update.
func (a *App) InjectMove(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectPress queues a button press at (x, y).
func (a *App) InjectPress(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a button release at (x, y).
func (a *App) InjectRelease(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release. Consumes two frames.
func (a *App) InjectClick(x, y float64) {
	a.InjectPress(x, y)
	a.InjectRelease(x, y)
}

// InjectDoubleClick queues two clicks at the same point. Consumes four
// frames, well inside the double click window.
func (a *App) InjectDoubleClick(x, y float64) {
	a.InjectClick(x, y)
	a.InjectClick(x, y)
}

// InjectKey queues a keyboard command.
func (a *App) InjectKey(k Key) {
	a.keyQueue = append(a.keyQueue, k)
}

// processInjectedInput pops one pointer event and feeds it through the
// pointer state machine. It reports whether an event was consumed, in which
// case real mouse input is skipped this frame.
func (a *App) processInjectedInput() bool {
	if len(a.injectQueue) == 0 {
		return false
	}
	evt := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	a.processPointer(evt.x, evt.y, evt.pressed)
	return true
}
