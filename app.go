package calendar

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Widget ids created by App.
const (
	widgetTitle      = "title"
	widgetStatus     = "status"
	viewButtonPrefix = "view-"

	titleLayer  = 100
	buttonLayer = 101
	statusLayer = 100

	newEventDuration = time.Hour
)

// EventSource supplies the events to show after a view switch. It receives
// the new view key and the reference date.
type EventSource func(view string, date time.Time) []Event

// AppOptions configures NewApp. Zero values select defaults.
type AppOptions struct {
	Logger   *slog.Logger
	Metrics  *Metrics
	Location *time.Location
	// Date is the reference date. Zero means now.
	Date time.Time
	// Events is the initial event list.
	Events []Event
	// Source, when set, replaces the event list on every view switch.
	Source EventSource
	// Feed delivers fresh event snapshots from another goroutine. It is
	// drained at the start of every Update.
	Feed <-chan []Event
	// ScreenshotDir is where Screenshot writes PNG files. Default
	// "screenshots".
	ScreenshotDir string
	// ShowFPS draws the FPS overlay.
	ShowFPS bool
}

// App is the host: it owns the region layout, the widgets, the calendar and
// the session state, and runs them as an ebiten.Game.
type App struct {
	cfg     *Config
	theme   *Theme
	log     *slog.Logger
	metrics *Metrics
	source  EventSource
	feed    <-chan []Event

	canvas  Canvas
	regions *RegionLayout
	widgets *WidgetManager
	cal     *Calendar
	state   *State
	viewKey string

	width, height int
	debug         bool
	showFPS       bool
	fps           *fpsOverlay
	tick          uint64

	pointer   pointerState
	lastClick clickRecord

	injectQueue     []syntheticPointerEvent
	keyQueue        []Key
	runner          *ScriptRunner
	screenshotQueue []string
	screenshotDir   string
}

// NewApp builds the host around canvas and cfg. The UI is built on the first
// Layout call.
func NewApp(canvas Canvas, cfg *Config, opts AppOptions) (*App, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	theme := NewTheme(cfg)
	calOpts := []Option{WithLogger(log), WithMetrics(opts.Metrics), WithTheme(theme)}
	if opts.Location != nil {
		calOpts = append(calOpts, WithLocation(opts.Location))
	}
	cal, err := NewCalendar(canvas, cfg, calOpts...)
	if err != nil {
		return nil, fmt.Errorf("calendar: create app: %w", err)
	}
	if !opts.Date.IsZero() {
		cal.SetDate(opts.Date)
	}

	a := &App{
		cfg:           cfg,
		theme:         theme,
		log:           log,
		metrics:       opts.Metrics,
		source:        opts.Source,
		feed:          opts.Feed,
		canvas:        canvas,
		regions:       NewRegionLayout(cfg.Layout),
		widgets:       NewWidgetManager(),
		cal:           cal,
		viewKey:       cfg.DefaultView,
		showFPS:       opts.ShowFPS,
		fps:           &fpsOverlay{},
		screenshotDir: opts.ScreenshotDir,
		state: &State{
			Events: append([]Event(nil), opts.Events...),
			Date:   cal.Date(),
		},
	}
	if a.screenshotDir == "" {
		a.screenshotDir = "screenshots"
	}
	if a.source != nil {
		a.state.Events = a.source(a.viewKey, a.state.Date)
	}
	return a, nil
}

// State returns the session state.
func (a *App) State() *State { return a.state }

// Calendar returns the calendar engine.
func (a *App) Calendar() *Calendar { return a.cal }

// Regions returns the region layout.
func (a *App) Regions() *RegionLayout { return a.regions }

// Widgets returns the widget manager.
func (a *App) Widgets() *WidgetManager { return a.widgets }

// ViewKey returns the active view key.
func (a *App) ViewKey() string { return a.viewKey }

// Debug reports whether region debug bounds are drawn.
func (a *App) Debug() bool { return a.debug }

// SetDebug toggles region debug bounds and frame stat logging.
func (a *App) SetDebug(on bool) {
	a.debug = on
	a.widgets.MarkDirty()
}

// Layout implements ebiten.Game. A size change recalculates the regions and
// rebuilds the UI.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

type sizer interface {
	SetSize(w, h float64)
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	if s, ok := a.canvas.(sizer); ok {
		s.SetSize(float64(w), float64(h))
	}
	a.regions.Calculate(float64(w), float64(h))
	a.cal.HandleResize()
	a.setupUI()
	a.log.Debug("calendar: resized", "width", w, "height", h, "scale", a.regions.Scale())
}

// setupUI rebuilds every widget from the ui config and points the calendar
// at the calendar region.
func (a *App) setupUI() {
	a.widgets.Clear()

	if r, ok := a.regions.Region(RegionCalendar); ok {
		b := r.Bounds
		a.cal.SetRenderBounds(b.X, b.Y, b.Width, b.Height)
	} else {
		a.log.Warn("calendar: region not found, drawing on the whole surface", "region", RegionCalendar)
		a.cal.ClearRenderBounds()
	}

	if header, ok := a.regions.Region(RegionHeader); ok {
		a.setupHeader(header.Bounds)
	} else {
		a.log.Warn("calendar: region not found, header widgets skipped", "region", RegionHeader)
	}

	if footer, ok := a.regions.Region(RegionFooter); ok {
		fs := a.regions.ScaleFontSize(RegionFooter, a.theme.FontSize("sm", 12))
		a.widgets.Add(NewTextLabel(LabelConfig{
			ID:       widgetStatus,
			X:        footer.Bounds.X,
			Y:        footer.Bounds.Y + (footer.Bounds.Height-fs)/2 - defaultLabelPadding,
			Text:     a.statusText(),
			Layer:    statusLayer,
			RegionID: RegionFooter,
			Color:    a.theme.Color("textSecondary", Color{R: 0.4, G: 0.4, B: 0.4, A: 1}),
			FontSize: fs,
			Measurer: a.canvas,
		}, a.theme))
	}
	a.widgets.MarkDirty()
}

func (a *App) setupHeader(bounds Rect) {
	ui := a.cfg.UI

	titleSize := a.regions.ScaleFontSize(RegionHeader, ui.Title.FontSize)
	a.widgets.Add(NewTextLabel(LabelConfig{
		ID:       widgetTitle,
		X:        bounds.X + ui.Title.OffsetX,
		Y:        bounds.Y + bounds.Height/2 - titleSize/2 - defaultLabelPadding + ui.Title.OffsetY,
		Text:     ui.Title.Text,
		Layer:    titleLayer,
		RegionID: RegionHeader,
		Color:    colorOr(ui.Title.Color, a.theme.Color("textPrimary", Color{R: 0.2, G: 0.2, B: 0.2, A: 1})),
		FontSize: titleSize,
		Measurer: a.canvas,
	}, a.theme))

	bc := ui.Buttons
	size := a.regions.ScaleSize(RegionHeader, bc.Width, bc.Height)
	gap := a.regions.ScaleSize(RegionHeader, bc.Gap, 0).Width
	fontSize := a.regions.ScaleFontSize(RegionHeader, bc.FontSize)

	startX := bounds.X + bounds.Width - float64(len(bc.Views))*(size.Width+gap)
	y := bounds.Y + (bounds.Height-size.Height)/2
	for i, v := range bc.Views {
		key := v.ID
		btn := NewButton(ButtonConfig{
			ID:       viewButtonPrefix + key,
			Bounds:   Rect{X: startX + float64(i)*(size.Width+gap), Y: y, Width: size.Width, Height: size.Height},
			Text:     v.Label,
			Layer:    buttonLayer,
			RegionID: RegionHeader,
			FontSize: fontSize,
			OnClick:  func() { a.SwitchView(key) },
		}, a.theme)
		btn.SetActive(key == a.viewKey)
		a.widgets.Add(btn)
	}
}

// SwitchView activates the view key, updates the view buttons and, when an
// EventSource is set, replaces the event list.
func (a *App) SwitchView(key string) {
	a.cal.SetView(key)
	a.viewKey = a.cal.View().Key

	for _, v := range a.cfg.UI.Buttons.Views {
		if w, ok := a.widgets.Get(viewButtonPrefix + v.ID); ok {
			if btn, ok := w.(*Button); ok {
				btn.SetActive(v.ID == a.viewKey)
			}
		}
	}

	if a.source != nil {
		a.state.Events = a.source(a.viewKey, a.state.Date)
		a.dropStaleSelection()
	}
	a.state.HoveredEventID = ""
	a.updateStatus()
	a.log.Info("calendar: view switched", "view", a.viewKey)
}

func (a *App) statusText() string {
	n := len(a.state.Events)
	if a.state.SelectedEventID != "" {
		return fmt.Sprintf("%d events (selected: %s)", n, a.state.SelectedEventID)
	}
	return fmt.Sprintf("%d events", n)
}

func (a *App) updateStatus() {
	if w, ok := a.widgets.Get(widgetStatus); ok {
		if l, ok := w.(*TextLabel); ok {
			l.SetText(a.statusText())
		}
	}
	a.widgets.MarkDirty()
}

// dropStaleSelection clears a selection whose event no longer exists.
func (a *App) dropStaleSelection() {
	if id := a.state.SelectedEventID; id != "" {
		if _, ok := a.state.EventByID(id); !ok {
			a.state.SelectedEventID = ""
		}
	}
	a.cal.Select(a.state.SelectedEventID)
}

// SetEvents replaces the event list.
func (a *App) SetEvents(events []Event) {
	a.state.Events = events
	a.dropStaleSelection()
	a.updateStatus()
}

// DeleteSelected removes the selected event. It reports whether one was
// removed.
func (a *App) DeleteSelected() bool {
	id := a.state.SelectedEventID
	if id == "" || !a.state.RemoveEvent(id) {
		return false
	}
	a.cal.Select("")
	a.updateStatus()
	a.log.Info("calendar: event deleted", "event", id)
	return true
}

// ClearSelection deselects the selected event.
func (a *App) ClearSelection() {
	a.state.SelectedEventID = ""
	a.cal.Select("")
	a.updateStatus()
}

// CreateEventAt adds a one hour event at the slot under the calendar-local
// point. It fails when the active view has no time-hours axis.
func (a *App) CreateEventAt(x, y float64) (Event, bool) {
	slot, ok := a.cal.SlotAt(x, y)
	if !ok {
		return Event{}, false
	}
	ev := Event{
		ID:    NewEventID(),
		Start: Millis(slot.Start),
		End:   Millis(slot.Start.Add(newEventDuration)),
		Owner: slot.Owner,
		Meta: Metadata{
			Title: "New Event",
			Tags:  []string{"new"},
		},
	}
	a.state.Events = append(a.state.Events, ev)
	a.updateStatus()
	a.log.Info("calendar: event created", "event", ev.ID, "start", slot.Start.Format("15:04"), "owner", slot.Owner)
	return ev, true
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	a.tick++
	a.drainFeed()
	if a.runner != nil {
		a.runner.step(a)
	}
	a.processKeys()
	a.processInput()
	if a.showFPS {
		a.fps.update()
	}
	return nil
}

func (a *App) drainFeed() {
	if a.feed == nil {
		return
	}
	for {
		select {
		case evs, ok := <-a.feed:
			if !ok {
				a.feed = nil
				return
			}
			a.SetEvents(evs)
			a.log.Debug("calendar: events refreshed", "count", len(evs))
		default:
			return
		}
	}
}

// Draw implements ebiten.Game. Everything is repainted every frame.
func (a *App) Draw(screen *ebiten.Image) {
	if ic, ok := a.canvas.(*ImageCanvas); ok {
		ic.SetTarget(screen)
	}
	a.render()
	if a.showFPS {
		a.fps.draw(screen)
	}
	a.flushScreenshots(screen)
}

// render paints the calendar, debug bounds and widgets onto the canvas.
func (a *App) render() {
	start := time.Now()
	size := a.canvas.Size()
	a.canvas.FillRect(Rect{Width: size.Width, Height: size.Height}, a.theme.Color("background", ColorWhite))

	a.cal.Render(a.state.Events)
	if a.debug {
		drawDebugBounds(a.canvas, a.regions)
	}
	a.widgets.Render(a.canvas)

	if a.debug && a.tick%debugLogInterval == 0 {
		a.debugLog(frameStats{
			renderTime: time.Since(start),
			events:     len(a.state.Events),
			widgets:    a.widgets.Len(),
			view:       a.viewKey,
		})
	}
}
