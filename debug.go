package calendar

import (
	"fmt"
	"time"
)

// debugLogInterval is the number of ticks between frame stat logs.
const debugLogInterval = 60

var debugBoundsColor = Color{R: 1, A: 0.5}

// frameStats holds per-frame numbers logged in debug mode.
type frameStats struct {
	renderTime time.Duration
	events     int
	widgets    int
	view       string
}

// debugLog writes frame stats at debug level.
func (a *App) debugLog(stats frameStats) {
	if !a.debug {
		return
	}
	a.log.Debug("calendar: frame",
		"view", stats.view,
		"render", stats.renderTime,
		"events", stats.events,
		"widgets", stats.widgets,
		"hovered", a.state.HoveredEventID,
		"selected", a.state.SelectedEventID,
	)
}

// drawDebugBounds outlines every region and labels it with its id and size
// mode.
func drawDebugBounds(c Canvas, regions *RegionLayout) {
	for _, r := range regions.Regions() {
		b := r.Bounds
		c.StrokeLine(b.X, b.Y, b.X+b.Width, b.Y, 1, debugBoundsColor)
		c.StrokeLine(b.X+b.Width, b.Y, b.X+b.Width, b.Y+b.Height, 1, debugBoundsColor)
		c.StrokeLine(b.X+b.Width, b.Y+b.Height, b.X, b.Y+b.Height, 1, debugBoundsColor)
		c.StrokeLine(b.X, b.Y+b.Height, b.X, b.Y, 1, debugBoundsColor)
		c.DrawText(debugRegionLabel(r), b.X+5, b.Y+5, TextStyle{Size: 12, Color: debugBoundsColor.WithAlpha(1)})
	}
}

func debugRegionLabel(r Region) string {
	return fmt.Sprintf("%s (%s)", r.ID, r.SizeMode)
}
