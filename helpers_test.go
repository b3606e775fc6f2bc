package calendar

import (
	"math"
	"time"
)

// drawOp records one Canvas call.
type drawOp struct {
	kind  string
	rect  Rect
	text  string
	x, y  float64
	color Color
	style TextStyle
}

// recordingCanvas is a Canvas that records calls instead of drawing.
type recordingCanvas struct {
	size  Size
	ops   []drawOp
	clips []Rect
}

func newRecordingCanvas(w, h float64) *recordingCanvas {
	return &recordingCanvas{size: Size{Width: w, Height: h}}
}

func (c *recordingCanvas) FillRect(r Rect, col Color) {
	c.ops = append(c.ops, drawOp{kind: "fillRect", rect: r, color: col})
}

func (c *recordingCanvas) FillRoundRect(r Rect, _ float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "fillRoundRect", rect: r, color: col})
}

func (c *recordingCanvas) StrokeRoundRect(r Rect, _, _ float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "strokeRoundRect", rect: r, color: col})
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1, _ float64, col Color) {
	c.ops = append(c.ops, drawOp{kind: "line", rect: Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, color: col})
}

func (c *recordingCanvas) DrawText(s string, x, y float64, style TextStyle) {
	c.ops = append(c.ops, drawOp{kind: "text", text: s, x: x, y: y, color: style.Color, style: style})
}

func (c *recordingCanvas) PushClip(r Rect) { c.clips = append(c.clips, r) }

func (c *recordingCanvas) PopClip() {
	if len(c.clips) > 0 {
		c.clips = c.clips[:len(c.clips)-1]
	}
}

func (c *recordingCanvas) Size() Size { return c.size }

func (c *recordingCanvas) SetSize(w, h float64) { c.size = Size{Width: w, Height: h} }

func (c *recordingCanvas) MeasureText(s string, size float64) float64 {
	return estimateTextWidth(s, size)
}

func (c *recordingCanvas) reset() { c.ops = c.ops[:0] }

func (c *recordingCanvas) count(kind string) int {
	n := 0
	for _, op := range c.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

func (c *recordingCanvas) texts() []string {
	var out []string
	for _, op := range c.ops {
		if op.kind == "text" {
			out = append(out, op.text)
		}
	}
	return out
}

func (c *recordingCanvas) hasText(s string) bool {
	for _, t := range c.texts() {
		if t == s {
			return true
		}
	}
	return false
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// testDay is a Wednesday.
func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 8, hour, minute, 0, 0, time.UTC)
}

func timedEvent(id string, start, end time.Time) Event {
	return Event{ID: id, Start: Millis(start), End: Millis(end)}
}

var hoursAxis = AxisConfig{Type: "time-hours", Domain: []any{0, 24}, Range: []float64{0, 1}}

func testView(x, y AxisConfig, minHeight float64) *View {
	return NewView("test", ViewConfig{
		XAxis:  x,
		YAxis:  y,
		Layout: ViewLayoutConfig{MinEventHeight: minHeight},
	})
}
