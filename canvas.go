package calendar

// Canvas is the drawing surface the calendar and widgets paint onto.
// Coordinates are canvas pixels with the origin at the top-left.
type Canvas interface {
	// FillRect fills r with c.
	FillRect(r Rect, c Color)
	// FillRoundRect fills r with corners of the given radius.
	FillRoundRect(r Rect, radius float64, c Color)
	// StrokeRoundRect outlines r with corners of the given radius.
	StrokeRoundRect(r Rect, radius, width float64, c Color)
	// StrokeLine draws a segment from (x0, y0) to (x1, y1).
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	// DrawText draws s anchored at (x, y) according to style.
	DrawText(s string, x, y float64, style TextStyle)
	// PushClip restricts drawing to r intersected with the current clip.
	PushClip(r Rect)
	// PopClip restores the clip saved by the matching PushClip.
	PopClip()
	// Size returns the size of the surface in pixels.
	Size() Size

	TextMeasurer
}

// TextMeasurer reports the rendered width of a string.
type TextMeasurer interface {
	MeasureText(s string, size float64) float64
}

// TextStyle controls how DrawText lays out a string.
type TextStyle struct {
	Size     float64
	Color    Color
	Align    TextAlign
	Baseline TextBaseline
	// MaxWidth truncates the string with an ellipsis when positive.
	MaxWidth float64
}

// estimateTextWidth approximates text width when no measurer is available.
func estimateTextWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}

// truncateText shortens s with a trailing ellipsis so it measures at most
// maxWidth. A non-positive maxWidth returns s unchanged.
func truncateText(m TextMeasurer, s string, size, maxWidth float64) string {
	if maxWidth <= 0 {
		return s
	}
	measure := estimateTextWidth
	if m != nil {
		measure = m.MeasureText
	}
	if measure(s, size) <= maxWidth {
		return s
	}
	const ellipsis = "…"
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		t := string(runes[:n]) + ellipsis
		if measure(t, size) <= maxWidth {
			return t
		}
	}
	return ""
}
