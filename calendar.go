package calendar

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a drawing surface.
type Color struct {
	R, G, B, A float64
}

// Common colors used as fallbacks throughout the package.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for points, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsPoint is Contains for a Vec2.
func (r Rect) ContainsPoint(p Vec2) bool {
	return r.Contains(p.X, p.Y)
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Inset shrinks r by the given insets. Width and height never go negative.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Left - in.Right,
		Height: r.Height - in.Top - in.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Insets holds per-side padding in pixels.
type Insets struct {
	Top    float64 `koanf:"top" yaml:"top,omitempty"`
	Right  float64 `koanf:"right" yaml:"right,omitempty"`
	Bottom float64 `koanf:"bottom" yaml:"bottom,omitempty"`
	Left   float64 `koanf:"left" yaml:"left,omitempty"`
}

// TextAlign controls horizontal placement of text relative to its anchor.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // anchor is the left edge
	TextAlignCenter                  // anchor is the horizontal center
	TextAlignRight                   // anchor is the right edge
)

// TextBaseline controls vertical placement of text relative to its anchor.
type TextBaseline uint8

const (
	TextBaselineTop    TextBaseline = iota // anchor is the top of the line box
	TextBaselineMiddle                     // anchor is the vertical center
	TextBaselineBottom                     // anchor is the bottom of the line box
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
