package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseColor parses CSS-style color strings: "#rgb", "#rrggbb",
// "#rrggbbaa", "rgb(r, g, b)" and "rgba(r, g, b, a)". Channel values in the
// functional forms are 0-255; alpha is 0-1.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFuncColor(s[5:len(s)-1], true)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFuncColor(s[4:len(s)-1], false)
	case s == "transparent":
		return ColorTransparent, nil
	case s == "white":
		return ColorWhite, nil
	case s == "black":
		return ColorBlack, nil
	}
	return Color{}, fmt.Errorf("calendar: unsupported color %q", s)
}

// colorOr parses s and returns fallback when s is empty or malformed.
func colorOr(s string, fallback Color) Color {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

func parseHexColor(h string) (Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("calendar: bad hex color length %q", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("calendar: bad hex color %q: %w", h, err)
	}
	a := uint64(0xff)
	if len(h) == 8 {
		a = v & 0xff
		v >>= 8
	}
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: float64(a) / 255,
	}, nil
}

func parseFuncColor(body string, withAlpha bool) (Color, error) {
	parts := strings.Split(body, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, fmt.Errorf("calendar: expected %d color components, got %d", want, len(parts))
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("calendar: bad color component %q: %w", p, err)
		}
		if i < 3 {
			v /= 255
		}
		ch[i] = clamp01(v)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// Hex formats c as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5),
		uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5))
}

// Lighten adds amount (in 0-255 channel units) to every channel, saturating
// at white. Hovered events are drawn with Lighten(20).
func (c Color) Lighten(amount float64) Color {
	d := amount / 255
	return Color{
		R: clamp01(c.R + d),
		G: clamp01(c.G + d),
		B: clamp01(c.B + d),
		A: c.A,
	}
}

// Darken scales every channel toward black by fraction (0-1).
func (c Color) Darken(fraction float64) Color {
	f := 1 - clamp01(fraction)
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}
