package calendar

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#fff", Color{1, 1, 1, 1}, false},
		{"#000000", Color{0, 0, 0, 1}, false},
		{"#FF0000", Color{1, 0, 0, 1}, false},
		{"#00ff0080", Color{0, 1, 0, 128.0 / 255}, false},
		{"rgb(255, 0, 255)", Color{1, 0, 1, 1}, false},
		{"rgba(0,0,0,0.5)", Color{0, 0, 0, 0.5}, false},
		{"  White ", ColorWhite, false},
		{"black", ColorBlack, false},
		{"transparent", ColorTransparent, false},
		{"#12", Color{}, true},
		{"#zzzzzz", Color{}, true},
		{"rgb(1,2)", Color{}, true},
		{"chartreuse", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !approxEqual(got.R, tt.want.R) || !approxEqual(got.G, tt.want.G) ||
				!approxEqual(got.B, tt.want.B) || !approxEqual(got.A, tt.want.A) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorOr(t *testing.T) {
	if got := colorOr("", ColorBlack); got != ColorBlack {
		t.Errorf("empty = %+v", got)
	}
	if got := colorOr("nope", ColorBlack); got != ColorBlack {
		t.Errorf("malformed = %+v", got)
	}
	if got := colorOr("#fff", ColorBlack); got != ColorWhite {
		t.Errorf("valid = %+v", got)
	}
}

func TestColorAdjust(t *testing.T) {
	c := Color{R: 0.5, G: 0.9, B: 0, A: 0.7}

	l := c.Lighten(51)
	if !approxEqual(l.R, 0.7) || l.G != 1 || !approxEqual(l.B, 0.2) || l.A != 0.7 {
		t.Errorf("Lighten = %+v", l)
	}
	d := c.Darken(0.4)
	if !approxEqual(d.R, 0.3) || !approxEqual(d.G, 0.54) || d.B != 0 || d.A != 0.7 {
		t.Errorf("Darken = %+v", d)
	}
	if got := (Color{R: 1, G: 0.5, B: 0, A: 1}).Hex(); got != "#ff8000" {
		t.Errorf("Hex = %s", got)
	}
}

func TestColorRGBA(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.RGBA()
	if got.R != 128 || got.G != 64 || got.B != 0 || got.A != 128 {
		t.Errorf("RGBA = %+v, want premultiplied {128 64 0 128}", got)
	}
	if c := ColorBlack.WithAlpha(0.25); c.A != 0.25 || c.R != 0 {
		t.Errorf("WithAlpha = %+v", c)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}

	if !r.Contains(10, 10) || !r.Contains(30, 20) || r.Contains(31, 15) {
		t.Error("Contains edges wrong")
	}
	if !r.Intersects(Rect{X: 30, Y: 20, Width: 5, Height: 5}) {
		t.Error("edge-adjacent rects should intersect")
	}
	if r.Intersects(Rect{X: 40, Y: 40, Width: 5, Height: 5}) {
		t.Error("distant rects should not intersect")
	}
	if got := r.Translate(5, -5); got != (Rect{X: 15, Y: 5, Width: 20, Height: 10}) {
		t.Errorf("Translate = %+v", got)
	}
	if got := r.Inset(Insets{Top: 20, Left: 5}); got.Height != 0 || got.Width != 15 {
		t.Errorf("Inset = %+v, want clamped height", got)
	}
	if got := r.Center(); got != (Vec2{X: 20, Y: 15}) {
		t.Errorf("Center = %+v", got)
	}
}
