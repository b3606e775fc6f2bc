package calendar

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontSet wraps one TrueType source and hands out faces per pixel size.
type FontSet struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// LoadFontSet parses raw TTF/OTF data.
func LoadFontSet(ttfData []byte) (*FontSet, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to parse TTF data: %w", err)
	}
	return &FontSet{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// DefaultFontSet returns the Go Regular font.
func DefaultFontSet() (*FontSet, error) {
	return LoadFontSet(goregular.TTF)
}

// Face returns the face for size, creating it on first use.
func (f *FontSet) Face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = 12
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{Source: f.source, Size: size}
	f.faces[size] = face
	return face
}

// MeasureText returns the advance width of s at size.
func (f *FontSet) MeasureText(s string, size float64) float64 {
	return text.Advance(s, f.Face(size))
}

// LineHeight returns ascent + descent + line gap at size.
func (f *FontSet) LineHeight(size float64) float64 {
	m := f.Face(size).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
