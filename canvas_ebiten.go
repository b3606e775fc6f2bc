package calendar

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// whitePixel returns a 1x1 white source image for DrawTriangles. The inner
// pixel of a 3x3 image avoids sampling the edge.
func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// ImageCanvas draws onto an *ebiten.Image. Set the target each frame with
// SetTarget before drawing.
type ImageCanvas struct {
	target *ebiten.Image
	clips  []*ebiten.Image
	fonts  *FontSet
	size   Size

	vs []ebiten.Vertex
	is []uint16
}

// NewImageCanvas returns a canvas that draws text with fonts. A nil fonts
// disables text drawing; measurement then falls back to an estimate.
func NewImageCanvas(fonts *FontSet) *ImageCanvas {
	return &ImageCanvas{fonts: fonts}
}

// SetTarget sets the image drawn onto and resets the clip stack.
func (c *ImageCanvas) SetTarget(img *ebiten.Image) {
	c.target = img
	c.clips = c.clips[:0]
	if img != nil {
		b := img.Bounds()
		c.size = Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
}

// SetSize records the logical surface size before a target is attached.
func (c *ImageCanvas) SetSize(w, h float64) {
	c.size = Size{Width: w, Height: h}
}

// Size returns the surface size.
func (c *ImageCanvas) Size() Size { return c.size }

func (c *ImageCanvas) dst() *ebiten.Image {
	if n := len(c.clips); n > 0 {
		return c.clips[n-1]
	}
	return c.target
}

// FillRect fills r with col.
func (c *ImageCanvas) FillRect(r Rect, col Color) {
	dst := c.dst()
	if dst == nil {
		return
	}
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), col.RGBA(), false)
}

// FillRoundRect fills r with rounded corners.
func (c *ImageCanvas) FillRoundRect(r Rect, radius float64, col Color) {
	dst := c.dst()
	if dst == nil {
		return
	}
	if radius <= 0 {
		c.FillRect(r, col)
		return
	}
	p := roundRectPath(r, radius)
	c.vs, c.is = p.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	c.drawTriangles(dst, col)
}

// StrokeRoundRect outlines r with rounded corners.
func (c *ImageCanvas) StrokeRoundRect(r Rect, radius, width float64, col Color) {
	dst := c.dst()
	if dst == nil {
		return
	}
	if radius <= 0 {
		vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), float32(width), col.RGBA(), true)
		return
	}
	p := roundRectPath(r, radius)
	c.vs, c.is = p.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	c.drawTriangles(dst, col)
}

func (c *ImageCanvas) drawTriangles(dst *ebiten.Image, col Color) {
	rgba := col.RGBA()
	r := float32(rgba.R) / 255
	g := float32(rgba.G) / 255
	b := float32(rgba.B) / 255
	a := float32(rgba.A) / 255
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = r
		c.vs[i].ColorG = g
		c.vs[i].ColorB = b
		c.vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(c.vs, c.is, whitePixel(), op)
}

// StrokeLine draws a line segment.
func (c *ImageCanvas) StrokeLine(x0, y0, x1, y1, width float64, col Color) {
	dst := c.dst()
	if dst == nil {
		return
	}
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), col.RGBA(), true)
}

// DrawText draws s anchored at (x, y).
func (c *ImageCanvas) DrawText(s string, x, y float64, style TextStyle) {
	dst := c.dst()
	if dst == nil || c.fonts == nil || s == "" {
		return
	}
	s = truncateText(c, s, style.Size, style.MaxWidth)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(style.Color.RGBA())
	switch style.Align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	switch style.Baseline {
	case TextBaselineMiddle:
		op.SecondaryAlign = text.AlignCenter
	case TextBaselineBottom:
		op.SecondaryAlign = text.AlignEnd
	}
	text.Draw(dst, s, c.fonts.Face(style.Size), op)
}

// MeasureText returns the width of s at size.
func (c *ImageCanvas) MeasureText(s string, size float64) float64 {
	if c.fonts == nil {
		return estimateTextWidth(s, size)
	}
	return c.fonts.MeasureText(s, size)
}

// PushClip restricts drawing to r.
func (c *ImageCanvas) PushClip(r Rect) {
	cur := c.dst()
	if cur == nil {
		return
	}
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	).Intersect(cur.Bounds())
	c.clips = append(c.clips, cur.SubImage(rect).(*ebiten.Image))
}

// PopClip removes the innermost clip.
func (c *ImageCanvas) PopClip() {
	if n := len(c.clips); n > 0 {
		c.clips = c.clips[:n-1]
	}
}

// roundRectPath builds a closed rounded rectangle. The radius is limited to
// half the shorter side.
func roundRectPath(r Rect, radius float64) *vector.Path {
	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.X+r.Width), float32(r.Y+r.Height)
	rad := float32(radius)

	var p vector.Path
	p.MoveTo(x0+rad, y0)
	p.LineTo(x1-rad, y0)
	p.ArcTo(x1, y0, x1, y0+rad, rad)
	p.LineTo(x1, y1-rad)
	p.ArcTo(x1, y1, x1-rad, y1, rad)
	p.LineTo(x0+rad, y1)
	p.ArcTo(x0, y1, x0, y1-rad, rad)
	p.LineTo(x0, y0+rad)
	p.ArcTo(x0, y0, x0+rad, y0, rad)
	p.Close()
	return &p
}
