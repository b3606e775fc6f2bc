package calendar

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshTicks = 30

// fpsOverlay displays the current FPS and TPS in the top-left corner. The
// text is refreshed every ~0.5 seconds at 60 TPS.
type fpsOverlay struct {
	img   *ebiten.Image
	ticks int
	text  string
}

func (f *fpsOverlay) update() {
	f.ticks++
	if f.ticks < fpsRefreshTicks && f.text != "" {
		return
	}
	f.ticks = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.text == "" {
		return
	}
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
	}
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, f.text)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(4, 4)
	screen.DrawImage(f.img, op)
}
