package calendar

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ExitOnScriptDone stops the game loop once an attached script finishes.
	ExitOnScriptDone bool
}

// Run opens a resizable window and runs app until the window is closed.
func Run(app *App, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.Title == "" {
		cfg.Title = app.cfg.UI.Title.Text
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	var game ebiten.Game = app
	if cfg.ExitOnScriptDone {
		game = &scriptedGame{App: app}
	}
	return ebiten.RunGame(game)
}

// scriptedGame ends the loop after the attached script is done and its last
// screenshots were written.
type scriptedGame struct {
	*App
	finishing bool
}

func (g *scriptedGame) Update() error {
	if g.finishing {
		return ebiten.Termination
	}
	if err := g.App.Update(); err != nil {
		return err
	}
	if g.runner != nil && g.runner.Done() && len(g.screenshotQueue) == 0 {
		g.finishing = true
	}
	return nil
}
