package flipbook

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	TPS        int // ticks per second; 0 keeps Ebitengine's default of 60
	Resizable  bool
	Fullscreen bool
	ShowFPS    bool
}

// Run opens a window and runs w until the window closes, Escape is pressed
// or Close is called. The widget is disposed before Run returns.
func Run(w *Widget, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 700
	}
	if cfg.Title == "" {
		cfg.Title = "flipbook"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetFullscreen(cfg.Fullscreen)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}

	if cfg.ShowFPS {
		w.SetShowFPS(true)
	}

	defer w.Dispose()
	w.log.Info().Str("title", cfg.Title).Int("pages", w.book.Config().PageCount).Msg("window opened")
	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
