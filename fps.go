package flipbook

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often, in seconds, the overlay text is redrawn.
const fpsRefresh = 0.5

// fpsOverlay displays the current FPS and TPS plus the book's progress in
// the top-left corner. The text is re-rendered about twice per second into
// its own image.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
	dirty   bool
}

func newFPSOverlay() *fpsOverlay {
	// 140x48 is enough for three lines of DebugPrint text.
	return &fpsOverlay{img: ebiten.NewImage(140, 48), dirty: true}
}

func (o *fpsOverlay) update(dt float64) {
	o.elapsed += dt
	if o.elapsed >= fpsRefresh {
		o.elapsed = 0
		o.dirty = true
	}
}

func (o *fpsOverlay) draw(screen *ebiten.Image, b *Book) {
	if o.dirty {
		o.dirty = false
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nPAGE: %.2f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), b.Smoothed()))
	}
	screen.DrawImage(o.img, nil)
}

// SetShowFPS toggles the FPS overlay.
func (w *Widget) SetShowFPS(enabled bool) {
	if !enabled {
		w.fps = nil
		return
	}
	if w.fps == nil {
		w.fps = newFPSOverlay()
	}
}
