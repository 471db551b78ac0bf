package flipbook

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// debugLogEvery throttles per-frame stats to about one line per second.
const debugLogEvery = 60

// debugStats holds per-frame timing and vertex metrics.
// Only populated when the widget is in debug mode.
type debugStats struct {
	updateTime  time.Duration
	drawTime    time.Duration
	vertexCount int
	frames      uint64
}

// debugLog writes timing and vertex stats through the widget logger.
func (w *Widget) debugLog(stats debugStats) {
	if !w.debug {
		return
	}
	w.stats.frames++
	if w.stats.frames%debugLogEvery != 0 {
		return
	}
	f := w.book.Frame()
	w.log.Debug().
		Dur("update", stats.updateTime).
		Dur("draw", stats.drawTime).
		Int("vertices", stats.vertexCount).
		Float64("progress", f.Progress).
		Float64("smoothed", f.Smoothed).
		Bool("settled", f.Settled).
		Float64("tps", ebiten.ActualTPS()).
		Msg("frame stats")
}
