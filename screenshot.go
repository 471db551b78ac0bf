package flipbook

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The image is written to ScreenshotDir as a
// WebP file with a timestamped name. Safe to call from Update or Draw.
func (w *Widget) Screenshot(label string) {
	w.screenshotQueue = append(w.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label.
// Called at the end of Widget.Draw.
func (w *Widget) flushScreenshots(screen *ebiten.Image) {
	if len(w.screenshotQueue) == 0 {
		return
	}
	defer func() { w.screenshotQueue = w.screenshotQueue[:0] }()

	if err := os.MkdirAll(w.ScreenshotDir, 0o755); err != nil {
		w.log.Error().Err(err).Str("dir", w.ScreenshotDir).Msg("screenshot: mkdir")
		return
	}

	img := readNRGBA(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range w.screenshotQueue {
		path := filepath.Join(w.ScreenshotDir, fmt.Sprintf("%s_%s.webp", stamp, sanitizeLabel(label)))
		if err := writeWebP(path, img); err != nil {
			w.log.Error().Err(err).Msg("screenshot")
			continue
		}
		w.log.Info().Str("path", path).Msg("screenshot saved")
	}
}

// readNRGBA reads the screen and converts premultiplied RGBA to
// straight-alpha NRGBA.
func readNRGBA(screen *ebiten.Image) *image.NRGBA {
	bounds := screen.Bounds()
	wd, ht := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*wd*ht)
	screen.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, wd, ht))
	for i := 0; i < len(pixels); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// writeWebP encodes img losslessly to a WebP file at path.
func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
