package flipbook

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"
)

// DefaultHintText is drawn under the book until the first interaction.
const DefaultHintText = "SCROLL OR DRAG TO FLIP"

// hintGap separates the bottom of the book from the hint label.
const hintGap = 48.0

// Widget hosts a Book in an Ebitengine game loop. It polls mouse, touch,
// wheel and keyboard input, steps the book once per tick and draws it.
//
// Widget implements ebiten.Game; for full control call Update and Draw
// from your own game instead of Run.
type Widget struct {
	InputQueue

	book     *Book
	renderer *Renderer
	hint     *Hint
	face     text.Face
	fps      *fpsOverlay

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir string

	screenshotQueue []string
	runner          *ScriptRunner

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	screenW, screenH int
	quit             bool
	disposed         bool

	log   zerolog.Logger
	debug bool
	stats debugStats
}

// NewWidget wraps book. The widget owns the book from here on: Dispose
// disposes it.
func NewWidget(book *Book) *Widget {
	return &Widget{
		book:          book,
		renderer:      NewRenderer(),
		hint:          NewHint(DefaultHintText),
		face:          text.NewGoXFace(basicfont.Face7x13),
		ScreenshotDir: "screenshots",
		log:           zerolog.Nop(),
	}
}

// Book returns the hosted book.
func (w *Widget) Book() *Book { return w.book }

// Renderer returns the renderer, e.g. to change the palette.
func (w *Widget) Renderer() *Renderer { return w.renderer }

// Hint returns the instruction label.
func (w *Widget) Hint() *Hint { return w.hint }

// SetScript attaches a script runner; it is stepped at the start of every
// Update.
func (w *Widget) SetScript(r *ScriptRunner) { w.runner = r }

// SetLogger sets the logger for the widget and its book.
func (w *Widget) SetLogger(l zerolog.Logger) {
	w.log = l.With().Str("component", "widget").Logger()
	w.book.SetLogger(l)
}

// SetDebugMode enables per-frame timing logs for the widget and its book.
func (w *Widget) SetDebugMode(enabled bool) {
	w.debug = enabled
	w.book.SetDebugMode(enabled)
}

// Close asks the game loop to stop after the current tick.
func (w *Widget) Close() { w.quit = true }

// Update processes input, steps the book and advances the hint fade.
func (w *Widget) Update() error {
	if w.disposed {
		return ebiten.Termination
	}
	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}
	dt := 1.0 / float64(ebiten.TPS())

	if w.runner != nil {
		w.runner.step(w)
	}
	if !w.deliver(w.book) {
		w.processDeviceInput()
	}
	w.book.Update(dt)
	w.hint.Update(float32(dt), w.book.Interacted())
	if w.fps != nil {
		w.fps.update(dt)
	}

	if w.debug {
		w.stats.updateTime = time.Since(t0)
	}
	if w.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the book and the hint, then flushes queued screenshots.
func (w *Widget) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}

	w.renderer.Draw(screen, w.book)
	if w.hint.Visible() {
		w.drawHint(screen)
	}
	if w.fps != nil {
		w.fps.draw(screen, w.book)
	}

	if w.debug {
		w.stats.drawTime = time.Since(t0)
		w.stats.vertexCount = len(w.renderer.verts)
		w.debugLog(w.stats)
	}
	w.flushScreenshots(screen)
}

// Layout centers the book in the window and keeps the logical screen at the
// window size.
func (w *Widget) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.screenW || outsideHeight != w.screenH {
		w.screenW, w.screenH = outsideWidth, outsideHeight
		g := w.book.Config().Geometry
		w.book.Layout((float64(outsideWidth)-g.Width)/2, (float64(outsideHeight)-g.Height)/2)
	}
	return outsideWidth, outsideHeight
}

// Dispose detaches the book's listeners. Further Updates stop the loop.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.disposed = true
	w.book.Dispose()
}

func (w *Widget) drawHint(screen *ebiten.Image) {
	b := w.book.Bounds()
	tw, _ := text.Measure(w.hint.Text, w.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(b.X+(b.Width-tw)/2, b.Y+b.Height+hintGap)
	op.ColorScale.ScaleWithColor(RGB(0x9C, 0xA3, 0xAF).toRGBA())
	op.ColorScale.ScaleAlpha(float32(w.hint.Alpha))
	text.Draw(screen, w.hint.Text, w.face, op)
}

// --- Device input ---

func (w *Widget) processDeviceInput() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	if _, wy := ebiten.Wheel(); wy != 0 {
		// Ebitengine reports wheel-up as positive; scroll units grow downward.
		w.book.Wheel(x, y, -wy*w.book.Config().WheelUnit)
	}
	w.book.router.processPointer(0, x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	w.processTouchPointers()
	w.processKeys()
}

// processTouchPointers handles touch input (pointers 1-9).
func (w *Widget) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(w.prevTouchIDs[:0])
	w.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := w.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		w.book.router.processPointer(slot, float64(tx), float64(ty), true)
	}

	// A touch that vanished without a release is a cancellation.
	for i := 1; i < maxPointers; i++ {
		if w.touchUsed[i] && !active[i] {
			w.book.PointerCancel(i)
			w.touchUsed[i] = false
			w.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns the
// existing slot or allocates a new one. Returns -1 if full.
func (w *Widget) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if w.touchUsed[i] && w.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !w.touchUsed[i] {
			w.touchUsed[i] = true
			w.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (w *Widget) processKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight),
		inpututil.IsKeyJustPressed(ebiten.KeyArrowDown),
		inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		w.book.Nudge(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft),
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		w.book.Nudge(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		w.book.Nudge(-w.book.TotalSteps())
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		w.book.Nudge(w.book.TotalSteps())
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		w.Screenshot("manual")
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		w.quit = true
	}
}
