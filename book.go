package flipbook

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Book is the paging engine of one page-flip widget. It owns the progress
// store, the smoothing filter, the input router with both adapters, and the
// frame derived from them. Nothing is shared between books.
//
// Per tick the host delivers input (which moves the store immediately),
// then calls Update once; Update steps the filter and recomputes the Frame
// from that single smoothed value.
type Book struct {
	cfg    Config
	store  *ProgressStore
	filter *SmoothingFilter
	router *InputRouter
	wheel  *WheelAdapter
	drag   *DragAdapter

	frame Frame
	order []LeafTransform

	bounds     Rect
	handles    []CallbackHandle
	interacted bool
	disposed   bool
	ticks      uint64

	log   zerolog.Logger
	debug bool
}

// NewBook validates cfg and builds a book closed at the front cover, laid
// out with its top-left corner at the origin.
func NewBook(cfg Config) (*Book, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Book{
		cfg:    cfg,
		store:  NewProgressStore(cfg.TotalSteps()),
		filter: NewSmoothingFilter(cfg.Spring),
		log:    zerolog.Nop(),
	}
	b.store.OnChange(b.filter.SetTarget)

	b.router = NewInputRouter(Rect{}, cfg.DragDeadZone)
	b.Layout(0, 0)

	b.wheel = NewWheelAdapter(b.store, cfg.ScrollSensitivity)
	b.drag = NewDragAdapter(b.store, cfg.DragSensitivity)
	b.wheel.Attach(b.router)
	b.drag.Attach(b.router)

	markInteracted := func() { b.interacted = true }
	b.handles = append(b.handles,
		b.router.OnWheel(func(WheelContext) { markInteracted() }),
		b.router.OnDragStart(func(DragContext) { markInteracted() }),
	)

	b.recompute()
	return b, nil
}

// MustNewBook is NewBook that panics on an invalid config.
func MustNewBook(cfg Config) *Book {
	b, err := NewBook(cfg)
	if err != nil {
		panic(fmt.Sprintf("flipbook: %v", err))
	}
	return b
}

// Config returns the configuration the book was built with.
func (b *Book) Config() Config { return b.cfg }

// Store returns the book's progress store.
func (b *Book) Store() *ProgressStore { return b.store }

// Filter returns the book's smoothing filter.
func (b *Book) Filter() *SmoothingFilter { return b.filter }

// Router returns the book's input router.
func (b *Book) Router() *InputRouter { return b.router }

// Progress returns the raw target progress.
func (b *Book) Progress() float64 { return b.store.Get() }

// Smoothed returns the smoothed progress of the current frame.
func (b *Book) Smoothed() float64 { return b.frame.Smoothed }

// TotalSteps returns pageCount + 2.
func (b *Book) TotalSteps() float64 { return b.store.TotalSteps() }

// Frame returns the current frame. The returned value is owned by the book
// and is overwritten by the next Update.
func (b *Book) Frame() *Frame { return &b.frame }

// Ticks returns the number of Update calls processed.
func (b *Book) Ticks() uint64 { return b.ticks }

// Interacted reports whether the user has wheeled, dragged or nudged the
// book since it was created.
func (b *Book) Interacted() bool { return b.interacted }

// Disposed reports whether Dispose has been called.
func (b *Book) Disposed() bool { return b.disposed }

// Bounds returns the visible book rectangle in screen space.
func (b *Book) Bounds() Rect { return b.bounds }

// Layout places the book's top-left corner at (x, y) in screen space. The
// hit region follows, grown by Geometry.HitMargin on every side.
func (b *Book) Layout(x, y float64) {
	g := b.cfg.Geometry
	b.bounds = Rect{X: x, Y: y, Width: g.Width, Height: g.Height}
	b.router.SetHitRegion(b.bounds.Inset(-g.HitMargin))
}

// SetLogger sets the logger used for debug output.
func (b *Book) SetLogger(l zerolog.Logger) {
	b.log = l.With().Str("component", "flipbook").Logger()
}

// SetDebugMode enables per-tick debug logging.
func (b *Book) SetDebugMode(enabled bool) {
	b.debug = enabled
}

// --- Input ---

// Wheel delivers a wheel event at (x, y) with a vertical delta in scroll
// units. It reports whether the book consumed the event.
func (b *Book) Wheel(x, y, deltaY float64) bool {
	return b.router.Wheel(x, y, 0, deltaY)
}

// PointerDown forwards a press to the router.
func (b *Book) PointerDown(id int, x, y float64) { b.router.PointerDown(id, x, y) }

// PointerMove forwards pointer movement to the router.
func (b *Book) PointerMove(id int, x, y float64) { b.router.PointerMove(id, x, y) }

// PointerUp forwards a release to the router.
func (b *Book) PointerUp(id int, x, y float64) { b.router.PointerUp(id, x, y) }

// PointerCancel forwards a cancellation to the router.
func (b *Book) PointerCancel(id int) { b.router.PointerCancel(id) }

// Nudge moves the target by d steps, e.g. one page per arrow key.
func (b *Book) Nudge(d float64) {
	if b.disposed {
		return
	}
	b.interacted = true
	b.store.Delta(d)
}

// JumpTo sets the target directly; the filter animates toward it.
func (b *Book) JumpTo(progress float64) {
	if b.disposed {
		return
	}
	b.store.Set(progress)
}

// Restore places the book at progress without animating, e.g. when reopening
// at a saved bookmark.
func (b *Book) Restore(progress float64) {
	if b.disposed || !isFinite(progress) {
		return
	}
	b.store.Set(progress)
	b.filter.Snap(b.store.Get())
	b.recompute()
}

// --- Frame ---

// Update steps the smoothing filter by dt seconds and derives the frame.
// Input delivered before Update is already reflected in the store.
func (b *Book) Update(dt float64) {
	if b.disposed {
		return
	}
	b.ticks++
	wasSettled := b.filter.Settled()
	b.filter.Step(dt)
	b.recompute()

	if b.debug {
		b.log.Debug().
			Uint64("tick", b.ticks).
			Float64("progress", b.frame.Progress).
			Float64("smoothed", b.frame.Smoothed).
			Float64("velocity", b.filter.Velocity()).
			Msg("frame")
	}
	if !wasSettled && b.frame.Settled {
		b.log.Debug().
			Uint64("tick", b.ticks).
			Float64("progress", b.frame.Smoothed).
			Msg("settled")
	}
}

// DrawOrder returns the current frame's leaves sorted back to front. The
// slice is reused across calls.
func (b *Book) DrawOrder() []LeafTransform {
	b.order = b.frame.DrawOrder(b.order)
	return b.order
}

func (b *Book) recompute() {
	b.frame = ComputeFrame(b.cfg, b.store.Get(), b.filter.Value(), b.filter.Settled(), b.frame.Pages)
}

// Dispose detaches every input listener and cancels active drags. Events
// delivered afterwards never reach the store, and Update becomes a no-op.
func (b *Book) Dispose() {
	if b.disposed {
		return
	}
	b.router.CancelAll()
	b.wheel.Detach()
	b.drag.Detach()
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = nil
	b.store.OnChange(nil)
	b.disposed = true
	b.log.Debug().Uint64("tick", b.ticks).Msg("disposed")
}
