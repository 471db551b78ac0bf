package flipbook

import (
	"math"
	"strings"
	"testing"
)

func newTestBook(t *testing.T) *Book {
	t.Helper()
	b, err := NewBook(DefaultConfig())
	if err != nil {
		t.Fatalf("NewBook: %v", err)
	}
	return b
}

func bookCenter(b *Book) (float64, float64) {
	r := b.Bounds()
	return r.X + r.Width/2, r.Y + r.Height/2
}

// settleBook steps b at 60 TPS until the filter rests, failing after limit
// frames. It checks that the smoothed value moves monotonically toward the
// target without overshoot.
func settleBook(t *testing.T, b *Book, limit int) int {
	t.Helper()
	target := b.Progress()
	prev := b.Smoothed()
	rising := target > prev
	for i := 1; i <= limit; i++ {
		b.Update(testDT)
		s := b.Smoothed()
		if rising && (s < prev || s > target) || !rising && (s > prev || s < target) {
			t.Fatalf("frame %d: smoothed %v -> %v is not monotonic toward %v", i, prev, s, target)
		}
		prev = s
		if b.Frame().Settled {
			return i
		}
	}
	t.Fatalf("not settled after %d frames (smoothed %v, target %v)", limit, b.Smoothed(), target)
	return limit
}

func TestNewBookStartsClosed(t *testing.T) {
	b := newTestBook(t)
	f := b.Frame()
	if f.Progress != 0 || f.Smoothed != 0 || !f.Settled {
		t.Fatalf("frame = %+v, want closed and settled", f)
	}
	if f.Front.ZIndex != 26 || f.Front.Rotation != 0 {
		t.Errorf("front = rot %v z %v, want 0 26", f.Front.Rotation, f.Front.ZIndex)
	}
	if b.TotalSteps() != 18 {
		t.Errorf("TotalSteps() = %v, want 18", b.TotalSteps())
	}
}

func TestNewBookRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageCount = 0
	cfg.Spring.Mass = -1
	_, err := NewBook(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"PageCount", "Mass"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestMustNewBookPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	cfg := DefaultConfig()
	cfg.ScrollSensitivity = 0
	MustNewBook(cfg)
}

func TestWheelScrollsToBackCover(t *testing.T) {
	b := newTestBook(t)
	x, y := bookCenter(b)

	if !b.Wheel(x, y, 3600) {
		t.Fatal("wheel over the book was not consumed")
	}
	if b.Progress() != 18 {
		t.Fatalf("Progress() = %v, want 18", b.Progress())
	}
	if b.Smoothed() != 0 {
		t.Fatalf("Smoothed() = %v before Update, want 0", b.Smoothed())
	}

	frames := settleBook(t, b, 120)
	t.Logf("settled after %d frames", frames)

	f := b.Frame()
	if f.Smoothed != 18 {
		t.Fatalf("Smoothed = %v, want 18", f.Smoothed)
	}
	for i, p := range f.Pages {
		if p.Rotation != -180 {
			t.Errorf("page %d rotation = %v, want -180", i, p.Rotation)
		}
	}
	if f.Front.Rotation != -180 || f.Back.Rotation != -180 {
		t.Errorf("covers = %v/%v, want -180/-180", f.Front.Rotation, f.Back.Rotation)
	}
	if f.Back.ZIndex != 26 {
		t.Errorf("back cover z = %v, want 26", f.Back.ZIndex)
	}
}

func TestDragReturnsToFrontCover(t *testing.T) {
	b := newTestBook(t)
	b.Restore(18)
	x, y := bookCenter(b)

	b.PointerDown(0, x, y)
	b.PointerMove(0, x+450, y)
	b.PointerMove(0, x+900, y)
	b.PointerUp(0, x+900, y)

	if b.Progress() != 0 {
		t.Fatalf("Progress() = %v, want 0", b.Progress())
	}
	settleBook(t, b, 120)

	f := b.Frame()
	if f.Smoothed != 0 {
		t.Fatalf("Smoothed = %v, want 0", f.Smoothed)
	}
	for i, p := range f.Pages {
		if p.Rotation != 0 {
			t.Errorf("page %d rotation = %v, want 0", i, p.Rotation)
		}
	}
	if f.Front.ZIndex != 26 {
		t.Errorf("front cover z = %v, want 26", f.Front.ZIndex)
	}
}

func TestMidBookFrame(t *testing.T) {
	b := newTestBook(t)
	b.Restore(8.5)

	p7 := b.Frame().Pages[7]
	if p7.Rotation != -90 || p7.ZIndex != 8 || p7.Brightness != 0.5 {
		t.Errorf("page 7 = rot %v z %v bright %v, want -90 8 0.5", p7.Rotation, p7.ZIndex, p7.Brightness)
	}
}

func TestFrameLeavesShareOneSmoothedValue(t *testing.T) {
	b := newTestBook(t)
	b.JumpTo(11)
	for i := 0; i < 15; i++ {
		b.Update(testDT)
		f := b.Frame()
		n := b.Config().PageCount
		for j, p := range f.Pages {
			if want := PageTransform(j, n, f.Smoothed); p != want {
				t.Fatalf("tick %d page %d = %+v, want %+v", i, j, p, want)
			}
		}
		if f.Front != FrontCoverTransform(n, f.Smoothed) || f.Back != BackCoverTransform(n, f.Smoothed) {
			t.Fatalf("tick %d: covers not derived from smoothed %v", i, f.Smoothed)
		}
	}
}

func TestInputRetargetsMidFlight(t *testing.T) {
	b := newTestBook(t)
	x, y := bookCenter(b)

	b.Wheel(x, y, 2000) // +10
	for i := 0; i < 10; i++ {
		b.Update(testDT)
	}
	before := b.Smoothed()
	b.Wheel(x, y, -2000) // back to 0
	b.Update(testDT)
	if math.Abs(b.Smoothed()-before) > 1 {
		t.Errorf("retarget jumped from %v to %v", before, b.Smoothed())
	}
	for i := 0; i < 240 && !b.Frame().Settled; i++ {
		b.Update(testDT)
		if b.Smoothed() < 0 {
			t.Fatalf("overshoot below 0: %v", b.Smoothed())
		}
	}
	if !b.Frame().Settled || b.Smoothed() != 0 {
		t.Errorf("Settled=%v Smoothed=%v, want true 0", b.Frame().Settled, b.Smoothed())
	}
}

func TestWheelOutsideHitRegion(t *testing.T) {
	b := newTestBook(t)
	if b.Wheel(-500, -500, 100) {
		t.Error("wheel outside the hit region was consumed")
	}
	if b.Progress() != 0 || b.Interacted() {
		t.Errorf("Progress=%v Interacted=%v, want 0 false", b.Progress(), b.Interacted())
	}
	// The margin around the book still counts.
	if !b.Wheel(-100, 10, 100) {
		t.Error("wheel in the hit margin was not consumed")
	}
}

func TestLayoutMovesHitRegion(t *testing.T) {
	b := newTestBook(t)
	b.Layout(1000, 1000)
	if b.Bounds().X != 1000 || b.Bounds().Width != 300 {
		t.Fatalf("Bounds = %+v", b.Bounds())
	}
	if b.Wheel(150, 220, 100) {
		t.Error("old position still hit")
	}
	if !b.Wheel(1150, 1220, 100) {
		t.Error("new position not hit")
	}
}

func TestNonFiniteInputIgnored(t *testing.T) {
	b := newTestBook(t)
	x, y := bookCenter(b)
	b.JumpTo(3)

	b.Wheel(x, y, math.NaN())
	b.Wheel(x, y, math.Inf(1))
	b.JumpTo(math.NaN())
	b.Nudge(math.Inf(-1))
	b.Restore(math.NaN())

	if b.Progress() != 3 {
		t.Errorf("Progress() = %v, want 3", b.Progress())
	}
}

func TestNudgeAndInteracted(t *testing.T) {
	b := newTestBook(t)
	if b.Interacted() {
		t.Fatal("new book reports interaction")
	}
	b.Nudge(1)
	b.Nudge(1)
	if b.Progress() != 2 || !b.Interacted() {
		t.Errorf("Progress=%v Interacted=%v, want 2 true", b.Progress(), b.Interacted())
	}
	b.Nudge(-b.TotalSteps())
	if b.Progress() != 0 {
		t.Errorf("Progress() = %v, want 0", b.Progress())
	}
}

func TestRestoreSkipsAnimation(t *testing.T) {
	b := newTestBook(t)
	b.Restore(5)
	if b.Smoothed() != 5 || !b.Frame().Settled {
		t.Errorf("Smoothed=%v Settled=%v, want 5 true", b.Smoothed(), b.Frame().Settled)
	}
	b.Restore(50)
	if b.Progress() != 18 || b.Smoothed() != 18 {
		t.Errorf("Restore(50): Progress=%v Smoothed=%v, want 18 18", b.Progress(), b.Smoothed())
	}
}

func TestDisposeDetachesInput(t *testing.T) {
	b := newTestBook(t)
	x, y := bookCenter(b)

	b.PointerDown(0, x, y)
	b.PointerMove(0, x-100, y)
	if !b.Router().Dragging() {
		t.Fatal("drag did not start")
	}
	progress := b.Progress()

	b.Dispose()
	b.Dispose()
	if !b.Disposed() {
		t.Fatal("Disposed() = false")
	}
	if b.Router().Dragging() {
		t.Error("drag survived Dispose")
	}
	if b.Wheel(x, y, 1000) {
		t.Error("wheel consumed after Dispose")
	}
	b.PointerDown(0, x, y)
	b.PointerMove(0, x-500, y)
	b.PointerUp(0, x-500, y)
	b.Nudge(3)
	b.JumpTo(9)
	if b.Progress() != progress {
		t.Errorf("Progress() = %v after Dispose, want %v", b.Progress(), progress)
	}

	ticks := b.Ticks()
	b.Update(testDT)
	if b.Ticks() != ticks {
		t.Error("Update ran after Dispose")
	}
}

func TestDrawOrderReusesBuffer(t *testing.T) {
	b := newTestBook(t)
	first := b.DrawOrder()
	second := b.DrawOrder()
	if len(first) != 18 || &first[0] != &second[0] {
		t.Error("DrawOrder did not reuse its buffer")
	}
}
