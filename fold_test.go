package flipbook

import (
	"math"
	"testing"
)

func TestClassifyFold(t *testing.T) {
	tests := []struct {
		rotation float64
		want     FoldState
	}{
		{0, FoldClosed},
		{-0.001, FoldRising},
		{-45, FoldRising},
		{-89.999, FoldRising},
		{-90, FoldFalling},
		{-135, FoldFalling},
		{-179.999, FoldFalling},
		{-180, FoldOpen},
	}
	for _, tt := range tests {
		if got := ClassifyFold(tt.rotation); got != tt.want {
			t.Errorf("ClassifyFold(%v) = %v, want %v", tt.rotation, got, tt.want)
		}
	}
}

func TestFoldStatePredicates(t *testing.T) {
	tests := []struct {
		s                 FoldState
		turned, flipping bool
	}{
		{FoldClosed, false, false},
		{FoldRising, false, true},
		{FoldFalling, true, true},
		{FoldOpen, true, false},
	}
	for _, tt := range tests {
		if tt.s.Turned() != tt.turned || tt.s.Flipping() != tt.flipping {
			t.Errorf("%v: Turned=%v Flipping=%v, want %v %v",
				tt.s, tt.s.Turned(), tt.s.Flipping(), tt.turned, tt.flipping)
		}
	}
}

func TestPageTransformAcrossTurn(t *testing.T) {
	const n = 16
	const i = 3
	tests := []struct {
		name       string
		smoothed   float64
		rotation   float64
		z          int
		brightness float64
		fold       FoldState
	}{
		{"before range", 0, 0, n - i, 1, FoldClosed},
		{"range start", i + 1, 0, n - i, 1, FoldClosed},
		{"quarter", i + 1.25, -45, n - i, 0.75, FoldRising},
		{"midpoint", i + 1.5, -90, i + 1, 0.5, FoldFalling},
		{"three quarters", i + 1.75, -135, i + 1, 0.75, FoldFalling},
		{"range end", i + 2, -180, i + 1, 1, FoldOpen},
		{"after range", 18, -180, i + 1, 1, FoldOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lt := PageTransform(i, n, tt.smoothed)
			if lt.Rotation != tt.rotation {
				t.Errorf("Rotation = %v, want %v", lt.Rotation, tt.rotation)
			}
			if lt.ZIndex != tt.z {
				t.Errorf("ZIndex = %v, want %v", lt.ZIndex, tt.z)
			}
			if math.Abs(lt.Brightness-tt.brightness) > 1e-12 {
				t.Errorf("Brightness = %v, want %v", lt.Brightness, tt.brightness)
			}
			if lt.Fold != tt.fold {
				t.Errorf("Fold = %v, want %v", lt.Fold, tt.fold)
			}
			if lt.Kind != LeafPage || lt.Index != i {
				t.Errorf("Kind/Index = %v/%d, want page/%d", lt.Kind, lt.Index, i)
			}
		})
	}
}

func TestCoverTransforms(t *testing.T) {
	const n = 16
	tests := []struct {
		name     string
		got      LeafTransform
		rotation float64
		z        int
	}{
		{"front closed", FrontCoverTransform(n, 0), 0, n + 10},
		{"front mid", FrontCoverTransform(n, 0.5), -90, 0},
		{"front open", FrontCoverTransform(n, 1), -180, 0},
		{"back closed", BackCoverTransform(n, 17), 0, 0},
		{"back rising", BackCoverTransform(n, 17.25), -45, 0},
		{"back mid", BackCoverTransform(n, 17.5), -90, 0},
		{"back falling", BackCoverTransform(n, 17.75), -135, n + 10},
		{"back open", BackCoverTransform(n, 18), -180, n + 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.Rotation != tt.rotation || tt.got.ZIndex != tt.z {
				t.Errorf("rotation=%v z=%v, want %v %v", tt.got.Rotation, tt.got.ZIndex, tt.rotation, tt.z)
			}
			if tt.got.Brightness != 1 {
				t.Errorf("cover Brightness = %v, want 1", tt.got.Brightness)
			}
		})
	}
}

func TestComputeFrameMidBook(t *testing.T) {
	cfg := DefaultConfig()
	f := ComputeFrame(cfg, 8.5, 8.5, true, nil)

	if len(f.Pages) != cfg.PageCount {
		t.Fatalf("len(Pages) = %d, want %d", len(f.Pages), cfg.PageCount)
	}
	p7 := f.Pages[7]
	if p7.Rotation != -90 || p7.ZIndex != 8 || p7.Brightness != 0.5 {
		t.Errorf("page 7 = rot %v z %v bright %v, want -90 8 0.5", p7.Rotation, p7.ZIndex, p7.Brightness)
	}
	for i, p := range f.Pages {
		switch {
		case i < 7 && p.Rotation != -180:
			t.Errorf("page %d rotation = %v, want -180", i, p.Rotation)
		case i > 7 && p.Rotation != 0:
			t.Errorf("page %d rotation = %v, want 0", i, p.Rotation)
		}
	}
	if f.Front.Rotation != -180 || f.Front.ZIndex != 0 {
		t.Errorf("front = rot %v z %v, want -180 0", f.Front.Rotation, f.Front.ZIndex)
	}
	if f.Back.Rotation != 0 || f.Back.ZIndex != 0 {
		t.Errorf("back = rot %v z %v, want 0 0", f.Back.Rotation, f.Back.ZIndex)
	}
	if math.Abs(f.TiltZ+cfg.Geometry.MaxTiltZ*8.5/9) > 1e-12 {
		t.Errorf("TiltZ = %v, want %v", f.TiltZ, -cfg.Geometry.MaxTiltZ*8.5/9)
	}
	if f.TiltX != cfg.Geometry.TiltX {
		t.Errorf("TiltX = %v, want %v", f.TiltX, cfg.Geometry.TiltX)
	}
}

func TestComputeFrameTiltZ(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		smoothed, want float64
	}{
		{0, 0},
		{9, -2},
		{18, 0},
		{4.5, -1},
	}
	for _, tt := range tests {
		f := ComputeFrame(cfg, tt.smoothed, tt.smoothed, true, nil)
		if math.Abs(f.TiltZ-tt.want) > 1e-12 {
			t.Errorf("TiltZ at %v = %v, want %v", tt.smoothed, f.TiltZ, tt.want)
		}
	}
}

func TestComputeFrameReusesPages(t *testing.T) {
	cfg := DefaultConfig()
	buf := make([]LeafTransform, 0, 32)
	f := ComputeFrame(cfg, 1, 1, true, buf)
	if &f.Pages[0] != &buf[:1][0] {
		t.Error("ComputeFrame allocated despite sufficient capacity")
	}
}

func TestDeriveLeafIsPure(t *testing.T) {
	for _, s := range []float64{0, 0.3, 5.5, 9.99, 17.5, 18} {
		a := DeriveLeaf(LeafPage, 4, 16, s)
		b := DeriveLeaf(LeafPage, 4, 16, s)
		if a != b {
			t.Errorf("DeriveLeaf(%v) not deterministic: %+v vs %+v", s, a, b)
		}
	}
}

func TestRotationMonotonicInProgress(t *testing.T) {
	prev := make([]float64, 18)
	for step := 0; step <= 1800; step++ {
		s := float64(step) / 100
		f := ComputeFrame(DefaultConfig(), s, s, true, nil)
		leaves := append([]LeafTransform{f.Front}, f.Pages...)
		leaves = append(leaves, f.Back)
		for i, l := range leaves {
			if step > 0 && l.Rotation > prev[i] {
				t.Fatalf("leaf %d rotation rose from %v to %v at %v", i, prev[i], l.Rotation, s)
			}
			prev[i] = l.Rotation
		}
	}
}

func TestDrawOrder(t *testing.T) {
	cfg := DefaultConfig()

	closed := ComputeFrame(cfg, 0, 0, true, nil)
	order := closed.DrawOrder(nil)
	if len(order) != cfg.PageCount+2 {
		t.Fatalf("len = %d, want %d", len(order), cfg.PageCount+2)
	}
	if order[0].Kind != LeafBackCover {
		t.Errorf("first drawn = %v, want back cover", order[0].Kind)
	}
	if last := order[len(order)-1]; last.Kind != LeafFrontCover {
		t.Errorf("last drawn = %v, want front cover", last.Kind)
	}
	// Unturned pages: later pages are drawn first.
	if order[1].Index != cfg.PageCount-1 {
		t.Errorf("second drawn = page %d, want page %d", order[1].Index, cfg.PageCount-1)
	}

	open := ComputeFrame(cfg, 18, 18, true, nil)
	order = open.DrawOrder(order)
	if order[0].Kind != LeafFrontCover {
		t.Errorf("open book: first drawn = %v, want front cover", order[0].Kind)
	}
	if last := order[len(order)-1]; last.Kind != LeafBackCover {
		t.Errorf("open book: last drawn = %v, want back cover", last.Kind)
	}
	for i := 1; i < len(order); i++ {
		if order[i].ZIndex < order[i-1].ZIndex {
			t.Fatalf("order not ascending at %d: %d < %d", i, order[i].ZIndex, order[i-1].ZIndex)
		}
	}
}

func TestLerpClamped(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{-1, 0},
		{2, 0},
		{2.5, -90},
		{3, -180},
		{9, -180},
	}
	for _, tt := range tests {
		if got := LerpClamped(tt.x, 2, 3, 0, -180); got != tt.want {
			t.Errorf("LerpClamped(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestPiecewise(t *testing.T) {
	xs := []float64{0, -90, -180}
	ys := []float64{1, 0.5, 1}
	tests := []struct {
		x, want float64
	}{
		{10, 1},
		{0, 1},
		{-45, 0.75},
		{-90, 0.5},
		{-180, 1},
		{-200, 1},
	}
	for _, tt := range tests {
		if got := Piecewise(tt.x, xs, ys); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Piecewise(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
	if got := Piecewise(1, nil, nil); got != 0 {
		t.Errorf("Piecewise with no breakpoints = %v, want 0", got)
	}
}
