package flipbook

import "sort"

// Rotation endpoints of a leaf, in degrees about the spine. A leaf lying on
// the unturned stack is at 0; a fully turned leaf is at -180.
const (
	RotationClosed = 0.0
	RotationMid    = -90.0
	RotationOpen   = -180.0
)

// coverZBoost lifts a cover above every page while it sits on top.
const coverZBoost = 10

// FoldState classifies a leaf's rotation.
type FoldState uint8

const (
	FoldClosed  FoldState = iota // rotation 0: lying on the unturned stack
	FoldRising                   // (-90, 0): lifting, front face toward the viewer
	FoldFalling                  // (-180, -90]: past the midpoint, back face showing
	FoldOpen                     // rotation -180: lying on the turned stack
)

// ClassifyFold maps a rotation in degrees to its fold state. Exactly -90
// counts as FoldFalling, so a leaf edge-on to the viewer already stacks with
// the turned leaves.
func ClassifyFold(rotation float64) FoldState {
	switch {
	case rotation >= RotationClosed:
		return FoldClosed
	case rotation > RotationMid:
		return FoldRising
	case rotation > RotationOpen:
		return FoldFalling
	default:
		return FoldOpen
	}
}

// Turned reports whether the leaf belongs to the turned stack.
func (s FoldState) Turned() bool {
	return s >= FoldFalling
}

// Flipping reports whether the leaf is mid-flip.
func (s FoldState) Flipping() bool {
	return s == FoldRising || s == FoldFalling
}

func (s FoldState) String() string {
	switch s {
	case FoldClosed:
		return "closed"
	case FoldRising:
		return "rising"
	case FoldFalling:
		return "falling"
	case FoldOpen:
		return "open"
	default:
		return "unknown"
	}
}

// zRule computes a leaf's stacking order from the page count and its index.
type zRule func(pageCount, index int) int

// zOrder is indexed by [LeafKind][turned].
var zOrder = [...][2]zRule{
	LeafFrontCover: {
		func(n, _ int) int { return n + coverZBoost },
		func(_, _ int) int { return 0 },
	},
	LeafPage: {
		// Unturned: page 0 sits on top of the stack.
		func(n, i int) int { return n - i },
		// Turned: later pages land on top; +1 keeps page 0 above the opened
		// front cover at 0.
		func(_, i int) int { return i + 1 },
	},
	LeafBackCover: {
		func(_, _ int) int { return 0 },
		func(n, _ int) int { return n + coverZBoost },
	},
}

// stackedTurned is indexed by LeafKind and selects the turned column of
// zOrder. The back cover only leaves the top of the stack strictly past the
// midpoint; pages and the front cover switch at the midpoint itself.
var stackedTurned = [...]func(rotation float64) bool{
	LeafFrontCover: func(r float64) bool { return r <= RotationMid },
	LeafPage:       func(r float64) bool { return r <= RotationMid },
	LeafBackCover:  func(r float64) bool { return r < RotationMid },
}

// shaded is indexed by LeafKind: only pages darken toward the midpoint.
var shaded = [...]bool{
	LeafFrontCover: false,
	LeafPage:        true,
	LeafBackCover:   false,
}

var (
	shadeRotations  = []float64{RotationClosed, RotationMid, RotationOpen}
	shadeBrightness = []float64{1, 0.5, 1}
)

// LeafTransform is the derived visual state of one leaf for one frame.
type LeafTransform struct {
	Kind       LeafKind
	Index      int // page index for LeafPage, 0 for covers
	Rotation   float64
	ZIndex     int
	Brightness float64
	Fold       FoldState
}

// LeafRange returns the progress interval over which a leaf turns.
func LeafRange(kind LeafKind, index, pageCount int) (start, end float64) {
	switch kind {
	case LeafFrontCover:
		return 0, 1
	case LeafBackCover:
		return float64(pageCount + 1), float64(pageCount + 2)
	default:
		a := float64(index + 1)
		return a, a + 1
	}
}

// DeriveLeaf computes a leaf's transform from the smoothed progress. It is a
// pure function of its arguments.
func DeriveLeaf(kind LeafKind, index, pageCount int, smoothed float64) LeafTransform {
	start, end := LeafRange(kind, index, pageCount)
	rot := LerpClamped(smoothed, start, end, RotationClosed, RotationOpen)
	fold := ClassifyFold(rot)

	turned := 0
	if stackedTurned[kind](rot) {
		turned = 1
	}
	bright := 1.0
	if shaded[kind] && fold.Flipping() {
		bright = Piecewise(rot, shadeRotations, shadeBrightness)
	}
	return LeafTransform{
		Kind:       kind,
		Index:      index,
		Rotation:   rot,
		ZIndex:     zOrder[kind][turned](pageCount, index),
		Brightness: bright,
		Fold:       fold,
	}
}

// PageTransform is DeriveLeaf for page i.
func PageTransform(i, pageCount int, smoothed float64) LeafTransform {
	return DeriveLeaf(LeafPage, i, pageCount, smoothed)
}

// FrontCoverTransform is DeriveLeaf for the front cover.
func FrontCoverTransform(pageCount int, smoothed float64) LeafTransform {
	return DeriveLeaf(LeafFrontCover, 0, pageCount, smoothed)
}

// BackCoverTransform is DeriveLeaf for the back cover.
func BackCoverTransform(pageCount int, smoothed float64) LeafTransform {
	return DeriveLeaf(LeafBackCover, 0, pageCount, smoothed)
}

// Frame is the snapshot every renderer reads for one tick. All leaf
// transforms are derived from the same Smoothed value.
type Frame struct {
	Progress float64 // raw target
	Smoothed float64
	Settled  bool
	Front    LeafTransform
	Back     LeafTransform
	Pages    []LeafTransform
	TiltX    float64 // degrees, constant
	TiltZ    float64 // degrees, dips toward -MaxTiltZ at the middle of the book
}

// ComputeFrame derives a whole frame from one smoothed progress value. pages
// is reused when it has enough capacity.
func ComputeFrame(cfg Config, progress, smoothed float64, settled bool, pages []LeafTransform) Frame {
	n := cfg.PageCount
	if cap(pages) < n {
		pages = make([]LeafTransform, n)
	}
	pages = pages[:n]
	for i := range pages {
		pages[i] = PageTransform(i, n, smoothed)
	}
	total := cfg.TotalSteps()
	return Frame{
		Progress: progress,
		Smoothed: smoothed,
		Settled:  settled,
		Front:    FrontCoverTransform(n, smoothed),
		Back:     BackCoverTransform(n, smoothed),
		Pages:    pages,
		TiltX:    cfg.Geometry.TiltX,
		TiltZ: Piecewise(smoothed,
			[]float64{0, total / 2, total},
			[]float64{0, -cfg.Geometry.MaxTiltZ, 0}),
	}
}

// DrawOrder appends every leaf to buf sorted by ascending ZIndex. Equal
// ZIndex values keep painter order: back cover, pages by index, front cover.
func (f *Frame) DrawOrder(buf []LeafTransform) []LeafTransform {
	buf = append(buf[:0], f.Back)
	buf = append(buf, f.Pages...)
	buf = append(buf, f.Front)
	sort.SliceStable(buf, func(i, j int) bool {
		return buf[i].ZIndex < buf[j].ZIndex
	})
	return buf
}

// LerpClamped maps x from [x0, x1] onto [y0, y1], holding y0 below x0 and y1
// above x1. The endpoints are returned exactly.
func LerpClamped(x, x0, x1, y0, y1 float64) float64 {
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

// Piecewise interpolates linearly through the breakpoints (xs[i], ys[i]).
// xs must be monotonic in either direction; outside the breakpoints the
// first or last y is held.
func Piecewise(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || len(ys) < n {
		return 0
	}
	if n == 1 {
		return ys[0]
	}
	ascending := xs[n-1] >= xs[0]
	before := func(a, b float64) bool {
		if ascending {
			return a <= b
		}
		return a >= b
	}
	if before(x, xs[0]) {
		return ys[0]
	}
	for i := 1; i < n; i++ {
		if before(x, xs[i]) {
			t := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + t*(ys[i]-ys[i-1])
		}
	}
	return ys[n-1]
}
