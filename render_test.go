package flipbook

import (
	"math"
	"testing"
)

func approxVec(a, b Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func testProjector(tiltX, tiltZ float64) Projector {
	g := DefaultConfig().Geometry
	return NewProjector(g, Vec2{X: 150, Y: 220}, tiltX, tiltZ)
}

func TestProjectFlatLeaf(t *testing.T) {
	p := testProjector(0, 0)
	tests := []struct {
		u, v float64
		want Vec2
	}{
		{0, 0, Vec2{0, 0}},
		{300, 0, Vec2{300, 0}},
		{300, 440, Vec2{300, 440}},
		{150, 220, Vec2{150, 220}},
	}
	for _, tt := range tests {
		if got := p.Project(0, tt.u, tt.v); !approxVec(got, tt.want) {
			t.Errorf("Project(0, %v, %v) = %+v, want %+v", tt.u, tt.v, got, tt.want)
		}
	}
}

func TestProjectTurnedLeafMirrorsAcrossSpine(t *testing.T) {
	p := testProjector(0, 0)
	got := p.Project(-180, 300, 0)
	if !approxVec(got, Vec2{-300, 0}) {
		t.Errorf("Project(-180, 300, 0) = %+v, want (-300, 0)", got)
	}
}

func TestProjectPerspective(t *testing.T) {
	p := testProjector(0, 0)
	// Edge-on, the free edge is 300px toward the viewer: scale 1500/1200.
	got := p.Project(-90, 300, 0)
	want := Vec2{X: 150 - 150*1.25, Y: 220 - 220*1.25}
	if !approxVec(got, want) {
		t.Errorf("Project(-90, 300, 0) = %+v, want %+v", got, want)
	}
}

func TestProjectTiltZRotatesAboutCenter(t *testing.T) {
	p := testProjector(0, -90)
	// The book center is fixed under any tilt.
	if got := p.Project(0, 150, 220); !approxVec(got, Vec2{150, 220}) {
		t.Errorf("center moved to %+v", got)
	}
	// (-150, 0) from the center, rotated -90 degrees about z (y down).
	got := p.Project(0, 0, 220)
	if !approxVec(got, Vec2{150, 220 + 150}) {
		t.Errorf("Project(0, 0, 220) = %+v, want (150, 370)", got)
	}
}

func TestSignedAreaFacing(t *testing.T) {
	face := Rect{Width: 300, Height: 440}
	for _, tilt := range []float64{0, 10} {
		p := testProjector(tilt, -2)
		tests := []struct {
			rotation float64
			front    bool
		}{
			{0, true},
			{-30, true},
			{-150, false},
			{-180, false},
		}
		for _, tt := range tests {
			area := SignedArea(p.Quad(tt.rotation, face))
			if (area > 0) != tt.front {
				t.Errorf("tilt %v rotation %v: area %v, want front=%v", tilt, tt.rotation, area, tt.front)
			}
		}
	}
	flat := SignedArea(testProjector(0, 0).Quad(0, face))
	if math.Abs(flat-300*440) > 1e-6 {
		t.Errorf("flat area = %v, want %v", flat, 300*440)
	}
}

func TestRendererBuildClosedBook(t *testing.T) {
	b := newTestBook(t)
	r := NewRenderer()
	r.build(b)

	// 16 pages with 12 rules each, the front cover with emblem and bar, the
	// back cover.
	wantQuads := 16*(1+ruleCount) + 3 + 1
	if len(r.verts) != wantQuads*4 || len(r.inds) != wantQuads*6 {
		t.Fatalf("verts=%d inds=%d, want %d %d", len(r.verts), len(r.inds), wantQuads*4, wantQuads*6)
	}
	// The front cover is drawn last, and its outside color shows.
	last := len(r.verts) - 3*4
	c := r.Palette.FrontOutside
	if v := r.verts[last]; v.ColorR != float32(c.R) || v.ColorA != float32(c.A) {
		t.Errorf("front cover vertex color = %v,%v, want %v,%v", v.ColorR, v.ColorA, c.R, c.A)
	}
}

func TestRendererBuildOpenBook(t *testing.T) {
	b := newTestBook(t)
	b.Restore(18)
	r := NewRenderer()
	r.build(b)

	// The front cover shows its inside, without the emblem.
	wantQuads := 16*(1+ruleCount) + 1 + 1
	if len(r.verts) != wantQuads*4 {
		t.Fatalf("verts=%d, want %d", len(r.verts), wantQuads*4)
	}
	// Rebuilding reuses the buffers.
	r.build(b)
	if len(r.verts) != wantQuads*4 {
		t.Errorf("rebuild appended: verts=%d", len(r.verts))
	}
}

func TestRendererShadesMidTurnPage(t *testing.T) {
	b := newTestBook(t)
	b.Restore(1.25) // page 0 at -45 degrees, brightness 0.75
	r := NewRenderer()
	r.build(b)

	want := r.Palette.PageFront.Scale(0.75)
	found := false
	for _, v := range r.verts {
		if v.ColorR == float32(want.R) && v.ColorG == float32(want.G) {
			found = true
			break
		}
	}
	if !found {
		t.Error("no vertex carries the shaded page color")
	}
}

func TestFaceColor(t *testing.T) {
	r := NewRenderer()
	p := r.Palette
	tests := []struct {
		kind  LeafKind
		front bool
		want  Color
	}{
		{LeafFrontCover, true, p.FrontOutside},
		{LeafFrontCover, false, p.FrontInside},
		{LeafPage, true, p.PageFront},
		{LeafPage, false, p.PageBack},
		{LeafBackCover, true, p.BackInside},
		{LeafBackCover, false, p.BackOutside},
	}
	for _, tt := range tests {
		if got := r.faceColor(tt.kind, tt.front); got != tt.want {
			t.Errorf("faceColor(%v, %v) = %+v, want %+v", tt.kind, tt.front, got, tt.want)
		}
	}
}
