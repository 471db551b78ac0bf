package flipbook

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when vertices are submitted.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// RGB builds an opaque Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}
}

// Scale multiplies the color channels by f, leaving alpha unchanged.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*c.A*255 + 0.5),
		G: uint8(clamp01(c.G)*c.A*255 + 0.5),
		B: uint8(clamp01(c.B)*c.A*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and projected vertices.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Inset grows (negative d) or shrinks (positive d) the rectangle on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// whitePixel is the 1x1 source image for every solid-color triangle.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(ColorWhite.toRGBA())
}

// LeafKind distinguishes the three kinds of sheets bound into a book.
type LeafKind uint8

const (
	LeafFrontCover LeafKind = iota // rotates over progress [0, 1]
	LeafPage                       // page i rotates over [i+1, i+2]
	LeafBackCover                  // rotates over [pageCount+1, pageCount+2]
)

// String returns a short lowercase name for the kind.
func (k LeafKind) String() string {
	switch k {
	case LeafFrontCover:
		return "front"
	case LeafPage:
		return "page"
	case LeafBackCover:
		return "back"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of input event routed to the book.
type EventType uint8

const (
	EventWheel     EventType = iota // fires for every wheel delta inside the hit region
	EventDragStart                  // fires when movement exceeds the drag dead zone
	EventDrag                       // fires each frame the dragging pointer moves
	EventDragEnd                    // fires when a drag ends by release or cancel
)
