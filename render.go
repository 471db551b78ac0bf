package flipbook

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Palette holds the leaf face colors.
type Palette struct {
	Background   Color
	PageFront    Color
	PageBack     Color
	PageRule     Color // faint rule lines printed on both page faces
	FrontOutside Color
	FrontInside  Color
	Emblem       Color
	BackInside   Color
	BackOutside  Color
}

// DefaultPalette returns the paper-and-charcoal look of the stock book.
func DefaultPalette() Palette {
	return Palette{
		Background:   RGB(0xE5, 0xE5, 0xE5),
		PageFront:    RGB(0xFA, 0xFA, 0xFA),
		PageBack:     RGB(0xF0, 0xF0, 0xF0),
		PageRule:     Color{A: 0.1},
		FrontOutside: RGB(0x1A, 0x1A, 0x1A),
		FrontInside:  RGB(0x22, 0x22, 0x22),
		Emblem:       RGB(0x2A, 0x2A, 0x2A),
		BackInside:   RGB(0x11, 0x11, 0x11),
		BackOutside:  RGB(0x1A, 0x1A, 0x1A),
	}
}

// Rule line layout on a page face, in leaf-local pixels.
const (
	ruleCount   = 12
	rulePadding = 16.0
	ruleHeight  = 6.0
	ruleGap     = 12.0
)

// Projector maps leaf-local points through the leaf's spine rotation, the
// book tilt and a perspective divide into screen space.
type Projector struct {
	Geometry Geometry
	Center   Vec2 // screen position of the book's center
	TiltX    float64
	TiltZ    float64

	sinX, cosX float64
	sinZ, cosZ float64
}

// NewProjector precomputes the tilt rotation for one frame.
func NewProjector(g Geometry, center Vec2, tiltX, tiltZ float64) Projector {
	p := Projector{Geometry: g, Center: center, TiltX: tiltX, TiltZ: tiltZ}
	p.sinX, p.cosX = math.Sincos(tiltX * math.Pi / 180)
	p.sinZ, p.cosZ = math.Sincos(tiltZ * math.Pi / 180)
	return p
}

// Project maps the leaf-local point (u, v), u measured from the spine and v
// from the top edge, of a leaf rotated by rotation degrees.
func (p Projector) Project(rotation, u, v float64) Vec2 {
	g := p.Geometry
	sinY, cosY := math.Sincos(rotation * math.Pi / 180)

	// Rotate about the spine (y axis through x=0). z points at the viewer.
	x := u * cosY
	z := -u * sinY

	// Re-center on the book's middle.
	x -= g.Width / 2
	y := v - g.Height/2

	// Book tilt: about z, then about x.
	x, y = x*p.cosZ-y*p.sinZ, x*p.sinZ+y*p.cosZ
	y, z = y*p.cosX-z*p.sinX, y*p.sinX+z*p.cosX

	scale := 1.0
	if d := g.Perspective - z; d > 1e-6 {
		scale = g.Perspective / d
	}
	return Vec2{X: p.Center.X + x*scale, Y: p.Center.Y + y*scale}
}

// Quad projects the leaf-local rectangle r of a leaf at rotation. Corners are
// returned top-left, top-right, bottom-right, bottom-left.
func (p Projector) Quad(rotation float64, r Rect) [4]Vec2 {
	return [4]Vec2{
		p.Project(rotation, r.X, r.Y),
		p.Project(rotation, r.X+r.Width, r.Y),
		p.Project(rotation, r.X+r.Width, r.Y+r.Height),
		p.Project(rotation, r.X, r.Y+r.Height),
	}
}

// SignedArea is the shoelace area of a projected quad. It is positive while
// the leaf's front face points at the viewer.
func SignedArea(q [4]Vec2) float64 {
	var sum float64
	for i := range q {
		j := (i + 1) % len(q)
		sum += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	return sum / 2
}

// Renderer draws a Book's current frame as projected quads, one batch per
// frame.
type Renderer struct {
	Palette Palette

	verts []ebiten.Vertex
	inds  []uint16
}

// NewRenderer creates a renderer with the default palette.
func NewRenderer() *Renderer {
	return &Renderer{Palette: DefaultPalette()}
}

// Draw fills the background and paints every leaf back to front.
func (r *Renderer) Draw(screen *ebiten.Image, b *Book) {
	screen.Fill(r.Palette.Background.toRGBA())
	r.build(b)
	if len(r.inds) == 0 {
		return
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(r.verts, r.inds, whitePixel, op)
}

// build fills the vertex buffers for the current frame without touching the
// GPU.
func (r *Renderer) build(b *Book) {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]

	f := b.Frame()
	g := b.Config().Geometry
	bounds := b.Bounds()
	center := Vec2{X: bounds.X + bounds.Width/2, Y: bounds.Y + bounds.Height/2}
	proj := NewProjector(g, center, f.TiltX, f.TiltZ)
	face := Rect{Width: g.Width, Height: g.Height}

	for _, lt := range b.DrawOrder() {
		q := proj.Quad(lt.Rotation, face)
		area := SignedArea(q)
		if area == 0 {
			continue
		}
		front := area > 0
		r.appendQuad(q, r.faceColor(lt.Kind, front).Scale(lt.Brightness))

		switch {
		case lt.Kind == LeafPage:
			rule := r.Palette.PageRule
			for i := 0; i < ruleCount; i++ {
				y := rulePadding + float64(i)*(ruleHeight+ruleGap)
				if y+ruleHeight > g.Height-rulePadding {
					break
				}
				rr := Rect{X: rulePadding, Y: y, Width: g.Width - 2*rulePadding, Height: ruleHeight}
				r.appendQuad(proj.Quad(lt.Rotation, rr), rule)
			}
		case lt.Kind == LeafFrontCover && front:
			const emblem = 80.0
			er := Rect{X: (g.Width - emblem) / 2, Y: g.Height/2 - emblem, Width: emblem, Height: emblem}
			r.appendQuad(proj.Quad(lt.Rotation, er), r.Palette.Emblem)
			bar := Rect{X: g.Width/2 - 16, Y: g.Height/2 + 28, Width: 32, Height: 2}
			r.appendQuad(proj.Quad(lt.Rotation, bar), Color{R: 1, G: 1, B: 1, A: 0.2})
		}
	}
}

func (r *Renderer) faceColor(kind LeafKind, front bool) Color {
	p := r.Palette
	switch kind {
	case LeafFrontCover:
		if front {
			return p.FrontOutside
		}
		return p.FrontInside
	case LeafBackCover:
		if front {
			return p.BackInside
		}
		return p.BackOutside
	default:
		if front {
			return p.PageFront
		}
		return p.PageBack
	}
}

// appendQuad appends two triangles covering q, colored c.
func (r *Renderer) appendQuad(q [4]Vec2, c Color) {
	base := uint16(len(r.verts))
	for _, p := range q {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(c.R),
			ColorG: float32(c.G),
			ColorB: float32(c.B),
			ColorA: float32(c.A),
		})
	}
	r.inds = append(r.inds, base, base+1, base+2, base, base+2, base+3)
}
