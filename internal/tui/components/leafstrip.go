package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/flipbook"
)

// LeafStrip draws every leaf of a frame as one glyph, in spine order from
// front cover to back cover.
type LeafStrip struct {
	cover lipgloss.Style
}

// NewLeafStrip creates a strip with the default cover style.
func NewLeafStrip() LeafStrip {
	return LeafStrip{cover: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Bold(true)}
}

// View renders f.
func (s LeafStrip) View(f *flipbook.Frame) string {
	var b strings.Builder
	b.WriteString(s.cover.Render(Glyph(f.Front.Fold)))
	for _, p := range f.Pages {
		b.WriteString(pageStyle(p.Brightness).Render(Glyph(p.Fold)))
	}
	b.WriteString(s.cover.Render(Glyph(f.Back.Fold)))
	return b.String()
}

// Glyph is the character drawn for a leaf in the given fold state.
func Glyph(fold flipbook.FoldState) string {
	switch fold {
	case flipbook.FoldRising:
		return "╲"
	case flipbook.FoldFalling:
		return "╱"
	case flipbook.FoldOpen:
		return "▁"
	default:
		return "▕"
	}
}

// pageStyle tints a page glyph by its brightness, darkest mid-turn.
func pageStyle(brightness float64) lipgloss.Style {
	v := int(0x60 + brightness*(0xF0-0x60))
	v = max(0, min(v, 0xFF))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", v, v, v)))
}
