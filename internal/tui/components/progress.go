package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	minBarWidth = 10
	maxBarWidth = 60
)

// Progress renders how far through the book the reader is.
type Progress struct {
	bar progress.Model
}

// NewProgress creates a progress component.
func NewProgress() Progress {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30
	return Progress{bar: bar}
}

// View renders value out of total, fitting the bar to termWidth when known.
func (p Progress) View(value, total float64, termWidth int) string {
	ratio := 0.0
	if total > 0 {
		ratio = math.Max(0, math.Min(1, value/total))
	}
	if termWidth > 0 {
		p.bar.Width = max(minBarWidth, min(maxBarWidth, termWidth-8))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%3.0f%%", ratio*100))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(ratio))
}
