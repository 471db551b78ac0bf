package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// View renders the leaf strip, the position line and the progress bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	f := m.book.Frame()
	total := m.book.TotalSteps()

	lines := []string{
		titleStyle.Render("flipbook"),
		"",
		m.strip.View(f),
		"",
		fmt.Sprintf("%s  %s",
			positionLabel(f.Smoothed, m.book.Config().PageCount),
			mutedStyle.Render(fmt.Sprintf("target %.2f / %.0f", f.Progress, total))),
		m.progress.View(f.Smoothed, total, m.width),
	}
	if !m.book.Interacted() {
		lines = append(lines, "", mutedStyle.Render("scroll, drag or use the arrow keys · q to quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// positionLabel names the spread the reader is looking at.
func positionLabel(smoothed float64, pageCount int) string {
	step := int(math.Floor(smoothed + 0.5))
	switch {
	case step <= 0:
		return "front cover"
	case step > pageCount+1:
		return "back cover"
	case step == pageCount+1:
		return "end pages"
	default:
		return fmt.Sprintf("page %d of %d", step, pageCount)
	}
}
