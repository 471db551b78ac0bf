package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// pointerID is the single pointer slot used for terminal mouse drags.
const pointerID = 0

// Update handles Bubbletea messages and advances the book once per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.book.Update(1 / float64(m.fps))
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// layout centers the book's pixel rectangle on the terminal.
func (m *Model) layout() {
	g := m.book.Config().Geometry
	w := float64(m.width) * cellWidthPx
	h := float64(m.height) * cellHeightPx
	m.book.Layout((w-g.Width)/2, (h-g.Height)/2)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := toPixels(msg.X, msg.Y)
	unit := m.book.Config().WheelUnit
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		m.book.Wheel(x, y, unit)
	case msg.Button == tea.MouseButtonWheelUp:
		m.book.Wheel(x, y, -unit)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.book.PointerDown(pointerID, x, y)
		m.dragging = true
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.book.PointerMove(pointerID, x, y)
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.book.PointerUp(pointerID, x, y)
		m.dragging = false
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if m.dragging {
			m.book.PointerCancel(pointerID)
			m.dragging = false
		}
		m.quitting = true
		return m, tea.Quit
	case "right", "down", "pgdown", "l", "j", " ":
		m.book.Nudge(1)
	case "left", "up", "pgup", "h", "k":
		m.book.Nudge(-1)
	case "home", "g":
		m.book.Nudge(-m.book.TotalSteps())
	case "end", "G":
		m.book.Nudge(m.book.TotalSteps())
	}
	return m, nil
}
