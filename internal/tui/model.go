package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/flipbook"
	"github.com/phanxgames/flipbook/internal/tui/components"
)

// Terminal cells are mapped to book pixels at this size, so pointer drags
// travel roughly as far as they would with a mouse over the window.
const (
	cellWidthPx  = 8.0
	cellHeightPx = 16.0
)

const defaultFPS = 60

type tickMsg time.Time

// Model drives a flipbook.Book from terminal input and renders it as a
// strip of leaves with a progress bar.
type Model struct {
	book     *flipbook.Book
	strip    components.LeafStrip
	progress components.Progress
	fps      int

	width, height int
	dragging      bool
	quitting      bool
}

// NewModel wraps book. fps <= 0 uses 60 ticks per second.
func NewModel(book *flipbook.Book, fps int) Model {
	if fps <= 0 {
		fps = defaultFPS
	}
	return Model{
		book:     book,
		strip:    components.NewLeafStrip(),
		progress: components.NewProgress(),
		fps:      fps,
	}
}

// Init starts the frame ticker.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Book returns the driven book.
func (m Model) Book() *flipbook.Book {
	return m.book
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts a full-screen program for book and blocks until the user
// quits or ctx is done. The book's progress at exit is returned.
func Run(ctx context.Context, book *flipbook.Book, fps int) (float64, error) {
	p := tea.NewProgram(NewModel(book, fps),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return book.Progress(), err
	}
	return book.Progress(), nil
}

// toPixels converts a terminal cell to the book's pixel space.
func toPixels(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * cellWidthPx, (float64(row) + 0.5) * cellHeightPx
}
