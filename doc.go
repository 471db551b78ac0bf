// Package flipbook is a scroll- and drag-driven page-flip book widget for
// [Ebitengine].
//
// A book is one continuous number, the progress: how many leaves have been
// turned. Wheel and drag input move a clamped target; a damped spring (via
// [harmonica]) chases it; every leaf derives its rotation, stacking order and
// shading from the spring's value as a pure function. Nothing else is state.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	book := flipbook.MustNewBook(flipbook.DefaultConfig())
//	flipbook.Run(flipbook.NewWidget(book), flipbook.RunConfig{
//		Title: "Book", Width: 800, Height: 700,
//	})
//
// For full control, implement [ebiten.Game] yourself, feed input to the
// [Book] and call [Book.Update] once per tick:
//
//	func (g *Game) Update() error {
//		if _, wy := ebiten.Wheel(); wy != 0 {
//			g.book.Wheel(mx, my, -wy*100)
//		}
//		g.book.Update(1.0 / float64(ebiten.TPS()))
//		return nil
//	}
//
// # Progress
//
// Progress lives in [0, pageCount+2]: [0, 1] turns the front cover, [i+1,
// i+2] turns page i, and the last unit turns the back cover. The
// [ProgressStore] clamps every write and drops non-finite ones.
//
// # Frames
//
// [Book.Update] steps the [SmoothingFilter] once and derives a [Frame] from
// that single value, so every leaf drawn in a tick reads the same snapshot.
// [ComputeFrame] and [DeriveLeaf] are usable without a Book or a window.
//
// # Headless runs
//
// [Simulator] steps a Book without Ebitengine's loop and, together with
// [ScriptRunner], replays wheel and drag scripts for tests and tooling.
//
// [Ebitengine]: https://ebitengine.org
// [harmonica]: https://github.com/charmbracelet/harmonica
package flipbook
