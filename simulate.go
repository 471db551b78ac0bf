package flipbook

// Snapshot is a labeled copy of a frame captured by a headless run.
type Snapshot struct {
	Label string
	Tick  uint64
	Frame Frame
}

// Simulator drives a Book without a window: one Step is one tick of a host
// loop running at TPS ticks per second.
type Simulator struct {
	InputQueue

	book      *Book
	tps       int
	runner    *ScriptRunner
	snapshots []Snapshot
}

// NewSimulator creates a headless driver for book. tps <= 0 means 60.
func NewSimulator(book *Book, tps int) *Simulator {
	if tps <= 0 {
		tps = 60
	}
	return &Simulator{book: book, tps: tps}
}

// Book returns the simulated book.
func (s *Simulator) Book() *Book { return s.book }

// SetScript attaches a script runner; it is stepped before each tick.
func (s *Simulator) SetScript(r *ScriptRunner) { s.runner = r }

// Screenshot records a copy of the current frame under label.
func (s *Simulator) Screenshot(label string) {
	f := *s.book.Frame()
	f.Pages = append([]LeafTransform(nil), f.Pages...)
	s.snapshots = append(s.snapshots, Snapshot{Label: label, Tick: s.book.Ticks(), Frame: f})
}

// Snapshots returns the frames recorded by Screenshot, in order.
func (s *Simulator) Snapshots() []Snapshot { return s.snapshots }

// Step runs one tick: script, one injected event, then the book update.
func (s *Simulator) Step() {
	if s.runner != nil {
		s.runner.step(s)
	}
	s.deliver(s.book)
	s.book.Update(1 / float64(s.tps))
}

// Settle steps until no input is pending, the script (if any) is done and
// the filter has settled, or maxFrames ticks have run. It returns the ticks
// run and whether the book settled.
func (s *Simulator) Settle(maxFrames int) (int, bool) {
	for i := 0; i < maxFrames; i++ {
		if s.idle() {
			return i, true
		}
		s.Step()
	}
	return maxFrames, s.idle()
}

func (s *Simulator) idle() bool {
	if s.Pending() > 0 {
		return false
	}
	if s.runner != nil && !s.runner.Done() {
		return false
	}
	// The frame is only refreshed by Update; the filter sees new targets
	// as soon as the store changes.
	return s.book.Filter().Settled()
}
