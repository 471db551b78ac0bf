package flipbook

type syntheticKind uint8

const (
	synthPointer syntheticKind = iota
	synthWheel
	synthCancel
)

// syntheticEvent is a single injected input event in screen coordinates.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	pressed bool
	deltaY  float64
}

// InputQueue holds synthetic input. Hosts pop one event per frame, so a
// queued drag plays out over as many frames as it has events. Embedded by
// Widget and Simulator.
type InputQueue struct {
	events []syntheticEvent
}

// InjectPress queues a pointer press at the given screen coordinates.
func (q *InputQueue) InjectPress(x, y float64) {
	q.events = append(q.events, syntheticEvent{kind: synthPointer, x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (q *InputQueue) InjectMove(x, y float64) {
	q.events = append(q.events, syntheticEvent{kind: synthPointer, x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (q *InputQueue) InjectRelease(x, y float64) {
	q.events = append(q.events, syntheticEvent{kind: synthPointer, x: x, y: y, pressed: false})
}

// InjectCancel queues a cancellation of the injected pointer.
func (q *InputQueue) InjectCancel() {
	q.events = append(q.events, syntheticEvent{kind: synthCancel})
}

// InjectWheel queues a wheel event at (x, y) with a vertical delta in scroll
// units.
func (q *InputQueue) InjectWheel(x, y, deltaY float64) {
	q.events = append(q.events, syntheticEvent{kind: synthWheel, x: x, y: y, deltaY: deltaY})
}

// InjectDrag queues a full drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The sequence consumes `frames` frames; the minimum is 2.
func (q *InputQueue) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	q.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		q.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	q.InjectRelease(toX, toY)
}

// Pending reports how many injected events are still queued.
func (q *InputQueue) Pending() int {
	return len(q.events)
}

// deliver pops one event and feeds it to the book. Returns true if an event
// was consumed, in which case hosts skip device input for the frame.
func (q *InputQueue) deliver(b *Book) bool {
	if len(q.events) == 0 {
		return false
	}
	evt := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]

	switch evt.kind {
	case synthWheel:
		b.Wheel(evt.x, evt.y, evt.deltaY)
	case synthCancel:
		b.PointerCancel(0)
	default:
		b.router.processPointer(0, evt.x, evt.y, evt.pressed)
	}
	return true
}
