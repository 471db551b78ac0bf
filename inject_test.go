package flipbook

import "testing"

func TestInjectDragFrameCount(t *testing.T) {
	tests := []struct {
		frames, want int
	}{
		{0, 2},
		{1, 2},
		{2, 2},
		{5, 5},
		{10, 10},
	}
	for _, tt := range tests {
		var q InputQueue
		q.InjectDrag(0, 0, 100, 0, tt.frames)
		if q.Pending() != tt.want {
			t.Errorf("InjectDrag(frames=%d) queued %d events, want %d", tt.frames, q.Pending(), tt.want)
		}
	}
}

func TestInjectDragInterpolates(t *testing.T) {
	var q InputQueue
	q.InjectDrag(0, 10, 90, 10, 5)

	wantX := []float64{0, 22.5, 45, 67.5, 90}
	wantPressed := []bool{true, true, true, true, false}
	for i, e := range q.events {
		if e.x != wantX[i] || e.y != 10 || e.pressed != wantPressed[i] {
			t.Errorf("event %d = %+v, want x=%v pressed=%v", i, e, wantX[i], wantPressed[i])
		}
	}
}

func TestDeliverOneEventPerFrame(t *testing.T) {
	b := newTestBook(t)
	x, y := bookCenter(b)

	var q InputQueue
	q.InjectWheel(x, y, 200)
	q.InjectWheel(x, y, 200)

	if !q.deliver(b) || b.Progress() != 1 {
		t.Fatalf("after first deliver: Progress=%v, want 1", b.Progress())
	}
	if !q.deliver(b) || b.Progress() != 2 {
		t.Fatalf("after second deliver: Progress=%v, want 2", b.Progress())
	}
	if q.deliver(b) {
		t.Error("deliver on empty queue reported an event")
	}
}

func TestDeliverDragAndCancel(t *testing.T) {
	b := newTestBook(t)
	b.Restore(5)
	x, y := bookCenter(b)

	var q InputQueue
	q.InjectPress(x, y)
	q.InjectMove(x-50, y)
	q.InjectCancel()
	q.InjectMove(x-100, y)
	for q.Pending() > 0 {
		q.deliver(b)
	}
	// Only the first 50px counted; the cancel ended the drag.
	if b.Progress() != 6 {
		t.Errorf("Progress() = %v, want 6", b.Progress())
	}
}
