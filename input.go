package flipbook

import "math"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Callback contexts ---

// WheelContext carries one wheel event. Deltas are in scroll units: positive
// DeltaY scrolls down, which advances the book.
type WheelContext struct {
	X, Y           float64
	DeltaX, DeltaY float64
}

// DragContext carries drag event data. DeltaX/DeltaY are the movement since
// the previous drag event of the same pointer; for EventDragStart they are
// measured from the press position.
type DragContext struct {
	PointerID      int
	X, Y           float64
	StartX, StartY float64
	DeltaX, DeltaY float64
	Cancelled      bool // set on EventDragEnd when the pointer was cancelled
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	armed    bool // press landed inside the hit region
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
}

// --- Handler registry ---

type wheelHandler struct {
	id uint32
	fn func(WheelContext)
}

type dragHandler struct {
	id uint32
	fn func(DragContext)
}

type handlerRegistry struct {
	wheel     []wheelHandler
	dragStart []dragHandler
	drag      []dragHandler
	dragEnd   []dragHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice, or
// removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventWheel:
		h.reg.wheel = removeWheelHandler(h.reg.wheel, h.id)
	case EventDragStart:
		h.reg.dragStart = removeDragHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeDragHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeDragHandler(h.reg.dragEnd, h.id)
	}
}

func removeWheelHandler(s []wheelHandler, id uint32) []wheelHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = wheelHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeDragHandler(s []dragHandler, id uint32) []dragHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = dragHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Router ---

// InputRouter turns raw pointer and wheel events into wheel and drag
// callbacks scoped to a hit region. The region may be larger than the
// visible book to make it easier to grab.
type InputRouter struct {
	region       Rect
	dragDeadZone float64
	handlers     handlerRegistry
	pointers     [maxPointers]pointerState
}

// NewInputRouter creates a router for the given hit region.
func NewInputRouter(region Rect, dragDeadZone float64) *InputRouter {
	return &InputRouter{region: region, dragDeadZone: dragDeadZone}
}

// HitRegion returns the region inside which presses and wheel events are
// accepted.
func (r *InputRouter) HitRegion() Rect {
	return r.region
}

// SetHitRegion moves the hit region, e.g. after the host layout changed.
func (r *InputRouter) SetHitRegion(region Rect) {
	r.region = region
}

// Dragging reports whether any pointer is currently dragging.
func (r *InputRouter) Dragging() bool {
	for i := range r.pointers {
		if r.pointers[i].dragging {
			return true
		}
	}
	return false
}

// OnWheel registers a callback for wheel events inside the hit region.
func (r *InputRouter) OnWheel(fn func(WheelContext)) CallbackHandle {
	r.handlers.nextID++
	id := r.handlers.nextID
	r.handlers.wheel = append(r.handlers.wheel, wheelHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &r.handlers, event: EventWheel}
}

// OnDragStart registers a callback for drag start events.
func (r *InputRouter) OnDragStart(fn func(DragContext)) CallbackHandle {
	return r.addDrag(&r.handlers.dragStart, EventDragStart, fn)
}

// OnDrag registers a callback for drag movement events.
func (r *InputRouter) OnDrag(fn func(DragContext)) CallbackHandle {
	return r.addDrag(&r.handlers.drag, EventDrag, fn)
}

// OnDragEnd registers a callback for drag end events.
func (r *InputRouter) OnDragEnd(fn func(DragContext)) CallbackHandle {
	return r.addDrag(&r.handlers.dragEnd, EventDragEnd, fn)
}

func (r *InputRouter) addDrag(list *[]dragHandler, event EventType, fn func(DragContext)) CallbackHandle {
	r.handlers.nextID++
	id := r.handlers.nextID
	*list = append(*list, dragHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &r.handlers, event: event}
}

// Wheel delivers a wheel event at pointer position (x, y). It reports
// whether the event was consumed: true when the pointer is inside the hit
// region and at least one wheel callback is registered. Hosts should not
// apply their own scrolling to consumed events.
func (r *InputRouter) Wheel(x, y, deltaX, deltaY float64) bool {
	if len(r.handlers.wheel) == 0 || !r.region.Contains(x, y) {
		return false
	}
	if deltaX == 0 && deltaY == 0 {
		return true
	}
	ctx := WheelContext{X: x, Y: y, DeltaX: deltaX, DeltaY: deltaY}
	for _, h := range r.handlers.wheel {
		h.fn(ctx)
	}
	return true
}

// PointerDown presses pointer id at (x, y). Presses outside the hit region
// never start a drag.
func (r *InputRouter) PointerDown(id int, x, y float64) {
	if id < 0 || id >= maxPointers {
		return
	}
	ps := &r.pointers[id]
	if ps.down {
		return
	}
	*ps = pointerState{
		down:   true,
		armed:  r.region.Contains(x, y),
		startX: x,
		startY: y,
		lastX:  x,
		lastY:  y,
	}
}

// PointerMove moves a pressed pointer. Once movement from the press exceeds
// the dead zone the drag starts; the first EventDrag carries the whole
// movement since the press so no distance is lost to the dead zone.
func (r *InputRouter) PointerMove(id int, x, y float64) {
	if id < 0 || id >= maxPointers {
		return
	}
	ps := &r.pointers[id]
	if !ps.down || !ps.armed || (x == ps.lastX && y == ps.lastY) {
		return
	}
	if !ps.dragging {
		dx := x - ps.startX
		dy := y - ps.startY
		if math.Sqrt(dx*dx+dy*dy) <= r.dragDeadZone {
			ps.lastX, ps.lastY = x, y
			return
		}
		ps.dragging = true
		ctx := DragContext{
			PointerID: id, X: x, Y: y, StartX: ps.startX, StartY: ps.startY,
			DeltaX: dx, DeltaY: dy,
		}
		fireDrag(r.handlers.dragStart, ctx)
		fireDrag(r.handlers.drag, ctx)
	} else {
		fireDrag(r.handlers.drag, DragContext{
			PointerID: id, X: x, Y: y, StartX: ps.startX, StartY: ps.startY,
			DeltaX: x - ps.lastX, DeltaY: y - ps.lastY,
		})
	}
	ps.lastX, ps.lastY = x, y
}

// PointerUp releases pointer id at (x, y), ending its drag.
func (r *InputRouter) PointerUp(id int, x, y float64) {
	if id < 0 || id >= maxPointers {
		return
	}
	if r.pointers[id].down {
		r.PointerMove(id, x, y)
	}
	r.endPointer(id, false)
}

// PointerCancel abandons pointer id without a final move, e.g. when the
// platform steals the gesture or a touch disappears.
func (r *InputRouter) PointerCancel(id int) {
	if id < 0 || id >= maxPointers {
		return
	}
	r.endPointer(id, true)
}

// CancelAll cancels every pressed pointer.
func (r *InputRouter) CancelAll() {
	for i := range r.pointers {
		if r.pointers[i].down {
			r.endPointer(i, true)
		}
	}
}

func (r *InputRouter) endPointer(id int, cancelled bool) {
	ps := &r.pointers[id]
	if ps.dragging {
		fireDrag(r.handlers.dragEnd, DragContext{
			PointerID: id, X: ps.lastX, Y: ps.lastY,
			StartX: ps.startX, StartY: ps.startY,
			Cancelled: cancelled,
		})
	}
	*ps = pointerState{}
}

// processPointer runs the level-triggered pointer state machine used when
// polling devices once per frame.
func (r *InputRouter) processPointer(id int, x, y float64, pressed bool) {
	if id < 0 || id >= maxPointers {
		return
	}
	ps := &r.pointers[id]
	switch {
	case pressed && !ps.down:
		r.PointerDown(id, x, y)
	case pressed && ps.down:
		r.PointerMove(id, x, y)
	case !pressed && ps.down:
		r.PointerUp(id, x, y)
	}
}

func fireDrag(list []dragHandler, ctx DragContext) {
	for _, h := range list {
		h.fn(ctx)
	}
}
