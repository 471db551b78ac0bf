package flipbook

// WheelAdapter converts vertical wheel deltas into progress deltas.
type WheelAdapter struct {
	Sensitivity float64
	store       *ProgressStore
	handle      CallbackHandle
}

// NewWheelAdapter binds a wheel adapter to store.
func NewWheelAdapter(store *ProgressStore, sensitivity float64) *WheelAdapter {
	return &WheelAdapter{Sensitivity: sensitivity, store: store}
}

// Apply feeds one wheel delta (scroll units, positive = down) to the store.
// Non-finite deltas are dropped.
func (a *WheelAdapter) Apply(deltaY float64) {
	d := deltaY * a.Sensitivity
	if !isFinite(d) {
		return
	}
	a.store.Delta(d)
}

// Attach subscribes the adapter to router's wheel events.
func (a *WheelAdapter) Attach(router *InputRouter) {
	a.handle.Remove()
	a.handle = router.OnWheel(func(ctx WheelContext) { a.Apply(ctx.DeltaY) })
}

// Detach unsubscribes the adapter. Safe to call more than once.
func (a *WheelAdapter) Detach() {
	a.handle.Remove()
	a.handle = CallbackHandle{}
}

// DragAdapter converts horizontal drag movement into progress deltas.
// Dragging left advances the book, so the sign is inverted.
type DragAdapter struct {
	Sensitivity float64
	store       *ProgressStore
	handle      CallbackHandle
}

// NewDragAdapter binds a drag adapter to store.
func NewDragAdapter(store *ProgressStore, sensitivity float64) *DragAdapter {
	return &DragAdapter{Sensitivity: sensitivity, store: store}
}

// Apply feeds one horizontal drag delta (pixels) to the store. Non-finite
// deltas are dropped.
func (a *DragAdapter) Apply(deltaX float64) {
	d := -deltaX * a.Sensitivity
	if !isFinite(d) {
		return
	}
	a.store.Delta(d)
}

// Attach subscribes the adapter to router's drag events.
func (a *DragAdapter) Attach(router *InputRouter) {
	a.handle.Remove()
	a.handle = router.OnDrag(func(ctx DragContext) { a.Apply(ctx.DeltaX) })
}

// Detach unsubscribes the adapter. Safe to call more than once.
func (a *DragAdapter) Detach() {
	a.handle.Remove()
	a.handle = CallbackHandle{}
}
