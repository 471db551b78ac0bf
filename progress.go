package flipbook

import "math"

// ProgressStore holds the raw count of pages turned, the single source of
// truth for a book's state. The value always lies in [0, TotalSteps()].
//
// A store is owned by exactly one Book and is not safe for concurrent use;
// like the rest of the package it runs on the host's update loop.
type ProgressStore struct {
	value    float64
	max      float64
	onChange func(target float64)
}

// NewProgressStore creates a store clamped to [0, totalSteps], starting at 0.
func NewProgressStore(totalSteps float64) *ProgressStore {
	if !isFinite(totalSteps) || totalSteps < 0 {
		totalSteps = 0
	}
	return &ProgressStore{max: totalSteps}
}

// Get returns the current raw progress.
func (p *ProgressStore) Get() float64 {
	return p.value
}

// TotalSteps returns the upper bound of the progress domain.
func (p *ProgressStore) TotalSteps() float64 {
	return p.max
}

// Set clamps v into [0, TotalSteps()] and stores it, then notifies the
// listener with the stored value. Non-finite values are dropped.
func (p *ProgressStore) Set(v float64) {
	if !isFinite(v) {
		return
	}
	p.value = clampRange(v, 0, p.max)
	if p.onChange != nil {
		p.onChange(p.value)
	}
}

// Delta moves the progress by d. Equivalent to Set(Get() + d).
func (p *ProgressStore) Delta(d float64) {
	if !isFinite(d) {
		return
	}
	p.Set(p.value + d)
}

// OnChange installs the listener notified after every accepted Set. Passing
// nil detaches it.
func (p *ProgressStore) OnChange(fn func(target float64)) {
	p.onChange = fn
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
