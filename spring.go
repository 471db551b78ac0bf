package flipbook

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// SmoothingFilter is a damped spring that chases a moving target. It turns
// bursty input deltas into continuous per-frame motion, decoupling input
// frequency from render frequency.
//
// The spring is always relative to its own current state: retargeting keeps
// position and velocity, so rapid input never produces a jump.
type SmoothingFilter struct {
	cfg    SpringConfig
	omega  float64 // angular frequency, sqrt(k/m)
	zeta   float64 // damping ratio, c / (2*sqrt(k*m))
	spring harmonica.Spring
	dt     float64 // step size the cached spring coefficients were built for

	pos     float64
	vel     float64
	target  float64
	settled bool
}

// NewSmoothingFilter converts stiffness/damping/mass into the angular
// frequency and damping ratio harmonica expects. The filter starts settled
// at 0.
func NewSmoothingFilter(cfg SpringConfig) *SmoothingFilter {
	f := &SmoothingFilter{
		cfg:     cfg,
		omega:   math.Sqrt(cfg.Stiffness / cfg.Mass),
		zeta:    cfg.Damping / (2 * math.Sqrt(cfg.Stiffness*cfg.Mass)),
		settled: true,
	}
	return f
}

// DampingRatio reports the spring's damping ratio. Values >= 1 never
// overshoot a target approached from rest.
func (f *SmoothingFilter) DampingRatio() float64 {
	return f.zeta
}

// SetTarget retargets the spring. Convergence restarts from the current
// position and velocity.
func (f *SmoothingFilter) SetTarget(target float64) {
	if !isFinite(target) {
		return
	}
	f.target = target
	if f.pos != target || f.vel != 0 {
		f.settled = false
	}
}

// Snap places the filter at v with no velocity, settled.
func (f *SmoothingFilter) Snap(v float64) {
	if !isFinite(v) {
		return
	}
	f.pos = v
	f.vel = 0
	f.target = v
	f.settled = true
}

// Step advances the spring by dt seconds and returns the new value. Once
// within RestDelta of the target and slower than RestSpeed the filter snaps
// to the target and stops integrating until retargeted.
func (f *SmoothingFilter) Step(dt float64) float64 {
	if f.settled || dt <= 0 || !isFinite(dt) {
		return f.pos
	}
	if dt != f.dt {
		f.spring = harmonica.NewSpring(dt, f.omega, f.zeta)
		f.dt = dt
	}
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, f.target)

	if math.Abs(f.target-f.pos) < f.cfg.RestDelta && math.Abs(f.vel) < f.cfg.RestSpeed {
		f.pos = f.target
		f.vel = 0
		f.settled = true
	}
	return f.pos
}

// Value returns the current smoothed value.
func (f *SmoothingFilter) Value() float64 {
	return f.pos
}

// Velocity returns the current velocity in units per second.
func (f *SmoothingFilter) Velocity() float64 {
	return f.vel
}

// Target returns the value the filter is converging toward.
func (f *SmoothingFilter) Target() float64 {
	return f.target
}

// Settled reports whether the filter has come to rest on its target.
func (f *SmoothingFilter) Settled() bool {
	return f.settled
}
