// Package reticle lays out the crosshair primitives and drives the cross
// spin animation on a render surface.
package reticle

import (
	"log/slog"
	"time"

	"reticlego/pkg/logging"
	"reticlego/pkg/model"
)

// Surface is where primitives are drawn.
type Surface interface {
	// Size is the current drawable area.
	Size() Size
	// Draw applies every primitive attribute.
	Draw(g Geometry)
	// StopSpin cancels any cross animation and leaves the cross at rotation 0
	// about center.
	StopSpin(center Point)
	// StartSpin rotates the cross from 0 to 360 degrees about center over
	// period and calls done once when the turn completes. done must be
	// invoked on the same goroutine that drives the renderer.
	StartSpin(center Point, period time.Duration, done func())
}

// State is the cross animation state.
type State int

const (
	Idle State = iota
	Spinning
)

func (s State) String() string {
	if s == Spinning {
		return "spinning"
	}
	return "idle"
}

// Renderer keeps the centre and spin period between renders. It is not safe
// for concurrent use.
type Renderer struct {
	surface  Surface
	center   Point
	period   time.Duration
	geometry Geometry
	last     model.Snapshot
	gen      uint64 // bumped on every start/stop; stale completions are ignored
	restarts int
}

// NewRenderer creates an idle renderer on surface.
func NewRenderer(s Surface) *Renderer {
	return &Renderer{surface: s}
}

// Render redraws from snap and updates the spin animation. The animation is
// restarted when the centre moved or the period changed to a positive value,
// and stopped when the period is 0; otherwise it keeps running undisturbed.
func (r *Renderer) Render(snap model.Snapshot) {
	r.last = snap
	cfg := ParseConfig(snap)
	newCenter := r.updateCenter()

	r.geometry = Compute(r.center, cfg)
	r.surface.Draw(r.geometry)

	period := cfg.Cross.SpinPeriod
	if !newCenter && period == r.period {
		return
	}
	if period > 0 {
		r.period = period
		r.startSpin()
	} else {
		r.period = 0
		r.stopSpin()
	}
}

// Refresh re-renders the last snapshot, picking up a resized surface.
func (r *Renderer) Refresh() {
	r.Render(r.last)
}

// State reports the animation state and, when spinning, its period.
func (r *Renderer) State() (State, time.Duration) {
	if r.period > 0 {
		return Spinning, r.period
	}
	return Idle, 0
}

// Geometry returns the primitives of the last render.
func (r *Renderer) Geometry() Geometry {
	return r.geometry
}

// Center returns the centre used by the last render.
func (r *Renderer) Center() Point {
	return r.center
}

// Restarts counts how many times the animation was (re)started by a render.
func (r *Renderer) Restarts() int {
	return r.restarts
}

func (r *Renderer) updateCenter() bool {
	c := r.surface.Size().Center()
	if c == r.center {
		return false
	}
	r.center = c
	return true
}

func (r *Renderer) stopSpin() {
	r.gen++
	r.surface.StopSpin(r.center)
}

func (r *Renderer) startSpin() {
	r.restarts++
	r.spin()
}

func (r *Renderer) spin() {
	r.stopSpin()
	gen := r.gen
	r.surface.StartSpin(r.center, r.period, func() { r.animationEnded(gen) })
}

// animationEnded loops the animation: each completed turn starts the next.
func (r *Renderer) animationEnded(gen uint64) {
	if gen != r.gen || r.period <= 0 {
		logging.Trace("Reticle: stale animation completion ignored")
		return
	}
	slog.Debug("Reticle: spin turn complete", "period", r.period)
	r.spin()
}
