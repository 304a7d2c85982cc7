package countdown

import "sync"

const (
	DefaultHorizonYears = 3
	DefaultHorizonStep  = 2
)

// Horizon is how many years past the current one recurring events are
// expanded over. It only grows.
type Horizon struct {
	mu    sync.Mutex
	years int
	step  int
}

// NewHorizon returns a Horizon starting at initial years and growing by step.
// Non-positive arguments fall back to the defaults.
func NewHorizon(initial, step int) *Horizon {
	if initial <= 0 {
		initial = DefaultHorizonYears
	}
	if step <= 0 {
		step = DefaultHorizonStep
	}
	return &Horizon{years: initial, step: step}
}

// Years returns the current horizon.
func (h *Horizon) Years() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.years
}

// Step returns the amount Extend adds.
func (h *Horizon) Step() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.step
}

// Extend grows the horizon by one step and returns the new value.
func (h *Horizon) Extend() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.years += h.step
	return h.years
}

// Raise moves the horizon up to years if that is larger. It is used to
// restore a persisted value and never shrinks the horizon.
func (h *Horizon) Raise(years int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if years > h.years {
		h.years = years
	}
	return h.years
}
