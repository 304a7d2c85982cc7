package countdown

import (
	"sync"
	"testing"
)

func TestHorizonDefaults(t *testing.T) {
	h := NewHorizon(0, 0)
	if h.Years() != 3 {
		t.Errorf("Years() = %d, want 3", h.Years())
	}
	if h.Step() != 2 {
		t.Errorf("Step() = %d, want 2", h.Step())
	}
}

func TestHorizonExtend(t *testing.T) {
	h := NewHorizon(3, 2)

	if got := h.Extend(); got != 5 {
		t.Errorf("first Extend() = %d, want 5", got)
	}
	if got := h.Extend(); got != 7 {
		t.Errorf("second Extend() = %d, want 7", got)
	}
	if h.Years() != 7 {
		t.Errorf("Years() = %d, want 7", h.Years())
	}
}

func TestHorizonRaiseNeverShrinks(t *testing.T) {
	h := NewHorizon(5, 2)

	if got := h.Raise(3); got != 5 {
		t.Errorf("Raise(3) = %d, want 5", got)
	}
	if got := h.Raise(9); got != 9 {
		t.Errorf("Raise(9) = %d, want 9", got)
	}
}

func TestHorizonConcurrentExtend(t *testing.T) {
	h := NewHorizon(3, 2)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Extend()
		}()
	}
	wg.Wait()

	if h.Years() != 103 {
		t.Errorf("Years() = %d, want 103", h.Years())
	}
}
