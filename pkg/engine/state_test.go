package engine

import (
	"testing"
	"time"

	"github.com/griddeck/griddeck/pkg/grid"
)

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestAnimationClearsAfterDelay(t *testing.T) {
	e := newTestEngine(t)
	layout := []grid.Bounds{{ID: "a", X: 0, Y: 0, W: 4, H: 2}}

	_, err := e.AutoArrange(layout, ArrangeOptions{AnimationDuration: 10 * time.Millisecond})
	if err != nil {
		t.Fatalf("AutoArrange() error = %v", err)
	}

	if st := e.State(); !st.IsAnimating {
		t.Fatal("should be animating right after arrange")
	}

	cleared := waitFor(t, time.Second, func() bool {
		st := e.State()
		return !st.IsAnimating && st.Phase == PhaseIdle
	})
	if !cleared {
		t.Error("animation state never cleared")
	}
}

func TestNewArrangeCancelsPendingClear(t *testing.T) {
	e := newTestEngine(t)
	layout := []grid.Bounds{{ID: "a", X: 0, Y: 0, W: 4, H: 2}}

	// First arrangement would clear almost immediately.
	if _, err := e.AutoArrange(layout, ArrangeOptions{AnimationDuration: time.Millisecond}); err != nil {
		t.Fatalf("AutoArrange() error = %v", err)
	}
	// Second arrangement holds the highlight for much longer; the
	// first clear task must not fire into it.
	if _, err := e.AutoArrange(layout, ArrangeOptions{AnimationDuration: 10 * time.Second}); err != nil {
		t.Fatalf("AutoArrange() error = %v", err)
	}

	// Give the stale timer ample time to have fired.
	time.Sleep(250 * time.Millisecond)

	if st := e.State(); !st.IsAnimating {
		t.Error("stale clear task cancelled the fresh highlight")
	}
}

func TestSynchronousClearBeatsTimer(t *testing.T) {
	e := newTestEngine(t)
	layout := []grid.Bounds{{ID: "a", X: 0, Y: 0, W: 4, H: 2}}

	if _, err := e.AutoArrange(layout, ArrangeOptions{AnimationDuration: 10 * time.Second}); err != nil {
		t.Fatalf("AutoArrange() error = %v", err)
	}
	e.CancelDrag()

	if st := e.State(); st.IsAnimating || st.Phase != PhaseIdle {
		t.Errorf("state = %+v, want cleared immediately", st)
	}
}

func TestBeginDragDropsArrangeHighlight(t *testing.T) {
	e := newTestEngine(t)
	layout := []grid.Bounds{{ID: "a", X: 0, Y: 0, W: 4, H: 2}}

	if _, err := e.AutoArrange(layout, ArrangeOptions{AnimationDuration: 10 * time.Second}); err != nil {
		t.Fatalf("AutoArrange() error = %v", err)
	}
	e.BeginDrag(layout, "a")

	st := e.State()
	if st.Phase != PhaseDragging {
		t.Errorf("Phase = %v, want dragging", st.Phase)
	}
	if st.IsAnimating {
		t.Error("starting a drag should drop the arrangement highlight")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	layout := []grid.Bounds{{ID: "a", X: 0, Y: 0, W: 4, H: 2}}

	if _, err := e.AutoArrange(layout, ArrangeOptions{AnimationDuration: 10 * time.Second}); err != nil {
		t.Fatalf("AutoArrange() error = %v", err)
	}
	e.Close()
	e.Close()

	if st := e.State(); st.IsAnimating {
		t.Error("Close should cancel the pending clear")
	}
}
