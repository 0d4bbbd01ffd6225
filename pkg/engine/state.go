package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/griddeck/griddeck/pkg/engine/push"
	"github.com/griddeck/griddeck/pkg/engine/snap"
)

// Phase is the engine's interaction state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseDragging  Phase = "dragging"
	PhaseArranging Phase = "arranging"
)

// StateSnapshot is a point-in-time copy of the transient animation
// bookkeeping for the rendering layer.
type StateSnapshot struct {
	Phase             Phase
	IsAnimating       bool
	AnimatingIDs      []string
	Affected          []push.Displacement
	SpaceMakingActive bool
	SnapZones         []snap.Zone
}

// tracker holds per-session animation state. The mutex is only there
// for the clear timer, which fires on its own goroutine; all public
// engine operations stay synchronous.
type tracker struct {
	mu                sync.Mutex
	phase             Phase
	animating         map[string]struct{}
	affected          []push.Displacement
	spaceMakingActive bool

	// Single pending clear task. Scheduling a new one cancels any
	// prior, so stale timers can neither leak nor clear fresh state.
	timer *time.Timer
	seq   int
}

func newTracker() *tracker {
	return &tracker{phase: PhaseIdle}
}

// beginDrag moves the tracker into the dragging phase, dropping any
// pending arrangement highlight.
func (t *tracker) beginDrag() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.phase = PhaseDragging
	t.animating = nil
	t.affected = nil
	t.spaceMakingActive = false
}

// setPush records the latest space-making result. Each drag move
// overwrites the previous record; nothing accumulates across calls.
func (t *tracker) setPush(affected []push.Displacement, active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.affected = affected
	t.spaceMakingActive = active
}

// markAnimating flags ids as animating and schedules the single clear
// task. A previous pending clear is cancelled first.
func (t *tracker) markAnimating(ids []string, clearAfter time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()
	t.phase = PhaseArranging
	t.animating = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		t.animating[id] = struct{}{}
	}

	t.seq++
	seq := t.seq
	t.timer = time.AfterFunc(clearAfter, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		// A newer schedule or a synchronous clear superseded this task.
		if t.seq != seq {
			return
		}
		t.phase = PhaseIdle
		t.animating = nil
		t.timer = nil
	})
}

// clear resets all transient state synchronously, cancelling any
// pending clear task. Used on drop, drag cancellation, and shutdown.
func (t *tracker) clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.phase = PhaseIdle
	t.animating = nil
	t.affected = nil
	t.spaceMakingActive = false
}

func (t *tracker) cancelLocked() {
	t.seq++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// snapshot returns a copy of the current state with ids sorted.
func (t *tracker) snapshot() StateSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.animating))
	for id := range t.animating {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	affected := make([]push.Displacement, len(t.affected))
	copy(affected, t.affected)

	return StateSnapshot{
		Phase:             t.phase,
		IsAnimating:       len(ids) > 0,
		AnimatingIDs:      ids,
		Affected:          affected,
		SpaceMakingActive: t.spaceMakingActive,
	}
}
