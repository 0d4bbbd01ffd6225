package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/griddeck/griddeck/pkg/engine/pack"
	"github.com/griddeck/griddeck/pkg/engine/push"
	"github.com/griddeck/griddeck/pkg/engine/snap"
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/observability"
)

// Engine drives layout editing for a single session. Create one per
// active editing session and Close it when the session ends; engines
// are not shared across sessions.
type Engine struct {
	cfg    Config
	logger *log.Logger
	state  *tracker

	// zones is the alignment guide cache, recomputed only when the
	// committed layout changes, never per pointer move.
	zones []snap.Zone
}

// New creates an engine for one editing session.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:    cfg,
		logger: log.Default(),
		state:  newTracker(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// DragResult is the outcome of one drag-move resolution.
type DragResult struct {
	// Layout is the candidate layout: the dragged component at its
	// resolved position with overlapped neighbors displaced. The
	// caller commits it on drop or discards it on cancel.
	Layout []grid.Bounds

	// Bounds is the dragged component's resolved position.
	Bounds grid.Bounds

	// SnapZones is the full guide list for the rendering layer.
	SnapZones []snap.Zone

	// Engaged lists the zones currently attracting an edge.
	Engaged []snap.Zone

	// Affected lists displaced neighbors for push-preview highlighting.
	Affected []push.Displacement
}

// DropResult is the outcome of committing a drag.
type DropResult struct {
	Layout      []grid.Bounds
	Transitions []Transition
}

// ArrangeResult is the outcome of an auto-arrangement.
type ArrangeResult struct {
	Layout      []grid.Bounds
	Transitions []Transition
}

// BeginDrag starts a drag of the component with the given id and
// derives the alignment zones from the committed layout. The zones
// stay fixed for the whole drag; DragMove never recomputes them.
func (e *Engine) BeginDrag(layout []grid.Bounds, id string) []snap.Zone {
	if !e.cfg.Enabled {
		return nil
	}
	e.state.beginDrag()
	e.zones = snap.Zones(layout, e.cfg.Grid, id)
	return e.zones
}

// DragMove resolves one drag snapshot: magnetic snapping against the
// cached zones, then space-making against the *committed* layout. It
// is safe to call at pointer-move frequency; every call recomputes
// from the given snapshot and nothing accumulates between calls.
func (e *Engine) DragMove(layout []grid.Bounds, p snap.Proposal) DragResult {
	if !e.cfg.Enabled {
		return DragResult{Layout: layout, Bounds: identityBounds(p)}
	}

	resolved := snap.Resolve(p, e.zones, e.cfg.Grid, e.cfg.SnapThreshold)
	if len(resolved.Engaged) > 0 {
		observability.Engine().OnSnap(context.Background(), p.ID, len(resolved.Engaged))
	}

	pushed := push.Resolve(layout, resolved.Bounds, e.cfg.Grid.Columns, e.cfg.SpaceMaking)
	if pushed.Active {
		observability.Engine().OnPush(context.Background(), p.ID, len(pushed.Affected))
	}
	e.state.setPush(pushed.Affected, pushed.Active)

	candidate := withBounds(pushed.Layout, resolved.Bounds)
	return DragResult{
		Layout:    candidate,
		Bounds:    resolved.Bounds,
		SnapZones: e.zones,
		Engaged:   resolved.Engaged,
		Affected:  pushed.Affected,
	}
}

// Drop commits a drag: the final snapshot is resolved one last time,
// the candidate layout is returned for the caller to persist, and the
// transient drag state is cleared synchronously. Zones are recomputed
// from the new committed layout.
func (e *Engine) Drop(layout []grid.Bounds, p snap.Proposal) DropResult {
	if !e.cfg.Enabled {
		return DropResult{Layout: layout}
	}

	res := e.DragMove(layout, p)
	e.state.clear()
	e.zones = snap.Zones(res.Layout, e.cfg.Grid, "")

	ids := []string{res.Bounds.ID}
	for _, d := range res.Affected {
		ids = append(ids, d.ID)
	}
	return DropResult{Layout: res.Layout, Transitions: e.transitions(ids, 0)}
}

// CancelDrag aborts a drag with no side effect beyond clearing the
// transient animation state. The clear is synchronous so the next
// frame cannot show stale highlighting; the caller simply keeps its
// pre-drag layout.
func (e *Engine) CancelDrag() {
	if !e.cfg.Enabled {
		return
	}
	e.state.clear()
}

// AutoArrange repacks the whole layout with the engine's first-fit
// packer and marks every component as animating until the transition
// (plus a grace period) has played out. Starting a new arrangement
// cancels the previous pending clear.
func (e *Engine) AutoArrange(layout []grid.Bounds, opts ArrangeOptions) (ArrangeResult, error) {
	if !e.cfg.Enabled {
		return ArrangeResult{Layout: layout}, nil
	}

	ctx := context.Background()
	observability.Engine().OnArrangeStart(ctx, len(layout))
	start := time.Now()

	e.logSanitized(layout)
	arranged, err := pack.Arrange(layout, e.cfg.Grid.Columns, pack.Preset{
		SortOrder: opts.SortOrder,
		Gutter:    opts.Gutter,
	})
	observability.Engine().OnArrangeComplete(ctx, len(layout), time.Since(start), err)
	if err != nil {
		return ArrangeResult{}, err
	}

	duration := opts.AnimationDuration
	if duration == 0 {
		duration = e.cfg.Animation.Duration
	}

	ids := make([]string, len(arranged))
	for i, b := range arranged {
		ids[i] = b.ID
	}
	e.state.markAnimating(ids, duration+clearGrace)
	e.zones = snap.Zones(arranged, e.cfg.Grid, "")

	e.logger.Debug("auto-arranged layout",
		"components", len(arranged),
		"order", opts.SortOrder,
		"duration", time.Since(start))

	return ArrangeResult{Layout: arranged, Transitions: e.transitions(ids, duration)}, nil
}

// Place finds the first-fit position for a w-by-h component among the
// committed layout. With the engine disabled it returns the preferred
// position unchanged.
func (e *Engine) Place(layout []grid.Bounds, w, h int, preferred pack.Point) (pack.Point, error) {
	if !e.cfg.Enabled {
		return preferred, nil
	}

	start := time.Now()
	pos, err := pack.Find(w, h, layout, e.cfg.Grid.Columns, preferred)
	observability.Engine().OnPlace(context.Background(), w, h, time.Since(start), err)
	return pos, err
}

// SnapZones returns the cached alignment zones for the rendering
// layer. The cache refreshes on BeginDrag, Drop, and AutoArrange.
func (e *Engine) SnapZones() []snap.Zone {
	return e.zones
}

// State returns a snapshot of the transient animation state.
func (e *Engine) State() StateSnapshot {
	s := e.state.snapshot()
	s.SnapZones = e.zones
	return s
}

// Close ends the editing session, cancelling any pending clear task.
func (e *Engine) Close() {
	e.state.clear()
}

// transitions builds per-id transition descriptors. A zero duration
// falls back to the configured animation duration.
func (e *Engine) transitions(ids []string, duration time.Duration) []Transition {
	if duration == 0 {
		duration = e.cfg.Animation.Duration
	}
	out := make([]Transition, len(ids))
	for i, id := range ids {
		out[i] = Transition{
			ID:         id,
			Duration:   duration,
			Easing:     e.cfg.Animation.Easing,
			Properties: e.cfg.Animation.Properties,
		}
	}
	return out
}

// logSanitized reports invalid bounds in the committed layout. They
// are repaired downstream rather than rejected; a dashboard must
// always render something.
func (e *Engine) logSanitized(layout []grid.Bounds) {
	for _, b := range layout {
		if _, changed := grid.Sanitize(b, e.cfg.Grid.Columns); changed {
			e.logger.Warn("clamping invalid component bounds",
				"id", b.ID, "x", b.X, "y", b.Y, "w", b.W, "h", b.H)
		}
	}
}

// identityBounds rounds a proposal without snapping or clamping, for
// the disabled-engine path.
func identityBounds(p snap.Proposal) grid.Bounds {
	return grid.Bounds{ID: p.ID, X: grid.RoundUnits(p.X), Y: grid.RoundUnits(p.Y), W: p.W, H: p.H}
}

// withBounds returns layout with the component matching b.ID replaced
// by b, appending it when absent. The input slice is not modified.
func withBounds(layout []grid.Bounds, b grid.Bounds) []grid.Bounds {
	out := grid.Clone(layout)
	if i := grid.Find(out, b.ID); i >= 0 {
		out[i] = b
		return out
	}
	return append(out, b)
}
