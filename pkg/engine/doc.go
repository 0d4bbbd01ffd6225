// Package engine orchestrates interactive dashboard layout editing.
//
// One Engine instance serves one editing session. The caller owns the
// authoritative layout array and feeds it, together with drag
// snapshots, into the engine; the engine returns candidate layouts
// plus auxiliary metadata (snap zones to draw, displaced neighbors to
// highlight, transition descriptors) and the caller commits or
// discards. Every operation is a pure transform of its inputs; the
// engine never retains or mutates a caller's layout slice.
//
// The only asynchronous piece is the animation-clear delay after an
// auto-arrangement, held as a single cancellable timer per engine. It
// affects highlighting only, never the returned layout.
//
// A typical drag interaction:
//
//	eng, _ := engine.New(engine.Config{Enabled: true, Grid: cfg})
//	eng.BeginDrag(layout, "chart")
//	for each pointer move {
//	    res := eng.DragMove(layout, snap.Proposal{ID: "chart", X: x, Y: y, W: 4, H: 2})
//	    // draw res.Layout, res.SnapZones, res.Affected
//	}
//	layout = eng.Drop(layout, lastProposal).Layout // or eng.CancelDrag()
package engine
