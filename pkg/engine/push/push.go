// Package push makes room for a dragged component by displacing the
// neighbors it overlaps.
//
// The resolver is a deliberate single-pass heuristic: each overlapped
// neighbor is pushed once, directly away from the dragged component,
// and a displaced neighbor colliding with a third component is not
// chased further. The caller runs it on every drag move against the
// latest snapshot, so repeated calls never accumulate state.
package push

import "github.com/griddeck/griddeck/pkg/grid"

// Strategy names a displacement strategy.
type Strategy string

// StrategyPush is the only implemented strategy: a straight push along
// the dominant overlap axis.
const StrategyPush Strategy = "push"

// Config controls space-making during a drag.
type Config struct {
	// Enabled turns the resolver on. When false, Resolve returns its
	// input unchanged.
	Enabled bool

	// PushRadius is how far, in grid units, an overlapped neighbor is
	// displaced.
	PushRadius int

	// MaxPushDistance caps the displacement per resolve. Zero means
	// the radius is used as-is.
	MaxPushDistance int

	// Strategy selects the displacement strategy. Empty selects
	// StrategyPush.
	Strategy Strategy
}

// DefaultConfig is the space-making setup used when the caller does
// not supply one.
var DefaultConfig = Config{Enabled: true, PushRadius: 1, Strategy: StrategyPush}

// Displacement records one displaced neighbor. DX and DY are the
// post-clamp deltas in grid units; a fully clamped push records zeros.
type Displacement struct {
	ID      string
	DX, DY  int
	CauseID string
}

// Result is the outcome of one resolve pass.
type Result struct {
	// Layout is the candidate layout with neighbors displaced. It is
	// the input slice itself when nothing moved.
	Layout []grid.Bounds

	// Affected lists every neighbor the dragged component overlapped,
	// in layout order, for push-preview highlighting.
	Affected []Displacement

	// Active reports whether space-making engaged this pass.
	Active bool
}

// Resolve displaces every component the dragged bounds overlap. The
// push direction is away from the dragged component along the axis
// with the larger centroid delta; ties push horizontally, and fully
// coincident centroids push down. Displacements are clamped to the
// grid band, so a push into a wall is applied partially rather than
// rejected.
func Resolve(layout []grid.Bounds, dragged grid.Bounds, columns int, cfg Config) Result {
	if !cfg.Enabled || cfg.PushRadius <= 0 {
		return Result{Layout: layout}
	}

	radius := cfg.PushRadius
	if cfg.MaxPushDistance > 0 && radius > cfg.MaxPushDistance {
		radius = cfg.MaxPushDistance
	}

	var (
		out      []grid.Bounds
		affected []Displacement
	)
	for i, b := range layout {
		if b.ID == dragged.ID || dragged.OverlapArea(b) == 0 {
			continue
		}

		dx := dragged.CenterX() - b.CenterX()
		dy := dragged.CenterY() - b.CenterY()

		moved := b
		switch {
		case abs(dx) >= abs(dy) && (dx != 0 || dy != 0):
			if dx > 0 {
				moved.X -= radius
			} else {
				moved.X += radius
			}
		case dy != 0:
			if dy > 0 {
				moved.Y -= radius
			} else {
				moved.Y += radius
			}
		default:
			// Coincident centroids: no direction to infer, yield downward.
			moved.Y += radius
		}
		moved = moved.ClampTo(columns)

		if out == nil {
			out = grid.Clone(layout)
		}
		out[i] = moved
		affected = append(affected, Displacement{
			ID:      b.ID,
			DX:      moved.X - b.X,
			DY:      moved.Y - b.Y,
			CauseID: dragged.ID,
		})
	}

	if out == nil {
		return Result{Layout: layout}
	}
	return Result{Layout: out, Affected: affected, Active: true}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
