package snap

import (
	"math"

	"github.com/griddeck/griddeck/pkg/grid"
)

// DefaultThreshold is the magnetic snap distance in pixels. An edge at
// exactly this distance from a zone snaps; anything farther does not.
const DefaultThreshold = 8.0

// Proposal is the live position of a dragged component. X and Y are in
// grid units and may be fractional mid-drag; W and H are whole units.
type Proposal struct {
	ID   string
	X, Y float64
	W, H int
}

// Result is a resolved proposal. Engaged lists the zones that actually
// attracted an edge, at most one per axis, for the caller to highlight.
type Result struct {
	Bounds  grid.Bounds
	Engaged []Zone
}

// Resolve adjusts a drag proposal against the zone list. Each axis is
// resolved independently: the component's leading edge (left or top)
// and trailing edge (right or bottom) are converted to pixels, and if
// either lies within threshold of a zone the edge is moved onto it.
// When both edges are in range of distinct zones the leading edge wins.
//
// The adjusted position is clamped into the grid band and rounded to
// whole grid units. A threshold <= 0 selects DefaultThreshold.
func Resolve(p Proposal, zones []Zone, cfg grid.Config, threshold float64) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	x := p.X
	y := p.Y
	var engaged []Zone

	if colW := cfg.ColWidth(); colW > 0 {
		leading := p.X * colW
		trailing := (p.X + float64(p.W)) * colW
		if z, ok := nearest(zones, Vertical, leading, threshold); ok {
			x = z.Position / colW
			engaged = append(engaged, z)
		} else if z, ok := nearest(zones, Vertical, trailing, threshold); ok {
			x = z.Position/colW - float64(p.W)
			engaged = append(engaged, z)
		}
	}

	if rowH := cfg.RowHeight; rowH > 0 {
		leading := p.Y * rowH
		trailing := (p.Y + float64(p.H)) * rowH
		if z, ok := nearest(zones, Horizontal, leading, threshold); ok {
			y = z.Position / rowH
			engaged = append(engaged, z)
		} else if z, ok := nearest(zones, Horizontal, trailing, threshold); ok {
			y = z.Position/rowH - float64(p.H)
			engaged = append(engaged, z)
		}
	}

	b := grid.Bounds{
		ID: p.ID,
		X:  grid.RoundUnits(x),
		Y:  grid.RoundUnits(y),
		W:  p.W,
		H:  p.H,
	}
	return Result{Bounds: b.ClampTo(cfg.Columns), Engaged: engaged}
}

// nearest returns the closest zone of the given direction within
// threshold pixels of px. The boundary is closed: a distance exactly
// equal to threshold still matches. Distance ties resolve to the lower
// coordinate, which the sorted zone list makes deterministic.
func nearest(zones []Zone, dir Direction, px, threshold float64) (Zone, bool) {
	var best Zone
	bestDist := math.Inf(1)
	for _, z := range zones {
		if z.Direction != dir {
			continue
		}
		d := math.Abs(z.Position - px)
		if d <= threshold && d < bestDist {
			best = z
			bestDist = d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
