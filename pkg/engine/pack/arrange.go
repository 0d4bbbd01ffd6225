package pack

import (
	"sort"

	"github.com/griddeck/griddeck/pkg/grid"
)

// SortOrder selects how the arranger orders components before packing.
type SortOrder string

const (
	// SortPreserve keeps the caller's array order.
	SortPreserve SortOrder = "preserve-order"

	// SortReading orders components top-then-left by their current
	// position before packing.
	SortReading SortOrder = "reading-order"
)

// Preset configures an arrangement pass.
type Preset struct {
	// SortOrder defaults to SortPreserve when empty.
	SortOrder SortOrder

	// Gutter is extra spacing, in grid units, kept to the right of and
	// below each component while packing.
	Gutter int
}

// Arrange repacks a whole layout. Components are re-placed one at a
// time via Find, each seeded only with the subset already placed,
// keeping each component's own size. Invalid sizes are repaired first,
// so a layout always arranges.
//
// Arranging an arranged layout with the same preset returns the same
// positions: the pass is idempotent for both orders.
func Arrange(layout []grid.Bounds, columns int, preset Preset) ([]grid.Bounds, error) {
	items := grid.Clone(layout)
	for i := range items {
		items[i], _ = grid.Sanitize(items[i], columns)
	}
	if preset.SortOrder == SortReading {
		return arrangeReading(items, columns, preset.Gutter)
	}

	placed := make([]grid.Bounds, 0, len(items))
	for _, item := range items {
		// Already-placed components are inflated by the gutter on their
		// trailing edges while probing, so neighbors keep their
		// distance; stored sizes stay the components' own.
		pos, err := Find(item.W, item.H, inflate(placed, preset.Gutter, columns), columns, Point{})
		if err != nil {
			return nil, err
		}
		item.X = pos.X
		item.Y = pos.Y
		placed = append(placed, item)
	}
	return placed, nil
}

// arrangeReading packs so that the output's reading order equals its
// placement order. Each round places whichever remaining component
// first-fits at the earliest position, ties broken by the reading
// order of the current positions.
//
// Sorting by old positions and packing sequentially does not give
// idempotence: first-fit can drop a later component into a gap above
// an earlier one, so the output's reading order differs from the
// placement order and a second pass packs a different sequence. The
// greedy selection closes that gap. A first-fit position can only move
// later as placed components accumulate, so placements come out in
// strictly increasing reading order; re-running sees that same order
// and reproduces every placement.
func arrangeReading(items []grid.Bounds, columns, gutter int) ([]grid.Bounds, error) {
	remaining := make([]grid.Bounds, len(items))
	copy(remaining, items)
	sort.SliceStable(remaining, func(i, j int) bool {
		if remaining[i].Y != remaining[j].Y {
			return remaining[i].Y < remaining[j].Y
		}
		if remaining[i].X != remaining[j].X {
			return remaining[i].X < remaining[j].X
		}
		return remaining[i].ID < remaining[j].ID
	})

	placed := make([]grid.Bounds, 0, len(remaining))
	for len(remaining) > 0 {
		obstacles := inflate(placed, gutter, columns)

		// remaining is in reading order of the current positions, so
		// the first strict minimum implements the tie-break.
		best := -1
		var bestPos Point
		for i, item := range remaining {
			pos, err := Find(item.W, item.H, obstacles, columns, Point{})
			if err != nil {
				return nil, err
			}
			if best < 0 || pos.Y < bestPos.Y || (pos.Y == bestPos.Y && pos.X < bestPos.X) {
				best = i
				bestPos = pos
			}
		}

		item := remaining[best]
		item.X = bestPos.X
		item.Y = bestPos.Y
		placed = append(placed, item)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return placed, nil
}

// inflate grows each placed component by the gutter on its trailing
// edges for collision probing.
func inflate(layout []grid.Bounds, gutter, columns int) []grid.Bounds {
	if gutter <= 0 {
		return layout
	}
	out := make([]grid.Bounds, len(layout))
	for i, b := range layout {
		if b.W+gutter <= columns-b.X {
			b.W += gutter
		} else {
			b.W = columns - b.X
		}
		b.H += gutter
		out[i] = b
	}
	return out
}
