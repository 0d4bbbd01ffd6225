package snap

import (
	"sort"

	"github.com/griddeck/griddeck/pkg/grid"
)

// Direction identifies the orientation of an alignment zone.
type Direction string

const (
	// Vertical zones are produced by left and right edges; a dragged
	// component's horizontal position snaps onto them.
	Vertical Direction = "vertical"

	// Horizontal zones are produced by top and bottom edges; a dragged
	// component's vertical position snaps onto them.
	Horizontal Direction = "horizontal"
)

// Zone is a candidate alignment coordinate derived from component
// edges. Position is a single-axis pixel coordinate.
type Zone struct {
	Position  float64
	Direction Direction
	SourceIDs []string
}

// Zones derives the alignment zones for a layout, skipping the
// component with excludeID (the one being moved). Zones with the same
// direction and coordinate are merged; their source id lists are
// combined in layout order without duplicates.
//
// The result is sorted by direction (horizontal first) then position,
// so identical layouts always produce identical zone lists.
func Zones(layout []grid.Bounds, cfg grid.Config, excludeID string) []Zone {
	type key struct {
		dir Direction
		pos float64
	}

	merged := make(map[key]*Zone)
	order := make([]key, 0, len(layout)*4)

	add := func(dir Direction, pos float64, id string) {
		k := key{dir, pos}
		z, ok := merged[k]
		if !ok {
			merged[k] = &Zone{Position: pos, Direction: dir, SourceIDs: []string{id}}
			order = append(order, k)
			return
		}
		for _, existing := range z.SourceIDs {
			if existing == id {
				return
			}
		}
		z.SourceIDs = append(z.SourceIDs, id)
	}

	for _, b := range layout {
		if b.ID == excludeID {
			continue
		}
		add(Vertical, cfg.ColToPx(b.X), b.ID)
		add(Vertical, cfg.ColToPx(b.Right()), b.ID)
		add(Horizontal, cfg.RowToPx(b.Y), b.ID)
		add(Horizontal, cfg.RowToPx(b.Bottom()), b.ID)
	}

	zones := make([]Zone, 0, len(order))
	for _, k := range order {
		zones = append(zones, *merged[k])
	}
	sort.Slice(zones, func(i, j int) bool {
		if zones[i].Direction != zones[j].Direction {
			return zones[i].Direction == Horizontal
		}
		return zones[i].Position < zones[j].Position
	})
	return zones
}
