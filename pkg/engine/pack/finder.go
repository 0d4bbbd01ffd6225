// Package pack places dashboard components on the grid: a row-major
// first-fit position finder and an auto-arranger built on top of it.
//
// Placement is deterministic. Given the same layout, grid width, and
// preferred start, the finder always returns the same slot: the
// non-overlapping position with the smallest row, then the smallest
// column. The search is bounded; it never loops on an unsatisfiable
// request.
package pack

import (
	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/grid"
)

// Point is a grid position in column/row units.
type Point struct {
	X, Y int
}

// Find returns the first-fit position for a w-by-h component among the
// already-placed layout. The scan runs row-major starting at preferred
// (default the origin): candidates on the preferred row begin at the
// preferred column, later rows at column zero.
//
// The scan stops at a ceiling derived from the heights of the placed
// components; past it a free slot would already have been found, so
// exceeding the ceiling reports PLACEMENT_FAILED instead of scanning
// forever. Requests wider than the grid fail the same way.
func Find(w, h int, layout []grid.Bounds, columns int, preferred Point) (Point, error) {
	if columns <= 0 {
		return Point{}, errors.New(errors.ErrCodeInvalidConfig, "columns must be positive, got %d", columns)
	}
	if w <= 0 || h <= 0 {
		return Point{}, errors.New(errors.ErrCodeInvalidBounds, "size %dx%d is not placeable", w, h)
	}
	if w > columns {
		return Point{}, errors.New(errors.ErrCodePlacementFailed, "width %d exceeds %d columns", w, columns)
	}

	if preferred.X < 0 {
		preferred.X = 0
	}
	if preferred.X > columns-w {
		preferred.X = columns - w
	}
	if preferred.Y < 0 {
		preferred.Y = 0
	}

	ceiling := searchCeiling(layout, h, preferred.Y)
	for y := preferred.Y; y <= ceiling; y++ {
		startX := 0
		if y == preferred.Y {
			startX = preferred.X
		}
		for x := startX; x <= columns-w; x++ {
			if !collides(x, y, w, h, layout) {
				return Point{X: x, Y: y}, nil
			}
		}
	}
	return Point{}, errors.New(errors.ErrCodePlacementFailed, "no %dx%d slot within %d rows", w, h, ceiling+1)
}

// collides reports whether a w-by-h rectangle at (x,y) overlaps any
// placed component.
func collides(x, y, w, h int, layout []grid.Bounds) bool {
	probe := grid.Bounds{X: x, Y: y, W: w, H: h}
	for _, b := range layout {
		if probe.Overlaps(b) {
			return true
		}
	}
	return false
}

// searchCeiling bounds the row scan. A component of height hi can rule
// out at most hi+h-1 candidate rows, so scanning one row per unit of
// placed height plus the requested height always reaches a free row.
func searchCeiling(layout []grid.Bounds, h, startY int) int {
	rows := h
	for _, b := range layout {
		rows += b.H + h
	}
	return startY + rows
}
