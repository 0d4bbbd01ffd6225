// Package grid defines the coordinate model for the dashboard grid.
//
// Dashboards are laid out on a fixed number of columns. Horizontal
// positions and sizes are expressed in whole column units, vertical ones
// in whole row units. The pixel size of one column is derived from the
// container width, so the same layout renders at any viewport width.
// Conversions between pixels and grid units round half up, since
// placement is discrete.
package grid

import (
	"math"

	"github.com/griddeck/griddeck/pkg/errors"
)

// DefaultRowHeight is the pixel height of one grid row when the caller
// does not supply one.
const DefaultRowHeight = 40.0

// Config describes the geometry of a dashboard grid.
type Config struct {
	// Columns is the number of columns in the grid. Must be positive.
	Columns int

	// ContainerWidth is the pixel width of the grid container.
	ContainerWidth float64

	// RowHeight is the pixel height of one grid row.
	RowHeight float64
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Columns <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "columns must be positive, got %d", c.Columns)
	}
	if c.ContainerWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "container width must be positive, got %g", c.ContainerWidth)
	}
	if c.RowHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "row height must be positive, got %g", c.RowHeight)
	}
	return nil
}

// ColWidth returns the pixel width of a single column.
func (c Config) ColWidth() float64 {
	if c.Columns <= 0 {
		return 0
	}
	return c.ContainerWidth / float64(c.Columns)
}

// ColToPx converts a column coordinate to pixels.
func (c Config) ColToPx(col int) float64 { return float64(col) * c.ColWidth() }

// RowToPx converts a row coordinate to pixels.
func (c Config) RowToPx(row int) float64 { return float64(row) * c.RowHeight }

// PxToCol converts a horizontal pixel coordinate to the nearest column.
func (c Config) PxToCol(px float64) int {
	w := c.ColWidth()
	if w <= 0 {
		return 0
	}
	return RoundUnits(px / w)
}

// PxToRow converts a vertical pixel coordinate to the nearest row.
func (c Config) PxToRow(px float64) int {
	if c.RowHeight <= 0 {
		return 0
	}
	return RoundUnits(px / c.RowHeight)
}

// RoundUnits rounds a fractional grid coordinate to the nearest whole
// unit, with halves rounding up.
func RoundUnits(v float64) int {
	return int(math.Floor(v + 0.5))
}
