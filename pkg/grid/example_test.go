package grid_test

import (
	"fmt"

	"github.com/griddeck/griddeck/pkg/grid"
)

func ExampleConfig() {
	// A standard 12-column dashboard at 1200px wide
	cfg := grid.Config{Columns: 12, ContainerWidth: 1200, RowHeight: 40}

	fmt.Println("Column width:", cfg.ColWidth())
	fmt.Println("Column 3 in px:", cfg.ColToPx(3))
	fmt.Println("460px is column:", cfg.PxToCol(460))
	// Output:
	// Column width: 100
	// Column 3 in px: 300
	// 460px is column: 5
}

func ExampleBounds_Overlaps() {
	chart := grid.Bounds{ID: "chart", X: 0, Y: 0, W: 4, H: 2}
	table := grid.Bounds{ID: "table", X: 4, Y: 0, W: 4, H: 2}
	badge := grid.Bounds{ID: "badge", X: 3, Y: 1, W: 2, H: 2}

	fmt.Println("chart/table:", chart.Overlaps(table))
	fmt.Println("chart/badge:", chart.Overlaps(badge))
	// Output:
	// chart/table: false
	// chart/badge: true
}
