package layoutio

import (
	"github.com/griddeck/griddeck/pkg/errors"
	"github.com/griddeck/griddeck/pkg/grid"
)

// Document is the serialized form of a dashboard layout.
type Document struct {
	Name       string      `json:"name" toml:"name"`
	Grid       GridConfig  `json:"grid" toml:"grid"`
	Components []Component `json:"components" toml:"components"`
}

// GridConfig mirrors grid.Config for serialization.
type GridConfig struct {
	Columns        int     `json:"columns" toml:"columns"`
	ContainerWidth float64 `json:"container_width" toml:"container_width"`
	RowHeight      float64 `json:"row_height" toml:"row_height"`
}

// Component mirrors grid.Bounds for serialization. The size
// constraints are optional and omitted when zero.
type Component struct {
	ID string `json:"id" toml:"id"`
	X  int    `json:"x" toml:"x"`
	Y  int    `json:"y" toml:"y"`
	W  int    `json:"w" toml:"w"`
	H  int    `json:"h" toml:"h"`

	MinW int `json:"min_w,omitempty" toml:"min_w,omitempty"`
	MaxW int `json:"max_w,omitempty" toml:"max_w,omitempty"`
	MinH int `json:"min_h,omitempty" toml:"min_h,omitempty"`
	MaxH int `json:"max_h,omitempty" toml:"max_h,omitempty"`
}

// Validate checks the document for structural problems: a usable grid,
// non-empty component ids, and no duplicate ids.
func (d Document) Validate() error {
	if err := d.GridConfig().Validate(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(d.Components))
	for i, c := range d.Components {
		if c.ID == "" {
			return errors.New(errors.ErrCodeInvalidLayout, "component %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate component id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// GridConfig converts the serialized grid section to engine form.
func (d Document) GridConfig() grid.Config {
	return grid.Config{
		Columns:        d.Grid.Columns,
		ContainerWidth: d.Grid.ContainerWidth,
		RowHeight:      d.Grid.RowHeight,
	}
}

// Layout converts the serialized components to engine form.
func (d Document) Layout() []grid.Bounds {
	out := make([]grid.Bounds, len(d.Components))
	for i, c := range d.Components {
		out[i] = grid.Bounds{
			ID: c.ID,
			X:  c.X, Y: c.Y, W: c.W, H: c.H,
			MinW: c.MinW, MaxW: c.MaxW,
			MinH: c.MinH, MaxH: c.MaxH,
		}
	}
	return out
}

// FromLayout builds a document from engine types.
func FromLayout(name string, cfg grid.Config, layout []grid.Bounds) Document {
	components := make([]Component, len(layout))
	for i, b := range layout {
		components[i] = Component{
			ID: b.ID,
			X:  b.X, Y: b.Y, W: b.W, H: b.H,
			MinW: b.MinW, MaxW: b.MaxW,
			MinH: b.MinH, MaxH: b.MaxH,
		}
	}
	return Document{
		Name: name,
		Grid: GridConfig{
			Columns:        cfg.Columns,
			ContainerWidth: cfg.ContainerWidth,
			RowHeight:      cfg.RowHeight,
		},
		Components: components,
	}
}
