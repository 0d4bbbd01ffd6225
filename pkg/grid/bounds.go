package grid

// Bounds is the position and size of one dashboard component in grid
// units. The zero value is an unplaced 0x0 component.
//
// Min/Max fields constrain resizing; a zero value means unconstrained.
type Bounds struct {
	ID string

	X, Y int // top-left corner, X in columns, Y in rows
	W, H int // size, W in columns, H in rows

	MinW, MaxW int
	MinH, MaxH int
}

// Right returns the exclusive right edge (X + W).
func (b Bounds) Right() int { return b.X + b.W }

// Bottom returns the exclusive bottom edge (Y + H).
func (b Bounds) Bottom() int { return b.Y + b.H }

// CenterX returns the horizontal centroid in grid units.
func (b Bounds) CenterX() float64 { return float64(b.X) + float64(b.W)/2 }

// CenterY returns the vertical centroid in grid units.
func (b Bounds) CenterY() float64 { return float64(b.Y) + float64(b.H)/2 }

// Overlaps reports whether b and o share any grid cell.
// Touching edges do not overlap.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.X < o.Right() && o.X < b.Right() &&
		b.Y < o.Bottom() && o.Y < b.Bottom()
}

// OverlapArea returns the overlapping area between b and o in grid
// cells, or 0 when they do not intersect.
func (b Bounds) OverlapArea(o Bounds) int {
	w := minInt(b.Right(), o.Right()) - maxInt(b.X, o.X)
	h := minInt(b.Bottom(), o.Bottom()) - maxInt(b.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// ClampTo constrains the position so the component stays inside the
// horizontal band of the grid: X in [0, columns-W] and Y >= 0. There is
// no lower bound on the grid; it grows downward as needed.
func (b Bounds) ClampTo(columns int) Bounds {
	if b.X < 0 {
		b.X = 0
	}
	if b.X+b.W > columns {
		b.X = columns - b.W
		if b.X < 0 {
			b.X = 0
		}
	}
	if b.Y < 0 {
		b.Y = 0
	}
	return b
}

// Sanitize repairs invalid bounds rather than rejecting them: a
// dashboard must always render something. Non-positive sizes become 1,
// widths wider than the grid are truncated, and Min/Max constraints are
// applied. The returned flag reports whether anything changed.
func Sanitize(b Bounds, columns int) (Bounds, bool) {
	orig := b

	if b.W <= 0 {
		b.W = 1
	}
	if b.H <= 0 {
		b.H = 1
	}
	if b.MinW > 0 && b.W < b.MinW {
		b.W = b.MinW
	}
	if b.MaxW > 0 && b.W > b.MaxW {
		b.W = b.MaxW
	}
	if b.MinH > 0 && b.H < b.MinH {
		b.H = b.MinH
	}
	if b.MaxH > 0 && b.H > b.MaxH {
		b.H = b.MaxH
	}
	if columns > 0 && b.W > columns {
		b.W = columns
	}
	b = b.ClampTo(columns)

	return b, b != orig
}

// Clone returns an independent copy of a layout slice.
func Clone(layout []Bounds) []Bounds {
	if layout == nil {
		return nil
	}
	out := make([]Bounds, len(layout))
	copy(out, layout)
	return out
}

// Find returns the index of the component with the given id, or -1.
func Find(layout []Bounds, id string) int {
	for i, b := range layout {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
