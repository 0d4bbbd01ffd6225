package grid

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg:  Config{Columns: 12, ContainerWidth: 1200, RowHeight: 40},
		},
		{
			name:    "zero columns",
			cfg:     Config{Columns: 0, ContainerWidth: 1200, RowHeight: 40},
			wantErr: true,
		},
		{
			name:    "negative columns",
			cfg:     Config{Columns: -3, ContainerWidth: 1200, RowHeight: 40},
			wantErr: true,
		},
		{
			name:    "zero width",
			cfg:     Config{Columns: 12, ContainerWidth: 0, RowHeight: 40},
			wantErr: true,
		},
		{
			name:    "zero row height",
			cfg:     Config{Columns: 12, ContainerWidth: 1200, RowHeight: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestColWidth(t *testing.T) {
	cfg := Config{Columns: 12, ContainerWidth: 1200, RowHeight: 40}
	if got := cfg.ColWidth(); got != 100 {
		t.Errorf("ColWidth() = %v, want 100", got)
	}

	// Degenerate config must not divide by zero
	if got := (Config{}).ColWidth(); got != 0 {
		t.Errorf("ColWidth() on zero config = %v, want 0", got)
	}
}

func TestRoundUnits(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want int
	}{
		{"whole", 3.0, 3},
		{"below half", 3.49, 3},
		{"exactly half rounds up", 3.5, 4},
		{"above half", 3.51, 4},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundUnits(tt.v); got != tt.want {
				t.Errorf("RoundUnits(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestPixelConversionRoundTrip(t *testing.T) {
	cfg := Config{Columns: 12, ContainerWidth: 1200, RowHeight: 40}

	for col := 0; col <= 12; col++ {
		if got := cfg.PxToCol(cfg.ColToPx(col)); got != col {
			t.Errorf("PxToCol(ColToPx(%d)) = %d", col, got)
		}
	}
	for row := 0; row <= 20; row++ {
		if got := cfg.PxToRow(cfg.RowToPx(row)); got != row {
			t.Errorf("PxToRow(RowToPx(%d)) = %d", row, got)
		}
	}
}

func TestPxToColRounding(t *testing.T) {
	cfg := Config{Columns: 12, ContainerWidth: 1200, RowHeight: 40}

	tests := []struct {
		px   float64
		want int
	}{
		{0, 0},
		{49, 0},
		{50, 1}, // exactly half a column rounds up
		{100, 1},
		{249, 2},
		{250, 3},
	}

	for _, tt := range tests {
		if got := cfg.PxToCol(tt.px); got != tt.want {
			t.Errorf("PxToCol(%v) = %d, want %d", tt.px, got, tt.want)
		}
	}
}
