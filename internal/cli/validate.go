package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/layoutio"
)

// newValidateCmd creates the validate command. It checks a layout file
// for structural problems and reports components that fall outside the
// grid or overlap each other.
func newValidateCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a layout file for structural problems",
		Long: `Check a layout file for structural problems: an unusable grid,
missing or duplicate component ids, components outside the grid, and
overlapping components.

With --fix, out-of-bounds components are clamped back into the grid
and the file is rewritten.

Examples:
  griddeck validate dashboard.json
  griddeck validate dashboard.toml --fix`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runValidate(c, args[0], fix)
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "clamp out-of-bounds components and rewrite the file")

	return cmd
}

func runValidate(c *cobra.Command, path string, fix bool) error {
	logger := loggerFromContext(c.Context())

	doc, err := layoutio.Import(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	cfg := doc.GridConfig()
	layout := doc.Layout()

	var repaired, overlaps int
	for i := range layout {
		fixed, changed := grid.Sanitize(layout[i], cfg.Columns)
		if changed {
			logger.Warnf("Component %s has invalid bounds (%d,%d %dx%d)",
				layout[i].ID, layout[i].X, layout[i].Y, layout[i].W, layout[i].H)
			repaired++
			if fix {
				layout[i] = fixed
			}
		}
	}
	for i := range layout {
		for j := i + 1; j < len(layout); j++ {
			if layout[i].Overlaps(layout[j]) {
				logger.Warnf("Components %s and %s overlap", layout[i].ID, layout[j].ID)
				overlaps++
			}
		}
	}

	if repaired == 0 && overlaps == 0 {
		logger.Infof("Layout is valid: %d components on %d columns", len(layout), cfg.Columns)
		return nil
	}

	if fix && repaired > 0 {
		if err := layoutio.Export(path, layoutio.FromLayout(doc.Name, cfg, layout)); err != nil {
			return err
		}
		logger.Infof("Repaired %d components, wrote %s", repaired, path)
	}
	if overlaps > 0 {
		return fmt.Errorf("layout has %d overlapping pairs (run arrange to compact)", overlaps)
	}
	if !fix {
		return fmt.Errorf("layout has %d components with invalid bounds (rerun with --fix)", repaired)
	}
	return nil
}
