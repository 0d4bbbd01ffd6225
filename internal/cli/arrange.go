package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/engine"
	"github.com/griddeck/griddeck/pkg/engine/pack"
	"github.com/griddeck/griddeck/pkg/layoutio"
)

// arrangeOpts holds the command-line flags for the arrange command.
type arrangeOpts struct {
	output string // output file path (input file if empty)
	sort   string // "preserve-order" or "reading-order"
	gutter int    // extra spacing in grid units
}

// newArrangeCmd creates the arrange command. It reads a layout file,
// compacts it with the auto-arranger, and writes the result back.
func newArrangeCmd() *cobra.Command {
	opts := arrangeOpts{sort: string(pack.SortPreserve)}

	cmd := &cobra.Command{
		Use:   "arrange <file>",
		Short: "Compact a layout file using the auto-arranger",
		Long: `Compact a layout file by re-placing every component at its first
available position, scanning left to right and top to bottom.

Examples:
  griddeck arrange dashboard.json
  griddeck arrange dashboard.toml -o compact.toml
  griddeck arrange dashboard.json --sort reading-order --gutter 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runArrange(c, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (input file if empty)")
	cmd.Flags().StringVar(&opts.sort, "sort", opts.sort, "placement order: preserve-order or reading-order")
	cmd.Flags().IntVar(&opts.gutter, "gutter", 0, "extra spacing between components in grid units")

	return cmd
}

func runArrange(c *cobra.Command, path string, opts arrangeOpts) error {
	logger := loggerFromContext(c.Context())

	order := pack.SortOrder(opts.sort)
	if order != pack.SortPreserve && order != pack.SortReading {
		return fmt.Errorf("unknown sort order: %s (available: %s, %s)", opts.sort, pack.SortPreserve, pack.SortReading)
	}

	doc, err := layoutio.Import(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	eng, err := engine.New(engine.Config{Enabled: true, Grid: doc.GridConfig()}, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer eng.Close()

	prog := newProgress(logger)
	result, err := eng.AutoArrange(doc.Layout(), engine.ArrangeOptions{
		SortOrder: order,
		Gutter:    opts.gutter,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Arranged %d components", len(result.Layout)))

	out := opts.output
	if out == "" {
		out = path
	}
	if err := layoutio.Export(out, layoutio.FromLayout(doc.Name, doc.GridConfig(), result.Layout)); err != nil {
		return err
	}
	logger.Infof("Wrote layout to %s", out)
	return nil
}
