package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/engine"
	"github.com/griddeck/griddeck/pkg/engine/pack"
	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/layoutio"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	width  int    // component width in grid units
	height int    // component height in grid units
	prefX  int    // preferred column
	prefY  int    // preferred row
	output string // output file path (input file if empty)
	dryRun bool   // report the position without writing
}

// newPlaceCmd creates the place command. It finds the first free
// position for a new component and appends it to the layout file.
func newPlaceCmd() *cobra.Command {
	opts := placeOpts{width: 4, height: 2}

	cmd := &cobra.Command{
		Use:   "place <file> <id>",
		Short: "Find a free position for a new component",
		Long: `Find the first position where a component of the given size fits
without overlapping anything, scanning left to right and top to bottom
from the preferred position, and append it to the layout file.

Examples:
  griddeck place dashboard.json revenue-chart --width 6 --height 3
  griddeck place dashboard.json kpi --x 4 --y 0 --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runPlace(c, args[0], args[1], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "W", opts.width, "component width in grid units")
	cmd.Flags().IntVarP(&opts.height, "height", "H", opts.height, "component height in grid units")
	cmd.Flags().IntVar(&opts.prefX, "x", 0, "preferred column")
	cmd.Flags().IntVar(&opts.prefY, "y", 0, "preferred row")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (input file if empty)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the position without writing the file")

	return cmd
}

func runPlace(c *cobra.Command, path, id string, opts placeOpts) error {
	logger := loggerFromContext(c.Context())

	doc, err := layoutio.Import(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	for _, comp := range doc.Components {
		if comp.ID == id {
			return fmt.Errorf("component %q already exists in %s", id, path)
		}
	}

	eng, err := engine.New(engine.Config{Enabled: true, Grid: doc.GridConfig()}, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer eng.Close()

	pos, err := eng.Place(doc.Layout(), opts.width, opts.height, pack.Point{X: opts.prefX, Y: opts.prefY})
	if err != nil {
		return err
	}
	logger.Infof("Placing %s at column %d, row %d", id, pos.X, pos.Y)

	if opts.dryRun {
		fmt.Printf("%d,%d\n", pos.X, pos.Y)
		return nil
	}

	layout := append(doc.Layout(), grid.Bounds{
		ID: id,
		X:  pos.X, Y: pos.Y,
		W: opts.width, H: opts.height,
	})

	out := opts.output
	if out == "" {
		out = path
	}
	if err := layoutio.Export(out, layoutio.FromLayout(doc.Name, doc.GridConfig(), layout)); err != nil {
		return err
	}
	logger.Infof("Wrote layout to %s", out)
	return nil
}
