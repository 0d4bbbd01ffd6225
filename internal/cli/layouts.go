package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/layoutio"
	"github.com/griddeck/griddeck/pkg/store"
)

// newLayoutsCmd creates the layouts command group for managing saved
// layouts in a store backend.
func newLayoutsCmd() *cobra.Command {
	opts := &storeOpts{}

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Manage saved layouts in a store backend",
		Long: `Manage saved layouts in a store backend.

Layouts are kept as documents keyed by id. The file backend is the
default and needs no external services; redis and mongo backends are
selected with --store.

Examples:
  griddeck layouts save dashboard.json
  griddeck layouts list
  griddeck layouts show 4f1c... -o dashboard.json
  griddeck layouts delete 4f1c... --store redis`,
	}

	opts.register(cmd)

	cmd.AddCommand(newLayoutsListCmd(opts))
	cmd.AddCommand(newLayoutsShowCmd(opts))
	cmd.AddCommand(newLayoutsSaveCmd(opts))
	cmd.AddCommand(newLayoutsDeleteCmd(opts))

	return cmd
}

// newLayoutsListCmd lists saved layouts, most recently updated first.
func newLayoutsListCmd(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved layouts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			s, err := opts.open(c.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List(c.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				loggerFromContext(c.Context()).Info("No saved layouts")
				return nil
			}
			for _, rec := range records {
				name := rec.Document.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Printf("%s  %-30s  %d components  %s\n",
					rec.ID, name, len(rec.Document.Components),
					rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

// newLayoutsShowCmd fetches one layout and writes it as JSON to stdout
// or to a file.
func newLayoutsShowCmd(opts *storeOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Fetch a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := opts.open(c.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := s.Get(c.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return layoutio.WriteJSON(os.Stdout, rec.Document)
			}
			if err := layoutio.Export(output, rec.Document); err != nil {
				return err
			}
			loggerFromContext(c.Context()).Infof("Wrote layout to %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// newLayoutsSaveCmd stores a layout file, generating an id unless one
// is given.
func newLayoutsSaveCmd(opts *storeOpts) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Save a layout file to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			doc, err := layoutio.Import(args[0])
			if err != nil {
				return err
			}
			if err := doc.Validate(); err != nil {
				return err
			}

			s, err := opts.open(c.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if id == "" {
				id = store.NewID()
			}
			if err := s.Put(c.Context(), &store.Record{ID: id, Document: doc}); err != nil {
				return err
			}
			loggerFromContext(c.Context()).Infof("Saved layout %s", id)
			fmt.Println(id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "layout id (generated if empty)")

	return cmd
}

// newLayoutsDeleteCmd removes a saved layout.
func newLayoutsDeleteCmd(opts *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			s, err := opts.open(c.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(c.Context(), args[0]); err != nil {
				return err
			}
			loggerFromContext(c.Context()).Infof("Deleted layout %s", args[0])
			return nil
		},
	}
}
