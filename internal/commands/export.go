package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcart-dev/smartcart/internal/export"
)

func newExportCommand(dataDir *string) *cobra.Command {
	var output string
	var history bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active envelope (or history) as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			snap := sess.svc.Snapshot()
			if history {
				if err := export.WriteHistory(w, snap.History); err != nil {
					return err
				}
			} else {
				env := snap.Envelopes[snap.Active]
				if err := export.Write(w, env.Items, env.Amount, env.Spent()); err != nil {
					return err
				}
			}

			if output != "" {
				fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&history, "history", false, "export rollover history instead of items")

	return cmd
}
