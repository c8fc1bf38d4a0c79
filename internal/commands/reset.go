package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartcart-dev/smartcart/internal/period"
)

func newResetCommand(dataDir *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all envelopes and history back to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("reset discards all data; re-run with --force to confirm")
			}

			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}
			if _, err := sess.svc.ResetAll(period.FromTime(sess.now)); err != nil {
				return err
			}
			if err := sess.commit("reset", "", "", ""); err != nil {
				return err
			}

			fmt.Println("Reset all envelopes and history")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "confirm the reset")

	return cmd
}
