package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show monthly rollover history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}

			snap := sess.svc.Snapshot()
			if len(snap.History) == 0 {
				fmt.Println("No history yet")
				return nil
			}

			for _, rec := range snap.History {
				fmt.Printf("%-8s %-10s spent %s (%d items)\n",
					rec.Period, rec.Envelope, sess.money(rec.Spent), rec.ItemCount)
			}
			return nil
		},
	}
}
