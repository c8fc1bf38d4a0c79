package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/smartcart-dev/smartcart/internal/model"
)

func newEnvelopeCommand(dataDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "envelope",
		Short: "Manage envelopes",
	}
	cmd.AddCommand(newEnvelopeListCommand(dataDir))
	cmd.AddCommand(newEnvelopeSetCommand(dataDir))
	cmd.AddCommand(newEnvelopeGoalCommand(dataDir))
	cmd.AddCommand(newEnvelopeUseCommand(dataDir))
	return cmd
}

func newEnvelopeListCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List envelopes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}
			snap := sess.svc.Snapshot()
			for _, name := range model.EnvelopeNames {
				env := snap.Envelopes[name]
				marker := " "
				if name == snap.Active {
					marker = "*"
				}
				fmt.Printf("%s %-10s %s (%d items)\n", marker, name, sess.money(env.Amount), len(env.Items))
			}
			return nil
		},
	}
}

func newEnvelopeSetCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <envelope> <amount>",
		Short: "Set an envelope's budget amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[1], err)
			}

			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}
			if _, err := sess.svc.SetAmount(args[0], amount); err != nil {
				return err
			}
			if err := sess.commit("envelope-set", args[0], "", args[1]); err != nil {
				return err
			}

			fmt.Printf("Set %s budget to %s\n", args[0], sess.money(amount))
			return nil
		},
	}
}

func newEnvelopeGoalCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "goal <amount>",
		Short: "Set the savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing goal %q: %w", args[0], err)
			}

			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}
			if _, err := sess.svc.SetGoal(goal); err != nil {
				return err
			}
			if err := sess.commit("goal-set", model.EnvelopeSavings, "", args[0]); err != nil {
				return err
			}

			fmt.Printf("Set savings goal to %s\n", sess.money(goal))
			return nil
		},
	}
}

func newEnvelopeUseCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "use <envelope>",
		Short: "Switch the active envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}
			if _, err := sess.svc.SetActive(args[0]); err != nil {
				return err
			}
			if err := sess.commit("envelope-use", args[0], "", ""); err != nil {
				return err
			}

			fmt.Printf("Active envelope is now %s\n", args[0])
			return nil
		},
	}
}
