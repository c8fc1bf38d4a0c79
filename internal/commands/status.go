package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/smartcart-dev/smartcart/internal/analytics"
	"github.com/smartcart-dev/smartcart/internal/model"
)

func newStatusCommand(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show all envelopes and spending health for the active one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(*dataDir)
			if err != nil {
				return err
			}
			return runStatus(sess)
		},
	}
}

func runStatus(sess *session) error {
	snap := sess.svc.Snapshot()

	fmt.Println("Envelopes:")
	for _, name := range model.EnvelopeNames {
		env := snap.Envelopes[name]
		marker := " "
		if name == snap.Active {
			marker = "*"
		}
		lock := ""
		if env.Locked {
			lock = " [locked]"
		}
		fmt.Printf("%s %-10s budget %s  spent %s  remaining %s (%d%% used)%s\n",
			marker, name,
			sess.money(env.Amount),
			sess.money(env.Spent()),
			sess.money(analytics.Remaining(env)),
			analytics.UsagePercent(env),
			lock)
	}

	active := snap.Envelopes[snap.Active]
	warnRatio := decimal.NewFromFloat(sess.cfg.Budget.WarnRatio)

	fmt.Println()
	switch analytics.Status(active, warnRatio) {
	case analytics.StatusOver:
		fmt.Println("Budget exceeded. Reduce spending.")
	case analytics.StatusWarning:
		fmt.Printf("Budget below %.0f%%. Spend carefully.\n", sess.cfg.Budget.WarnRatio*100)
	default:
		fmt.Println("Spending is under control.")
	}

	remaining := analytics.Remaining(active)
	fmt.Printf("Daily safe spend: %s\n", sess.money(analytics.DailySafeSpend(remaining, sess.now)))
	fmt.Printf("Predicted month-end spend: %s\n", sess.money(analytics.PredictedMonthEnd(active.Spent(), sess.now)))

	if totals := analytics.CategoryTotals(active.Items); len(totals) > 0 {
		fmt.Println("\nCategories:")
		for _, ct := range totals {
			fmt.Printf("  %-12s %s\n", ct.Category, sess.money(ct.Total))
		}
	}

	if top := analytics.TopItems(active.Items, 3); len(top) > 0 {
		fmt.Println("\nTop items:")
		for _, it := range top {
			fmt.Printf("  %-20s %s\n", it.Name, sess.money(it.Price))
		}
	}

	savings := snap.Envelopes[model.EnvelopeSavings]
	if savings.Goal.IsPositive() {
		progress, achieved := analytics.SavingsProgress(savings)
		status := fmt.Sprintf("%d%% of goal %s", progress, sess.money(savings.Goal))
		if achieved {
			status += " (achieved)"
		}
		fmt.Printf("\nSavings: %s\n", status)
	}

	return nil
}
