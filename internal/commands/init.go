package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/smartcart-dev/smartcart/internal/config"
	"github.com/smartcart-dev/smartcart/internal/envelope"
	"github.com/smartcart-dev/smartcart/internal/gitops"
	"github.com/smartcart-dev/smartcart/internal/model"
	"github.com/smartcart-dev/smartcart/internal/period"
	"github.com/smartcart-dev/smartcart/internal/persist"
)

func newInitCommand(dataDir *string) *cobra.Command {
	var currency string
	var goal float64
	var encrypt bool
	var useGit bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new smartcart data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(*dataDir, currency, goal, encrypt, useGit)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "₹", "currency symbol for display")
	cmd.Flags().Float64Var(&goal, "goal", 100000, "initial savings goal")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "encrypt the snapshot with a passphrase")
	cmd.Flags().BoolVar(&useGit, "git", false, "track the data directory in git")

	return cmd
}

func runInit(dataDir, currency string, goal float64, encrypt, useGit bool) error {
	store, err := persist.Open(dataDir)
	if err != nil {
		return err
	}
	if store.IsEncrypted() {
		return fmt.Errorf("data directory %s is already initialized", dataDir)
	}
	if _, exists, err := store.Load(); err == nil && exists {
		return fmt.Errorf("data directory %s is already initialized", dataDir)
	}

	cfg := config.Default()
	cfg.Display.Currency = currency
	cfg.Budget.SavingsGoal = goal
	cfg.Git.AutoCommit = useGit
	if err := config.Save(dataDir, cfg); err != nil {
		return err
	}

	if encrypt {
		pass, err := readPassphrase("New passphrase: ")
		if err != nil {
			return err
		}
		again, err := readPassphrase("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if pass != again {
			return fmt.Errorf("passphrases do not match")
		}
		if err := store.EnableEncryption(pass); err != nil {
			return err
		}
	}

	svc := envelope.NewService(period.FromTime(time.Now()))
	if !decimal.NewFromFloat(goal).Equal(model.DefaultSavingsGoal) {
		if _, err := svc.SetGoal(decimal.NewFromFloat(goal)); err != nil {
			return err
		}
	}
	if err := store.Save(svc.Snapshot()); err != nil {
		return err
	}

	if useGit && !gitops.IsRepo(dataDir) {
		if err := gitops.Init(dataDir); err != nil {
			return err
		}
		if _, err := gitops.CommitAll(dataDir, "init: new budget", cfg.Git.AuthorName, cfg.Git.AuthorEmail); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized smartcart data directory at %s\n", dataDir)
	return nil
}
