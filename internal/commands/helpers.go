package commands

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/smartcart-dev/smartcart/internal/auditlog"
	"github.com/smartcart-dev/smartcart/internal/config"
	"github.com/smartcart-dev/smartcart/internal/envelope"
	"github.com/smartcart-dev/smartcart/internal/gitops"
	"github.com/smartcart-dev/smartcart/internal/period"
	"github.com/smartcart-dev/smartcart/internal/persist"
)

// session wires a command invocation to the store: config, persisted
// snapshot, and the envelope service restored from it. Opening a
// session runs the rollover for the current period, so every command
// sees fresh state.
type session struct {
	dataDir string
	cfg     *config.Config
	store   *persist.Store
	svc     *envelope.Service
	now     time.Time
}

// openSession loads the data dir and replays any pending rollover.
func openSession(dataDir string) (*session, error) {
	cfg, err := config.LoadOrDefault(dataDir)
	if err != nil {
		return nil, err
	}

	store, err := persist.Open(dataDir)
	if err != nil {
		return nil, err
	}
	if store.IsEncrypted() {
		pass, err := readPassphrase("Passphrase: ")
		if err != nil {
			return nil, err
		}
		if err := store.Unlock(pass); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	currentPeriod := period.FromTime(now)

	snap, exists, err := store.Load()
	if err != nil {
		return nil, err
	}

	var svc *envelope.Service
	if exists {
		svc, err = envelope.Restore(snap)
		if err != nil {
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
	} else {
		svc = envelope.NewService(currentPeriod)
	}

	_, rolled, err := svc.RunRollover(currentPeriod)
	if err != nil {
		return nil, err
	}
	if rolled || !exists {
		if err := store.Save(svc.Snapshot()); err != nil {
			return nil, err
		}
	}

	return &session{dataDir: dataDir, cfg: cfg, store: store, svc: svc, now: now}, nil
}

// commit persists the current snapshot and records the operation in
// the audit log. The audit log and git commit are best-effort.
func (s *session) commit(action, envName, itemID, details string) error {
	if err := s.store.Save(s.svc.Snapshot()); err != nil {
		return err
	}

	entry := auditlog.Entry{
		Timestamp: s.now,
		Action:    action,
		Envelope:  envName,
		ItemID:    itemID,
		Details:   details,
	}
	if err := auditlog.Append(s.dataDir, []auditlog.Entry{entry}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log: %v\n", err)
	}

	if s.cfg.Git.AutoCommit && gitops.IsRepo(s.dataDir) {
		msg := action
		if details != "" {
			msg = action + ": " + details
		}
		if _, err := gitops.CommitAll(s.dataDir, msg, s.cfg.Git.AuthorName, s.cfg.Git.AuthorEmail); err != nil {
			fmt.Fprintf(os.Stderr, "warning: git commit: %v\n", err)
		}
	}
	return nil
}

// readPassphrase prompts without echo. SMARTCART_PASSPHRASE overrides
// the prompt for scripted use.
func readPassphrase(prompt string) (string, error) {
	if pass := os.Getenv("SMARTCART_PASSPHRASE"); pass != "" {
		return pass, nil
	}

	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(raw), nil
}

// money renders an amount with the configured currency symbol.
func (s *session) money(d fmt.Stringer) string {
	return s.cfg.Display.Currency + d.String()
}
