package envelope

import (
	"fmt"

	"github.com/smartcart-dev/smartcart/internal/model"
	"github.com/smartcart-dev/smartcart/internal/period"
)

// RunRollover closes out every envelope whose lastReset differs from
// currentPeriod: the closing period's spend is archived to history
// (when the envelope has items), unspent personal funds move into
// savings, items are cleared, and lastReset is bumped. The whole pass
// is applied as one atomic transition; calling it again with the same
// period is a no-op.
//
// A gap of several missed periods still collapses into a single
// rollover step: only equality with currentPeriod is checked.
func (s *Service) RunRollover(currentPeriod string) (model.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !period.Valid(currentPeriod) {
		return model.Snapshot{}, false, fmt.Errorf("invalid period %q", currentPeriod)
	}

	work := s.snap.Clone()
	changed := false

	for _, name := range model.EnvelopeNames {
		env := work.Envelopes[name]
		if env.LastReset == currentPeriod {
			continue
		}
		changed = true

		spent := env.Spent()
		if len(env.Items) > 0 {
			work.History = append(work.History, model.HistoryRecord{
				Period:    env.LastReset,
				Envelope:  name,
				Spent:     spent,
				ItemCount: len(env.Items),
			})
		}

		// Surplus transfer: unspent personal allocation tops up
		// savings. The transfer touches only savings' amount, so the
		// savings envelope's own pass later in the loop cannot
		// double-count it.
		if name == model.EnvelopePersonal {
			leftover := env.Amount.Sub(spent)
			if leftover.IsPositive() {
				savings := work.Envelopes[model.EnvelopeSavings]
				savings.Amount = savings.Amount.Add(leftover)
				work.Envelopes[model.EnvelopeSavings] = savings
			}
		}

		env.Items = []model.Item{}
		env.LastReset = currentPeriod
		work.Envelopes[name] = env
	}

	if changed {
		s.snap = work
	}
	return s.snap.Clone(), changed, nil
}
