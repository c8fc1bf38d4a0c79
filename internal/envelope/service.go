package envelope

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/smartcart-dev/smartcart/internal/model"
	"github.com/smartcart-dev/smartcart/internal/period"
)

// Service owns the envelope state and provides its entire mutation
// surface. All mutations are serialized behind one mutex, validate
// before applying, and either succeed atomically or leave the state
// untouched. Every successful mutation returns a deep copy of the
// new snapshot; persistence is the caller's job.
type Service struct {
	mu   sync.Mutex
	snap model.Snapshot
}

// NewService creates a Service with the default envelope set, using
// currentPeriod as every envelope's lastReset.
func NewService(currentPeriod string) *Service {
	return &Service{snap: model.DefaultSnapshot(currentPeriod)}
}

// Restore creates a Service from a previously serialized snapshot.
func Restore(snap model.Snapshot) (*Service, error) {
	if err := validate(snap); err != nil {
		return nil, err
	}
	return &Service{snap: snap.Clone()}, nil
}

// validate checks snapshot invariants: the fixed envelope set is
// present, the active name exists, item IDs are pairwise distinct,
// and every lastReset is a valid period token.
func validate(snap model.Snapshot) error {
	for _, name := range model.EnvelopeNames {
		env, ok := snap.Envelopes[name]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrUnknownEnvelope, name)
		}
		if !period.Valid(env.LastReset) {
			return fmt.Errorf("envelope %q: bad lastReset %q", name, env.LastReset)
		}
		seen := make(map[string]bool, len(env.Items))
		for _, it := range env.Items {
			if seen[it.ID] {
				return fmt.Errorf("envelope %q: %w: %s", name, ErrDuplicateItem, it.ID)
			}
			seen[it.ID] = true
		}
	}
	if !model.KnownEnvelope(snap.Active) {
		return fmt.Errorf("%w: active %q", ErrUnknownEnvelope, snap.Active)
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Service) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Active returns the name of the active envelope.
func (s *Service) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Active
}

// SetAmount replaces an envelope's allocation. Items are unaffected.
func (s *Service) SetAmount(name string, amount decimal.Decimal) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	env, ok := s.snap.Envelopes[name]
	if !ok {
		return model.Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownEnvelope, name)
	}
	if amount.IsNegative() {
		return model.Snapshot{}, fmt.Errorf("%w: amount %s", ErrInvalidAmount, amount)
	}

	env.Amount = amount
	s.snap.Envelopes[name] = env
	return s.snap.Clone(), nil
}

// SetGoal sets the savings target. Goals only exist on the savings
// envelope.
func (s *Service) SetGoal(goal decimal.Decimal) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if goal.IsNegative() {
		return model.Snapshot{}, fmt.Errorf("%w: goal %s", ErrInvalidAmount, goal)
	}

	env := s.snap.Envelopes[model.EnvelopeSavings]
	env.Goal = goal
	s.snap.Envelopes[model.EnvelopeSavings] = env
	return s.snap.Clone(), nil
}

// SetActive switches the active-envelope selector.
func (s *Service) SetActive(name string) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !model.KnownEnvelope(name) {
		return model.Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownEnvelope, name)
	}
	s.snap.Active = name
	return s.snap.Clone(), nil
}

// AddItem appends an item to the active envelope, subject to the
// envelope's spend rule. A ceiling-locked envelope rejects the item
// when total spend including it would exceed the allocation; a
// forbidden envelope rejects every item. The rule only applies while
// the envelope is locked.
func (s *Service) AddItem(item model.Item) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.snap.Active
	env := s.snap.Envelopes[name]

	if item.Price.IsNegative() {
		return model.Snapshot{}, fmt.Errorf("%w: price %s", ErrInvalidAmount, item.Price)
	}
	for _, it := range env.Items {
		if it.ID == item.ID {
			return model.Snapshot{}, fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
		}
	}

	if env.Locked {
		switch model.RuleFor(name) {
		case model.SpendForbidden:
			return model.Snapshot{}, fmt.Errorf("%w: %s does not allow spending", ErrEnvelopeLocked, name)
		case model.SpendCeiling:
			if env.Spent().Add(item.Price).GreaterThan(env.Amount) {
				return model.Snapshot{}, fmt.Errorf("%w: %s cannot overspend", ErrEnvelopeLocked, name)
			}
		}
	}

	env.Items = append(env.Items, item)
	s.snap.Envelopes[name] = env
	return s.snap.Clone(), nil
}

// DeleteItem removes the item with the given ID from the active
// envelope. A missing ID is a no-op, not an error. Undo is
// re-insertion via AddItem, which re-runs the spend rule.
func (s *Service) DeleteItem(id string) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.snap.Active
	env := s.snap.Envelopes[name]

	kept := env.Items[:0:0]
	for _, it := range env.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	env.Items = kept
	s.snap.Envelopes[name] = env
	return s.snap.Clone(), nil
}

// ItemPatch holds the mutable item fields for an update. Nil fields
// are left unchanged.
type ItemPatch struct {
	Name      *string
	Category  *string
	Price     *decimal.Decimal
	Essential *bool
}

// UpdateItem merges a patch into the item with the given ID in the
// active envelope.
func (s *Service) UpdateItem(id string, patch ItemPatch) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Price != nil && patch.Price.IsNegative() {
		return model.Snapshot{}, fmt.Errorf("%w: price %s", ErrInvalidAmount, *patch.Price)
	}

	name := s.snap.Active
	env := s.snap.Envelopes[name]

	for i, it := range env.Items {
		if it.ID != id {
			continue
		}
		if patch.Name != nil {
			it.Name = *patch.Name
		}
		if patch.Category != nil {
			it.Category = *patch.Category
		}
		if patch.Price != nil {
			it.Price = *patch.Price
		}
		if patch.Essential != nil {
			it.Essential = *patch.Essential
		}
		env.Items[i] = it
		s.snap.Envelopes[name] = env
		return s.snap.Clone(), nil
	}

	return model.Snapshot{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// ResetAll restores the default envelope set, clears history, and
// selects personal. lastReset is set to currentPeriod.
func (s *Service) ResetAll(currentPeriod string) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !period.Valid(currentPeriod) {
		return model.Snapshot{}, fmt.Errorf("invalid period %q", currentPeriod)
	}
	s.snap = model.DefaultSnapshot(currentPeriod)
	return s.snap.Clone(), nil
}
