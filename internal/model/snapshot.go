package model

import "github.com/shopspring/decimal"

// DefaultSavingsGoal is the savings target a fresh store starts with.
var DefaultSavingsGoal = decimal.NewFromInt(100000)

// Snapshot is the entire persistable state of the store: the envelope
// map, the active-envelope selector, and the rollover history.
type Snapshot struct {
	Envelopes map[string]Envelope `json:"envelopes"`
	Active    string              `json:"activeEnvelope"`
	History   []HistoryRecord     `json:"history"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Envelopes: make(map[string]Envelope, len(s.Envelopes)),
		Active:    s.Active,
	}
	for name, env := range s.Envelopes {
		c.Envelopes[name] = env.Clone()
	}
	c.History = make([]HistoryRecord, len(s.History))
	copy(c.History, s.History)
	return c
}

// DefaultSnapshot returns the fixed four-envelope state a new store
// starts from: zero amounts, empty items, emergency and savings
// locked, and personal active. lastReset is set to period.
func DefaultSnapshot(period string) Snapshot {
	return Snapshot{
		Envelopes: map[string]Envelope{
			EnvelopePersonal:  {Amount: decimal.Zero, Items: []Item{}, LastReset: period},
			EnvelopeTravel:    {Amount: decimal.Zero, Items: []Item{}, LastReset: period},
			EnvelopeEmergency: {Amount: decimal.Zero, Items: []Item{}, LastReset: period, Locked: true},
			EnvelopeSavings:   {Amount: decimal.Zero, Goal: DefaultSavingsGoal, Items: []Item{}, LastReset: period, Locked: true},
		},
		Active:  EnvelopePersonal,
		History: []HistoryRecord{},
	}
}
