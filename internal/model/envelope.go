package model

import "github.com/shopspring/decimal"

// Envelope name constants. The envelope set is fixed: envelopes are
// created once at store initialization and cannot be added or removed.
const (
	EnvelopePersonal  = "personal"
	EnvelopeTravel    = "travel"
	EnvelopeEmergency = "emergency"
	EnvelopeSavings   = "savings"
)

// EnvelopeNames lists all envelope names in their canonical order.
// Rollover and display iterate in this order.
var EnvelopeNames = []string{
	EnvelopePersonal,
	EnvelopeTravel,
	EnvelopeEmergency,
	EnvelopeSavings,
}

// Envelope is one budget category: an allocation for the current
// period plus the items spent against it.
type Envelope struct {
	Amount    decimal.Decimal `json:"amount"`
	Goal      decimal.Decimal `json:"goal"`
	Items     []Item          `json:"items"`
	LastReset string          `json:"lastReset"`
	Locked    bool            `json:"locked,omitempty"`
}

// Spent returns the sum of all item prices in the envelope.
func (e Envelope) Spent() decimal.Decimal {
	return TotalSpent(e.Items)
}

// Clone returns a deep copy of the envelope.
func (e Envelope) Clone() Envelope {
	c := e
	c.Items = make([]Item, len(e.Items))
	copy(c.Items, e.Items)
	return c
}

// KnownEnvelope reports whether name is one of the fixed envelopes.
func KnownEnvelope(name string) bool {
	for _, n := range EnvelopeNames {
		if n == name {
			return true
		}
	}
	return false
}
