package model

import "github.com/shopspring/decimal"

// HistoryRecord is an immutable summary written when an envelope rolls
// over with at least one item. History is append-only; only a full
// reset clears it.
type HistoryRecord struct {
	Period    string          `json:"period"`
	Envelope  string          `json:"envelope"`
	Spent     decimal.Decimal `json:"spent"`
	ItemCount int             `json:"itemCount"`
}
