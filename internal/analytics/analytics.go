// Package analytics computes derived values from envelope state. All
// functions are pure: they read a snapshot (or pieces of one) and an
// explicit as-of time, mutate nothing, and have no clock or store
// dependence of their own.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartcart-dev/smartcart/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Remaining returns the unspent part of an envelope's allocation.
// Negative when the envelope is overspent.
func Remaining(env model.Envelope) decimal.Decimal {
	return env.Amount.Sub(env.Spent())
}

// UsagePercent returns spent/amount as a whole percentage, clamped to
// 0..100. Zero when the allocation is zero.
func UsagePercent(env model.Envelope) int {
	if env.Amount.IsZero() {
		return 0
	}
	pct := env.Spent().Div(env.Amount).Mul(hundred).Round(0).IntPart()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// CategoryTotal is one category's summed spend.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// CategoryTotals sums item prices per category. Categories appear in
// first-seen order.
func CategoryTotals(items []model.Item) []CategoryTotal {
	index := make(map[string]int, len(items))
	totals := make([]CategoryTotal, 0, len(items))
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(totals)
			index[it.Category] = i
			totals = append(totals, CategoryTotal{Category: it.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(it.Price)
	}
	return totals
}

// TopItems returns the n most expensive items, ties kept in their
// original insertion order.
func TopItems(items []model.Item, n int) []model.Item {
	sorted := make([]model.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.GreaterThan(sorted[j].Price)
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// DailySafeSpend returns how much can be spent per remaining day of
// the month (today inclusive) without exceeding remaining. Zero when
// nothing remains.
func DailySafeSpend(remaining decimal.Decimal, asOf time.Time) decimal.Decimal {
	if !remaining.IsPositive() {
		return decimal.Zero
	}
	days := daysInMonth(asOf) - asOf.Day() + 1
	if days <= 0 {
		return decimal.Zero
	}
	return remaining.Div(decimal.NewFromInt(int64(days))).Round(0)
}

// PredictedMonthEnd extrapolates the month's total spend from the
// average daily spend so far.
func PredictedMonthEnd(totalSpent decimal.Decimal, asOf time.Time) decimal.Decimal {
	daysPassed := decimal.NewFromInt(int64(asOf.Day()))
	avg := totalSpent.Div(daysPassed).Round(0)
	return avg.Mul(decimal.NewFromInt(int64(daysInMonth(asOf))))
}

// SavingsProgress returns the percentage of the savings goal reached
// and whether the goal is achieved. Zero progress when no goal is
// set. Savings accumulate as items, so progress is measured against
// the envelope's recorded spend.
func SavingsProgress(savings model.Envelope) (percent int, achieved bool) {
	if !savings.Goal.IsPositive() {
		return 0, false
	}
	saved := savings.Spent()
	percent = int(saved.Div(savings.Goal).Mul(hundred).Round(0).IntPart())
	achieved = saved.GreaterThanOrEqual(savings.Goal)
	return percent, achieved
}

// StatusKind classifies an envelope's spending health.
type StatusKind string

const (
	// StatusOver means spending has exceeded the allocation.
	StatusOver StatusKind = "over"
	// StatusWarning means remaining funds fell under the warning
	// ratio of the allocation.
	StatusWarning StatusKind = "warning"
	// StatusOK means spending is under control.
	StatusOK StatusKind = "ok"
)

// Status classifies an envelope against a warning ratio (e.g. 0.2 for
// a below-20% warning).
func Status(env model.Envelope, warnRatio decimal.Decimal) StatusKind {
	remaining := Remaining(env)
	if remaining.IsNegative() {
		return StatusOver
	}
	if remaining.LessThan(env.Amount.Mul(warnRatio)) {
		return StatusWarning
	}
	return StatusOK
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
