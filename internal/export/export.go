// Package export renders envelope data as CSV reports. It is a pure
// formatting layer; nothing here touches store state.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/smartcart-dev/smartcart/internal/model"
)

// Header is the item-report header row.
var Header = []string{"Item Name", "Category", "Price", "Essential"}

// HistoryHeader is the history-report header row.
var HistoryHeader = []string{"Period", "Envelope", "Spent", "Items"}

// Rows builds the report rows for an envelope: header, one row per
// item, a blank separator, then budget/spent/remaining summary rows.
func Rows(items []model.Item, amount, spent decimal.Decimal) [][]string {
	rows := make([][]string, 0, len(items)+5)
	rows = append(rows, Header)

	for _, it := range items {
		essential := "No"
		if it.Essential {
			essential = "Yes"
		}
		rows = append(rows, []string{it.Name, it.Category, it.Price.String(), essential})
	}

	rows = append(rows,
		[]string{},
		[]string{"Budget", amount.String()},
		[]string{"Total Spent", spent.String()},
		[]string{"Remaining", amount.Sub(spent).String()},
	)
	return rows
}

// Write writes the report for an envelope's items to w.
func Write(w io.Writer, items []model.Item, amount, spent decimal.Decimal) error {
	return writeAll(w, Rows(items, amount, spent))
}

// HistoryRows builds rows for the rollover history: header plus one
// row per record in append order.
func HistoryRows(records []model.HistoryRecord) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, HistoryHeader)
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Period,
			rec.Envelope,
			rec.Spent.String(),
			fmt.Sprintf("%d", rec.ItemCount),
		})
	}
	return rows
}

// WriteHistory writes the history report to w.
func WriteHistory(w io.Writer, records []model.HistoryRecord) error {
	return writeAll(w, HistoryRows(records))
}

func writeAll(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
