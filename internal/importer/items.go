package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartcart-dev/smartcart/internal/model"
)

// ItemsParser parses the smartcart item CSV format:
// name,category,price,essential — with a header row. Essential is
// yes/no (case-insensitive; true/1 also accepted).
type ItemsParser struct{}

const (
	itemsNumFields    = 4
	itemsColName      = 0
	itemsColCategory  = 1
	itemsColPrice     = 2
	itemsColEssential = 3
)

// Format returns the parser name.
func (p *ItemsParser) Format() string { return "items" }

// Parse reads an items CSV and returns the items in file order.
func (p *ItemsParser) Parse(r io.Reader) ([]model.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = itemsNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading items CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var items []model.Item
	for i, rec := range records[1:] {
		item, err := parseItemRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItemRow(rec []string) (model.Item, error) {
	name := strings.TrimSpace(rec[itemsColName])
	if name == "" {
		return model.Item{}, fmt.Errorf("empty item name")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(rec[itemsColPrice]))
	if err != nil {
		return model.Item{}, fmt.Errorf("parsing price %q: %w", rec[itemsColPrice], err)
	}

	category := strings.TrimSpace(rec[itemsColCategory])
	if category == "" {
		category = "General"
	}

	essential := false
	switch strings.ToLower(strings.TrimSpace(rec[itemsColEssential])) {
	case "yes", "true", "1":
		essential = true
	case "no", "false", "0", "":
	default:
		return model.Item{}, fmt.Errorf("invalid essential flag %q", rec[itemsColEssential])
	}

	return model.Item{
		Name:      name,
		Category:  category,
		Price:     price,
		Essential: essential,
	}, nil
}
