package model

import "github.com/shopspring/decimal"

// Item is one recorded expense within an envelope. IDs are
// caller-generated and must be unique within an envelope's item list.
// Item order is insertion order and is preserved everywhere.
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Essential bool            `json:"essential"`
}

// Suggested item categories. Category is free-form; these are only
// the defaults the CLI offers.
var DefaultCategories = []string{"General", "Groceries", "Electronics", "Clothing"}

// TotalSpent sums the prices of a list of items.
func TotalSpent(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}
