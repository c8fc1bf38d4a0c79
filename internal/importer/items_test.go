package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestItemsParser_Parse(t *testing.T) {
	csv := `name,category,price,essential
Milk,Groceries,45.50,yes
Headphones,Electronics,1200,no
Socks,,99,
`
	items, err := (&ItemsParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Milk", items[0].Name)
	assert.Equal(t, "Groceries", items[0].Category)
	assert.True(t, items[0].Price.Equal(dec("45.50")))
	assert.True(t, items[0].Essential)

	assert.Equal(t, "Headphones", items[1].Name)
	assert.False(t, items[1].Essential)

	assert.Equal(t, "General", items[2].Category, "empty category defaults")
	assert.False(t, items[2].Essential)

	for _, it := range items {
		assert.Empty(t, it.ID, "parser leaves IDs to the caller")
	}
}

func TestItemsParser_HeaderOnly(t *testing.T) {
	items, err := (&ItemsParser{}).Parse(strings.NewReader("name,category,price,essential\n"))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemsParser_BadRows(t *testing.T) {
	cases := map[string]string{
		"bad price":     "name,category,price,essential\nMilk,Groceries,cheap,no\n",
		"empty name":    "name,category,price,essential\n,Groceries,10,no\n",
		"bad essential": "name,category,price,essential\nMilk,Groceries,10,maybe\n",
	}
	for name, csv := range cases {
		_, err := (&ItemsParser{}).Parse(strings.NewReader(csv))
		assert.Error(t, err, name)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("items"))
	assert.NotNil(t, r.Get("ITEMS"), "format lookup is case-insensitive")
	assert.Nil(t, r.Get("chase"))

	assert.Panics(t, func() { r.Register(&ItemsParser{}) })
}
