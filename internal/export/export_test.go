package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcart-dev/smartcart/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRows(t *testing.T) {
	items := []model.Item{
		{ID: "1", Name: "Milk", Category: "Groceries", Price: dec("45.50"), Essential: true},
		{ID: "2", Name: "Headphones", Category: "Electronics", Price: dec("1200"), Essential: false},
	}

	rows := Rows(items, dec("2000"), dec("1245.50"))
	require.Len(t, rows, 7)

	assert.Equal(t, []string{"Item Name", "Category", "Price", "Essential"}, rows[0])
	assert.Equal(t, []string{"Milk", "Groceries", "45.5", "Yes"}, rows[1])
	assert.Equal(t, []string{"Headphones", "Electronics", "1200", "No"}, rows[2])
	assert.Empty(t, rows[3], "blank separator before summary")
	assert.Equal(t, []string{"Budget", "2000"}, rows[4])
	assert.Equal(t, []string{"Total Spent", "1245.5"}, rows[5])
	assert.Equal(t, []string{"Remaining", "754.5"}, rows[6])
}

func TestWrite(t *testing.T) {
	items := []model.Item{
		{ID: "1", Name: "Milk", Category: "Groceries", Price: dec("45"), Essential: true},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, items, dec("100"), dec("45")))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Item Name,Category,Price,Essential", lines[0])
	assert.Equal(t, "Milk,Groceries,45,Yes", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Budget,100", lines[3])
	assert.Equal(t, "Total Spent,45", lines[4])
	assert.Equal(t, "Remaining,55", lines[5])
}

func TestWrite_EmptyEnvelope(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, dec("500"), dec("0")))

	assert.Contains(t, buf.String(), "Budget,500")
	assert.Contains(t, buf.String(), "Remaining,500")
}

func TestHistoryRows(t *testing.T) {
	records := []model.HistoryRecord{
		{Period: "2024-5", Envelope: "personal", Spent: dec("300"), ItemCount: 2},
		{Period: "2024-5", Envelope: "travel", Spent: dec("120.25"), ItemCount: 1},
	}

	rows := HistoryRows(records)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Period", "Envelope", "Spent", "Items"}, rows[0])
	assert.Equal(t, []string{"2024-5", "personal", "300", "2"}, rows[1])
	assert.Equal(t, []string{"2024-5", "travel", "120.25", "1"}, rows[2])
}
