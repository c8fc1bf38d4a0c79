package persist

import (
	"os"
	"path/filepath"
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

func sampleSnapshot() model.Snapshot {
	snap := model.DefaultSnapshot("2024-5")
	personal := snap.Envelopes[model.EnvelopePersonal]
	personal.Amount = dec("1000.75")
	personal.Items = []model.Item{
		{ID: "b", Name: "second-added-first", Category: "General", Price: dec("300"), Essential: true},
		{ID: "a", Name: "added-second", Category: "Groceries", Price: dec("12.05")},
	}
	snap.Envelopes[model.EnvelopePersonal] = personal
	snap.Active = model.EnvelopeTravel
	snap.History = []model.HistoryRecord{
		{Period: "2024-4", Envelope: "personal", Spent: dec("812.05"), ItemCount: 2},
	}
	return snap
}

func TestMarshalRoundTrip(t *testing.T) {
	snap := sampleSnapshot()

	data, err := Marshal(snap)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	// Item order, flags, and selection survive.
	personal := got.Envelopes[model.EnvelopePersonal]
	require.Len(t, personal.Items, 2)
	assert.Equal(t, "b", personal.Items[0].ID, "insertion order preserved")
	assert.Equal(t, "a", personal.Items[1].ID)
	assert.True(t, personal.Items[0].Essential)
	assert.False(t, personal.Items[1].Essential)
	assert.Equal(t, model.EnvelopeTravel, got.Active)
	assert.True(t, got.Envelopes[model.EnvelopeEmergency].Locked)

	// Numeric precision survives exactly.
	assert.True(t, personal.Amount.Equal(dec("1000.75")))
	assert.True(t, personal.Items[1].Price.Equal(dec("12.05")))
	require.Len(t, got.History, 1)
	assert.True(t, got.History[0].Spent.Equal(dec("812.05")))

	// A second round trip is byte-stable.
	again, err := Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestUnmarshal_NormalizesNilLists(t *testing.T) {
	raw := []byte(`{
		"envelopes": {"personal": {"amount": "0", "goal": "0", "items": null, "lastReset": "2024-5"}},
		"activeEnvelope": "personal",
		"history": null
	}`)

	snap, err := Unmarshal(raw)
	require.NoError(t, err)
	assert.NotNil(t, snap.Envelopes["personal"].Items)
	assert.NotNil(t, snap.History)
}

func TestStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	assert.False(t, store.IsEncrypted())

	_, exists, err := store.Load()
	require.NoError(t, err)
	assert.False(t, exists)

	snap := sampleSnapshot()
	require.NoError(t, store.Save(snap))

	got, exists, err := store.Load()
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, model.EnvelopeTravel, got.Active)
	assert.Len(t, got.Envelopes[model.EnvelopePersonal].Items, 2)

	// Plain mode stores readable JSON.
	data, err := os.ReadFile(filepath.Join(dir, "snapshot.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "activeEnvelope")
}

func TestStore_Encrypted(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save(sampleSnapshot()))
	require.NoError(t, store.EnableEncryption("hunter2"))
	assert.True(t, store.IsEncrypted())

	// The file on disk is sealed now.
	data, err := os.ReadFile(filepath.Join(dir, "snapshot.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "activeEnvelope")

	// A fresh store detects encryption and refuses to read while locked.
	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.True(t, reopened.IsEncrypted())
	_, _, err = reopened.Load()
	assert.ErrorIs(t, err, ErrLocked)

	require.Error(t, reopened.Unlock("wrong"))
	require.NoError(t, reopened.Unlock("hunter2"))

	got, exists, err := reopened.Load()
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, model.EnvelopeTravel, got.Active)
	assert.True(t, got.Envelopes[model.EnvelopePersonal].Amount.Equal(dec("1000.75")))
}
