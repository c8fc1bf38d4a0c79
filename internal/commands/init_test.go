package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcart-dev/smartcart/internal/model"
	"github.com/smartcart-dev/smartcart/internal/persist"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRunInit_CreatesSnapshotAndConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "$", 50000, false, false))

	_, err := os.Stat(filepath.Join(dir, "snapshot.json"))
	require.NoError(t, err, "snapshot should exist")

	data, err := os.ReadFile(filepath.Join(dir, "smartcart.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "currency: $")
	assert.Contains(t, string(data), "savings_goal: 50000")

	store, err := persist.Open(dir)
	require.NoError(t, err)
	snap, exists, err := store.Load()
	require.NoError(t, err)
	require.True(t, exists)

	assert.Equal(t, model.EnvelopePersonal, snap.Active)
	assert.Len(t, snap.Envelopes, 4)
	assert.True(t, snap.Envelopes[model.EnvelopeSavings].Goal.Equal(dec("50000")))
}

func TestRunInit_AlreadyInitialized(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "₹", 100000, false, false))
	assert.Error(t, runInit(dir, "₹", 100000, false, false))
}

func TestRunInit_Encrypted(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SMARTCART_PASSPHRASE", "hunter2")
	require.NoError(t, runInit(dir, "₹", 100000, true, false))

	store, err := persist.Open(dir)
	require.NoError(t, err)
	require.True(t, store.IsEncrypted())
	require.NoError(t, store.Unlock("hunter2"))

	snap, exists, err := store.Load()
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, model.EnvelopePersonal, snap.Active)
}
