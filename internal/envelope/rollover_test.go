package envelope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcart-dev/smartcart/internal/model"
)

func TestRunRollover_SurplusToSavings(t *testing.T) {
	svc := NewService("2024-5")
	_, err := svc.SetAmount(model.EnvelopePersonal, dec("1000"))
	require.NoError(t, err)
	_, err = svc.AddItem(item("1", "groceries", "300"))
	require.NoError(t, err)

	snap, changed, err := svc.RunRollover("2024-6")
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, snap.History, 1)
	rec := snap.History[0]
	assert.Equal(t, "2024-5", rec.Period)
	assert.Equal(t, model.EnvelopePersonal, rec.Envelope)
	assert.True(t, rec.Spent.Equal(dec("300")))
	assert.Equal(t, 1, rec.ItemCount)

	personal := snap.Envelopes[model.EnvelopePersonal]
	assert.Empty(t, personal.Items)
	assert.Equal(t, "2024-6", personal.LastReset)
	assert.True(t, personal.Amount.Equal(dec("1000")), "allocation survives rollover")

	// The 700 leftover moved into savings.
	assert.True(t, snap.Envelopes[model.EnvelopeSavings].Amount.Equal(dec("700")))
}

func TestRunRollover_Idempotent(t *testing.T) {
	svc := NewService("2024-5")
	_, err := svc.SetAmount(model.EnvelopePersonal, dec("1000"))
	require.NoError(t, err)
	_, err = svc.AddItem(item("1", "groceries", "300"))
	require.NoError(t, err)

	first, changed, err := svc.RunRollover("2024-6")
	require.NoError(t, err)
	require.True(t, changed)

	second, changed, err := svc.RunRollover("2024-6")
	require.NoError(t, err)
	assert.False(t, changed, "same-period rollover must be a no-op")
	assert.Equal(t, first, second)
	assert.Len(t, second.History, 1)
	assert.True(t, second.Envelopes[model.EnvelopeSavings].Amount.Equal(dec("700")),
		"surplus must not transfer twice")
}

func TestRunRollover_CurrentPeriodNoop(t *testing.T) {
	svc := NewService("2024-5")
	_, err := svc.AddItem(item("1", "groceries", "50"))
	require.NoError(t, err)

	snap, changed, err := svc.RunRollover("2024-5")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, snap.Envelopes[model.EnvelopePersonal].Items, 1)
	assert.Empty(t, snap.History)
}

func TestRunRollover_EmptyEnvelopeStillBumps(t *testing.T) {
	svc := NewService("2024-5")

	snap, changed, err := svc.RunRollover("2024-6")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, snap.History, "no history entry for empty envelopes")
	for _, name := range model.EnvelopeNames {
		assert.Equal(t, "2024-6", snap.Envelopes[name].LastReset)
	}
	assert.True(t, snap.Envelopes[model.EnvelopeSavings].Amount.IsZero(),
		"no surplus when nothing was allocated")
}

func TestRunRollover_NoSurplusWhenOverspent(t *testing.T) {
	svc := NewService("2024-5")
	_, err := svc.SetAmount(model.EnvelopePersonal, dec("100"))
	require.NoError(t, err)
	_, err = svc.AddItem(item("1", "splurge", "150"))
	require.NoError(t, err)

	snap, _, err := svc.RunRollover("2024-6")
	require.NoError(t, err)
	assert.True(t, snap.Envelopes[model.EnvelopeSavings].Amount.IsZero())
}

func TestRunRollover_AllEnvelopesInOnePass(t *testing.T) {
	svc := NewService("2024-5")
	_, err := svc.SetAmount(model.EnvelopePersonal, dec("1000"))
	require.NoError(t, err)
	_, err = svc.AddItem(item("p1", "food", "400"))
	require.NoError(t, err)

	_, err = svc.SetActive(model.EnvelopeTravel)
	require.NoError(t, err)
	_, err = svc.AddItem(item("t1", "flight", "250"))
	require.NoError(t, err)

	snap, _, err := svc.RunRollover("2024-6")
	require.NoError(t, err)

	// History keeps the deterministic envelope order.
	require.Len(t, snap.History, 2)
	assert.Equal(t, model.EnvelopePersonal, snap.History[0].Envelope)
	assert.Equal(t, model.EnvelopeTravel, snap.History[1].Envelope)

	for _, name := range model.EnvelopeNames {
		env := snap.Envelopes[name]
		assert.Empty(t, env.Items, "%s items cleared", name)
		assert.Equal(t, "2024-6", env.LastReset)
	}
	assert.True(t, snap.Envelopes[model.EnvelopeSavings].Amount.Equal(dec("600")))
}

func TestRunRollover_MultiPeriodGapCollapses(t *testing.T) {
	svc := NewService("2024-3")
	_, err := svc.SetAmount(model.EnvelopePersonal, dec("1000"))
	require.NoError(t, err)
	_, err = svc.AddItem(item("1", "groceries", "100"))
	require.NoError(t, err)

	// Three months pass unused: still exactly one rollover step, one
	// history record, one surplus transfer.
	snap, _, err := svc.RunRollover("2024-6")
	require.NoError(t, err)
	require.Len(t, snap.History, 1)
	assert.Equal(t, "2024-3", snap.History[0].Period)
	assert.True(t, snap.Envelopes[model.EnvelopeSavings].Amount.Equal(dec("900")))
}

func TestRunRollover_InvalidPeriod(t *testing.T) {
	svc := NewService("2024-5")
	_, _, err := svc.RunRollover("soon")
	assert.Error(t, err)
}
