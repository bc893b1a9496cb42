package engagement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceOffering(t *testing.T) {
	t.Run("creates offering successfully", func(t *testing.T) {
		s, err := NewServiceOffering("vat-return", "VAT Return", decimal.NewFromInt(150))

		require.NoError(t, err)
		assert.Equal(t, "VAT-RETURN", s.Code)
		assert.Equal(t, "VAT Return", s.Name)
		assert.True(t, s.Active)
		assert.True(t, s.DefaultFee.Equal(decimal.NewFromInt(150)))
	})

	t.Run("fails with empty code", func(t *testing.T) {
		s, err := NewServiceOffering("", "VAT Return", decimal.Zero)

		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("fails with negative fee", func(t *testing.T) {
		s, err := NewServiceOffering("VAT", "VAT Return", decimal.NewFromInt(-1))

		assert.Error(t, err)
		assert.Nil(t, s)
	})

	t.Run("deactivate then activate", func(t *testing.T) {
		s, err := NewServiceOffering("VAT", "VAT Return", decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, s.Deactivate())
		assert.False(t, s.Active)
		assert.Error(t, s.Deactivate())

		require.NoError(t, s.Activate())
		assert.True(t, s.Active)
	})
}

func TestNewEngagement(t *testing.T) {
	serviceID := uuid.New()
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates engagement with monthly due date", func(t *testing.T) {
		e, err := NewEngagement("1A001", serviceID, decimal.NewFromInt(100), FrequencyMonthly, start)

		require.NoError(t, err)
		assert.Equal(t, "1A001", e.ClientRef)
		assert.Equal(t, StatusActive, e.Status)
		require.NotNil(t, e.NextDueAt)
		assert.Equal(t, start.AddDate(0, 1, 0), *e.NextDueAt)
		assert.Len(t, e.GetDomainEvents(), 1)
	})

	t.Run("one-off engagement is due at its start date", func(t *testing.T) {
		e, err := NewEngagement("1A001", serviceID, decimal.NewFromInt(500), FrequencyOneOff, start)

		require.NoError(t, err)
		require.NotNil(t, e.NextDueAt)
		assert.Equal(t, start, *e.NextDueAt)
	})

	t.Run("fails with empty client reference", func(t *testing.T) {
		e, err := NewEngagement("", serviceID, decimal.Zero, FrequencyMonthly, start)

		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("fails with nil service", func(t *testing.T) {
		e, err := NewEngagement("1A001", uuid.Nil, decimal.Zero, FrequencyMonthly, start)

		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("fails with invalid frequency", func(t *testing.T) {
		e, err := NewEngagement("1A001", serviceID, decimal.Zero, Frequency("weekly"), start)

		assert.Error(t, err)
		assert.Nil(t, e)
	})
}

func TestEngagement_Lifecycle(t *testing.T) {
	serviceID := uuid.New()
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	newEngagement := func(t *testing.T, freq Frequency) *Engagement {
		e, err := NewEngagement("1A001", serviceID, decimal.NewFromInt(100), freq, start)
		require.NoError(t, err)
		return e
	}

	t.Run("pause and resume", func(t *testing.T) {
		e := newEngagement(t, FrequencyMonthly)

		require.NoError(t, e.Pause())
		assert.Equal(t, StatusPaused, e.Status)
		assert.Error(t, e.Pause())

		require.NoError(t, e.Resume())
		assert.Equal(t, StatusActive, e.Status)
	})

	t.Run("end clears the due date", func(t *testing.T) {
		e := newEngagement(t, FrequencyQuarterly)

		require.NoError(t, e.End())
		assert.Equal(t, StatusEnded, e.Status)
		assert.Nil(t, e.NextDueAt)
		assert.NotNil(t, e.EndedAt)
		assert.Error(t, e.End())
	})

	t.Run("advance due moves one billing period", func(t *testing.T) {
		e := newEngagement(t, FrequencyQuarterly)

		require.NoError(t, e.AdvanceDue())
		require.NotNil(t, e.NextDueAt)
		assert.Equal(t, start.AddDate(0, 6, 0), *e.NextDueAt)
	})

	t.Run("advance due on a one-off clears the due date", func(t *testing.T) {
		e := newEngagement(t, FrequencyOneOff)

		require.NoError(t, e.AdvanceDue())
		assert.Nil(t, e.NextDueAt)
		assert.Error(t, e.AdvanceDue())
	})

	t.Run("cannot advance a paused engagement", func(t *testing.T) {
		e := newEngagement(t, FrequencyMonthly)
		require.NoError(t, e.Pause())

		assert.Error(t, e.AdvanceDue())
	})
}
