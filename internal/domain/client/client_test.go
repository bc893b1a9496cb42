package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client successfully", func(t *testing.T) {
		c, err := NewClient("1A001", "Acme Trading Ltd", TypeCompany, 1)

		require.NoError(t, err)
		assert.NotNil(t, c)
		assert.Equal(t, "1A001", c.Ref)
		assert.Equal(t, "Acme Trading Ltd", c.Name)
		assert.Equal(t, TypeCompany, c.Type)
		assert.Equal(t, StatusActive, c.Status)
		assert.Equal(t, 1, c.PortfolioCode)
		assert.Equal(t, 1, c.Version)
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("uppercases the reference", func(t *testing.T) {
		c, err := NewClient("1a001", "Jane Smith", TypeIndividual, 1)

		require.NoError(t, err)
		assert.Equal(t, "1A001", c.Ref)
	})

	t.Run("accepts manually assigned non-standard references", func(t *testing.T) {
		c, err := NewClient("LEGACY42", "Old Client", TypeSoleTrader, 2)

		require.NoError(t, err)
		assert.Equal(t, "LEGACY42", c.Ref)
	})

	t.Run("coerces non-positive portfolio code to the default", func(t *testing.T) {
		c, err := NewClient("1A002", "Jane Smith", TypeIndividual, 0)

		require.NoError(t, err)
		assert.Equal(t, DefaultPortfolioCode, c.PortfolioCode)
	})

	t.Run("fails with empty reference", func(t *testing.T) {
		c, err := NewClient("", "Jane Smith", TypeIndividual, 1)

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "reference cannot be empty")
	})

	t.Run("fails with invalid reference characters", func(t *testing.T) {
		c, err := NewClient("1A-001", "Jane Smith", TypeIndividual, 1)

		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		c, err := NewClient("1A001", "", TypeIndividual, 1)

		assert.Error(t, err)
		assert.Nil(t, c)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		c, err := NewClient("1A001", "Jane Smith", Type("charity"), 1)

		assert.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestClient_StatusTransitions(t *testing.T) {
	newActive := func(t *testing.T) *Client {
		c, err := NewClient("1A001", "Acme Trading Ltd", TypeCompany, 1)
		require.NoError(t, err)
		c.ClearDomainEvents()
		return c
	}

	t.Run("marks client dormant", func(t *testing.T) {
		c := newActive(t)

		err := c.MarkDormant()

		require.NoError(t, err)
		assert.Equal(t, StatusDormant, c.Status)
		assert.Equal(t, 2, c.Version)
		require.Len(t, c.GetDomainEvents(), 1)
		evt := c.GetDomainEvents()[0].(*ClientStatusChangedEvent)
		assert.Equal(t, StatusActive, evt.OldStatus)
		assert.Equal(t, StatusDormant, evt.NewStatus)
	})

	t.Run("ceases client", func(t *testing.T) {
		c := newActive(t)

		require.NoError(t, c.Cease())
		assert.Equal(t, StatusCeased, c.Status)
		assert.False(t, c.IsActive())
	})

	t.Run("rejects transition to current status", func(t *testing.T) {
		c := newActive(t)

		err := c.Activate()

		assert.Error(t, err)
		assert.Equal(t, StatusActive, c.Status)
	})
}

func TestClient_SetContact(t *testing.T) {
	c, err := NewClient("1A001", "Acme Trading Ltd", TypeCompany, 1)
	require.NoError(t, err)

	t.Run("sets valid contact details", func(t *testing.T) {
		err := c.SetContact("Jane Smith", "+44 20 7946 0123", "jane@acme.example")

		require.NoError(t, err)
		assert.Equal(t, "Jane Smith", c.ContactName)
		assert.Equal(t, "+44 20 7946 0123", c.Phone)
		assert.Equal(t, "jane@acme.example", c.Email)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := c.SetContact("Jane Smith", "", "not-an-email")

		assert.Error(t, err)
	})

	t.Run("rejects invalid phone", func(t *testing.T) {
		err := c.SetContact("Jane Smith", "phone#1", "")

		assert.Error(t, err)
	})
}

func TestClient_ReassignRef(t *testing.T) {
	t.Run("changes reference and records event", func(t *testing.T) {
		c, err := NewClient("1A001", "Acme Trading Ltd", TypeCompany, 1)
		require.NoError(t, err)
		c.ClearDomainEvents()

		err = c.ReassignRef("1B010")

		require.NoError(t, err)
		assert.Equal(t, "1B010", c.Ref)
		require.Len(t, c.GetDomainEvents(), 1)
		evt := c.GetDomainEvents()[0].(*ClientRefReassignedEvent)
		assert.Equal(t, "1A001", evt.OldRef)
		assert.Equal(t, "1B010", evt.NewRef)
	})

	t.Run("rejects invalid reference", func(t *testing.T) {
		c, err := NewClient("1A001", "Acme Trading Ltd", TypeCompany, 1)
		require.NoError(t, err)

		assert.Error(t, c.ReassignRef(""))
		assert.Equal(t, "1A001", c.Ref)
	})
}

func TestNewPortfolio(t *testing.T) {
	t.Run("creates portfolio", func(t *testing.T) {
		p, err := NewPortfolio(3, "Corporate")

		require.NoError(t, err)
		assert.Equal(t, 3, p.Code)
		assert.Equal(t, "Corporate", p.Name)
	})

	t.Run("rejects non-positive code", func(t *testing.T) {
		p, err := NewPortfolio(0, "Corporate")

		assert.Error(t, err)
		assert.Nil(t, p)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		p, err := NewPortfolio(1, "")

		assert.Error(t, err)
		assert.Nil(t, p)
	})
}
