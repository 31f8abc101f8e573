package order_test

import (
	"testing"
	"time"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/order"
	"vendorbot/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	placedAt = time.Date(2024, 5, 1, 7, 30, 0, 0, time.UTC)
	customer = kernel.MustContact("+911234567890")
	agent    = kernel.MustContact("+919999999999")
)

func surmaiLine(t *testing.T, qty string) order.Line {
	t.Helper()
	line, err := order.NewLine("Seer Fish (Surmai)", decimal.RequireFromString(qty), decimal.NewFromInt(800), "kg")
	require.NoError(t, err)
	return line
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(1, []order.Line{surmaiLine(t, "2")}, "Asha", customer, "cleaned", placedAt)
	require.NoError(t, err)
	return o
}

func TestNewLine(t *testing.T) {
	t.Run("valid line", func(t *testing.T) {
		line := surmaiLine(t, "1.5")

		assert.Equal(t, "Seer Fish (Surmai)", line.Name())
		assert.True(t, line.Subtotal().Equal(decimal.NewFromInt(1200)))
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		_, err := order.NewLine("Squid", decimal.Zero, decimal.NewFromInt(500), "kg")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "qty")
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := order.NewLine(" ", decimal.NewFromInt(1), decimal.NewFromInt(500), "kg")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, int64(1), o.ID())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "Asha", o.CustomerName())
		assert.True(t, o.CustomerContact().IsEqual(customer))
		assert.Equal(t, "cleaned", o.SpecialInstructions())
		assert.Nil(t, o.AgentContact())
		assert.Equal(t, placedAt, o.CreatedAt())
		assert.Equal(t, placedAt, o.UpdatedAt())
		assert.True(t, o.Total().Equal(decimal.NewFromInt(1600)))
	})

	t.Run("should sum multiple lines", func(t *testing.T) {
		prawns, err := order.NewLine("Tiger Prawns", decimal.RequireFromString("0.5"), decimal.NewFromInt(1200), "kg")
		require.NoError(t, err)

		o, err := order.NewOrder(2, []order.Line{surmaiLine(t, "1"), prawns}, "", customer, "", placedAt)

		require.NoError(t, err)
		assert.True(t, o.Total().Equal(decimal.NewFromInt(1400)))
		assert.Len(t, o.Lines(), 2)
	})

	t.Run("should report all invalid fields", func(t *testing.T) {
		o, err := order.NewOrder(0, nil, "Asha", kernel.Contact{}, "", placedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order_id")
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "customer_contact")
	})

	t.Run("lines are copied", func(t *testing.T) {
		lines := []order.Line{surmaiLine(t, "1")}
		o, err := order.NewOrder(3, lines, "Asha", customer, "", placedAt)
		require.NoError(t, err)

		lines[0] = surmaiLine(t, "9")
		got := o.Lines()
		got[0] = surmaiLine(t, "7")

		assert.True(t, o.Lines()[0].Quantity().Equal(decimal.NewFromInt(1)))
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	o := newPendingOrder(t)
	later := placedAt.Add(time.Hour)

	// When
	require.NoError(t, o.Accept(later))
	require.NoError(t, o.Assign(agent, later.Add(time.Minute)))
	require.NoError(t, o.Deliver(later.Add(2*time.Minute)))

	// Then
	assert.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.AgentContact())
	assert.True(t, o.AgentContact().IsEqual(agent))
	assert.Equal(t, later.Add(2*time.Minute), o.UpdatedAt())
	assert.Equal(t, placedAt, o.CreatedAt())
}

func TestOrder_InvalidTransitions(t *testing.T) {
	t.Run("double accept fails and leaves state", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Accept(placedAt))

		err := o.Accept(placedAt)

		var transitionErr *errs.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "accepted", transitionErr.Current)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("assign pending order fails", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Assign(agent, placedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.AgentContact())
	})

	t.Run("assign without agent is a validation error", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Accept(placedAt))

		err := o.Assign(kernel.Contact{}, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("rejected order is final", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Reject(placedAt))

		require.ErrorIs(t, o.Accept(placedAt), errs.ErrInvalidTransition)
		require.ErrorIs(t, o.Deliver(placedAt), errs.ErrInvalidTransition)
		assert.Equal(t, order.Rejected, o.Status())
	})

	t.Run("updated at never moves backwards", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Accept(placedAt.Add(-time.Hour)))

		assert.Equal(t, placedAt, o.UpdatedAt())
	})
}

func TestRestoreOrder(t *testing.T) {
	lines := []order.Line{surmaiLine(t, "1")}
	updated := placedAt.Add(time.Hour)

	t.Run("restores assigned order", func(t *testing.T) {
		o, err := order.RestoreOrder(7, lines, "Asha", customer, "", order.Assigned, &agent, placedAt, updated)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.AgentContact().IsEqual(agent))
		assert.Equal(t, updated, o.UpdatedAt())
	})

	t.Run("rejects agent on pending order", func(t *testing.T) {
		_, err := order.RestoreOrder(7, lines, "Asha", customer, "", order.Pending, &agent, placedAt, updated)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects delivered order without agent", func(t *testing.T) {
		_, err := order.RestoreOrder(7, lines, "Asha", customer, "", order.Delivered, nil, placedAt, updated)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(7, lines, "Asha", customer, "", order.Unknown, nil, placedAt, updated)

		require.Error(t, err)
	})

	t.Run("rejects updated before created", func(t *testing.T) {
		_, err := order.RestoreOrder(7, lines, "Asha", customer, "", order.Pending, nil, updated, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate_NotConstructed(t *testing.T) {
	var o order.Order
	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
}
