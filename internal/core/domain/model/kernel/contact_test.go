package kernel_test

import (
	"testing"

	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"e164", "+919876543210", "+919876543210"},
		{"spaces and dashes", " +91 98765-43210 ", "+919876543210"},
		{"parentheses and dots", "(022) 555.0100", "0225550100"},
		{"chat handle", "vendor@example", "vendor@example"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := kernel.NewContact("customer_contact", tc.raw)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, c.String())
			assert.False(t, c.IsZero())
		})
	}

	t.Run("blank contact is required", func(t *testing.T) {
		_, err := kernel.NewContact("customer_contact", "  - ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "customer_contact")
	})
}

func TestContact_IsEqual(t *testing.T) {
	a := kernel.MustContact("+91 99999 99999")
	b := kernel.MustContact("+919999999999")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(kernel.MustContact("+911111111111")))
	assert.True(t, kernel.Contact{}.IsZero())
}

func TestMustContact_PanicsOnBlank(t *testing.T) {
	assert.Panics(t, func() { kernel.MustContact("") })
}
