package address_test

import (
	"strings"
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/address"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func postal(t *testing.T) kernel.PostalAddress {
	t.Helper()
	p, err := kernel.NewPostalAddress("10 Downing St", "", "London", "", "SW1A 2AA", "GB")
	require.NoError(t, err)
	return p
}

func TestNewShippingAddress(t *testing.T) {
	owner := kernel.NewUUID()

	t.Run("defaults_empty_label", func(t *testing.T) {
		a, err := address.NewShippingAddress(kernel.NewUUID(), owner, "  ", "Jane Doe", "", postal(t), true, now)

		require.NoError(t, err)
		assert.Equal(t, "Address", a.Label())
		assert.True(t, a.IsDefault())
		assert.True(t, a.IsOwnedBy(owner))
		assert.False(t, a.IsOwnedBy(kernel.NewUUID()))
	})

	t.Run("requires_contact_and_postal", func(t *testing.T) {
		_, err := address.NewShippingAddress(kernel.NewUUID(), owner, "Home", "", "", kernel.PostalAddress{}, false, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "contact name")
		assert.Contains(t, err.Error(), "postal address")
	})

	t.Run("requires_owner", func(t *testing.T) {
		_, err := address.NewShippingAddress(kernel.NewUUID(), kernel.UUID{}, "Home", "Jane", "", postal(t), false, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("limits_label_length", func(t *testing.T) {
		_, err := address.NewShippingAddress(kernel.NewUUID(), owner, strings.Repeat("a", 65), "Jane", "", postal(t), false, now)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestShippingAddress_Update(t *testing.T) {
	a, err := address.NewShippingAddress(kernel.NewUUID(), kernel.NewUUID(), "Home", "Jane", "", postal(t), true, now)
	require.NoError(t, err)

	office, err := kernel.NewPostalAddress("1 Canada Sq", "Floor 30", "London", "", "E14 5AB", "GB")
	require.NoError(t, err)

	later := now.Add(24 * time.Hour)
	require.NoError(t, a.Update("Office", "Jane Doe", "+44 20 7946 0000", office, false, later))

	assert.Equal(t, "Office", a.Label())
	assert.Equal(t, "E14 5AB", a.Postal().PostalCode())
	assert.False(t, a.IsDefault())
	assert.Equal(t, later, a.UpdatedAt())

	err = a.Update("Office", "", "", office, false, later)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestShippingAddress_ClearDefault(t *testing.T) {
	a, err := address.NewShippingAddress(kernel.NewUUID(), kernel.NewUUID(), "Home", "Jane", "", postal(t), true, now)
	require.NoError(t, err)

	a.ClearDefault(now.Add(time.Minute))

	assert.False(t, a.IsDefault())
	assert.Equal(t, now.Add(time.Minute), a.UpdatedAt())
}
