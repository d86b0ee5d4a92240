package kernel_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostalAddress(t *testing.T) {
	t.Run("normalizes_parts", func(t *testing.T) {
		a, err := kernel.NewPostalAddress(" 221B Baker Street ", "", "London", "", "nw1 6xe", "gb")

		require.NoError(t, err)
		assert.Equal(t, "221B Baker Street", a.Line1())
		assert.Equal(t, "NW1 6XE", a.PostalCode())
		assert.Equal(t, "GB", a.Country())
		assert.Equal(t, "NW1", a.PostalPrefix())
		assert.Equal(t, "221B Baker Street, London, NW1 6XE, GB", a.String())
	})

	t.Run("collects_every_violation", func(t *testing.T) {
		_, err := kernel.NewPostalAddress("", "", "", "", "", "Germany")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "line1")
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "postal code")
		assert.Contains(t, err.Error(), "country")
	})

	t.Run("prefix_skips_separators", func(t *testing.T) {
		a, err := kernel.NewPostalAddress("1 Main St", "Apt 4", "Springfield", "IL", "6-27 01", "us")
		require.NoError(t, err)
		assert.Equal(t, "627", a.PostalPrefix())
		assert.Equal(t, "1 Main St, Apt 4, Springfield, IL, 6-27 01, US", a.String())
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var a kernel.PostalAddress
		require.ErrorIs(t, a.Validate(), kernel.ErrPostalAddressIsNotConstructed)
	})
}

func TestActor(t *testing.T) {
	owner := kernel.NewUUID()
	customer, err := kernel.NewActor(owner, false)
	require.NoError(t, err)
	staff, err := kernel.NewActor(kernel.NewUUID(), true)
	require.NoError(t, err)

	assert.True(t, customer.CanAccess(owner))
	assert.False(t, customer.CanAccess(kernel.NewUUID()))
	assert.True(t, staff.CanAccess(owner))

	_, err = kernel.NewActor(kernel.UUID{}, false)
	require.Error(t, err)
}

func TestDateHelpers(t *testing.T) {
	morning := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), kernel.DateOf(evening))
	assert.False(t, kernel.IsBeforeDay(morning, evening))
	assert.True(t, kernel.IsBeforeDay(evening, nextDay))
}
