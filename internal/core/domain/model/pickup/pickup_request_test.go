package pickup_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/pickup"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC)

func postal(t *testing.T) kernel.PostalAddress {
	t.Helper()
	a, err := kernel.NewPostalAddress("221B Baker Street", "", "London", "", "nw1 6xe", "gb")
	require.NoError(t, err)
	return a
}

func newRequest(t *testing.T, date time.Time) (*pickup.PickupRequest, error) {
	t.Helper()
	return pickup.NewPickupRequest(
		kernel.NewUUID(), kernel.NewUUID(), nil,
		"Martha Hudson", "+44 20 7946 0000", postal(t),
		date, pickup.Afternoon, 3, 4200, "Ring twice", now,
	)
}

func TestNewPickupRequest(t *testing.T) {
	t.Run("today_is_allowed", func(t *testing.T) {
		p, err := newRequest(t, now)

		require.NoError(t, err)
		assert.Equal(t, pickup.Requested, p.Status())
		assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), p.PickupDate())
		assert.Equal(t, "NW1 6XE", p.Address().PostalCode())
	})

	t.Run("yesterday_is_rejected", func(t *testing.T) {
		_, err := newRequest(t, now.AddDate(0, 0, -1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "pickup date")
	})

	t.Run("package_limits", func(t *testing.T) {
		_, err := pickup.NewPickupRequest(
			kernel.NewUUID(), kernel.NewUUID(), nil, "", "", postal(t),
			now, pickup.UnknownTimeWindow, pickup.MaxPackageCount+1, 0, "", now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "time window")
		assert.Contains(t, err.Error(), "total weight grams")
	})
}

func TestRestorePickupRequest_AcceptsPastDates(t *testing.T) {
	p, err := pickup.RestorePickupRequest(
		kernel.NewUUID(), kernel.NewUUID(), nil, "Martha Hudson", "", postal(t),
		now.AddDate(0, -1, 0), pickup.Morning, 1, 500, "", pickup.Completed,
		now.AddDate(0, -1, -2), now.AddDate(0, -1, 0),
	)

	require.NoError(t, err)
	assert.Equal(t, pickup.Completed, p.Status())
}

func TestPickupRequest_Lifecycle(t *testing.T) {
	tests := []struct {
		from, to pickup.Status
		ok       bool
	}{
		{pickup.Requested, pickup.Scheduled, true},
		{pickup.Requested, pickup.Cancelled, true},
		{pickup.Requested, pickup.Completed, false},
		{pickup.Scheduled, pickup.Completed, true},
		{pickup.Scheduled, pickup.Cancelled, true},
		{pickup.Scheduled, pickup.Requested, false},
		{pickup.Completed, pickup.Cancelled, false},
		{pickup.Cancelled, pickup.Scheduled, false},
	}
	for _, tc := range tests {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			err := tc.from.ValidateTransition(tc.to)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
			}
		})
	}

	p, err := newRequest(t, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.NoError(t, p.ChangeStatus(pickup.Scheduled, now.Add(time.Hour)))
	require.NoError(t, p.Cancel(now.Add(2*time.Hour)))
	assert.Equal(t, pickup.Cancelled, p.Status())
	assert.Equal(t, now.Add(2*time.Hour), p.UpdatedAt())
}

func TestParseTimeWindow(t *testing.T) {
	w, err := pickup.ParseTimeWindow("Evening")
	require.NoError(t, err)
	from, to := w.Hours()
	assert.Equal(t, 17, from)
	assert.Equal(t, 20, to)

	_, err = pickup.ParseTimeWindow("midnight")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
