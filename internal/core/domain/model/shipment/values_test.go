package shipment_test

import (
	"regexp"
	"testing"

	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^PMB[2-9A-HJ-NP-Z]{10}$`)
	seen := make(map[string]struct{})

	for range 500 {
		tn := shipment.NewTrackingNumber()
		require.Regexp(t, pattern, tn)
		seen[tn] = struct{}{}
	}

	assert.Greater(t, len(seen), 495)
}

func TestNormalizeTrackingNumber(t *testing.T) {
	tn, err := shipment.NormalizeTrackingNumber(" pmb7kx2m9qr4t ")
	require.NoError(t, err)
	assert.Equal(t, "PMB7KX2M9QR4T", tn)

	for _, bad := range []string{"", "PMB123", "XYZ7KX2M9QR4TW", "PMB7KX2M9QR40"} {
		_, err := shipment.NormalizeTrackingNumber(bad)
		require.Error(t, err, bad)
	}
}

func TestParcel(t *testing.T) {
	t.Run("chargeable_weight_uses_volume_for_bulky_parcels", func(t *testing.T) {
		p, err := shipment.NewParcel(1000, 50, 40, 30)
		require.NoError(t, err)

		assert.Equal(t, 12000, p.VolumetricGrams())
		assert.Equal(t, 12000, p.ChargeableGrams())
	})

	t.Run("chargeable_weight_uses_actual_weight_for_dense_parcels", func(t *testing.T) {
		p, err := shipment.NewParcel(8000, 20, 20, 10)
		require.NoError(t, err)

		assert.Equal(t, 800, p.VolumetricGrams())
		assert.Equal(t, 8000, p.ChargeableGrams())
	})

	t.Run("rejects_out_of_range_values", func(t *testing.T) {
		_, err := shipment.NewParcel(0, 0, 10, 400)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "weight grams")
		assert.Contains(t, err.Error(), "length cm")
		assert.Contains(t, err.Error(), "height cm")

		_, err = shipment.NewParcel(shipment.MaxWeightGrams+1, 10, 10, 10)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestStatus_ValidateTransition(t *testing.T) {
	tests := []struct {
		from, to shipment.Status
		ok       bool
	}{
		{shipment.Pending, shipment.PickedUp, true},
		{shipment.Pending, shipment.Delivered, true},
		{shipment.Pending, shipment.Cancelled, true},
		{shipment.Pending, shipment.Returned, false},
		{shipment.PickedUp, shipment.Cancelled, false},
		{shipment.InTransit, shipment.InTransit, true},
		{shipment.InTransit, shipment.Returned, true},
		{shipment.OutForDelivery, shipment.Returned, true},
		{shipment.OutForDelivery, shipment.InTransit, false},
		{shipment.Delivered, shipment.Delivered, false},
		{shipment.Cancelled, shipment.Pending, false},
		{shipment.Pending, shipment.UnknownStatus, false},
	}
	for _, tc := range tests {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			err := tc.from.ValidateTransition(tc.to)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestParseStatusAndServiceLevel(t *testing.T) {
	st, err := shipment.ParseStatus("OUT_FOR_DELIVERY")
	require.NoError(t, err)
	assert.Equal(t, shipment.OutForDelivery, st)

	_, err = shipment.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	lvl, err := shipment.ParseServiceLevel(" Overnight ")
	require.NoError(t, err)
	assert.Equal(t, shipment.Overnight, lvl)
	assert.Equal(t, "overnight", lvl.String())

	_, err = shipment.ParseServiceLevel("teleport")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
