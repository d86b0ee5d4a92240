package postgres_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

func newTestShipment(t *testing.T, owner kernel.UUID) *shipment.Shipment {
	t.Helper()
	return newTestShipmentNumbered(t, owner, shipment.NewTrackingNumber())
}

func newTestShipmentNumbered(t *testing.T, owner kernel.UUID, trackingNumber string) *shipment.Shipment {
	t.Helper()
	sender, err := kernel.NewPostalAddress("1 Main Street", "", "Boston", "MA", "02108", "US")
	require.NoError(t, err)
	recipient, err := kernel.NewPostalAddress("9 Elm Road", "", "Austin", "TX", "73301", "US")
	require.NoError(t, err)
	from, err := shipment.NewParty("Jane", "", sender)
	require.NoError(t, err)
	to, err := shipment.NewParty("John", "", recipient)
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(1200, 10, 10, 10)
	require.NoError(t, err)
	cost, err := kernel.NewMoney(701, "USD")
	require.NoError(t, err)
	declared, err := kernel.NewMoney(0, "USD")
	require.NoError(t, err)

	s, err := shipment.NewShipment(kernel.NewUUID(), trackingNumber, owner, from, to, parcel,
		shipment.Standard, declared, cost, "", time.Now().Add(48*time.Hour), time.Now())
	require.NoError(t, err)
	return s
}

func newTestBill(t *testing.T, owner kernel.UUID, s *shipment.Shipment, due time.Time) *billing.Bill {
	t.Helper()
	id := s.ID()
	b, err := billing.NewBill(kernel.NewUUID(), billing.NewBillNumber(time.Now()), owner, &id,
		"Shipping "+s.TrackingNumber(), s.Cost(), due, time.Now())
	require.NoError(t, err)
	return b
}
