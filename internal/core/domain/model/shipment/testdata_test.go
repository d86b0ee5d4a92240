package shipment_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func party(t *testing.T, name, city, postcode, country string) shipment.Party {
	t.Helper()
	postal, err := kernel.NewPostalAddress("1 Example Road", "", city, "", postcode, country)
	require.NoError(t, err)
	p, err := shipment.NewParty(name, "", postal)
	require.NoError(t, err)
	return p
}

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents, "USD")
	require.NoError(t, err)
	return m
}

func newPendingShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	parcel, err := shipment.NewParcel(2500, 30, 20, 10)
	require.NoError(t, err)

	s, err := shipment.NewShipment(
		kernel.NewUUID(),
		shipment.NewTrackingNumber(),
		kernel.NewUUID(),
		party(t, "Jane Sender", "Boston", "02108", "US"),
		party(t, "John Recipient", "Austin", "73301", "US"),
		parcel,
		shipment.Express,
		money(t, 5000),
		money(t, 1599),
		"Books",
		now.Add(48*time.Hour),
		now,
	)
	require.NoError(t, err)
	return s
}
