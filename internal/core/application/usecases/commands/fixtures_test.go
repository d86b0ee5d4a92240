package commands_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/model/user"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func customerActor(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), false)
	require.NoError(t, err)
	return a
}

func staffActor(t *testing.T) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), true)
	require.NoError(t, err)
	return a
}

func usd(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents, "USD")
	require.NoError(t, err)
	return m
}

func postal(t *testing.T, city, code, country string) kernel.PostalAddress {
	t.Helper()
	a, err := kernel.NewPostalAddress("1 Main Street", "", city, "", code, country)
	require.NoError(t, err)
	return a
}

func party(t *testing.T, name, city, code string) shipment.Party {
	t.Helper()
	p, err := shipment.NewParty(name, "", postal(t, city, code, "US"))
	require.NoError(t, err)
	return p
}

func newStaffUser(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), username+"@parcelmybox.test", username, "", "", "hash", user.Staff, time.Now())
	require.NoError(t, err)
	return u
}

func newShipment(t *testing.T, owner kernel.UUID) *shipment.Shipment {
	t.Helper()
	parcel, err := shipment.NewParcel(1200, 10, 10, 10)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), shipment.NewTrackingNumber(), owner,
		party(t, "Jane", "Boston", "02108"), party(t, "John", "Austin", "73301"),
		parcel, shipment.Standard, usd(t, 0), usd(t, 701), "", time.Now().Add(48*time.Hour), time.Now())
	require.NoError(t, err)
	return s
}

// expectActivity wires the activity repository and expects one entry.
func expectActivity(uow *MockUoW) *MockActivityRepository {
	repo := new(MockActivityRepository)
	uow.On("ActivityRepository").Return(repo)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*activity.Entry")).Return(nil).Once()
	return repo
}
