package shipmentrepo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgtest"
	"parcelmybox/internal/adapters/out/postgres/shipmentrepo"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/model/user"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *shipmentrepo.GormShipmentRepository
	tracker    *MockAggregateTracker
	owner      *user.User
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate(ctx))

	owner, err := suite.pg.SeedUser(ctx, "jane", user.Customer)
	suite.Require().NoError(err)
	suite.owner = owner

	suite.tracker = new(MockAggregateTracker)
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.pg.DB, suite.tracker)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	s := suite.newShipment(shipment.NewTrackingNumber())
	suite.tracker.On("TrackAggregate", s.ID(), s).Once()

	suite.Require().NoError(suite.repository.Add(ctx, s))

	stored, err := suite.repository.GetByTrackingNumber(ctx, strings.ToLower(s.TrackingNumber()))
	suite.Require().NoError(err)
	suite.Equal(s.ID(), stored.ID())
	suite.Equal("Boston", stored.Sender().Postal().City())
	suite.Equal("73301", stored.Recipient().Postal().PostalCode())
	suite.Equal(shipment.Express, stored.ServiceLevel())
	suite.Equal(int64(2450), stored.Cost().Amount())
	suite.Equal(shipment.Pending, stored.Status())
	suite.Require().Len(stored.Events(), 1)
	suite.Equal("Boston", stored.Events()[0].Location())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateTrackingNumber() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	tn := shipment.NewTrackingNumber()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newShipment(tn)))

	err := suite.repository.Add(ctx, suite.newShipment(tn))
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_AppendsEventsOnce() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	s := suite.newShipment(shipment.NewTrackingNumber())
	suite.Require().NoError(suite.repository.Add(ctx, s))

	now := time.Now()
	suite.Require().NoError(s.UpdateStatus(shipment.PickedUp, "Boston", "Collected", now.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, s))
	suite.Require().NoError(s.UpdateStatus(shipment.InTransit, "Memphis", "", now.Add(2*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, s))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	stored, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, stored.Status())
	suite.Require().Len(stored.Events(), 3)
	suite.Equal(shipment.PickedUp, stored.Events()[1].Status())
	suite.Equal("Memphis", stored.Events()[2].Location())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	s := suite.newShipment(shipment.NewTrackingNumber())
	err := suite.repository.Update(context.Background(), s)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByTrackingNumber(context.Background(), shipment.NewTrackingNumber())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) newShipment(tn string) *shipment.Shipment {
	sender, err := kernel.NewPostalAddress("1 Main Street", "", "Boston", "MA", "02108", "US")
	suite.Require().NoError(err)
	recipient, err := kernel.NewPostalAddress("9 Elm Road", "Unit 4", "Austin", "TX", "73301", "US")
	suite.Require().NoError(err)
	from, err := shipment.NewParty("Jane", "+1 555 0100", sender)
	suite.Require().NoError(err)
	to, err := shipment.NewParty("John", "", recipient)
	suite.Require().NoError(err)
	parcel, err := shipment.NewParcel(2500, 30, 20, 10)
	suite.Require().NoError(err)
	declared, err := kernel.NewMoney(10000, "USD")
	suite.Require().NoError(err)
	cost, err := kernel.NewMoney(2450, "USD")
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(kernel.NewUUID(), tn, suite.owner.ID(), from, to, parcel, shipment.Express,
		declared, cost, "Books", time.Now().Add(24*time.Hour), time.Now())
	suite.Require().NoError(err)
	return s
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
