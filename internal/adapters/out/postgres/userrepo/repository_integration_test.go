package userrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgtest"
	"parcelmybox/internal/adapters/out/postgres/userrepo"
	"parcelmybox/internal/core/domain/model/kernel"
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

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *userrepo.GormUserRepository
	tracker    *MockAggregateTracker
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate(context.Background()))
	suite.tracker = new(MockAggregateTracker)
	suite.repository = userrepo.NewGormUserRepository(suite.pg.DB, suite.tracker)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_TracksAggregate() {
	u := suite.newUser("jane", "Jane@Example.com", user.Customer)
	suite.tracker.On("TrackAggregate", u.ID(), u).Once()

	suite.Require().NoError(suite.repository.Add(context.Background(), u))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_Duplicates() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, suite.newUser("jane", "jane@example.com", user.Customer)))

	testCases := []struct {
		name     string
		username string
		email    string
	}{
		{name: "same email", username: "jane2", email: "JANE@example.com"},
		{name: "same username", username: "jane", email: "other@example.com"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := suite.repository.Add(ctx, suite.newUser(tc.username, tc.email, user.Customer))
			suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
		})
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestGetByLogin() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	u := suite.newUser("jane", "jane@example.com", user.Customer)
	suite.Require().NoError(suite.repository.Add(ctx, u))

	for _, login := range []string{"jane", "JANE@EXAMPLE.COM"} {
		found, err := suite.repository.GetByLogin(ctx, login)
		suite.Require().NoError(err, login)
		suite.Equal(u.ID(), found.ID())
	}

	_, err := suite.repository.GetByLogin(ctx, "JANE")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "usernames are case sensitive")
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_DeactivatedStaffLeavesRotation() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	bob := suite.newUser("bob", "bob@example.com", user.Staff)
	alice := suite.newUser("alice", "alice@example.com", user.Admin)
	carol := suite.newUser("carol", "carol@example.com", user.Staff)
	for _, u := range []*user.User{bob, alice, carol, suite.newUser("dave", "dave@example.com", user.Customer)} {
		suite.Require().NoError(suite.repository.Add(ctx, u))
	}

	carol.Deactivate(time.Now())
	suite.Require().NoError(suite.repository.Update(ctx, carol))

	staff, err := suite.repository.GetActiveStaff(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(staff, 2)
	suite.Equal("alice", staff[0].Username())
	suite.Equal("bob", staff[1].Username())
}

func (suite *UserRepositoryIntegrationTestSuite) TestRecordLogin_RoundTrip() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	u := suite.newUser("jane", "jane@example.com", user.Customer)
	suite.Require().NoError(suite.repository.Add(ctx, u))

	at := time.Now()
	suite.Require().NoError(u.RecordLogin(at))
	suite.Require().NoError(suite.repository.Update(ctx, u))

	stored, err := suite.repository.Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.LastLoginAt())
	suite.WithinDuration(at, *stored.LastLoginAt(), time.Millisecond)
}

func (suite *UserRepositoryIntegrationTestSuite) newUser(username, email string, role user.Role) *user.User {
	u, err := user.NewUser(kernel.NewUUID(), email, username, "", "", "hash", role, time.Now())
	suite.Require().NoError(err)
	return u
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
