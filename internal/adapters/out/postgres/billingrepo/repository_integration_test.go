package billingrepo_test

import (
	"context"
	"testing"
	"time"

	"parcelmybox/internal/adapters/out/postgres/billingrepo"
	"parcelmybox/internal/adapters/out/postgres/pgtest"
	"parcelmybox/internal/core/domain/model/billing"
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

type BillingRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg       *pgtest.Database
	tracker  *MockAggregateTracker
	bills    *billingrepo.GormBillRepository
	invoices *billingrepo.GormInvoiceRepository
	owner    *user.User
}

func (suite *BillingRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *BillingRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.pg.Truncate(ctx))

	owner, err := suite.pg.SeedUser(ctx, "jane", user.Customer)
	suite.Require().NoError(err)
	suite.owner = owner

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.bills = billingrepo.NewGormBillRepository(suite.pg.DB, suite.tracker)
	suite.invoices = billingrepo.NewGormInvoiceRepository(suite.pg.DB, suite.tracker)
}

func (suite *BillingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *BillingRepositoryIntegrationTestSuite) TestBill_PayRoundTrip() {
	ctx := context.Background()
	b := suite.newBill(time.Now().AddDate(0, 0, 14))
	suite.Require().NoError(suite.bills.Add(ctx, b))

	paidAt := time.Now()
	suite.Require().NoError(b.Pay(paidAt))
	suite.Require().NoError(suite.bills.Update(ctx, b))

	stored, err := suite.bills.Get(ctx, b.ID())
	suite.Require().NoError(err)
	suite.Equal(billing.Paid, stored.Status())
	suite.Require().NotNil(stored.PaidAt())
	suite.WithinDuration(paidAt, *stored.PaidAt(), time.Millisecond)
	suite.True(b.DueDate().Equal(stored.DueDate()))
	suite.Nil(stored.ShipmentID())
}

func (suite *BillingRepositoryIntegrationTestSuite) TestBill_DuplicateNumber() {
	ctx := context.Background()
	first := suite.newBill(time.Now())
	suite.Require().NoError(suite.bills.Add(ctx, first))

	dup, err := billing.NewBill(kernel.NewUUID(), first.Number(), suite.owner.ID(), nil, "Again",
		first.Amount(), time.Now(), time.Now())
	suite.Require().NoError(err)
	suite.Require().ErrorIs(suite.bills.Add(ctx, dup), errs.ErrObjectAlreadyExists)
}

func (suite *BillingRepositoryIntegrationTestSuite) TestBill_ListPendingDueBefore() {
	ctx := context.Background()
	today := kernel.DateOf(time.Now())

	overdue := suite.newBill(today.AddDate(0, 0, -1))
	dueToday := suite.newBill(today)
	paid := suite.newBill(today.AddDate(0, 0, -3))
	suite.Require().NoError(paid.Pay(time.Now()))
	for _, b := range []*billing.Bill{overdue, dueToday, paid} {
		suite.Require().NoError(suite.bills.Add(ctx, b))
	}

	found, err := suite.bills.ListPendingDueBefore(ctx, today)
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Equal(overdue.ID(), found[0].ID())
}

func (suite *BillingRepositoryIntegrationTestSuite) TestInvoice_LinesKeepOrder() {
	ctx := context.Background()
	lines := []billing.InvoiceLine{
		suite.line("Express shipping", 2, 1249),
		suite.line("Insurance", 1, 300),
		suite.line("Packaging", 3, 99),
	}
	inv, err := billing.NewInvoice(kernel.NewUUID(), billing.NewInvoiceNumber(time.Now()), suite.owner.ID(),
		time.Now(), time.Now().AddDate(0, 0, 30), 2000, "Thanks", lines, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.invoices.Add(ctx, inv))

	suite.Require().NoError(inv.Cancel(time.Now()))
	suite.Require().NoError(suite.invoices.Update(ctx, inv))

	stored, err := suite.invoices.Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Equal(billing.Cancelled, stored.Status())
	suite.Require().Len(stored.Lines(), 3)
	suite.Equal("Insurance", stored.Lines()[1].Description())
	suite.Equal(3, stored.Lines()[2].Quantity())
	suite.Equal(inv.Total().Amount(), stored.Total().Amount())
	suite.Equal(2000, stored.TaxRateBP())
}

func (suite *BillingRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.bills.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.invoices.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BillingRepositoryIntegrationTestSuite) newBill(due time.Time) *billing.Bill {
	amount, err := kernel.NewMoney(1500, "USD")
	suite.Require().NoError(err)
	b, err := billing.NewBill(kernel.NewUUID(), billing.NewBillNumber(time.Now()), suite.owner.ID(), nil,
		"Storage fee", amount, due, time.Now().AddDate(0, 0, -30))
	suite.Require().NoError(err)
	return b
}

func (suite *BillingRepositoryIntegrationTestSuite) line(desc string, qty int, cents int64) billing.InvoiceLine {
	price, err := kernel.NewMoney(cents, "USD")
	suite.Require().NoError(err)
	l, err := billing.NewInvoiceLine(desc, qty, price)
	suite.Require().NoError(err)
	return l
}

func TestBillingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BillingRepositoryIntegrationTestSuite))
}
