package commands_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPendingBill(t *testing.T, owner kernel.UUID, issued time.Time) *billing.Bill {
	t.Helper()
	b, err := billing.NewBill(kernel.NewUUID(), billing.NewBillNumber(issued), owner, nil,
		"Storage fee", usd(t, 2500), issued.AddDate(0, 0, 7), issued)
	require.NoError(t, err)
	return b
}

func newPendingInvoice(t *testing.T, owner kernel.UUID, issued time.Time) *billing.Invoice {
	t.Helper()
	line, err := billing.NewInvoiceLine("Monthly plan", 1, usd(t, 9900))
	require.NoError(t, err)
	inv, err := billing.NewInvoice(kernel.NewUUID(), billing.NewInvoiceNumber(issued), owner, issued,
		issued.AddDate(0, 0, 30), 0, "", []billing.InvoiceLine{line}, issued)
	require.NoError(t, err)
	return inv
}

func TestMarkOverdueBillingCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC)
	issued := now.AddDate(0, -2, 0)

	bill := newPendingBill(t, kernel.NewUUID(), issued)
	invoice := newPendingInvoice(t, kernel.NewUUID(), issued)

	bills := new(MockBillRepository)
	bills.On("ListPendingDueBefore", ctx, kernel.DateOf(now)).Return([]*billing.Bill{bill}, nil).Once()
	bills.On("Update", ctx, bill).Return(nil).Once()

	invoices := new(MockInvoiceRepository)
	invoices.On("ListPendingDueBefore", ctx, kernel.DateOf(now)).Return([]*billing.Invoice{invoice}, nil).Once()
	invoices.On("Update", ctx, invoice).Return(nil).Once()

	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BillRepository").Return(bills).Once(),
		uow.On("InvoiceRepository").Return(invoices).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewMarkOverdueBillingCommand(now)
	require.NoError(t, err)

	h := commands.NewMarkOverdueBillingCommandHandler(newFactory(uow))
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.OverdueResult{Bills: 1, Invoices: 1}, result)
	assert.Equal(t, billing.Overdue, bill.Status())
	assert.Equal(t, billing.Overdue, invoice.Status())
	bills.AssertExpectations(t)
	invoices.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewMarkOverdueBillingCommand_RequiresNow(t *testing.T) {
	_, err := commands.NewMarkOverdueBillingCommand(time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestPayBillCommandHandler_Handle(t *testing.T) {
	t.Run("owner pays", func(t *testing.T) {
		ctx := t.Context()
		actor := customerActor(t)
		bill := newPendingBill(t, actor.ID(), time.Now())
		cmd, err := commands.NewBillingDocumentCommand(actor, bill.ID())
		require.NoError(t, err)

		bills := new(MockBillRepository)
		bills.On("Get", ctx, bill.ID()).Return(bill, nil)
		bills.On("Update", ctx, bill).Return(nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("BillRepository").Return(bills)
		expectActivity(uow)
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil)

		h := commands.NewPayBillCommandHandler(newFactory(uow))
		require.NoError(t, h.Handle(ctx, cmd))

		assert.Equal(t, billing.Paid, bill.Status())
		assert.NotNil(t, bill.PaidAt())
		uow.AssertExpectations(t)
	})

	t.Run("other customers see nothing", func(t *testing.T) {
		ctx := t.Context()
		bill := newPendingBill(t, kernel.NewUUID(), time.Now())
		cmd, err := commands.NewBillingDocumentCommand(customerActor(t), bill.ID())
		require.NoError(t, err)

		bills := new(MockBillRepository)
		bills.On("Get", ctx, bill.ID()).Return(bill, nil)

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil)
		uow.On("BillRepository").Return(bills)
		uow.On("Rollback", ctx).Return(nil)

		h := commands.NewPayBillCommandHandler(newFactory(uow))

		require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
		assert.Equal(t, billing.Pending, bill.Status())
	})
}

func TestCancelBillCommandHandler_Handle_RequiresStaff(t *testing.T) {
	actor := customerActor(t)
	cmd, err := commands.NewBillingDocumentCommand(actor, kernel.NewUUID())
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	h := commands.NewCancelBillCommandHandler(factory)

	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrAccessDenied)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateInvoiceCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	owner := newStaffUser(t, "merchant")
	lines := make([]billing.InvoiceLine, 0, 2)
	for _, l := range []struct {
		desc  string
		qty   int
		price int64
	}{{"Label printing", 10, 150}, {"Packaging", 2, 499}} {
		line, err := billing.NewInvoiceLine(l.desc, l.qty, usd(t, l.price))
		require.NoError(t, err)
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateInvoiceCommand(staffActor(t), kernel.NewUUID(), owner.ID(),
		time.Time{}, time.Now().AddDate(0, 0, 30), 2000, "Thanks", lines)
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("Get", ctx, owner.ID()).Return(owner, nil).Once()

	var stored *billing.Invoice
	invoices := new(MockInvoiceRepository)
	invoices.On("Add", ctx, mock.AnythingOfType("*billing.Invoice")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*billing.Invoice) }).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("UserRepository").Return(users)
	uow.On("InvoiceRepository").Return(invoices)
	expectActivity(uow)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil)

	h := commands.NewCreateInvoiceCommandHandler(newFactory(uow))
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, stored)
	assert.Equal(t, int64(2498), stored.Subtotal().Amount())
	assert.Equal(t, int64(500), stored.Tax().Amount())
	assert.Equal(t, int64(2998), stored.Total().Amount())
	assert.Equal(t, kernel.DateOf(time.Now()), stored.IssueDate())
}

func TestNewCreateInvoiceCommand_RequiresLines(t *testing.T) {
	_, err := commands.NewCreateInvoiceCommand(staffActor(t), kernel.NewUUID(), kernel.NewUUID(),
		time.Now(), time.Now(), 0, "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
