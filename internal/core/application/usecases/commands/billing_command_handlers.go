package commands

import (
	"context"
	"fmt"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/pkg/errs"
)

// CreateBillCommandHandler issues a manual bill. The customer must exist and,
// when a shipment is referenced, own it.
type CreateBillCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateBillCommandHandler(uowFactory UoWFactory) CreateBillCommandHandler {
	return CreateBillCommandHandler{uowFactory: uowFactory}
}

func (h CreateBillCommandHandler) Handle(ctx context.Context, cmd CreateBillCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor(), "create bill"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.UserRepository().Get(ctx, cmd.OwnerID()); err != nil {
		return err
	}
	if id := cmd.ShipmentID(); id != nil {
		s, err := uow.ShipmentRepository().Get(ctx, *id)
		if err != nil {
			return err
		}
		if !s.IsOwnedBy(cmd.OwnerID()) {
			return errs.NewValueIsInvalidErrorWithCause("shipment",
				fmt.Errorf("shipment %s belongs to another customer", s.TrackingNumber()))
		}
	}

	now := time.Now()
	b, err := billing.NewBill(cmd.BillID(), billing.NewBillNumber(now), cmd.OwnerID(), cmd.ShipmentID(),
		cmd.Description(), cmd.Amount(), cmd.DueDate(), now)
	if err != nil {
		return err
	}

	if err = uow.BillRepository().Add(ctx, b); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionBillCreated, activity.EntityTypeBill,
		b.ID(), fmt.Sprintf("Issued bill %s for %s %s", b.Number(), b.Amount(), b.Amount().Currency()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type CreateInvoiceCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateInvoiceCommandHandler(uowFactory UoWFactory) CreateInvoiceCommandHandler {
	return CreateInvoiceCommandHandler{uowFactory: uowFactory}
}

func (h CreateInvoiceCommandHandler) Handle(ctx context.Context, cmd CreateInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor(), "create invoice"); err != nil {
		return err
	}

	now := time.Now()
	issueDate := cmd.IssueDate()
	if issueDate.IsZero() {
		issueDate = now
	}
	inv, err := billing.NewInvoice(cmd.InvoiceID(), billing.NewInvoiceNumber(now), cmd.OwnerID(), issueDate,
		cmd.DueDate(), cmd.TaxRateBP(), cmd.Notes(), cmd.Lines(), now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err = uow.UserRepository().Get(ctx, cmd.OwnerID()); err != nil {
		return err
	}

	if err = uow.InvoiceRepository().Add(ctx, inv); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionInvoiceCreated, activity.EntityTypeInvoice,
		inv.ID(), fmt.Sprintf("Issued invoice %s for %s %s", inv.Number(), inv.Total(), inv.Currency()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// PayBillCommandHandler settles a bill. The owner or staff may pay.
type PayBillCommandHandler struct {
	uowFactory UoWFactory
}

func NewPayBillCommandHandler(uowFactory UoWFactory) PayBillCommandHandler {
	return PayBillCommandHandler{uowFactory: uowFactory}
}

func (h PayBillCommandHandler) Handle(ctx context.Context, cmd BillingDocumentCommand) error {
	return changeBill(ctx, h.uowFactory, cmd, false, activity.ActionBillPaid, (*billing.Bill).Pay)
}

// CancelBillCommandHandler voids a bill. Staff only.
type CancelBillCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelBillCommandHandler(uowFactory UoWFactory) CancelBillCommandHandler {
	return CancelBillCommandHandler{uowFactory: uowFactory}
}

func (h CancelBillCommandHandler) Handle(ctx context.Context, cmd BillingDocumentCommand) error {
	return changeBill(ctx, h.uowFactory, cmd, true, activity.ActionBillCancelled, (*billing.Bill).Cancel)
}

// PayInvoiceCommandHandler settles an invoice. The owner or staff may pay.
type PayInvoiceCommandHandler struct {
	uowFactory UoWFactory
}

func NewPayInvoiceCommandHandler(uowFactory UoWFactory) PayInvoiceCommandHandler {
	return PayInvoiceCommandHandler{uowFactory: uowFactory}
}

func (h PayInvoiceCommandHandler) Handle(ctx context.Context, cmd BillingDocumentCommand) error {
	return changeInvoice(ctx, h.uowFactory, cmd, false, activity.ActionInvoicePaid, (*billing.Invoice).Pay)
}

// CancelInvoiceCommandHandler voids an invoice. Staff only.
type CancelInvoiceCommandHandler struct {
	uowFactory UoWFactory
}

func NewCancelInvoiceCommandHandler(uowFactory UoWFactory) CancelInvoiceCommandHandler {
	return CancelInvoiceCommandHandler{uowFactory: uowFactory}
}

func (h CancelInvoiceCommandHandler) Handle(ctx context.Context, cmd BillingDocumentCommand) error {
	return changeInvoice(ctx, h.uowFactory, cmd, true, activity.ActionInvoiceCancelled, (*billing.Invoice).Cancel)
}

func changeBill(
	ctx context.Context,
	uowFactory UoWFactory,
	cmd BillingDocumentCommand,
	staffOnly bool,
	action string,
	transition func(*billing.Bill, time.Time) error,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if staffOnly {
		if err := requireStaff(cmd.Actor(), action); err != nil {
			return err
		}
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.BillRepository()
	b, err := repo.Get(ctx, cmd.DocumentID())
	if err != nil {
		return err
	}
	if !cmd.Actor().CanAccess(b.OwnerID()) {
		return errs.NewObjectNotFoundError("bill", cmd.DocumentID().String())
	}

	now := time.Now()
	if err = transition(b, now); err != nil {
		return err
	}

	if err = repo.Update(ctx, b); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), action, activity.EntityTypeBill, b.ID(),
		fmt.Sprintf("Bill %s is now %s", b.Number(), b.Status()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func changeInvoice(
	ctx context.Context,
	uowFactory UoWFactory,
	cmd BillingDocumentCommand,
	staffOnly bool,
	action string,
	transition func(*billing.Invoice, time.Time) error,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if staffOnly {
		if err := requireStaff(cmd.Actor(), action); err != nil {
			return err
		}
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InvoiceRepository()
	inv, err := repo.Get(ctx, cmd.DocumentID())
	if err != nil {
		return err
	}
	if !cmd.Actor().CanAccess(inv.OwnerID()) {
		return errs.NewObjectNotFoundError("invoice", cmd.DocumentID().String())
	}

	now := time.Now()
	if err = transition(inv, now); err != nil {
		return err
	}

	if err = repo.Update(ctx, inv); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), action, activity.EntityTypeInvoice, inv.ID(),
		fmt.Sprintf("Invoice %s is now %s", inv.Number(), inv.Status()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
