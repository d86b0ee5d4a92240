package commands

import (
	"errors"
	"fmt"
	"time"

	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var (
	ErrCreateBillCommandIsNotConstructed = errors.New(
		"CreateBillCommand must be created via NewCreateBillCommand constructor",
	)
	ErrCreateInvoiceCommandIsNotConstructed = errors.New(
		"CreateInvoiceCommand must be created via NewCreateInvoiceCommand constructor",
	)
	ErrBillingDocumentCommandIsNotConstructed = errors.New(
		"BillingDocumentCommand must be created via NewBillingDocumentCommand constructor",
	)
)

// CreateBillCommand issues a manual bill to a customer. Staff only.
type CreateBillCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	billID      kernel.UUID
	ownerID     kernel.UUID
	shipmentID  *kernel.UUID
	description string
	amount      kernel.Money
	dueDate     time.Time

	guard guard.ConstructorGuard
}

func NewCreateBillCommand(
	actor kernel.Actor,
	billID, ownerID kernel.UUID,
	shipmentID *kernel.UUID,
	description string,
	amount kernel.Money,
	dueDate time.Time,
) (CreateBillCommand, error) {
	var dueErr error
	if dueDate.IsZero() {
		dueErr = errs.NewValueIsRequiredError("due date")
	}
	if err := errors.Join(actor.Validate(), billID.Validate(), ownerID.Validate(), amount.Validate(), dueErr); err != nil {
		return CreateBillCommand{}, err
	}
	return CreateBillCommand{
		actor:       actor,
		billID:      billID,
		ownerID:     ownerID,
		shipmentID:  shipmentID,
		description: description,
		amount:      amount,
		dueDate:     dueDate,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBillCommand) Validate() error {
	return c.guard.Validate(ErrCreateBillCommandIsNotConstructed)
}

func (c CreateBillCommand) Actor() kernel.Actor      { return c.actor }
func (c CreateBillCommand) BillID() kernel.UUID      { return c.billID }
func (c CreateBillCommand) OwnerID() kernel.UUID     { return c.ownerID }
func (c CreateBillCommand) ShipmentID() *kernel.UUID { return c.shipmentID }
func (c CreateBillCommand) Description() string      { return c.description }
func (c CreateBillCommand) Amount() kernel.Money     { return c.amount }
func (c CreateBillCommand) DueDate() time.Time       { return c.dueDate }

// CreateInvoiceCommand issues an itemised invoice to a customer. Staff only.
type CreateInvoiceCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	invoiceID kernel.UUID
	ownerID   kernel.UUID
	issueDate time.Time
	dueDate   time.Time
	taxRateBP int
	notes     string
	lines     []billing.InvoiceLine

	guard guard.ConstructorGuard
}

func NewCreateInvoiceCommand(
	actor kernel.Actor,
	invoiceID, ownerID kernel.UUID,
	issueDate, dueDate time.Time,
	taxRateBP int,
	notes string,
	lines []billing.InvoiceLine,
) (CreateInvoiceCommand, error) {
	var linesErr error
	if len(lines) == 0 {
		linesErr = errs.NewValueIsRequiredError("lines")
	}
	for n, l := range lines {
		if err := l.Validate(); err != nil {
			linesErr = errors.Join(linesErr, fmt.Errorf("line %d: %w", n+1, err))
		}
	}
	if err := errors.Join(actor.Validate(), invoiceID.Validate(), ownerID.Validate(), linesErr); err != nil {
		return CreateInvoiceCommand{}, err
	}
	return CreateInvoiceCommand{
		actor:     actor,
		invoiceID: invoiceID,
		ownerID:   ownerID,
		issueDate: issueDate,
		dueDate:   dueDate,
		taxRateBP: taxRateBP,
		notes:     notes,
		lines:     lines,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateInvoiceCommandIsNotConstructed)
}

func (c CreateInvoiceCommand) Actor() kernel.Actor          { return c.actor }
func (c CreateInvoiceCommand) InvoiceID() kernel.UUID       { return c.invoiceID }
func (c CreateInvoiceCommand) OwnerID() kernel.UUID         { return c.ownerID }
func (c CreateInvoiceCommand) IssueDate() time.Time         { return c.issueDate }
func (c CreateInvoiceCommand) DueDate() time.Time           { return c.dueDate }
func (c CreateInvoiceCommand) TaxRateBP() int               { return c.taxRateBP }
func (c CreateInvoiceCommand) Notes() string                { return c.notes }
func (c CreateInvoiceCommand) Lines() []billing.InvoiceLine { return c.lines }

// BillingDocumentCommand addresses a single bill or invoice on behalf of an
// actor. The pay and cancel handlers of both document kinds consume it.
type BillingDocumentCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	documentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewBillingDocumentCommand(actor kernel.Actor, documentID kernel.UUID) (BillingDocumentCommand, error) {
	if err := errors.Join(actor.Validate(), documentID.Validate()); err != nil {
		return BillingDocumentCommand{}, err
	}
	return BillingDocumentCommand{actor: actor, documentID: documentID, guard: guard.NewConstructorGuard()}, nil
}

func (c BillingDocumentCommand) Validate() error {
	return c.guard.Validate(ErrBillingDocumentCommandIsNotConstructed)
}

func (c BillingDocumentCommand) Actor() kernel.Actor     { return c.actor }
func (c BillingDocumentCommand) DocumentID() kernel.UUID { return c.documentID }
