package billing

import (
	"errors"
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

var ErrBillIsNotConstructed = errors.New("Bill must be created via NewBill or RestoreBill")

const DescriptionMaxLength = 255

// Bill is a single-amount payable document, usually raised for a shipment.
type Bill struct {
	id          kernel.UUID
	number      string
	ownerID     kernel.UUID
	shipmentID  *kernel.UUID
	description string
	amount      kernel.Money
	lifecycle
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewBill issues a pending bill.
func NewBill(
	id kernel.UUID,
	number string,
	ownerID kernel.UUID,
	shipmentID *kernel.UUID,
	description string,
	amount kernel.Money,
	dueDate time.Time,
	now time.Time,
) (*Bill, error) {
	b := &Bill{
		lifecycle: lifecycle{
			entity:  "bill",
			status:  Pending,
			dueDate: kernel.DateOf(dueDate),
		},
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		b.setID(id),
		b.setNumber(number),
		b.setOwner(ownerID),
		b.setShipment(shipmentID),
		b.setDescription(description),
		b.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBill rebuilds a bill from persistence.
func RestoreBill(
	id kernel.UUID,
	number string,
	ownerID kernel.UUID,
	shipmentID *kernel.UUID,
	description string,
	amount kernel.Money,
	dueDate time.Time,
	status Status,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Bill, error) {
	b, err := NewBill(id, number, ownerID, shipmentID, description, amount, dueDate, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	b.status = status
	b.paidAt = paidAt
	b.updatedAt = updatedAt.UTC()
	return b, nil
}

func (b *Bill) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBillIsNotConstructed
	}
	return nil
}

func (b *Bill) ID() kernel.UUID              { return b.id }
func (b *Bill) Number() string               { return b.number }
func (b *Bill) OwnerID() kernel.UUID         { return b.ownerID }
func (b *Bill) ShipmentID() *kernel.UUID     { return b.shipmentID }
func (b *Bill) Description() string          { return b.description }
func (b *Bill) Amount() kernel.Money         { return b.amount }
func (b *Bill) Status() Status               { return b.status }
func (b *Bill) DueDate() time.Time           { return b.dueDate }
func (b *Bill) PaidAt() *time.Time           { return b.paidAt }
func (b *Bill) CreatedAt() time.Time         { return b.createdAt }
func (b *Bill) UpdatedAt() time.Time         { return b.updatedAt }
func (b *Bill) IsOwnedBy(u kernel.UUID) bool { return b.ownerID.IsEqual(u) }

// Pay settles a pending or overdue bill.
func (b *Bill) Pay(now time.Time) error {
	if err := b.pay(now); err != nil {
		return err
	}
	b.updatedAt = now.UTC()
	return nil
}

// Cancel voids a pending or overdue bill.
func (b *Bill) Cancel(now time.Time) error {
	if err := b.cancel(); err != nil {
		return err
	}
	b.updatedAt = now.UTC()
	return nil
}

// MarkOverdue flags a pending bill whose due date has passed.
func (b *Bill) MarkOverdue(now time.Time) error {
	if err := b.markOverdue(now); err != nil {
		return err
	}
	b.updatedAt = now.UTC()
	return nil
}

// IsOverdue reports whether the bill is unpaid past its due date.
func (b *Bill) IsOverdue(now time.Time) bool {
	return b.isOverdue(now)
}

func (b *Bill) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Bill) setNumber(number string) error {
	number = strings.ToUpper(strings.TrimSpace(number))
	if err := validateNumber(BillNumberPrefix, number); err != nil {
		return err
	}
	b.number = number
	return nil
}

func (b *Bill) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	b.ownerID = ownerID
	return nil
}

func (b *Bill) setShipment(shipmentID *kernel.UUID) error {
	if shipmentID == nil {
		return nil
	}
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipment", err)
	}
	id := *shipmentID
	b.shipmentID = &id
	return nil
}

func (b *Bill) setDescription(d string) error {
	d = strings.TrimSpace(d)
	if n := len([]rune(d)); n > DescriptionMaxLength {
		return errs.NewValueIsOutOfRangeError("description length", n, 0, DescriptionMaxLength)
	}
	b.description = d
	return nil
}

func (b *Bill) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("amount", err)
	}
	if amount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("amount", errors.New("bill amount must be positive"))
	}
	b.amount = amount
	return nil
}
