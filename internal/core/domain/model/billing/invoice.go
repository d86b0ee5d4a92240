package billing

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

var ErrInvoiceIsNotConstructed = errors.New("Invoice must be created via NewInvoice or RestoreInvoice")

const (
	TaxRateMaxBasisPoints = 10_000
	NotesMaxLength        = 2000
	MaxInvoiceLines       = 100
)

// Invoice is an itemised payable document.
//
// Invariants:
//   - at least one line, all lines in one currency
//   - due date is not before the issue date
//   - tax rate is 0..10000 basis points
type Invoice struct {
	id        kernel.UUID
	number    string
	ownerID   kernel.UUID
	issueDate time.Time
	taxRateBP int
	notes     string
	lines     []InvoiceLine
	currency  string
	lifecycle
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewInvoice issues a pending invoice.
func NewInvoice(
	id kernel.UUID,
	number string,
	ownerID kernel.UUID,
	issueDate, dueDate time.Time,
	taxRateBP int,
	notes string,
	lines []InvoiceLine,
	now time.Time,
) (*Invoice, error) {
	inv := &Invoice{
		issueDate: kernel.DateOf(issueDate),
		lifecycle: lifecycle{
			entity:  "invoice",
			status:  Pending,
			dueDate: kernel.DateOf(dueDate),
		},
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setNumber(number),
		inv.setOwner(ownerID),
		inv.validateDates(),
		inv.setTaxRate(taxRateBP),
		inv.setNotes(notes),
		inv.setLines(lines),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// RestoreInvoice rebuilds an invoice from persistence.
func RestoreInvoice(
	id kernel.UUID,
	number string,
	ownerID kernel.UUID,
	issueDate, dueDate time.Time,
	taxRateBP int,
	notes string,
	lines []InvoiceLine,
	status Status,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Invoice, error) {
	inv, err := NewInvoice(id, number, ownerID, issueDate, dueDate, taxRateBP, notes, lines, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	inv.status = status
	inv.paidAt = paidAt
	inv.updatedAt = updatedAt.UTC()
	return inv, nil
}

func (i *Invoice) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInvoiceIsNotConstructed
	}
	return nil
}

func (i *Invoice) ID() kernel.UUID              { return i.id }
func (i *Invoice) Number() string               { return i.number }
func (i *Invoice) OwnerID() kernel.UUID         { return i.ownerID }
func (i *Invoice) IssueDate() time.Time         { return i.issueDate }
func (i *Invoice) DueDate() time.Time           { return i.dueDate }
func (i *Invoice) TaxRateBP() int               { return i.taxRateBP }
func (i *Invoice) Notes() string                { return i.notes }
func (i *Invoice) Lines() []InvoiceLine         { return slices.Clone(i.lines) }
func (i *Invoice) Currency() string             { return i.currency }
func (i *Invoice) Status() Status               { return i.status }
func (i *Invoice) PaidAt() *time.Time           { return i.paidAt }
func (i *Invoice) CreatedAt() time.Time         { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time         { return i.updatedAt }
func (i *Invoice) IsOwnedBy(u kernel.UUID) bool { return i.ownerID.IsEqual(u) }

// Subtotal is the sum of line totals.
func (i *Invoice) Subtotal() kernel.Money {
	subtotal, _ := kernel.ZeroMoney(i.currency)
	for _, l := range i.lines {
		subtotal, _ = subtotal.Add(l.Total())
	}
	return subtotal
}

// Tax is the subtotal times the tax rate, rounded half up.
func (i *Invoice) Tax() kernel.Money {
	tax, _ := i.Subtotal().BasisPoints(int64(i.taxRateBP))
	return tax
}

func (i *Invoice) Total() kernel.Money {
	total, _ := i.Subtotal().Add(i.Tax())
	return total
}

func (i *Invoice) Pay(now time.Time) error {
	if err := i.pay(now); err != nil {
		return err
	}
	i.updatedAt = now.UTC()
	return nil
}

func (i *Invoice) Cancel(now time.Time) error {
	if err := i.cancel(); err != nil {
		return err
	}
	i.updatedAt = now.UTC()
	return nil
}

func (i *Invoice) MarkOverdue(now time.Time) error {
	if err := i.markOverdue(now); err != nil {
		return err
	}
	i.updatedAt = now.UTC()
	return nil
}

func (i *Invoice) IsOverdue(now time.Time) bool {
	return i.isOverdue(now)
}

func (i *Invoice) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Invoice) setNumber(number string) error {
	number = strings.ToUpper(strings.TrimSpace(number))
	if err := validateNumber(InvoiceNumberPrefix, number); err != nil {
		return err
	}
	i.number = number
	return nil
}

func (i *Invoice) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	i.ownerID = ownerID
	return nil
}

func (i *Invoice) validateDates() error {
	if i.issueDate.IsZero() {
		return errs.NewValueIsRequiredError("issue date")
	}
	if i.dueDate.Before(i.issueDate) {
		return errs.NewValueIsInvalidErrorWithCause("due date",
			fmt.Errorf("%s is before issue date %s", i.dueDate.Format(time.DateOnly), i.issueDate.Format(time.DateOnly)))
	}
	return nil
}

func (i *Invoice) setTaxRate(bp int) error {
	if bp < 0 || bp > TaxRateMaxBasisPoints {
		return errs.NewValueIsOutOfRangeError("tax rate", bp, 0, TaxRateMaxBasisPoints)
	}
	i.taxRateBP = bp
	return nil
}

func (i *Invoice) setNotes(notes string) error {
	notes = strings.TrimSpace(notes)
	if n := len([]rune(notes)); n > NotesMaxLength {
		return errs.NewValueIsOutOfRangeError("notes length", n, 0, NotesMaxLength)
	}
	i.notes = notes
	return nil
}

func (i *Invoice) setLines(lines []InvoiceLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	if len(lines) > MaxInvoiceLines {
		return errs.NewValueIsOutOfRangeError("line count", len(lines), 1, MaxInvoiceLines)
	}
	currency := lines[0].UnitPrice().Currency()
	for n, l := range lines {
		if err := l.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("line %d", n+1), err)
		}
		if l.UnitPrice().Currency() != currency {
			return errs.NewValueIsInvalidErrorWithCause("currency",
				fmt.Errorf("line %d is in %s, expected %s", n+1, l.UnitPrice().Currency(), currency))
		}
	}
	if err := checkTotals(lines, currency, i.taxRateBP); err != nil {
		return err
	}
	i.lines = slices.Clone(lines)
	i.currency = currency
	return nil
}

// checkTotals makes sure subtotal, tax and total are representable so the
// getters never fail.
func checkTotals(lines []InvoiceLine, currency string, taxRateBP int) error {
	subtotal, err := kernel.ZeroMoney(currency)
	if err != nil {
		return err
	}
	for n, l := range lines {
		lineTotal, err := l.UnitPrice().Multiply(int64(l.Quantity()))
		if err != nil {
			return errs.NewValueIsOutOfRangeErrorWithCause(fmt.Sprintf("line %d total", n+1), l.UnitPrice().String(), 0, kernel.MaxMoneyAmount, err)
		}
		if subtotal, err = subtotal.Add(lineTotal); err != nil {
			return errs.NewValueIsOutOfRangeErrorWithCause("subtotal", subtotal.String(), 0, kernel.MaxMoneyAmount, err)
		}
	}
	tax, err := subtotal.BasisPoints(int64(taxRateBP))
	if err != nil {
		return errs.NewValueIsOutOfRangeErrorWithCause("tax", subtotal.String(), 0, kernel.MaxMoneyAmount, err)
	}
	if _, err = subtotal.Add(tax); err != nil {
		return errs.NewValueIsOutOfRangeErrorWithCause("total", subtotal.String(), 0, kernel.MaxMoneyAmount, err)
	}
	return nil
}
