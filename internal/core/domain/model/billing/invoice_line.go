package billing

import (
	"errors"
	"strings"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrInvoiceLineIsNotConstructed = errs.NewValueIsRequiredError("invoice line must be created via NewInvoiceLine")

const (
	LineDescriptionMaxLength = 255
	LineQuantityMax          = 10_000
)

// InvoiceLine is one priced item of an invoice.
type InvoiceLine struct { //nolint:recvcheck //using for validation
	description string
	quantity    int
	unitPrice   kernel.Money
	guard       guard.ConstructorGuard
}

func NewInvoiceLine(description string, quantity int, unitPrice kernel.Money) (InvoiceLine, error) {
	l := InvoiceLine{
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}

	var descErr, qtyErr error
	switch n := len([]rune(l.description)); {
	case n == 0:
		descErr = errs.NewValueIsRequiredError("line description")
	case n > LineDescriptionMaxLength:
		descErr = errs.NewValueIsOutOfRangeError("line description length", n, 1, LineDescriptionMaxLength)
	}
	if quantity < 1 || quantity > LineQuantityMax {
		qtyErr = errs.NewValueIsOutOfRangeError("line quantity", quantity, 1, LineQuantityMax)
	}
	if err := errors.Join(descErr, qtyErr, unitPrice.Validate()); err != nil {
		return InvoiceLine{}, err
	}
	if _, err := unitPrice.Multiply(int64(quantity)); err != nil {
		return InvoiceLine{}, errs.NewValueIsOutOfRangeErrorWithCause("line total", unitPrice.String(), 0, kernel.MaxMoneyAmount, err)
	}

	l.quantity = quantity
	l.unitPrice = unitPrice
	return l, nil
}

func (l InvoiceLine) Validate() error {
	return l.guard.Validate(ErrInvoiceLineIsNotConstructed)
}

func (l InvoiceLine) Description() string     { return l.description }
func (l InvoiceLine) Quantity() int           { return l.quantity }
func (l InvoiceLine) UnitPrice() kernel.Money { return l.unitPrice }

// Total is quantity × unit price. NewInvoiceLine rejects lines whose total does not fit.
func (l InvoiceLine) Total() kernel.Money {
	total, _ := l.unitPrice.Multiply(int64(l.quantity))
	return total
}
