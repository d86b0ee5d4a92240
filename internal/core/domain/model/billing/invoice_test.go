package billing_test

import (
	"testing"
	"time"

	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(t *testing.T, desc string, qty int, cents int64) billing.InvoiceLine {
	t.Helper()
	l, err := billing.NewInvoiceLine(desc, qty, usd(t, cents))
	require.NoError(t, err)
	return l
}

func TestNewInvoice_Totals(t *testing.T) {
	// Given
	lines := []billing.InvoiceLine{
		line(t, "Express shipping", 3, 1299),
		line(t, "Packaging", 1, 250),
	}

	// When
	inv, err := billing.NewInvoice(
		kernel.NewUUID(), billing.NewInvoiceNumber(issuedAt), kernel.NewUUID(),
		issuedAt, issuedAt.AddDate(0, 0, 30), 825, "net 30", lines, issuedAt,
	)

	// Then
	require.NoError(t, err)
	assert.Equal(t, int64(4147), inv.Subtotal().Amount())
	// 4147 * 8.25% = 342.1275 -> 342
	assert.Equal(t, int64(342), inv.Tax().Amount())
	assert.Equal(t, int64(4489), inv.Total().Amount())
	assert.Equal(t, "USD", inv.Currency())
	assert.Equal(t, billing.Pending, inv.Status())
}

func TestNewInvoice_TaxRoundsHalfUp(t *testing.T) {
	inv, err := billing.NewInvoice(
		kernel.NewUUID(), billing.NewInvoiceNumber(issuedAt), kernel.NewUUID(),
		issuedAt, issuedAt, 500, "", []billing.InvoiceLine{line(t, "Fee", 1, 10)}, issuedAt,
	)

	require.NoError(t, err)
	// 10 * 5% = 0.5 -> 1
	assert.Equal(t, int64(1), inv.Tax().Amount())
}

func TestNewInvoice_Validation(t *testing.T) {
	eur, err := kernel.NewMoney(100, "EUR")
	require.NoError(t, err)
	eurLine, err := billing.NewInvoiceLine("Customs", 1, eur)
	require.NoError(t, err)

	tests := []struct {
		name    string
		due     time.Time
		taxBP   int
		lines   []billing.InvoiceLine
		wantErr error
	}{
		{"no_lines", issuedAt, 0, nil, errs.ErrValueIsRequired},
		{"due_before_issue", issuedAt.AddDate(0, 0, -1), 0, []billing.InvoiceLine{line(t, "A", 1, 1)}, errs.ErrValueIsInvalid},
		{"tax_above_100_percent", issuedAt, 10001, []billing.InvoiceLine{line(t, "A", 1, 1)}, errs.ErrValueIsOutOfRange},
		{"mixed_currencies", issuedAt, 0, []billing.InvoiceLine{line(t, "A", 1, 1), eurLine}, errs.ErrValueIsInvalid},
		{"unconstructed_line", issuedAt, 0, []billing.InvoiceLine{{}}, errs.ErrValueIsRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := billing.NewInvoice(
				kernel.NewUUID(), billing.NewInvoiceNumber(issuedAt), kernel.NewUUID(),
				issuedAt, tc.due, tc.taxBP, "", tc.lines, issuedAt,
			)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewInvoiceLine_Validation(t *testing.T) {
	_, err := billing.NewInvoiceLine(" ", 0, kernel.Money{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestInvoice_Transitions(t *testing.T) {
	inv, err := billing.NewInvoice(
		kernel.NewUUID(), billing.NewInvoiceNumber(issuedAt), kernel.NewUUID(),
		issuedAt, issuedAt.AddDate(0, 0, 7), 0, "", []billing.InvoiceLine{line(t, "A", 1, 100)}, issuedAt,
	)
	require.NoError(t, err)

	require.ErrorIs(t, inv.MarkOverdue(issuedAt.AddDate(0, 0, 7)), errs.ErrInvalidStateTransition)
	require.NoError(t, inv.MarkOverdue(issuedAt.AddDate(0, 0, 8)))
	require.NoError(t, inv.Cancel(issuedAt.AddDate(0, 0, 9)))
	assert.Equal(t, billing.Cancelled, inv.Status())
	assert.False(t, inv.IsOverdue(issuedAt.AddDate(0, 0, 30)))

	err = inv.Pay(issuedAt.AddDate(0, 0, 10))
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	assert.Contains(t, err.Error(), "invoice cannot move from CANCELLED to PAID")
}

func TestNewInvoiceLine_RejectsTotalBeyondMoneyRange(t *testing.T) {
	// Given
	price := usd(t, 1_000_000_000_000_000_000)

	// When
	_, err := billing.NewInvoiceLine("Freight", 10, price)

	// Then
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewInvoice_RejectsTotalsBeyondMoneyRange(t *testing.T) {
	tests := []struct {
		name  string
		taxBP int
		lines []billing.InvoiceLine
	}{
		{
			name:  "subtotal",
			lines: []billing.InvoiceLine{line(t, "A", 1, 5_000_000_000_000_000_000), line(t, "B", 1, 5_000_000_000_000_000_000)},
		},
		{
			name:  "tax",
			taxBP: 2000,
			lines: []billing.InvoiceLine{line(t, "A", 1, 9_000_000_000_000_000_000)},
		},
		{
			name:  "total",
			taxBP: 1,
			lines: []billing.InvoiceLine{line(t, "A", 1, kernel.MaxMoneyAmount-5000)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// When
			inv, err := billing.NewInvoice(
				kernel.NewUUID(), billing.NewInvoiceNumber(issuedAt), kernel.NewUUID(),
				issuedAt, issuedAt, tc.taxBP, "", tc.lines, issuedAt,
			)

			// Then
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Nil(t, inv)
		})
	}
}
