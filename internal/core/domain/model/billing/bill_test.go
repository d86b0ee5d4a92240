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

var issuedAt = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func usd(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents, "USD")
	require.NoError(t, err)
	return m
}

func newBill(t *testing.T) *billing.Bill {
	t.Helper()
	shipmentID := kernel.NewUUID()
	b, err := billing.NewBill(
		kernel.NewUUID(),
		billing.NewBillNumber(issuedAt),
		kernel.NewUUID(),
		&shipmentID,
		"Shipment PMB7KX2M9QR4T",
		usd(t, 1599),
		issuedAt.AddDate(0, 0, 14),
		issuedAt,
	)
	require.NoError(t, err)
	return b
}

func TestNewBill(t *testing.T) {
	t.Run("issues_pending_bill_with_calendar_due_date", func(t *testing.T) {
		b := newBill(t)

		assert.Equal(t, billing.Pending, b.Status())
		assert.Equal(t, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC), b.DueDate())
		assert.Nil(t, b.PaidAt())
		assert.NotNil(t, b.ShipmentID())
		assert.Regexp(t, `^BIL-202603-[2-9A-HJ-NP-Z]{6}$`, b.Number())
	})

	t.Run("rejects_zero_amount_and_foreign_number", func(t *testing.T) {
		_, err := billing.NewBill(
			kernel.NewUUID(), billing.NewInvoiceNumber(issuedAt), kernel.NewUUID(), nil,
			"", usd(t, 0), issuedAt, issuedAt,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "number")
		assert.Contains(t, err.Error(), "amount")
	})
}

func TestBill_Transitions(t *testing.T) {
	t.Run("pay_from_pending", func(t *testing.T) {
		b := newBill(t)
		paidAt := issuedAt.Add(time.Hour)

		require.NoError(t, b.Pay(paidAt))

		assert.Equal(t, billing.Paid, b.Status())
		require.NotNil(t, b.PaidAt())
		assert.Equal(t, paidAt, *b.PaidAt())
		require.ErrorIs(t, b.Pay(paidAt), errs.ErrInvalidStateTransition)
		require.ErrorIs(t, b.Cancel(paidAt), errs.ErrInvalidStateTransition)
	})

	t.Run("overdue_bill_can_still_be_paid", func(t *testing.T) {
		b := newBill(t)
		later := issuedAt.AddDate(0, 0, 15)

		require.NoError(t, b.MarkOverdue(later))
		assert.Equal(t, billing.Overdue, b.Status())
		require.NoError(t, b.Pay(later))
		assert.Equal(t, billing.Paid, b.Status())
	})

	t.Run("cancel_is_final", func(t *testing.T) {
		b := newBill(t)

		require.NoError(t, b.Cancel(issuedAt))
		require.ErrorIs(t, b.Pay(issuedAt), errs.ErrInvalidStateTransition)
		require.ErrorIs(t, b.MarkOverdue(issuedAt.AddDate(1, 0, 0)), errs.ErrInvalidStateTransition)
	})
}

func TestBill_Overdue(t *testing.T) {
	due := time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before_due_date", due.Add(-time.Hour), false},
		{"on_due_date_late_evening", due.Add(23 * time.Hour), false},
		{"day_after_due_date", due.AddDate(0, 0, 1), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newBill(t)

			assert.Equal(t, tc.want, b.IsOverdue(tc.now))
			err := b.MarkOverdue(tc.now)
			if tc.want {
				require.NoError(t, err)
				assert.Equal(t, billing.Overdue, b.Status())
			} else {
				require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
				assert.Equal(t, billing.Pending, b.Status())
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := billing.ParseStatus("overdue")
	require.NoError(t, err)
	assert.Equal(t, billing.Overdue, st)
	assert.Equal(t, "OVERDUE", st.String())

	_, err = billing.ParseStatus("REFUNDED")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
