package billing

import (
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

// lifecycle is the payment state shared by bills and invoices.
type lifecycle struct {
	entity  string
	status  Status
	dueDate time.Time
	paidAt  *time.Time
}

func (l *lifecycle) pay(now time.Time) error {
	if !l.status.IsOpen() {
		return errs.NewInvalidStateTransitionError(l.entity, l.status.String(), Paid.String())
	}
	paidAt := now.UTC()
	l.status = Paid
	l.paidAt = &paidAt
	return nil
}

func (l *lifecycle) cancel() error {
	if !l.status.IsOpen() {
		return errs.NewInvalidStateTransitionError(l.entity, l.status.String(), Cancelled.String())
	}
	l.status = Cancelled
	return nil
}

func (l *lifecycle) markOverdue(now time.Time) error {
	if l.status != Pending || !kernel.IsBeforeDay(l.dueDate, now) {
		return errs.NewInvalidStateTransitionError(l.entity, l.status.String(), Overdue.String())
	}
	l.status = Overdue
	return nil
}

func (l *lifecycle) isOverdue(now time.Time) bool {
	return l.status.IsOpen() && kernel.IsBeforeDay(l.dueDate, now)
}
