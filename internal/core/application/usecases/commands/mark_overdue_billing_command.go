package commands

import (
	"errors"
	"time"

	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrMarkOverdueBillingCommandIsNotConstructed = errors.New(
	"MarkOverdueBillingCommand must be created via NewMarkOverdueBillingCommand constructor",
)

// MarkOverdueBillingCommand flags every pending bill and invoice whose due date
// lies before the day of now.
type MarkOverdueBillingCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

func NewMarkOverdueBillingCommand(now time.Time) (MarkOverdueBillingCommand, error) {
	if now.IsZero() {
		return MarkOverdueBillingCommand{}, errs.NewValueIsRequiredError("now")
	}
	return MarkOverdueBillingCommand{now: now, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkOverdueBillingCommand) Validate() error {
	return c.guard.Validate(ErrMarkOverdueBillingCommandIsNotConstructed)
}

func (c MarkOverdueBillingCommand) Now() time.Time { return c.now }
