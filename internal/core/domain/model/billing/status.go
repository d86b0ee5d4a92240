package billing

import (
	"fmt"
	"strings"

	"parcelmybox/internal/pkg/errs"
)

type Status int

const (
	UnknownStatus Status = iota
	Pending
	Paid
	Overdue
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "UNKNOWN",
		Pending:       "PENDING",
		Paid:          "PAID",
		Overdue:       "OVERDUE",
		Cancelled:     "CANCELLED",
	}
}

func ParseStatus(s string) (Status, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != UnknownStatus && str == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a billing status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsOpen reports whether the document still awaits payment.
func (s Status) IsOpen() bool {
	return s == Pending || s == Overdue
}
