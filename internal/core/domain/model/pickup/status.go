package pickup

import (
	"fmt"
	"strings"

	"parcelmybox/internal/pkg/errs"
)

// Status of a courier pickup.
//
//	requested ─> scheduled ─> completed
//	    │            │
//	    └────────────┴─> cancelled
type Status int

const (
	UnknownStatus Status = iota
	Requested
	Scheduled
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Requested:     "requested",
		Scheduled:     "scheduled",
		Completed:     "completed",
		Cancelled:     "cancelled",
	}
}

func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != UnknownStatus && str == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a pickup status", s))
}

func (s Status) Validate() error {
	if s < Requested || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) IsFinal() bool {
	return s == Completed || s == Cancelled
}

func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	allowed := false
	switch s {
	case Requested:
		allowed = next == Scheduled || next == Cancelled
	case Scheduled:
		allowed = next == Completed || next == Cancelled
	}
	if !allowed {
		return errs.NewInvalidStateTransitionError("pickup request", s.String(), next.String())
	}
	return nil
}
