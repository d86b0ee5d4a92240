package shipment

import (
	"fmt"
	"strings"

	"parcelmybox/internal/pkg/errs"
)

// Status is the courier progress of a shipment.
//
//	pending ─> picked_up ─> in_transit ─> out_for_delivery ─> delivered
//	   │                        │  ▲              │
//	   └─> cancelled            └──┘ (hub scan)   └─> returned
//	                            └─────────────────────> returned
//
// Progress may skip steps but never moves backwards. Delivered, cancelled and
// returned are final.
type Status int

const (
	UnknownStatus Status = iota
	Pending
	PickedUp
	InTransit
	OutForDelivery
	Delivered
	Cancelled
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:  "unknown",
		Pending:        "pending",
		PickedUp:       "picked_up",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Returned:       "returned",
	}
}

// progress ranks the linear part of the lifecycle.
func (s Status) progress() int {
	switch s {
	case Pending:
		return 1
	case PickedUp:
		return 2
	case InTransit:
		return 3
	case OutForDelivery:
		return 4
	case Delivered:
		return 5
	default:
		return 0
	}
}

func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != UnknownStatus && str == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Returned {
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

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled || s == Returned
}

// ValidateTransition checks that the lifecycle allows moving from s to next.
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	reject := func() error {
		return errs.NewInvalidStateTransitionError("shipment", s.String(), next.String())
	}

	switch {
	case s.IsFinal():
		return reject()
	case next == Cancelled:
		if s != Pending {
			return reject()
		}
	case next == Returned:
		if s != InTransit && s != OutForDelivery {
			return reject()
		}
	case next == InTransit && s == InTransit:
		return nil
	case next.progress() <= s.progress():
		return reject()
	}

	return nil
}
