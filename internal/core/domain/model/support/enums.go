package support

import (
	"fmt"
	"strings"

	"parcelmybox/internal/pkg/errs"
)

type Category int

const (
	UnknownCategory Category = iota
	CategoryShipment
	CategoryBilling
	CategoryPickup
	CategoryAccount
	CategoryOther
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		UnknownCategory:  "unknown",
		CategoryShipment: "shipment",
		CategoryBilling:  "billing",
		CategoryPickup:   "pickup",
		CategoryAccount:  "account",
		CategoryOther:    "other",
	}
}

func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, str := range getCategoryStrings() {
		if c != UnknownCategory && str == s {
			return c, nil
		}
	}
	return UnknownCategory, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a ticket category", s))
}

func (c Category) Validate() error {
	if c < CategoryShipment || c > CategoryOther {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "unknown"
}

type Priority int

const (
	UnknownPriority Priority = iota
	Low
	Normal
	High
	Urgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		UnknownPriority: "unknown",
		Low:             "low",
		Normal:          "normal",
		High:            "high",
		Urgent:          "urgent",
	}
}

// ParsePriority defaults an empty value to Normal.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Normal, nil
	}
	for p, str := range getPriorityStrings() {
		if p != UnknownPriority && str == s {
			return p, nil
		}
	}
	return UnknownPriority, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a ticket priority", s))
}

func (p Priority) Validate() error {
	if p < Low || p > Urgent {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Status of a ticket. Any open state may move to any other; closed is final.
type Status int

const (
	UnknownStatus Status = iota
	Open
	InProgress
	Resolved
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "unknown",
		Open:          "open",
		InProgress:    "in_progress",
		Resolved:      "resolved",
		Closed:        "closed",
	}
}

func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != UnknownStatus && str == s {
			return st, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a ticket status", s))
}

func (s Status) Validate() error {
	if s < Open || s > Closed {
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
