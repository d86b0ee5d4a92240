package shipment

import (
	"fmt"
	"strings"

	"parcelmybox/internal/pkg/errs"
)

// ServiceLevel is the delivery speed the customer paid for.
type ServiceLevel int

const (
	UnknownServiceLevel ServiceLevel = iota
	Standard
	Express
	Overnight
)

func getServiceLevelStrings() map[ServiceLevel]string {
	return map[ServiceLevel]string{
		UnknownServiceLevel: "unknown",
		Standard:            "standard",
		Express:             "express",
		Overnight:           "overnight",
	}
}

func ParseServiceLevel(s string) (ServiceLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, str := range getServiceLevelStrings() {
		if l != UnknownServiceLevel && str == s {
			return l, nil
		}
	}
	return UnknownServiceLevel, errs.NewValueIsInvalidErrorWithCause("service level",
		fmt.Errorf("%q is not one of standard, express, overnight", s))
}

func (l ServiceLevel) Validate() error {
	if l < Standard || l > Overnight {
		return errs.NewValueIsInvalidErrorWithCause("service level", fmt.Errorf("%d is not a valid service level", l))
	}
	return nil
}

func (l ServiceLevel) String() string {
	if str, ok := getServiceLevelStrings()[l]; ok {
		return str
	}
	return "unknown"
}
