package pickup

import (
	"fmt"
	"strings"

	"parcelmybox/internal/pkg/errs"
)

// TimeWindow is the part of the day the courier is expected.
type TimeWindow int

const (
	UnknownTimeWindow TimeWindow = iota
	Morning
	Afternoon
	Evening
)

func getTimeWindowStrings() map[TimeWindow]string {
	return map[TimeWindow]string{
		UnknownTimeWindow: "unknown",
		Morning:           "morning",
		Afternoon:         "afternoon",
		Evening:           "evening",
	}
}

func ParseTimeWindow(s string) (TimeWindow, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for w, str := range getTimeWindowStrings() {
		if w != UnknownTimeWindow && str == s {
			return w, nil
		}
	}
	return UnknownTimeWindow, errs.NewValueIsInvalidErrorWithCause("time window",
		fmt.Errorf("%q is not one of morning, afternoon, evening", s))
}

func (w TimeWindow) Validate() error {
	if w < Morning || w > Evening {
		return errs.NewValueIsInvalidErrorWithCause("time window", fmt.Errorf("%d is not a valid time window", w))
	}
	return nil
}

func (w TimeWindow) String() string {
	if str, ok := getTimeWindowStrings()[w]; ok {
		return str
	}
	return "unknown"
}

// Hours returns the local start and end hour of the window.
func (w TimeWindow) Hours() (from, to int) {
	switch w {
	case Morning:
		return 8, 12
	case Afternoon:
		return 12, 17
	case Evening:
		return 17, 20
	default:
		return 0, 0
	}
}
