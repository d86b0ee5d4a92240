package support

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"parcelmybox/internal/pkg/errs"
)

const (
	ticketAlphabet     = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	ticketSuffixLength = 6
)

var ticketPattern = regexp.MustCompile(`^TKT-\d{8}-[2-9A-HJ-NP-Z]{6}$`)

// NewTicketNumber returns a number such as "TKT-20260504-7KX2M9".
func NewTicketNumber(now time.Time) string {
	var b strings.Builder
	b.WriteString(now.UTC().Format("TKT-20060102-"))
	for range ticketSuffixLength {
		b.WriteByte(ticketAlphabet[rand.IntN(len(ticketAlphabet))]) //nolint:gosec // not a secret
	}
	return b.String()
}

func validateTicketNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("ticket number")
	}
	if !ticketPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("ticket number", fmt.Errorf("%q has the wrong format", number))
	}
	return nil
}
