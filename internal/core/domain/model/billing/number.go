package billing

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"parcelmybox/internal/pkg/errs"
)

const (
	BillNumberPrefix    = "BIL"
	InvoiceNumberPrefix = "INV"

	numberAlphabet     = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	numberSuffixLength = 6
)

var numberPattern = regexp.MustCompile(`^(BIL|INV)-\d{6}-[2-9A-HJ-NP-Z]{6}$`)

// NewBillNumber returns a number such as "BIL-202606-7KX2M9".
func NewBillNumber(now time.Time) string {
	return newNumber(BillNumberPrefix, now)
}

// NewInvoiceNumber returns a number such as "INV-202606-QR4TW8".
func NewInvoiceNumber(now time.Time) string {
	return newNumber(InvoiceNumberPrefix, now)
}

func newNumber(prefix string, now time.Time) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(now.UTC().Format("-200601-"))
	for range numberSuffixLength {
		b.WriteByte(numberAlphabet[rand.IntN(len(numberAlphabet))]) //nolint:gosec // not a secret
	}
	return b.String()
}

func validateNumber(prefix, number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	if !numberPattern.MatchString(number) || !strings.HasPrefix(number, prefix+"-") {
		return errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("%q is not a %s number", number, prefix))
	}
	return nil
}
