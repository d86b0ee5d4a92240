package shipment

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"parcelmybox/internal/pkg/errs"
)

const (
	TrackingNumberPrefix = "PMB"
	trackingBodyLength   = 10
	// trackingAlphabet leaves out 0, O, 1 and I, which are misread on labels.
	trackingAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// NewTrackingNumber returns a random tracking number such as "PMB7KX2M9QR4TW".
// Uniqueness is enforced by the repository; callers retry on collision.
func NewTrackingNumber() string {
	var b strings.Builder
	b.Grow(len(TrackingNumberPrefix) + trackingBodyLength)
	b.WriteString(TrackingNumberPrefix)
	for range trackingBodyLength {
		b.WriteByte(trackingAlphabet[rand.IntN(len(trackingAlphabet))]) //nolint:gosec // not a secret
	}
	return b.String()
}

// NormalizeTrackingNumber upper-cases and validates a tracking number typed by a user.
func NormalizeTrackingNumber(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", errs.NewValueIsRequiredError("tracking number")
	}
	body, ok := strings.CutPrefix(s, TrackingNumberPrefix)
	if !ok || len(body) != trackingBodyLength {
		return "", errs.NewValueIsInvalidErrorWithCause("tracking number", fmt.Errorf("%q has the wrong format", s))
	}
	for _, r := range body {
		if !strings.ContainsRune(trackingAlphabet, r) {
			return "", errs.NewValueIsInvalidErrorWithCause("tracking number", fmt.Errorf("%q has the wrong format", s))
		}
	}
	return s, nil
}
