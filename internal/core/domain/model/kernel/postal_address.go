package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrPostalAddressIsNotConstructed = errs.NewValueIsRequiredError("postal address must be created via NewPostalAddress")

// PostalAddress is an immutable delivery address. Shipments and pickups keep a
// copy of it so that later edits to the address book do not rewrite history.
type PostalAddress struct { //nolint:recvcheck //using for validation
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
	guard      guard.ConstructorGuard
}

// NewPostalAddress trims every part, upper-cases country and postal code and
// requires line1, city, postal code and a 2-letter country code.
func NewPostalAddress(line1, line2, city, state, postalCode, country string) (PostalAddress, error) {
	a := PostalAddress{
		line1:      strings.TrimSpace(line1),
		line2:      strings.TrimSpace(line2),
		city:       strings.TrimSpace(city),
		state:      strings.TrimSpace(state),
		postalCode: strings.ToUpper(strings.TrimSpace(postalCode)),
		country:    strings.ToUpper(strings.TrimSpace(country)),
		guard:      guard.NewConstructorGuard(),
	}

	var errList []error
	if a.line1 == "" {
		errList = append(errList, errs.NewValueIsRequiredError("line1"))
	}
	if a.city == "" {
		errList = append(errList, errs.NewValueIsRequiredError("city"))
	}
	if a.postalCode == "" {
		errList = append(errList, errs.NewValueIsRequiredError("postal code"))
	}
	if len(a.country) != 2 || !isUpperLetters(a.country) {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("country",
			fmt.Errorf("%q is not an ISO 3166-1 alpha-2 code", a.country)))
	}
	if err := errors.Join(errList...); err != nil {
		return PostalAddress{}, err
	}

	return a, nil
}

func (a PostalAddress) Validate() error {
	return a.guard.Validate(ErrPostalAddressIsNotConstructed)
}

func (a PostalAddress) Line1() string      { return a.line1 }
func (a PostalAddress) Line2() string      { return a.line2 }
func (a PostalAddress) City() string       { return a.city }
func (a PostalAddress) State() string      { return a.state }
func (a PostalAddress) PostalCode() string { return a.postalCode }
func (a PostalAddress) Country() string    { return a.country }

// PostalPrefix returns the first three alphanumeric characters of the postal
// code; the quote calculator treats a shared prefix as the same local area.
func (a PostalAddress) PostalPrefix() string {
	var b strings.Builder
	for _, r := range a.postalCode {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			if b.Len() == 3 {
				break
			}
		}
	}
	return b.String()
}

// String renders the address on one line.
func (a PostalAddress) String() string {
	parts := []string{a.line1}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	cityLine := a.city
	if a.state != "" {
		cityLine += ", " + a.state
	}
	parts = append(parts, cityLine, a.postalCode, a.country)
	return strings.Join(parts, ", ")
}

func isUpperLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
