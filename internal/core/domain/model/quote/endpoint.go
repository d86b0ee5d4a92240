package quote

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrEndpointIsNotConstructed = errs.NewValueIsRequiredError("endpoint must be created via NewEndpoint")

const postalPrefixLength = 3

// Endpoint is the part of an address that prices a route.
type Endpoint struct { //nolint:recvcheck //using for validation
	country    string
	postalCode string
	guard      guard.ConstructorGuard
}

func NewEndpoint(country, postalCode string) (Endpoint, error) {
	e := Endpoint{
		country:    strings.ToUpper(strings.TrimSpace(country)),
		postalCode: strings.ToUpper(strings.TrimSpace(postalCode)),
		guard:      guard.NewConstructorGuard(),
	}

	var countryErr, postalErr error
	if len(e.country) != 2 || !isASCIIUpper(e.country) {
		countryErr = errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%q is not a 2-letter code", country))
	}
	if e.postalCode == "" {
		postalErr = errs.NewValueIsRequiredError("postal code")
	}
	if err := errors.Join(countryErr, postalErr); err != nil {
		return Endpoint{}, err
	}
	return e, nil
}

// EndpointOf takes the routing part of a full postal address.
func EndpointOf(a kernel.PostalAddress) (Endpoint, error) {
	if err := a.Validate(); err != nil {
		return Endpoint{}, err
	}
	return NewEndpoint(a.Country(), a.PostalCode())
}

func (e Endpoint) Validate() error {
	return e.guard.Validate(ErrEndpointIsNotConstructed)
}

func (e Endpoint) Country() string    { return e.country }
func (e Endpoint) PostalCode() string { return e.postalCode }

// PostalPrefix is the first three letters or digits of the postal code.
func (e Endpoint) PostalPrefix() string {
	var b strings.Builder
	for _, r := range e.postalCode {
		if b.Len() == postalPrefixLength {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIUpper(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
