package shipment

import (
	"errors"
	"strings"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrPartyIsNotConstructed = errs.NewValueIsRequiredError("party must be created via NewParty")

// Party is the sender or recipient snapshot stored on a shipment.
type Party struct { //nolint:recvcheck //using for validation
	name   string
	phone  string
	postal kernel.PostalAddress
	guard  guard.ConstructorGuard
}

func NewParty(name, phone string, postal kernel.PostalAddress) (Party, error) {
	p := Party{
		name:  strings.TrimSpace(name),
		phone: strings.TrimSpace(phone),
		guard: guard.NewConstructorGuard(),
	}
	var nameErr error
	if p.name == "" {
		nameErr = errs.NewValueIsRequiredError("party name")
	}
	if err := errors.Join(nameErr, postal.Validate()); err != nil {
		return Party{}, err
	}
	p.postal = postal
	return p, nil
}

func (p Party) Validate() error {
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

func (p Party) Name() string                 { return p.name }
func (p Party) Phone() string                { return p.phone }
func (p Party) Postal() kernel.PostalAddress { return p.postal }
