package commands

import (
	"errors"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/guard"
)

var ErrSaveAddressCommandIsNotConstructed = errors.New(
	"SaveAddressCommand must be created via NewSaveAddressCommand constructor",
)

// SaveAddressCommand carries the editable fields of an address-book entry.
// CreateAddressCommandHandler and UpdateAddressCommandHandler both consume it.
type SaveAddressCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	addressID   kernel.UUID
	label       string
	contactName string
	phone       string
	postal      kernel.PostalAddress
	isDefault   bool

	guard guard.ConstructorGuard
}

func NewSaveAddressCommand(
	actor kernel.Actor,
	addressID kernel.UUID,
	label, contactName, phone string,
	postal kernel.PostalAddress,
	isDefault bool,
) (SaveAddressCommand, error) {
	if err := errors.Join(actor.Validate(), addressID.Validate(), postal.Validate()); err != nil {
		return SaveAddressCommand{}, err
	}
	return SaveAddressCommand{
		actor:       actor,
		addressID:   addressID,
		label:       label,
		contactName: contactName,
		phone:       phone,
		postal:      postal,
		isDefault:   isDefault,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SaveAddressCommand) Validate() error {
	return c.guard.Validate(ErrSaveAddressCommandIsNotConstructed)
}

func (c SaveAddressCommand) Actor() kernel.Actor          { return c.actor }
func (c SaveAddressCommand) AddressID() kernel.UUID       { return c.addressID }
func (c SaveAddressCommand) Label() string                { return c.label }
func (c SaveAddressCommand) ContactName() string          { return c.contactName }
func (c SaveAddressCommand) Phone() string                { return c.phone }
func (c SaveAddressCommand) Postal() kernel.PostalAddress { return c.postal }
func (c SaveAddressCommand) IsDefault() bool              { return c.isDefault }

var ErrDeleteAddressCommandIsNotConstructed = errors.New(
	"DeleteAddressCommand must be created via NewDeleteAddressCommand constructor",
)

type DeleteAddressCommand struct { //nolint:recvcheck //using for validation
	actor     kernel.Actor
	addressID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteAddressCommand(actor kernel.Actor, addressID kernel.UUID) (DeleteAddressCommand, error) {
	if err := errors.Join(actor.Validate(), addressID.Validate()); err != nil {
		return DeleteAddressCommand{}, err
	}
	return DeleteAddressCommand{actor: actor, addressID: addressID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteAddressCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAddressCommandIsNotConstructed)
}

func (c DeleteAddressCommand) Actor() kernel.Actor    { return c.actor }
func (c DeleteAddressCommand) AddressID() kernel.UUID { return c.addressID }
