package commands

import (
	"errors"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand books a shipment for the actor. IDs for the shipment
// and the bill raised for it are chosen by the caller so it can read them back.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	actor         kernel.Actor
	shipmentID    kernel.UUID
	billID        kernel.UUID
	sender        shipment.Party
	recipient     shipment.Party
	parcel        shipment.Parcel
	serviceLevel  shipment.ServiceLevel
	declaredValue kernel.Money
	description   string

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	actor kernel.Actor,
	shipmentID, billID kernel.UUID,
	sender, recipient shipment.Party,
	parcel shipment.Parcel,
	serviceLevel shipment.ServiceLevel,
	declaredValue kernel.Money,
	description string,
) (CreateShipmentCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		shipmentID.Validate(),
		billID.Validate(),
		sender.Validate(),
		recipient.Validate(),
		parcel.Validate(),
		serviceLevel.Validate(),
		declaredValue.Validate(),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return CreateShipmentCommand{
		actor:         actor,
		shipmentID:    shipmentID,
		billID:        billID,
		sender:        sender,
		recipient:     recipient,
		parcel:        parcel,
		serviceLevel:  serviceLevel,
		declaredValue: declaredValue,
		description:   description,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Actor() kernel.Actor                 { return c.actor }
func (c CreateShipmentCommand) ShipmentID() kernel.UUID             { return c.shipmentID }
func (c CreateShipmentCommand) BillID() kernel.UUID                 { return c.billID }
func (c CreateShipmentCommand) Sender() shipment.Party              { return c.sender }
func (c CreateShipmentCommand) Recipient() shipment.Party           { return c.recipient }
func (c CreateShipmentCommand) Parcel() shipment.Parcel             { return c.parcel }
func (c CreateShipmentCommand) ServiceLevel() shipment.ServiceLevel { return c.serviceLevel }
func (c CreateShipmentCommand) DeclaredValue() kernel.Money         { return c.declaredValue }
func (c CreateShipmentCommand) Description() string                 { return c.description }
