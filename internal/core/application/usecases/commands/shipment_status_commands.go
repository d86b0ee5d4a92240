package commands

import (
	"errors"
	"strings"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/pkg/guard"
)

var (
	ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
		"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
	)
	ErrCancelShipmentCommandIsNotConstructed = errors.New(
		"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
	)
)

// UpdateShipmentStatusCommand records courier progress. Staff only.
type UpdateShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	shipmentID kernel.UUID
	status     shipment.Status
	location   string
	note       string

	guard guard.ConstructorGuard
}

func NewUpdateShipmentStatusCommand(
	actor kernel.Actor,
	shipmentID kernel.UUID,
	status shipment.Status,
	location, note string,
) (UpdateShipmentStatusCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate(), status.Validate()); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}
	return UpdateShipmentStatusCommand{
		actor:      actor,
		shipmentID: shipmentID,
		status:     status,
		location:   strings.TrimSpace(location),
		note:       strings.TrimSpace(note),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

func (c UpdateShipmentStatusCommand) Actor() kernel.Actor     { return c.actor }
func (c UpdateShipmentStatusCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c UpdateShipmentStatusCommand) Status() shipment.Status { return c.status }
func (c UpdateShipmentStatusCommand) Location() string        { return c.location }
func (c UpdateShipmentStatusCommand) Note() string            { return c.note }

// CancelShipmentCommand withdraws a pending shipment. Owner or staff.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	shipmentID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

func NewCancelShipmentCommand(actor kernel.Actor, shipmentID kernel.UUID, reason string) (CancelShipmentCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return CancelShipmentCommand{}, err
	}
	return CancelShipmentCommand{
		actor:      actor,
		shipmentID: shipmentID,
		reason:     reason,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

func (c CancelShipmentCommand) Actor() kernel.Actor     { return c.actor }
func (c CancelShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }
func (c CancelShipmentCommand) Reason() string          { return c.reason }
