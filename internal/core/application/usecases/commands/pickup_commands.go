package commands

import (
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/pickup"
	"parcelmybox/internal/pkg/guard"
)

var (
	ErrCreatePickupCommandIsNotConstructed = errors.New(
		"CreatePickupCommand must be created via NewCreatePickupCommand constructor",
	)
	ErrUpdatePickupStatusCommandIsNotConstructed = errors.New(
		"UpdatePickupStatusCommand must be created via NewUpdatePickupStatusCommand constructor",
	)
)

// CreatePickupCommand asks for a courier to collect parcels at one of the
// actor's address-book entries.
type CreatePickupCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	pickupID     kernel.UUID
	addressID    kernel.UUID
	shipmentID   *kernel.UUID
	pickupDate   time.Time
	window       pickup.TimeWindow
	packageCount int
	weightGrams  int
	instructions string

	guard guard.ConstructorGuard
}

func NewCreatePickupCommand(
	actor kernel.Actor,
	pickupID, addressID kernel.UUID,
	shipmentID *kernel.UUID,
	pickupDate time.Time,
	window pickup.TimeWindow,
	packageCount, weightGrams int,
	instructions string,
) (CreatePickupCommand, error) {
	if err := errors.Join(actor.Validate(), pickupID.Validate(), addressID.Validate(), window.Validate()); err != nil {
		return CreatePickupCommand{}, err
	}
	return CreatePickupCommand{
		actor:        actor,
		pickupID:     pickupID,
		addressID:    addressID,
		shipmentID:   shipmentID,
		pickupDate:   pickupDate,
		window:       window,
		packageCount: packageCount,
		weightGrams:  weightGrams,
		instructions: instructions,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePickupCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupCommandIsNotConstructed)
}

func (c CreatePickupCommand) Actor() kernel.Actor       { return c.actor }
func (c CreatePickupCommand) PickupID() kernel.UUID     { return c.pickupID }
func (c CreatePickupCommand) AddressID() kernel.UUID    { return c.addressID }
func (c CreatePickupCommand) ShipmentID() *kernel.UUID  { return c.shipmentID }
func (c CreatePickupCommand) PickupDate() time.Time     { return c.pickupDate }
func (c CreatePickupCommand) Window() pickup.TimeWindow { return c.window }
func (c CreatePickupCommand) PackageCount() int         { return c.packageCount }
func (c CreatePickupCommand) WeightGrams() int          { return c.weightGrams }
func (c CreatePickupCommand) Instructions() string      { return c.instructions }

// UpdatePickupStatusCommand moves a pickup along its lifecycle. Scheduling and
// completing are staff operations; cancelling is open to the owner as well.
type UpdatePickupStatusCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	pickupID kernel.UUID
	status   pickup.Status

	guard guard.ConstructorGuard
}

func NewUpdatePickupStatusCommand(actor kernel.Actor, pickupID kernel.UUID, status pickup.Status) (UpdatePickupStatusCommand, error) {
	if err := errors.Join(actor.Validate(), pickupID.Validate(), status.Validate()); err != nil {
		return UpdatePickupStatusCommand{}, err
	}
	return UpdatePickupStatusCommand{actor: actor, pickupID: pickupID, status: status, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdatePickupStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePickupStatusCommandIsNotConstructed)
}

func (c UpdatePickupStatusCommand) Actor() kernel.Actor   { return c.actor }
func (c UpdatePickupStatusCommand) PickupID() kernel.UUID { return c.pickupID }
func (c UpdatePickupStatusCommand) Status() pickup.Status { return c.status }
