package commands

import (
	"context"
	"fmt"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/pickup"
	"parcelmybox/internal/pkg/errs"
)

// CreatePickupCommandHandler snapshots the chosen address into a new pickup
// request.
type CreatePickupCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreatePickupCommandHandler(uowFactory UoWFactory) CreatePickupCommandHandler {
	return CreatePickupCommandHandler{uowFactory: uowFactory}
}

func (h CreatePickupCommandHandler) Handle(ctx context.Context, cmd CreatePickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	a, err := getOwnedAddress(ctx, uow.AddressRepository(), cmd.Actor(), cmd.AddressID())
	if err != nil {
		return err
	}

	if id := cmd.ShipmentID(); id != nil {
		s, shipmentErr := uow.ShipmentRepository().Get(ctx, *id)
		if shipmentErr != nil {
			return shipmentErr
		}
		if !s.IsOwnedBy(cmd.Actor().ID()) {
			return errs.NewObjectNotFoundError("shipment", id.String())
		}
	}

	now := time.Now()
	p, err := pickup.NewPickupRequest(cmd.PickupID(), cmd.Actor().ID(), cmd.ShipmentID(), a.ContactName(), a.Phone(),
		a.Postal(), cmd.PickupDate(), cmd.Window(), cmd.PackageCount(), cmd.WeightGrams(), cmd.Instructions(), now)
	if err != nil {
		return err
	}

	if err = uow.PickupRepository().Add(ctx, p); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionPickupRequested, activity.EntityTypePickupRequest,
		p.ID(), fmt.Sprintf("Pickup requested for %s (%s) at %s", p.PickupDate().Format(time.DateOnly), p.Window(),
			p.Address().City()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdatePickupStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdatePickupStatusCommandHandler(uowFactory UoWFactory) UpdatePickupStatusCommandHandler {
	return UpdatePickupStatusCommandHandler{uowFactory: uowFactory}
}

func (h UpdatePickupStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePickupStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Status() != pickup.Cancelled {
		if err := requireStaff(cmd.Actor(), "update pickup status"); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PickupRepository()
	p, err := repo.Get(ctx, cmd.PickupID())
	if err != nil {
		return err
	}
	if !cmd.Actor().CanAccess(p.OwnerID()) {
		return errs.NewObjectNotFoundError("pickup request", cmd.PickupID().String())
	}

	now := time.Now()
	if err = p.ChangeStatus(cmd.Status(), now); err != nil {
		return err
	}

	if err = repo.Update(ctx, p); err != nil {
		return err
	}

	action := activity.ActionPickupStatus
	if p.Status() == pickup.Cancelled {
		action = activity.ActionPickupCancelled
	}
	if err = recordActivity(ctx, uow, cmd.Actor().ID(), action, activity.EntityTypePickupRequest, p.ID(),
		"Pickup request is now "+p.Status().String(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
