package commands

import (
	"context"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/ports"
	"parcelmybox/internal/pkg/errs"
)

// UpdateShipmentStatusCommandHandler moves a shipment along its lifecycle and
// drops the cached public tracking view after commit.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.TrackingCache
}

// NewUpdateShipmentStatusCommandHandler accepts a nil cache when tracking
// lookups are not cached.
func NewUpdateShipmentStatusCommandHandler(uowFactory UoWFactory, cache ports.TrackingCache) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{uowFactory: uowFactory, cache: cache}
}

func (h UpdateShipmentStatusCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor(), "update shipment status"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	now := time.Now()
	previous := s.Status()
	if err = s.UpdateStatus(cmd.Status(), cmd.Location(), cmd.Note(), now); err != nil {
		return err
	}

	if err = repo.Update(ctx, s); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionShipmentStatus, activity.EntityTypeShipment,
		s.ID(), s.TrackingNumber()+": "+previous.String()+" -> "+s.Status().String(), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	invalidateTracking(ctx, h.cache, s.TrackingNumber())
	return nil
}

// CancelShipmentCommandHandler cancels a pending shipment together with the
// open bill raised for it.
type CancelShipmentCommandHandler struct {
	uowFactory UoWFactory
	cache      ports.TrackingCache
}

func NewCancelShipmentCommandHandler(uowFactory UoWFactory, cache ports.TrackingCache) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{uowFactory: uowFactory, cache: cache}
}

func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
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

	repo := uow.ShipmentRepository()
	s, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	if !cmd.Actor().CanAccess(s.OwnerID()) {
		return errs.NewObjectNotFoundError("shipment", cmd.ShipmentID().String())
	}

	now := time.Now()
	if err = s.Cancel(cmd.Reason(), now); err != nil {
		return err
	}

	if err = repo.Update(ctx, s); err != nil {
		return err
	}

	bills := uow.BillRepository()
	open, err := bills.ListOpenByShipment(ctx, s.ID())
	if err != nil {
		return err
	}
	for _, b := range open {
		if err = b.Cancel(now); err != nil {
			return err
		}
		if err = bills.Update(ctx, b); err != nil {
			return err
		}
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionShipmentCancelled, activity.EntityTypeShipment,
		s.ID(), "Cancelled shipment "+s.TrackingNumber(), now); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	invalidateTracking(ctx, h.cache, s.TrackingNumber())
	return nil
}

// invalidateTracking is best effort: a stale entry expires with the cache TTL.
func invalidateTracking(ctx context.Context, cache ports.TrackingCache, trackingNumber string) {
	if cache == nil {
		return
	}
	_ = cache.Invalidate(ctx, trackingNumber)
}
