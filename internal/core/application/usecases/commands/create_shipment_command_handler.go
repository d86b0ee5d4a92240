package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/quote"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/services"
	"parcelmybox/internal/core/ports"
	"parcelmybox/internal/pkg/errs"
)

// MaxTrackingNumberAttempts bounds the retries on tracking number collisions.
const MaxTrackingNumberAttempts = 5

var ErrTrackingNumberExhausted = errors.New("could not allocate a unique tracking number")

// CreateShipmentCommandHandler books a shipment.
//
// In one transaction it:
//   - prices the parcel with the quote calculator
//   - stores the shipment in pending status, drawing a new tracking number
//     when the stored one collides
//   - raises a pending bill for the shipping cost, due billDueDays later
//   - records the booking in the activity history
type CreateShipmentCommandHandler struct {
	uowFactory  UoWFactory
	calculator  services.QuoteCalculator
	billDueDays int
}

func NewCreateShipmentCommandHandler(
	uowFactory UoWFactory,
	calculator services.QuoteCalculator,
	billDueDays int,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:  uowFactory,
		calculator:  calculator,
		billDueDays: billDueDays,
	}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	origin, err := quote.EndpointOf(cmd.Sender().Postal())
	if err != nil {
		return err
	}
	destination, err := quote.EndpointOf(cmd.Recipient().Postal())
	if err != nil {
		return err
	}
	q, err := h.calculator.Calculate(origin, destination, cmd.Parcel(), cmd.ServiceLevel(), cmd.DeclaredValue())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now()
	s, err := shipment.NewShipment(
		cmd.ShipmentID(),
		shipment.NewTrackingNumber(),
		cmd.Actor().ID(),
		cmd.Sender(),
		cmd.Recipient(),
		cmd.Parcel(),
		cmd.ServiceLevel(),
		cmd.DeclaredValue(),
		q.Total,
		cmd.Description(),
		q.EstimatedDelivery(now),
		now,
	)
	if err != nil {
		return err
	}

	if err = addWithUniqueTrackingNumber(ctx, uow.ShipmentRepository(), s); err != nil {
		return err
	}

	shipmentID := s.ID()
	bill, err := billing.NewBill(
		cmd.BillID(),
		billing.NewBillNumber(now),
		s.OwnerID(),
		&shipmentID,
		"Shipping "+s.TrackingNumber(),
		s.Cost(),
		now.AddDate(0, 0, h.billDueDays),
		now,
	)
	if err != nil {
		return err
	}

	if err = uow.BillRepository().Add(ctx, bill); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionShipmentCreated, activity.EntityTypeShipment,
		s.ID(), fmt.Sprintf("Booked %s shipment %s for %s %s", s.ServiceLevel(), s.TrackingNumber(),
			s.Cost(), s.Cost().Currency()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// addWithUniqueTrackingNumber inserts s, renumbering it when the tracking
// number is already taken. The repository keeps the transaction usable after a
// rejected insert.
func addWithUniqueTrackingNumber(ctx context.Context, repo ports.ShipmentRepository, s *shipment.Shipment) error {
	for range MaxTrackingNumberAttempts {
		err := repo.Add(ctx, s)
		if !errors.Is(err, errs.ErrObjectAlreadyExists) {
			return err
		}
		if err = s.RegenerateTrackingNumber(); err != nil {
			return err
		}
	}
	return ErrTrackingNumberExhausted
}
