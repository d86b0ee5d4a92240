package commands

import (
	"context"
	"fmt"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/support"
	"parcelmybox/internal/core/domain/services"
	"parcelmybox/internal/pkg/errs"
)

// CreateSupportRequestCommandHandler opens a ticket and assigns it round-robin
// to the staff in the same transaction. With no active staff the ticket stays
// unassigned.
type CreateSupportRequestCommandHandler struct {
	uowFactory UoWFactory
	assigner   services.TicketAssigner
}

func NewCreateSupportRequestCommandHandler(uowFactory UoWFactory, assigner services.TicketAssigner) CreateSupportRequestCommandHandler {
	return CreateSupportRequestCommandHandler{uowFactory: uowFactory, assigner: assigner}
}

func (h CreateSupportRequestCommandHandler) Handle(ctx context.Context, cmd CreateSupportRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	r, err := support.NewSupportRequest(cmd.RequestID(), support.NewTicketNumber(now), cmd.Actor().ID(),
		cmd.ShipmentID(), cmd.Subject(), cmd.Description(), cmd.Category(), cmd.Priority(), cmd.Tags(), now)
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

	if id := cmd.ShipmentID(); id != nil {
		s, shipmentErr := uow.ShipmentRepository().Get(ctx, *id)
		if shipmentErr != nil {
			return shipmentErr
		}
		if !cmd.Actor().CanAccess(s.OwnerID()) {
			return errs.NewObjectNotFoundError("shipment", id.String())
		}
	}

	supportRepo := uow.SupportRepository()

	staff, err := uow.UserRepository().GetActiveStaff(ctx)
	if err != nil {
		return err
	}
	last, err := supportRepo.LastAssigneeUsername(ctx)
	if err != nil {
		return err
	}
	if assignee := h.assigner.Next(staff, last); assignee != nil {
		if err = r.AssignTo(assignee.ID(), now); err != nil {
			return err
		}
	}

	if err = supportRepo.Add(ctx, r); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionSupportOpened, activity.EntityTypeSupportRequest,
		r.ID(), fmt.Sprintf("Opened ticket %s: %s", r.TicketNumber(), r.Subject()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type UpdateSupportStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateSupportStatusCommandHandler(uowFactory UoWFactory) UpdateSupportStatusCommandHandler {
	return UpdateSupportStatusCommandHandler{uowFactory: uowFactory}
}

func (h UpdateSupportStatusCommandHandler) Handle(ctx context.Context, cmd UpdateSupportStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor(), "update support request status"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SupportRepository()
	r, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = r.ChangeStatus(cmd.Status(), now); err != nil {
		return err
	}

	if err = repo.Update(ctx, r); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionSupportStatus, activity.EntityTypeSupportRequest,
		r.ID(), fmt.Sprintf("Ticket %s is now %s", r.TicketNumber(), r.Status()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// AssignSupportRequestCommandHandler reassigns a ticket to an active staff member.
type AssignSupportRequestCommandHandler struct {
	uowFactory UoWFactory
}

func NewAssignSupportRequestCommandHandler(uowFactory UoWFactory) AssignSupportRequestCommandHandler {
	return AssignSupportRequestCommandHandler{uowFactory: uowFactory}
}

func (h AssignSupportRequestCommandHandler) Handle(ctx context.Context, cmd AssignSupportRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor(), "assign support request"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignee, err := uow.UserRepository().Get(ctx, cmd.AssigneeID())
	if err != nil {
		return err
	}
	if !assignee.IsStaff() || !assignee.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("assignee",
			fmt.Errorf("%s is not an active staff member", assignee.Username()))
	}

	repo := uow.SupportRepository()
	r, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = r.AssignTo(assignee.ID(), now); err != nil {
		return err
	}

	if err = repo.Update(ctx, r); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionSupportAssigned, activity.EntityTypeSupportRequest,
		r.ID(), fmt.Sprintf("Ticket %s assigned to %s", r.TicketNumber(), assignee.Username()), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
