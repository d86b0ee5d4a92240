package commands

import (
	"context"
	"time"
)

type DeactivateUserCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeactivateUserCommandHandler(uowFactory UoWFactory) DeactivateUserCommandHandler {
	return DeactivateUserCommandHandler{uowFactory: uowFactory}
}

func (h DeactivateUserCommandHandler) Handle(ctx context.Context, cmd DeactivateUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := requireStaff(cmd.Actor(), "deactivate user"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.Get(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	u.Deactivate(time.Now())

	if err = repo.Update(ctx, u); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
