package commands

import (
	"context"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/user"
)

// RegisterUserCommandHandler hashes the password and stores the account.
// Duplicate email or username surfaces as errs.ObjectAlreadyExistsError from the repository.
type RegisterUserCommandHandler struct {
	uowFactory UoWFactory
	hasher     PasswordHasher
}

func NewRegisterUserCommandHandler(uowFactory UoWFactory, hasher PasswordHasher) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return err
	}

	now := time.Now()
	u, err := user.NewUser(cmd.UserID(), cmd.Email(), cmd.Username(), cmd.FullName(), cmd.Phone(), hash, cmd.Role(), now)
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

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, u.ID(), activity.ActionUserRegistered, activity.EntityTypeUser, u.ID(),
		"Registered as "+u.Role().String(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
