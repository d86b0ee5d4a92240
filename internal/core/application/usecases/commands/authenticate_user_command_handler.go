package commands

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/user"
	"parcelmybox/internal/pkg/errs"
)

// ErrInvalidCredentials hides whether the login or the password was wrong.
var ErrInvalidCredentials = errs.NewAccessDeniedError("invalid credentials")

// AuthenticateUserCommandHandler verifies credentials and stamps the login time.
// It returns the authenticated user so the caller can issue tokens.
type AuthenticateUserCommandHandler struct {
	uowFactory UoWFactory
	hasher     PasswordHasher
}

func NewAuthenticateUserCommandHandler(uowFactory UoWFactory, hasher PasswordHasher) AuthenticateUserCommandHandler {
	return AuthenticateUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
	}
}

func (h AuthenticateUserCommandHandler) Handle(ctx context.Context, cmd AuthenticateUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.UserRepository()
	u, err := repo.GetByLogin(ctx, cmd.Login())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err = h.hasher.Compare(u.PasswordHash(), cmd.Password()); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err = u.RecordLogin(time.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}
