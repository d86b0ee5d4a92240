package commands

import (
	"errors"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/guard"
)

var ErrDeactivateUserCommandIsNotConstructed = errors.New(
	"DeactivateUserCommand must be created via NewDeactivateUserCommand constructor",
)

// DeactivateUserCommand blocks an account from logging in. Staff only.
type DeactivateUserCommand struct { //nolint:recvcheck //using for validation
	actor  kernel.Actor
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeactivateUserCommand(actor kernel.Actor, userID kernel.UUID) (DeactivateUserCommand, error) {
	if err := errors.Join(actor.Validate(), userID.Validate()); err != nil {
		return DeactivateUserCommand{}, err
	}
	return DeactivateUserCommand{actor: actor, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeactivateUserCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateUserCommandIsNotConstructed)
}

func (c DeactivateUserCommand) Actor() kernel.Actor { return c.actor }
func (c DeactivateUserCommand) UserID() kernel.UUID { return c.userID }
