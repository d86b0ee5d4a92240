package commands

import (
	"errors"
	"strings"

	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrAuthenticateUserCommandIsNotConstructed = errors.New(
	"AuthenticateUserCommand must be created via NewAuthenticateUserCommand constructor",
)

// AuthenticateUserCommand checks a login (email or username) and password.
type AuthenticateUserCommand struct { //nolint:recvcheck //using for validation
	login    string
	password string

	guard guard.ConstructorGuard
}

func NewAuthenticateUserCommand(login, password string) (AuthenticateUserCommand, error) {
	c := AuthenticateUserCommand{
		login:    strings.TrimSpace(login),
		password: password,
		guard:    guard.NewConstructorGuard(),
	}

	var loginErr, passwordErr error
	if c.login == "" {
		loginErr = errs.NewValueIsRequiredError("login")
	}
	if c.password == "" {
		passwordErr = errs.NewValueIsRequiredError("password")
	}
	if err := errors.Join(loginErr, passwordErr); err != nil {
		return AuthenticateUserCommand{}, err
	}

	return c, nil
}

func (c AuthenticateUserCommand) Validate() error {
	return c.guard.Validate(ErrAuthenticateUserCommandIsNotConstructed)
}

func (c AuthenticateUserCommand) Login() string    { return c.login }
func (c AuthenticateUserCommand) Password() string { return c.password }
