package commands

import (
	"errors"
	"fmt"
	"strings"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/user"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates a new account. The public sign-up endpoint always
// registers customers; the management CLI may create staff and admins.
//
// Example:
//
//	cmd, err := NewRegisterUserCommand(kernel.NewUUID(), "jane@example.com", "jane",
//	    "s3cretpass", "Jane Doe", "+1 555 0100", user.Customer)
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	userID   kernel.UUID
	email    string
	username string
	password string
	fullName string
	phone    string
	role     user.Role

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(
	userID kernel.UUID,
	email, username, password, fullName, phone string,
	role user.Role,
) (RegisterUserCommand, error) {
	c := RegisterUserCommand{
		email:    strings.TrimSpace(email),
		username: strings.TrimSpace(username),
		fullName: fullName,
		phone:    phone,
		guard:    guard.NewConstructorGuard(),
	}

	var emailErr, usernameErr error
	if c.email == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if c.username == "" {
		usernameErr = errs.NewValueIsRequiredError("username")
	}

	if err := errors.Join(
		c.setUserID(userID),
		emailErr,
		usernameErr,
		c.setPassword(password),
		c.setRole(role),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return c, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID { return c.userID }
func (c RegisterUserCommand) Email() string       { return c.email }
func (c RegisterUserCommand) Username() string    { return c.username }
func (c RegisterUserCommand) Password() string    { return c.password }
func (c RegisterUserCommand) FullName() string    { return c.fullName }
func (c RegisterUserCommand) Phone() string       { return c.phone }
func (c RegisterUserCommand) Role() user.Role     { return c.role }

func (c *RegisterUserCommand) setUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.userID = id
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if len([]rune(password)) < user.PasswordMinLength {
		return errs.NewValueIsInvalidErrorWithCause("password",
			fmt.Errorf("must be at least %d characters", user.PasswordMinLength))
	}
	c.password = password
	return nil
}

func (c *RegisterUserCommand) setRole(role user.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	c.role = role
	return nil
}
