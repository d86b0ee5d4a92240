package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

const (
	UsernameMinLength = 3
	UsernameMaxLength = 150
	PasswordMinLength = 8
)

// User is an account of the portal: a customer booking shipments or a staff
// member working the back office.
//
// Invariants:
//   - email is lower-cased and contains "@"
//   - username is 3..150 characters without spaces
//   - password hash is never empty
type User struct {
	id           kernel.UUID
	email        string
	username     string
	fullName     string
	phone        string
	passwordHash string
	role         Role
	active       bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewUser registers a new active account.
func NewUser(
	id kernel.UUID,
	email, username, fullName, phone, passwordHash string,
	role Role,
	now time.Time,
) (*User, error) {
	u := &User{
		fullName:      strings.TrimSpace(fullName),
		phone:         strings.TrimSpace(phone),
		active:        true,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		u.setID(id),
		u.setEmail(email),
		u.setUsername(username),
		u.setPasswordHash(passwordHash),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a user from persistence.
func RestoreUser(
	id kernel.UUID,
	email, username, fullName, phone, passwordHash string,
	role Role,
	active bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) (*User, error) {
	u, err := NewUser(id, email, username, fullName, phone, passwordHash, role, createdAt)
	if err != nil {
		return nil, err
	}
	u.active = active
	u.lastLoginAt = lastLoginAt
	u.updatedAt = updatedAt.UTC()
	return u, nil
}

func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

func (u *User) ID() kernel.UUID          { return u.id }
func (u *User) Email() string            { return u.email }
func (u *User) Username() string         { return u.username }
func (u *User) FullName() string         { return u.fullName }
func (u *User) Phone() string            { return u.phone }
func (u *User) PasswordHash() string     { return u.passwordHash }
func (u *User) Role() Role               { return u.role }
func (u *User) IsActive() bool           { return u.active }
func (u *User) LastLoginAt() *time.Time  { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time     { return u.createdAt }
func (u *User) UpdatedAt() time.Time     { return u.updatedAt }
func (u *User) IsStaff() bool            { return u.role.IsStaff() }
func (u *User) IsEqual(other *User) bool { return other != nil && u.id.IsEqual(other.id) }

// Actor returns the identity commands and queries run under.
func (u *User) Actor() (kernel.Actor, error) {
	return kernel.NewActor(u.id, u.IsStaff())
}

// RecordLogin stamps a successful authentication. Inactive accounts cannot log in.
func (u *User) RecordLogin(now time.Time) error {
	if !u.active {
		return errs.NewAccessDeniedError("login to inactive account")
	}
	at := now.UTC()
	u.lastLoginAt = &at
	u.updatedAt = at
	return nil
}

func (u *User) UpdateProfile(fullName, phone string, now time.Time) {
	u.fullName = strings.TrimSpace(fullName)
	u.phone = strings.TrimSpace(phone)
	u.updatedAt = now.UTC()
}

func (u *User) Deactivate(now time.Time) {
	u.active = false
	u.updatedAt = now.UTC()
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.ContainsAny(email, " \t") {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q is not an e-mail address", email))
	}
	u.email = email
	return nil
}

func (u *User) setUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if n := len([]rune(username)); n < UsernameMinLength || n > UsernameMaxLength {
		return errs.NewValueIsOutOfRangeError("username length", n, UsernameMinLength, UsernameMaxLength)
	}
	if strings.ContainsAny(username, " \t\n@") {
		return errs.NewValueIsInvalidErrorWithCause("username", errors.New("must not contain spaces or @"))
	}
	u.username = username
	return nil
}

func (u *User) setPasswordHash(hash string) error {
	if hash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = hash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
