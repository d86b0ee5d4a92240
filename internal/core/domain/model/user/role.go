package user

import (
	"fmt"
	"strings"

	"parcelmybox/internal/pkg/errs"
)

// Role decides what a user may see and do. Staff and admins work the back office.
type Role int

const (
	UnknownRole Role = iota
	Customer
	Staff
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Customer:    "customer",
		Staff:       "staff",
		Admin:       "admin",
	}
}

// ParseRole converts the API representation of a role.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r, str := range getRoleStrings() {
		if r != UnknownRole && str == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r != Customer && r != Staff && r != Admin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// IsStaff is true for staff and admin.
func (r Role) IsStaff() bool {
	return r == Staff || r == Admin
}
