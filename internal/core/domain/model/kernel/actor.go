package kernel

import (
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("actor must be created via NewActor")

// Actor is the authenticated user on whose behalf a command or query runs.
type Actor struct {
	id    UUID
	staff bool
	guard guard.ConstructorGuard
}

func NewActor(id UUID, staff bool) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, staff: staff, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() UUID {
	return a.id
}

// IsStaff reports whether the actor has back-office privileges.
func (a Actor) IsStaff() bool {
	return a.staff
}

// CanAccess reports whether the actor may read a resource owned by owner.
func (a Actor) CanAccess(owner UUID) bool {
	return a.staff || a.id.IsEqual(owner)
}
