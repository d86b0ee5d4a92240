package commands

import (
	"context"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

func requireStaff(actor kernel.Actor, action string) error {
	if !actor.IsStaff() {
		return errs.NewAccessDeniedError(action)
	}
	return nil
}

// recordActivity appends to the history inside the caller's transaction.
func recordActivity(
	ctx context.Context,
	uow ActivityRepoFactory,
	userID kernel.UUID,
	action, entityType string,
	entityID kernel.UUID,
	description string,
	now time.Time,
) error {
	entry, err := activity.NewEntry(kernel.NewUUID(), userID, action, entityType, entityID, description, now)
	if err != nil {
		return err
	}
	return uow.ActivityRepository().Add(ctx, entry)
}
