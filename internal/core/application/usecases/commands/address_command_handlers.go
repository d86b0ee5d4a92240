package commands

import (
	"context"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/address"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/ports"
	"parcelmybox/internal/pkg/errs"
)

// CreateAddressCommandHandler adds an entry to the actor's address book. When
// the new entry is the default, the previous default loses the flag.
type CreateAddressCommandHandler struct {
	uowFactory UoWFactory
}

func NewCreateAddressCommandHandler(uowFactory UoWFactory) CreateAddressCommandHandler {
	return CreateAddressCommandHandler{uowFactory: uowFactory}
}

func (h CreateAddressCommandHandler) Handle(ctx context.Context, cmd SaveAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()
	a, err := address.NewShippingAddress(cmd.AddressID(), cmd.Actor().ID(), cmd.Label(), cmd.ContactName(),
		cmd.Phone(), cmd.Postal(), cmd.IsDefault(), now)
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

	repo := uow.AddressRepository()
	if a.IsDefault() {
		if err = clearOtherDefaults(ctx, repo, a, now); err != nil {
			return err
		}
	}

	if err = repo.Add(ctx, a); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionAddressCreated, activity.EntityTypeAddress,
		a.ID(), "Added address "+a.Label(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// UpdateAddressCommandHandler edits an entry. Only the owner may change it.
type UpdateAddressCommandHandler struct {
	uowFactory UoWFactory
}

func NewUpdateAddressCommandHandler(uowFactory UoWFactory) UpdateAddressCommandHandler {
	return UpdateAddressCommandHandler{uowFactory: uowFactory}
}

func (h UpdateAddressCommandHandler) Handle(ctx context.Context, cmd SaveAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AddressRepository()
	a, err := getOwnedAddress(ctx, repo, cmd.Actor(), cmd.AddressID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = a.Update(cmd.Label(), cmd.ContactName(), cmd.Phone(), cmd.Postal(), cmd.IsDefault(), now); err != nil {
		return err
	}

	if a.IsDefault() {
		if err = clearOtherDefaults(ctx, repo, a, now); err != nil {
			return err
		}
	}

	if err = repo.Update(ctx, a); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionAddressUpdated, activity.EntityTypeAddress,
		a.ID(), "Updated address "+a.Label(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

type DeleteAddressCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteAddressCommandHandler(uowFactory UoWFactory) DeleteAddressCommandHandler {
	return DeleteAddressCommandHandler{uowFactory: uowFactory}
}

func (h DeleteAddressCommandHandler) Handle(ctx context.Context, cmd DeleteAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AddressRepository()
	a, err := getOwnedAddress(ctx, repo, cmd.Actor(), cmd.AddressID())
	if err != nil {
		return err
	}

	if err = repo.Delete(ctx, a.ID()); err != nil {
		return err
	}

	if err = recordActivity(ctx, uow, cmd.Actor().ID(), activity.ActionAddressDeleted, activity.EntityTypeAddress,
		a.ID(), "Deleted address "+a.Label(), time.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// getOwnedAddress loads an entry the actor owns. Entries of other users are
// reported as missing.
func getOwnedAddress(
	ctx context.Context,
	repo ports.AddressRepository,
	actor kernel.Actor,
	id kernel.UUID,
) (*address.ShippingAddress, error) {
	a, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOwnedBy(actor.ID()) {
		return nil, errs.NewObjectNotFoundError("address", id.String())
	}
	return a, nil
}

func clearOtherDefaults(
	ctx context.Context,
	repo ports.AddressRepository,
	current *address.ShippingAddress,
	now time.Time,
) error {
	entries, err := repo.ListByOwner(ctx, current.OwnerID())
	if err != nil {
		return err
	}
	for _, other := range entries {
		if other.ID().IsEqual(current.ID()) || !other.IsDefault() {
			continue
		}
		other.ClearDefault(now)
		if err = repo.Update(ctx, other); err != nil {
			return err
		}
	}
	return nil
}
