package addressrepo

import (
	"context"
	"errors"

	"parcelmybox/internal/core/domain/model/address"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAddressRepository implements ports.AddressRepository using GORM.
type GormAddressRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAddressRepository(db *gorm.DB, tracker aggregateTracker) *GormAddressRepository {
	return &GormAddressRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAddressRepository) Add(ctx context.Context, aggregate *address.ShippingAddress) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("default address", aggregate.OwnerID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAddressRepository) Update(ctx context.Context, aggregate *address.ShippingAddress) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&AddressDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("default address", aggregate.OwnerID().String(), result.Error)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("address", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormAddressRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AddressDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("address", id.String())
	}
	return nil
}

func (r *GormAddressRepository) Get(ctx context.Context, id kernel.UUID) (*address.ShippingAddress, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AddressDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOwner returns the owner's entries, default first, then by label.
func (r *GormAddressRepository) ListByOwner(ctx context.Context, ownerID kernel.UUID) ([]*address.ShippingAddress, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []AddressDTO
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.Bytes()).
		Order("is_default DESC, label").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	list := make([]*address.ShippingAddress, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, nil
}
