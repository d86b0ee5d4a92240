// Package pickuprepo persists courier pickup requests.
package pickuprepo

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgdto"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/pickup"
	"parcelmybox/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PickupDTO represents a row of the pickup_requests table. The address is a
// snapshot taken when the pickup was requested.
type PickupDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShipmentID       *uuid.UUID      `gorm:"type:uuid"`
	ContactName      string          `gorm:"type:varchar(255);not null"`
	Phone            string          `gorm:"type:varchar(64);not null;default:''"`
	Address          pgdto.PostalDTO `gorm:"embedded"`
	PickupDate       time.Time       `gorm:"type:date;not null"`
	TimeWindow       string          `gorm:"type:varchar(16);not null"`
	PackageCount     int             `gorm:"not null"`
	TotalWeightGrams int             `gorm:"not null"`
	Instructions     string          `gorm:"type:text;not null;default:''"`
	Status           string          `gorm:"type:varchar(16);not null"`
	CreatedAt        time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt        time.Time       `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (PickupDTO) TableName() string {
	return "pickup_requests"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormPickupRepository implements ports.PickupRepository using GORM.
type GormPickupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormPickupRepository(db *gorm.DB, tracker aggregateTracker) *GormPickupRepository {
	return &GormPickupRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPickupRepository) Add(ctx context.Context, aggregate *pickup.PickupRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPickupRepository) Update(ctx context.Context, aggregate *pickup.PickupRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PickupDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pickup request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPickupRepository) Get(ctx context.Context, id kernel.UUID) (*pickup.PickupRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickupDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pickup request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func fromDomain(p *pickup.PickupRequest) PickupDTO {
	return PickupDTO{
		ID:               p.ID().Bytes(),
		OwnerID:          p.OwnerID().Bytes(),
		ShipmentID:       pgdto.IDPtr(p.ShipmentID()),
		ContactName:      p.ContactName(),
		Phone:            p.Phone(),
		Address:          pgdto.PostalFromDomain(p.Address()),
		PickupDate:       p.PickupDate(),
		TimeWindow:       p.Window().String(),
		PackageCount:     p.PackageCount(),
		TotalWeightGrams: p.TotalWeightGrams(),
		Instructions:     p.Instructions(),
		Status:           p.Status().String(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

// ToDomain is exported for the read side, which selects the same columns.
func ToDomain(dto PickupDTO) (*pickup.PickupRequest, error) {
	return toDomain(dto)
}

func toDomain(dto PickupDTO) (*pickup.PickupRequest, error) {
	id, err := pgdto.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := pgdto.ID(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	shipmentID, err := pgdto.OptionalID(dto.ShipmentID)
	if err != nil {
		return nil, err
	}
	addr, err := dto.Address.ToDomain()
	if err != nil {
		return nil, err
	}
	window, err := pickup.ParseTimeWindow(dto.TimeWindow)
	if err != nil {
		return nil, err
	}
	status, err := pickup.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return pickup.RestorePickupRequest(id, ownerID, shipmentID, dto.ContactName, dto.Phone, addr,
		dto.PickupDate, window, dto.PackageCount, dto.TotalWeightGrams, dto.Instructions, status,
		dto.CreatedAt, dto.UpdatedAt)
}
