// Package activityrepo appends to the per-user activity history.
package activityrepo

import (
	"context"
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgdto"
	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"type:varchar(64);not null"`
	EntityType  string    `gorm:"type:varchar(32);not null"`
	EntityID    uuid.UUID `gorm:"type:uuid;not null"`
	Description string    `gorm:"type:varchar(500);not null;default:''"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null"`
}

func (EntryDTO) TableName() string {
	return "activity_entries"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormActivityRepository implements ports.ActivityRepository. Entries are
// never updated or deleted.
type GormActivityRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormActivityRepository(db *gorm.DB, tracker aggregateTracker) *GormActivityRepository {
	return &GormActivityRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormActivityRepository) Add(ctx context.Context, entry *activity.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := EntryDTO{
		ID:          entry.ID().Bytes(),
		UserID:      entry.UserID().Bytes(),
		Action:      entry.Action(),
		EntityType:  entry.EntityType(),
		EntityID:    entry.EntityID().Bytes(),
		Description: entry.Description(),
		CreatedAt:   entry.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(entry.ID(), entry)
	return nil
}

func ToDomain(dto EntryDTO) (*activity.Entry, error) {
	id, err := pgdto.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	userID, err := pgdto.ID(dto.UserID)
	if err != nil {
		return nil, err
	}
	entityID, err := pgdto.ID(dto.EntityID)
	if err != nil {
		return nil, err
	}
	return activity.RestoreEntry(id, userID, dto.Action, dto.EntityType, entityID, dto.Description, dto.CreatedAt)
}
