// Package supportrepo persists support tickets.
package supportrepo

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgdto"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/support"
	"parcelmybox/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SupportRequestDTO represents a row of the support_requests table.
type SupportRequestDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TicketNumber string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	OwnerID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	ShipmentID   *uuid.UUID     `gorm:"type:uuid"`
	Subject      string         `gorm:"type:varchar(200);not null"`
	Description  string         `gorm:"type:text;not null;default:''"`
	Category     string         `gorm:"type:varchar(16);not null"`
	Priority     string         `gorm:"type:varchar(16);not null"`
	Status       string         `gorm:"type:varchar(16);not null"`
	Tags         pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	AssigneeID   *uuid.UUID     `gorm:"type:uuid;index"`
	AssignedAt   *time.Time     `gorm:"type:timestamptz"`
	ResolvedAt   *time.Time     `gorm:"type:timestamptz"`
	CreatedAt    time.Time      `gorm:"type:timestamptz;not null"`
	UpdatedAt    time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (SupportRequestDTO) TableName() string {
	return "support_requests"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormSupportRepository implements ports.SupportRepository using GORM.
type GormSupportRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormSupportRepository(db *gorm.DB, tracker aggregateTracker) *GormSupportRepository {
	return &GormSupportRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormSupportRepository) Add(ctx context.Context, aggregate *support.SupportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := FromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("ticket number", aggregate.TicketNumber(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSupportRepository) Update(ctx context.Context, aggregate *support.SupportRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := FromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SupportRequestDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("support request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSupportRepository) Get(ctx context.Context, id kernel.UUID) (*support.SupportRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SupportRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("support request", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}

func (r *GormSupportRepository) LastAssigneeUsername(ctx context.Context) (string, error) {
	var usernames []string
	err := r.db.WithContext(ctx).
		Table("support_requests AS s").
		Joins("JOIN users u ON u.id = s.assignee_id").
		Where("s.assigned_at IS NOT NULL").
		Order("s.assigned_at DESC").
		Limit(1).
		Pluck("u.username", &usernames).Error
	if err != nil {
		return "", err
	}
	if len(usernames) == 0 {
		return "", nil
	}
	return usernames[0], nil
}

func FromDomain(r *support.SupportRequest) SupportRequestDTO {
	tags := r.Tags()
	if tags == nil {
		tags = []string{}
	}
	return SupportRequestDTO{
		ID:           r.ID().Bytes(),
		TicketNumber: r.TicketNumber(),
		OwnerID:      r.OwnerID().Bytes(),
		ShipmentID:   pgdto.IDPtr(r.ShipmentID()),
		Subject:      r.Subject(),
		Description:  r.Description(),
		Category:     r.Category().String(),
		Priority:     r.Priority().String(),
		Status:       r.Status().String(),
		Tags:         pq.StringArray(tags),
		AssigneeID:   pgdto.IDPtr(r.AssigneeID()),
		AssignedAt:   r.AssignedAt(),
		ResolvedAt:   r.ResolvedAt(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

func ToDomain(dto SupportRequestDTO) (*support.SupportRequest, error) {
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
	assigneeID, err := pgdto.OptionalID(dto.AssigneeID)
	if err != nil {
		return nil, err
	}
	category, err := support.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	priority, err := support.ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	status, err := support.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return support.RestoreSupportRequest(id, dto.TicketNumber, ownerID, shipmentID, dto.Subject,
		dto.Description, category, priority, []string(dto.Tags), status, assigneeID,
		pgdto.UTC(dto.AssignedAt), pgdto.UTC(dto.ResolvedAt), dto.CreatedAt, dto.UpdatedAt)
}
