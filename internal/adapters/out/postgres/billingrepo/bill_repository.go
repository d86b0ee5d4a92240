package billingrepo

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormBillRepository implements ports.BillRepository using GORM.
type GormBillRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormBillRepository(db *gorm.DB, tracker aggregateTracker) *GormBillRepository {
	return &GormBillRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormBillRepository) Add(ctx context.Context, aggregate *billing.Bill) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := billFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("bill", aggregate.Number(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBillRepository) Update(ctx context.Context, aggregate *billing.Bill) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := billFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BillDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bill", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBillRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Bill, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BillDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bill", id.String())
		}
		return nil, err
	}

	return billToDomain(dto)
}

func (r *GormBillRepository) ListOpenByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*billing.Bill, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BillDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ? AND status IN ?", shipmentID.Bytes(),
			[]string{billing.Pending.String(), billing.Overdue.String()}).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return billsToDomain(dtos)
}

func (r *GormBillRepository) ListPendingDueBefore(ctx context.Context, day time.Time) ([]*billing.Bill, error) {
	var dtos []BillDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", billing.Pending.String(), kernel.DateOf(day)).
		Order("due_date, number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return billsToDomain(dtos)
}

func billsToDomain(dtos []BillDTO) ([]*billing.Bill, error) {
	bills := make([]*billing.Bill, 0, len(dtos))
	for _, dto := range dtos {
		b, err := billToDomain(dto)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, nil
}
