package billingrepo

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements ports.InvoiceRepository using GORM.
// Lines are written once with the invoice; later updates only touch the header.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *billing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := invoiceFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewObjectAlreadyExistsErrorWithCause("invoice", aggregate.Number(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *billing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := invoiceFromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&InvoiceDTO{}).Where("id = ?", dto.ID).
		Omit(clause.Associations).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", orderByPosition).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, err
	}

	return invoiceToDomain(dto)
}

func (r *GormInvoiceRepository) ListPendingDueBefore(ctx context.Context, day time.Time) ([]*billing.Invoice, error) {
	var dtos []InvoiceDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", orderByPosition).
		Where("status = ? AND due_date < ?", billing.Pending.String(), kernel.DateOf(day)).
		Order("due_date, number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	invoices := make([]*billing.Invoice, 0, len(dtos))
	for _, dto := range dtos {
		inv, convErr := invoiceToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
