package queries

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/pickup"
	"parcelmybox/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetPickupQueryIsNotConstructed   = errors.New("GetPickupQuery must be created via NewGetPickupQuery constructor")
	ErrListPickupsQueryIsNotConstructed = errors.New("ListPickupsQuery must be created via NewListPickupsQuery constructor")
)

type PickupView struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"owner_id"`
	ShipmentID       *string    `json:"shipment_id"`
	ContactName      string     `json:"contact_name"`
	Phone            string     `json:"phone"`
	Address          PostalView `json:"address"`
	PickupDate       string     `json:"pickup_date"`
	TimeWindow       string     `json:"time_window"`
	PackageCount     int        `json:"package_count"`
	TotalWeightGrams int        `json:"total_weight_grams"`
	Instructions     string     `json:"instructions"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type pickupRow struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	ShipmentID       *uuid.UUID
	ContactName      string
	Phone            string
	Postal           postalRow `gorm:"embedded"`
	PickupDate       time.Time
	TimeWindow       string
	PackageCount     int
	TotalWeightGrams int
	Instructions     string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r pickupRow) view() PickupView {
	return PickupView{
		ID:               r.ID.String(),
		OwnerID:          r.OwnerID.String(),
		ShipmentID:       optionalID(r.ShipmentID),
		ContactName:      r.ContactName,
		Phone:            r.Phone,
		Address:          r.Postal.view(),
		PickupDate:       r.PickupDate.Format(dateLayout),
		TimeWindow:       r.TimeWindow,
		PackageCount:     r.PackageCount,
		TotalWeightGrams: r.TotalWeightGrams,
		Instructions:     r.Instructions,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

func selectPickups() sq.SelectBuilder {
	cols := []string{"id", "owner_id", "shipment_id", "contact_name", "phone"}
	cols = append(cols, postalColumns("")...)
	cols = append(cols, "pickup_date", "time_window", "package_count", "total_weight_grams", "instructions",
		"status", "created_at", "updated_at")
	return sq.Select(cols...).From("pickup_requests")
}

type GetPickupQuery struct {
	actor    kernel.Actor
	pickupID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetPickupQuery(actor kernel.Actor, pickupID kernel.UUID) (GetPickupQuery, error) {
	if err := errors.Join(actor.Validate(), pickupID.Validate()); err != nil {
		return GetPickupQuery{}, err
	}
	return GetPickupQuery{actor: actor, pickupID: pickupID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPickupQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupQueryIsNotConstructed)
}

type GetPickupQueryHandler struct {
	db *gorm.DB
}

func NewGetPickupQueryHandler(db *gorm.DB) GetPickupQueryHandler {
	return GetPickupQueryHandler{db: db}
}

func (h GetPickupQueryHandler) Handle(ctx context.Context, query GetPickupQuery) (PickupView, error) {
	if err := query.Validate(); err != nil {
		return PickupView{}, err
	}

	var row pickupRow
	b := scopeToActor(selectPickups().Where(sq.Eq{"id": query.pickupID.Bytes()}), "owner_id", query.actor)
	if err := scanOne(ctx, h.db, b, &row, "pickup request", query.pickupID); err != nil {
		return PickupView{}, err
	}
	return row.view(), nil
}

// ListPickupsQuery lists pickup requests by pickup date, latest first.
type ListPickupsQuery struct {
	actor  kernel.Actor
	status pickup.Status
	page   Page
	guard  guard.ConstructorGuard
}

func NewListPickupsQuery(actor kernel.Actor, status pickup.Status, page Page) (ListPickupsQuery, error) {
	var statusErr error
	if status != pickup.UnknownStatus {
		statusErr = status.Validate()
	}
	if err := errors.Join(actor.Validate(), page.Validate(), statusErr); err != nil {
		return ListPickupsQuery{}, err
	}
	return ListPickupsQuery{actor: actor, status: status, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListPickupsQuery) Validate() error {
	return q.guard.Validate(ErrListPickupsQueryIsNotConstructed)
}

type ListPickupsQueryHandler struct {
	db *gorm.DB
}

func NewListPickupsQueryHandler(db *gorm.DB) ListPickupsQueryHandler {
	return ListPickupsQueryHandler{db: db}
}

func (h ListPickupsQueryHandler) Handle(ctx context.Context, query ListPickupsQuery) ([]PickupView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := scopeToActor(selectPickups(), "owner_id", query.actor).OrderBy("pickup_date DESC", "created_at DESC")
	if query.status != pickup.UnknownStatus {
		b = b.Where(sq.Eq{"status": query.status.String()})
	}

	var rows []pickupRow
	if err := scan(ctx, h.db, query.page.apply(b), &rows); err != nil {
		return nil, err
	}

	pickups := make([]PickupView, 0, len(rows))
	for _, r := range rows {
		pickups = append(pickups, r.view())
	}
	return pickups, nil
}
