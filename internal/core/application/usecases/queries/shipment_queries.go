package queries

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetShipmentQueryIsNotConstructed   = errors.New("GetShipmentQuery must be created via NewGetShipmentQuery constructor")
	ErrListShipmentsQueryIsNotConstructed = errors.New(
		"ListShipmentsQuery must be created via NewListShipmentsQuery constructor",
	)
)

type PartyView struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Address PostalView `json:"address"`
}

type ParcelView struct {
	WeightGrams int `json:"weight_grams"`
	LengthCm    int `json:"length_cm"`
	WidthCm     int `json:"width_cm"`
	HeightCm    int `json:"height_cm"`
}

type TrackingEventView struct {
	Status     string    `json:"status"`
	Location   string    `json:"location"`
	Note       string    `json:"note"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ShipmentView is the owner/staff projection of a shipment. Events are only
// filled in by GetShipmentQuery.
type ShipmentView struct {
	ID                string              `json:"id"`
	TrackingNumber    string              `json:"tracking_number"`
	OwnerID           string              `json:"owner_id"`
	Sender            PartyView           `json:"sender"`
	Recipient         PartyView           `json:"recipient"`
	Parcel            ParcelView          `json:"parcel"`
	ServiceLevel      string              `json:"service_level"`
	DeclaredValue     MoneyView           `json:"declared_value"`
	Cost              MoneyView           `json:"cost"`
	Description       string              `json:"description"`
	Status            string              `json:"status"`
	EstimatedDelivery string              `json:"estimated_delivery"`
	Events            []TrackingEventView `json:"events,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

type partyRow struct {
	Name   string
	Phone  string
	Postal postalRow `gorm:"embedded"`
}

func (r partyRow) view() PartyView {
	return PartyView{Name: r.Name, Phone: r.Phone, Address: r.Postal.view()}
}

type shipmentRow struct {
	ID                uuid.UUID
	TrackingNumber    string
	OwnerID           uuid.UUID
	Sender            partyRow `gorm:"embedded;embeddedPrefix:sender_"`
	Recipient         partyRow `gorm:"embedded;embeddedPrefix:recipient_"`
	WeightGrams       int
	LengthCm          int
	WidthCm           int
	HeightCm          int
	ServiceLevel      string
	DeclaredValue     int64
	Cost              int64
	Currency          string
	Description       string
	Status            string
	EstimatedDelivery time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r shipmentRow) view() ShipmentView {
	return ShipmentView{
		ID:             r.ID.String(),
		TrackingNumber: r.TrackingNumber,
		OwnerID:        r.OwnerID.String(),
		Sender:         r.Sender.view(),
		Recipient:      r.Recipient.view(),
		Parcel: ParcelView{
			WeightGrams: r.WeightGrams,
			LengthCm:    r.LengthCm,
			WidthCm:     r.WidthCm,
			HeightCm:    r.HeightCm,
		},
		ServiceLevel:      r.ServiceLevel,
		DeclaredValue:     moneyView(r.DeclaredValue, r.Currency),
		Cost:              moneyView(r.Cost, r.Currency),
		Description:       r.Description,
		Status:            r.Status,
		EstimatedDelivery: r.EstimatedDelivery.Format(dateLayout),
		CreatedAt:         r.CreatedAt.UTC(),
		UpdatedAt:         r.UpdatedAt.UTC(),
	}
}

type trackingEventRow struct {
	Status     string
	Location   string
	Note       string
	OccurredAt time.Time
}

func selectShipments() sq.SelectBuilder {
	cols := []string{"id", "tracking_number", "owner_id", "sender_name", "sender_phone"}
	cols = append(cols, postalColumns("sender_")...)
	cols = append(cols, "recipient_name", "recipient_phone")
	cols = append(cols, postalColumns("recipient_")...)
	cols = append(cols, "weight_grams", "length_cm", "width_cm", "height_cm", "service_level",
		"declared_value", "cost", "currency", "description", "status", "estimated_delivery",
		"created_at", "updated_at")
	return sq.Select(cols...).From("shipments")
}

func loadTrackingEvents(ctx context.Context, db *gorm.DB, shipmentID uuid.UUID) ([]TrackingEventView, error) {
	b := sq.Select("status", "location", "note", "occurred_at").
		From("tracking_events").
		Where(sq.Eq{"shipment_id": shipmentID}).
		OrderBy("occurred_at")

	var rows []trackingEventRow
	if err := scan(ctx, db, b, &rows); err != nil {
		return nil, err
	}

	events := make([]TrackingEventView, 0, len(rows))
	for _, r := range rows {
		events = append(events, TrackingEventView{
			Status:     r.Status,
			Location:   r.Location,
			Note:       r.Note,
			OccurredAt: r.OccurredAt.UTC(),
		})
	}
	return events, nil
}

// GetShipmentQuery reads one shipment with its tracking history.
type GetShipmentQuery struct {
	actor      kernel.Actor
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetShipmentQuery(actor kernel.Actor, shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{actor: actor, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	var row shipmentRow
	b := scopeToActor(selectShipments().Where(sq.Eq{"id": query.shipmentID.Bytes()}), "owner_id", query.actor)
	if err := scanOne(ctx, h.db, b, &row, "shipment", query.shipmentID); err != nil {
		return ShipmentView{}, err
	}

	view := row.view()
	events, err := loadTrackingEvents(ctx, h.db, row.ID)
	if err != nil {
		return ShipmentView{}, err
	}
	view.Events = events
	return view, nil
}

// ListShipmentsQuery lists shipments newest first: the actor's own, or all
// of them for staff.
type ListShipmentsQuery struct {
	actor  kernel.Actor
	status shipment.Status
	page   Page
	guard  guard.ConstructorGuard
}

// NewListShipmentsQuery builds the query; pass shipment.UnknownStatus for
// every status.
func NewListShipmentsQuery(actor kernel.Actor, status shipment.Status, page Page) (ListShipmentsQuery, error) {
	if err := errors.Join(actor.Validate(), page.Validate()); err != nil {
		return ListShipmentsQuery{}, err
	}
	if status != shipment.UnknownStatus {
		if err := status.Validate(); err != nil {
			return ListShipmentsQuery{}, err
		}
	}
	return ListShipmentsQuery{actor: actor, status: status, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentsQueryIsNotConstructed)
}

type ListShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentsQueryHandler(db *gorm.DB) ListShipmentsQueryHandler {
	return ListShipmentsQueryHandler{db: db}
}

func (h ListShipmentsQueryHandler) Handle(ctx context.Context, query ListShipmentsQuery) ([]ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := scopeToActor(selectShipments(), "owner_id", query.actor).OrderBy("created_at DESC", "tracking_number")
	if query.status != shipment.UnknownStatus {
		b = b.Where(sq.Eq{"status": query.status.String()})
	}

	var rows []shipmentRow
	if err := scan(ctx, h.db, query.page.apply(b), &rows); err != nil {
		return nil, err
	}

	shipments := make([]ShipmentView, 0, len(rows))
	for _, r := range rows {
		shipments = append(shipments, r.view())
	}
	return shipments, nil
}
