// Package shipmentrepo persists shipments and their tracking history.
package shipmentrepo

import (
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgdto"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents a row of the shipments table.
type ShipmentDTO struct {
	ID                uuid.UUID          `gorm:"type:uuid;primaryKey"`
	TrackingNumber    string             `gorm:"type:varchar(13);not null;uniqueIndex"`
	OwnerID           uuid.UUID          `gorm:"type:uuid;not null;index"`
	Sender            PartyDTO           `gorm:"embedded;embeddedPrefix:sender_"`
	Recipient         PartyDTO           `gorm:"embedded;embeddedPrefix:recipient_"`
	WeightGrams       int                `gorm:"not null"`
	LengthCm          int                `gorm:"not null"`
	WidthCm           int                `gorm:"not null"`
	HeightCm          int                `gorm:"not null"`
	ServiceLevel      string             `gorm:"type:varchar(16);not null"`
	DeclaredValue     int64              `gorm:"not null"`
	Cost              int64              `gorm:"not null"`
	Currency          string             `gorm:"type:char(3);not null"`
	Description       string             `gorm:"type:text;not null;default:''"`
	Status            string             `gorm:"type:varchar(32);not null"`
	EstimatedDelivery time.Time          `gorm:"type:date;not null"`
	CreatedAt         time.Time          `gorm:"type:timestamptz;not null"`
	UpdatedAt         time.Time          `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	Events            []TrackingEventDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// PartyDTO is the sender or recipient column group.
type PartyDTO struct {
	Name   string          `gorm:"type:varchar(255);not null"`
	Phone  string          `gorm:"type:varchar(64);not null;default:''"`
	Postal pgdto.PostalDTO `gorm:"embedded"`
}

// TrackingEventDTO represents a row of the tracking_events table.
type TrackingEventDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(32);not null"`
	Location   string    `gorm:"type:varchar(255);not null;default:''"`
	Note       string    `gorm:"type:text;not null;default:''"`
	OccurredAt time.Time `gorm:"type:timestamptz;not null"`
}

func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	shipmentID := s.ID().Bytes()
	events := make([]TrackingEventDTO, 0, len(s.Events()))
	for _, e := range s.Events() {
		events = append(events, TrackingEventDTO{
			ID:         e.ID().Bytes(),
			ShipmentID: shipmentID,
			Status:     e.Status().String(),
			Location:   e.Location(),
			Note:       e.Note(),
			OccurredAt: e.OccurredAt(),
		})
	}

	return ShipmentDTO{
		ID:                shipmentID,
		TrackingNumber:    s.TrackingNumber(),
		OwnerID:           s.OwnerID().Bytes(),
		Sender:            partyFromDomain(s.Sender()),
		Recipient:         partyFromDomain(s.Recipient()),
		WeightGrams:       s.Parcel().WeightGrams(),
		LengthCm:          s.Parcel().LengthCm(),
		WidthCm:           s.Parcel().WidthCm(),
		HeightCm:          s.Parcel().HeightCm(),
		ServiceLevel:      s.ServiceLevel().String(),
		DeclaredValue:     s.DeclaredValue().Amount(),
		Cost:              s.Cost().Amount(),
		Currency:          s.Cost().Currency(),
		Description:       s.Description(),
		Status:            s.Status().String(),
		EstimatedDelivery: s.EstimatedDelivery(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
		Events:            events,
	}
}

func partyFromDomain(p shipment.Party) PartyDTO {
	return PartyDTO{
		Name:   p.Name(),
		Phone:  p.Phone(),
		Postal: pgdto.PostalFromDomain(p.Postal()),
	}
}

func (d PartyDTO) toDomain() (shipment.Party, error) {
	postal, err := d.Postal.ToDomain()
	if err != nil {
		return shipment.Party{}, err
	}
	return shipment.NewParty(d.Name, d.Phone, postal)
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := pgdto.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := pgdto.ID(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	sender, err := dto.Sender.toDomain()
	if err != nil {
		return nil, err
	}
	recipient, err := dto.Recipient.toDomain()
	if err != nil {
		return nil, err
	}
	parcel, err := shipment.NewParcel(dto.WeightGrams, dto.LengthCm, dto.WidthCm, dto.HeightCm)
	if err != nil {
		return nil, err
	}
	level, err := shipment.ParseServiceLevel(dto.ServiceLevel)
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	declared, err := kernel.NewMoney(dto.DeclaredValue, dto.Currency)
	if err != nil {
		return nil, err
	}
	cost, err := kernel.NewMoney(dto.Cost, dto.Currency)
	if err != nil {
		return nil, err
	}

	events := make([]*shipment.TrackingEvent, 0, len(dto.Events))
	for _, e := range dto.Events {
		event, eventErr := eventToDomain(e)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return shipment.RestoreShipment(id, dto.TrackingNumber, ownerID, sender, recipient, parcel, level,
		declared, cost, dto.Description, status, dto.EstimatedDelivery, events, dto.CreatedAt, dto.UpdatedAt)
}

func eventToDomain(dto TrackingEventDTO) (*shipment.TrackingEvent, error) {
	id, err := pgdto.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return shipment.RestoreTrackingEvent(id, status, dto.Location, dto.Note, dto.OccurredAt)
}
