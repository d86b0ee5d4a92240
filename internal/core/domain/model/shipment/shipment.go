package shipment

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

const DescriptionMaxLength = 500

// Shipment is the aggregate root for a booked parcel. It owns the tracking
// history and enforces the status lifecycle described on Status.
//
// Invariants:
//   - tracking number has the PMB format
//   - sender, recipient and parcel are constructed values
//   - cost and declared value share a currency
//   - events are ordered by time and the last one carries the current status
type Shipment struct {
	id                kernel.UUID
	trackingNumber    string
	ownerID           kernel.UUID
	sender            Party
	recipient         Party
	parcel            Parcel
	serviceLevel      ServiceLevel
	declaredValue     kernel.Money
	cost              kernel.Money
	description       string
	status            Status
	estimatedDelivery time.Time
	events            []*TrackingEvent
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewShipment books a shipment in pending status and records the first tracking event.
func NewShipment(
	id kernel.UUID,
	trackingNumber string,
	ownerID kernel.UUID,
	sender, recipient Party,
	parcel Parcel,
	serviceLevel ServiceLevel,
	declaredValue, cost kernel.Money,
	description string,
	estimatedDelivery time.Time,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		status:            Pending,
		estimatedDelivery: kernel.DateOf(estimatedDelivery),
		createdAt:         now.UTC(),
		updatedAt:         now.UTC(),
		isConstructed:     true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setTrackingNumber(trackingNumber),
		s.setOwner(ownerID),
		s.setParties(sender, recipient),
		s.setParcel(parcel),
		serviceLevel.Validate(),
		s.setMoney(declaredValue, cost),
		s.setDescription(description),
	); err != nil {
		return nil, err
	}
	s.serviceLevel = serviceLevel

	s.events = []*TrackingEvent{
		newTrackingEvent(Pending, sender.Postal().City(), "Shipment booked", now),
	}

	return s, nil
}

// RestoreShipment rebuilds a shipment and its history from persistence.
func RestoreShipment(
	id kernel.UUID,
	trackingNumber string,
	ownerID kernel.UUID,
	sender, recipient Party,
	parcel Parcel,
	serviceLevel ServiceLevel,
	declaredValue, cost kernel.Money,
	description string,
	status Status,
	estimatedDelivery time.Time,
	events []*TrackingEvent,
	createdAt, updatedAt time.Time,
) (*Shipment, error) {
	s, err := NewShipment(id, trackingNumber, ownerID, sender, recipient, parcel, serviceLevel,
		declaredValue, cost, description, estimatedDelivery, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	s.status = status
	s.events = slices.Clone(events)
	slices.SortStableFunc(s.events, func(a, b *TrackingEvent) int {
		return a.OccurredAt().Compare(b.OccurredAt())
	})
	s.updatedAt = updatedAt.UTC()
	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID              { return s.id }
func (s *Shipment) TrackingNumber() string       { return s.trackingNumber }
func (s *Shipment) OwnerID() kernel.UUID         { return s.ownerID }
func (s *Shipment) Sender() Party                { return s.sender }
func (s *Shipment) Recipient() Party             { return s.recipient }
func (s *Shipment) Parcel() Parcel               { return s.parcel }
func (s *Shipment) ServiceLevel() ServiceLevel   { return s.serviceLevel }
func (s *Shipment) DeclaredValue() kernel.Money  { return s.declaredValue }
func (s *Shipment) Cost() kernel.Money           { return s.cost }
func (s *Shipment) Description() string          { return s.description }
func (s *Shipment) Status() Status               { return s.status }
func (s *Shipment) EstimatedDelivery() time.Time { return s.estimatedDelivery }
func (s *Shipment) CreatedAt() time.Time         { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time         { return s.updatedAt }

// Events returns the tracking history, oldest first.
func (s *Shipment) Events() []*TrackingEvent {
	return slices.Clone(s.events)
}

func (s *Shipment) IsOwnedBy(userID kernel.UUID) bool {
	return s.ownerID.IsEqual(userID)
}

// UpdateStatus moves the shipment along its lifecycle and appends a tracking event.
func (s *Shipment) UpdateStatus(next Status, location, note string, now time.Time) error {
	if err := s.status.ValidateTransition(next); err != nil {
		return err
	}
	s.status = next
	s.events = append(s.events, newTrackingEvent(next, location, note, now))
	s.updatedAt = now.UTC()
	return nil
}

// Cancel withdraws a shipment that has not been picked up yet.
func (s *Shipment) Cancel(reason string, now time.Time) error {
	note := "Cancelled"
	if r := strings.TrimSpace(reason); r != "" {
		note = "Cancelled: " + r
	}
	return s.UpdateStatus(Cancelled, "", note, now)
}

// RegenerateTrackingNumber replaces the tracking number after a uniqueness
// collision. Only allowed before the shipment has been persisted as pending.
func (s *Shipment) RegenerateTrackingNumber() error {
	if s.status != Pending || len(s.events) != 1 {
		return errs.NewInvalidStateTransitionError("shipment", s.status.String(), "renumbered")
	}
	s.trackingNumber = NewTrackingNumber()
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingNumber(tn string) error {
	normalized, err := NormalizeTrackingNumber(tn)
	if err != nil {
		return err
	}
	s.trackingNumber = normalized
	return nil
}

func (s *Shipment) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	s.ownerID = ownerID
	return nil
}

func (s *Shipment) setParties(sender, recipient Party) error {
	if err := errors.Join(sender.Validate(), recipient.Validate()); err != nil {
		return err
	}
	s.sender = sender
	s.recipient = recipient
	return nil
}

func (s *Shipment) setParcel(p Parcel) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.parcel = p
	return nil
}

func (s *Shipment) setMoney(declared, cost kernel.Money) error {
	if err := errors.Join(declared.Validate(), cost.Validate()); err != nil {
		return err
	}
	if declared.Currency() != cost.Currency() {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("declared value in %s but cost in %s", declared.Currency(), cost.Currency()))
	}
	s.declaredValue = declared
	s.cost = cost
	return nil
}

func (s *Shipment) setDescription(d string) error {
	d = strings.TrimSpace(d)
	if n := len([]rune(d)); n > DescriptionMaxLength {
		return errs.NewValueIsOutOfRangeError("description length", n, 0, DescriptionMaxLength)
	}
	s.description = d
	return nil
}
