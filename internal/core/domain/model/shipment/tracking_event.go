package shipment

import (
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
)

// TrackingEvent is one line of a shipment's tracking history.
type TrackingEvent struct {
	id         kernel.UUID
	status     Status
	location   string
	note       string
	occurredAt time.Time
}

func newTrackingEvent(status Status, location, note string, at time.Time) *TrackingEvent {
	return &TrackingEvent{
		id:         kernel.NewUUID(),
		status:     status,
		location:   strings.TrimSpace(location),
		note:       strings.TrimSpace(note),
		occurredAt: at.UTC(),
	}
}

// RestoreTrackingEvent rebuilds an event from persistence.
func RestoreTrackingEvent(id kernel.UUID, status Status, location, note string, occurredAt time.Time) (*TrackingEvent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &TrackingEvent{id: id, status: status, location: location, note: note, occurredAt: occurredAt.UTC()}, nil
}

func (e *TrackingEvent) ID() kernel.UUID       { return e.id }
func (e *TrackingEvent) Status() Status        { return e.status }
func (e *TrackingEvent) Location() string      { return e.location }
func (e *TrackingEvent) Note() string          { return e.note }
func (e *TrackingEvent) OccurredAt() time.Time { return e.occurredAt }
