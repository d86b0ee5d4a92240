// Package support models customer support tickets.
package support

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

var ErrSupportRequestIsNotConstructed = errors.New("SupportRequest must be created via NewSupportRequest or RestoreSupportRequest")

const (
	SubjectMaxLength     = 200
	DescriptionMaxLength = 5000
	MaxTags              = 10
	TagMaxLength         = 32
)

type SupportRequest struct {
	id           kernel.UUID
	ticketNumber string
	ownerID      kernel.UUID
	shipmentID   *kernel.UUID
	subject      string
	description  string
	category     Category
	priority     Priority
	status       Status
	assigneeID   *kernel.UUID
	assignedAt   *time.Time
	resolvedAt   *time.Time
	tags         []string
	createdAt    time.Time
	updatedAt    time.Time

	isConstructed bool
}

// NewSupportRequest opens an unassigned ticket.
func NewSupportRequest(
	id kernel.UUID,
	ticketNumber string,
	ownerID kernel.UUID,
	shipmentID *kernel.UUID,
	subject, description string,
	category Category,
	priority Priority,
	tags []string,
	now time.Time,
) (*SupportRequest, error) {
	r := &SupportRequest{
		status:        Open,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setTicketNumber(ticketNumber),
		r.setOwner(ownerID),
		r.setShipment(shipmentID),
		r.setSubject(subject),
		r.setDescription(description),
		r.setCategory(category),
		r.setPriority(priority),
		r.setTags(tags),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreSupportRequest rebuilds a ticket from persistence.
func RestoreSupportRequest(
	id kernel.UUID,
	ticketNumber string,
	ownerID kernel.UUID,
	shipmentID *kernel.UUID,
	subject, description string,
	category Category,
	priority Priority,
	tags []string,
	status Status,
	assigneeID *kernel.UUID,
	assignedAt, resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*SupportRequest, error) {
	r, err := NewSupportRequest(id, ticketNumber, ownerID, shipmentID, subject, description,
		category, priority, tags, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	r.status = status
	r.assigneeID = assigneeID
	r.assignedAt = assignedAt
	r.resolvedAt = resolvedAt
	r.updatedAt = updatedAt.UTC()
	return r, nil
}

func (r *SupportRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrSupportRequestIsNotConstructed
	}
	return nil
}

func (r *SupportRequest) ID() kernel.UUID          { return r.id }
func (r *SupportRequest) TicketNumber() string     { return r.ticketNumber }
func (r *SupportRequest) OwnerID() kernel.UUID     { return r.ownerID }
func (r *SupportRequest) ShipmentID() *kernel.UUID { return r.shipmentID }
func (r *SupportRequest) Subject() string          { return r.subject }
func (r *SupportRequest) Description() string      { return r.description }
func (r *SupportRequest) Category() Category       { return r.category }
func (r *SupportRequest) Priority() Priority       { return r.priority }
func (r *SupportRequest) Status() Status           { return r.status }
func (r *SupportRequest) AssigneeID() *kernel.UUID { return r.assigneeID }
func (r *SupportRequest) AssignedAt() *time.Time   { return r.assignedAt }
func (r *SupportRequest) ResolvedAt() *time.Time   { return r.resolvedAt }
func (r *SupportRequest) Tags() []string           { return slices.Clone(r.tags) }
func (r *SupportRequest) CreatedAt() time.Time     { return r.createdAt }
func (r *SupportRequest) UpdatedAt() time.Time     { return r.updatedAt }

func (r *SupportRequest) IsOwnedBy(u kernel.UUID) bool { return r.ownerID.IsEqual(u) }

func (r *SupportRequest) IsAssignedTo(u kernel.UUID) bool {
	return r.assigneeID != nil && r.assigneeID.IsEqual(u)
}

// AssignTo hands the ticket to a staff member.
func (r *SupportRequest) AssignTo(staffID kernel.UUID, now time.Time) error {
	if err := staffID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("assignee", err)
	}
	if r.status == Closed {
		return errs.NewInvalidStateTransitionError("support request", r.status.String(), "reassigned")
	}
	at := now.UTC()
	r.assigneeID = &staffID
	r.assignedAt = &at
	r.updatedAt = at
	return nil
}

// ChangeStatus moves an open ticket to any other status. Entering resolved
// stamps the resolution time; reopening clears it.
func (r *SupportRequest) ChangeStatus(next Status, now time.Time) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if r.status == Closed || r.status == next {
		return errs.NewInvalidStateTransitionError("support request", r.status.String(), next.String())
	}

	at := now.UTC()
	switch next {
	case Resolved:
		r.resolvedAt = &at
	case Open, InProgress:
		r.resolvedAt = nil
	case Closed:
		if r.resolvedAt == nil {
			r.resolvedAt = &at
		}
	}
	r.status = next
	r.updatedAt = at
	return nil
}

func (r *SupportRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *SupportRequest) setTicketNumber(number string) error {
	number = strings.ToUpper(strings.TrimSpace(number))
	if err := validateTicketNumber(number); err != nil {
		return err
	}
	r.ticketNumber = number
	return nil
}

func (r *SupportRequest) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	r.ownerID = ownerID
	return nil
}

func (r *SupportRequest) setShipment(shipmentID *kernel.UUID) error {
	if shipmentID == nil {
		return nil
	}
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipment", err)
	}
	id := *shipmentID
	r.shipmentID = &id
	return nil
}

func (r *SupportRequest) setSubject(s string) error {
	s = strings.TrimSpace(s)
	n := len([]rune(s))
	if n == 0 {
		return errs.NewValueIsRequiredError("subject")
	}
	if n > SubjectMaxLength {
		return errs.NewValueIsOutOfRangeError("subject length", n, 1, SubjectMaxLength)
	}
	r.subject = s
	return nil
}

func (r *SupportRequest) setDescription(s string) error {
	s = strings.TrimSpace(s)
	if n := len([]rune(s)); n > DescriptionMaxLength {
		return errs.NewValueIsOutOfRangeError("description length", n, 0, DescriptionMaxLength)
	}
	r.description = s
	return nil
}

func (r *SupportRequest) setCategory(c Category) error {
	if err := c.Validate(); err != nil {
		return err
	}
	r.category = c
	return nil
}

func (r *SupportRequest) setPriority(p Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.priority = p
	return nil
}

// setTags lower-cases, trims and de-duplicates tags, keeping their order.
func (r *SupportRequest) setTags(tags []string) error {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || slices.Contains(out, t) {
			continue
		}
		if n := len([]rune(t)); n > TagMaxLength {
			return errs.NewValueIsOutOfRangeError("tag length", n, 1, TagMaxLength)
		}
		out = append(out, t)
	}
	if len(out) > MaxTags {
		return errs.NewValueIsOutOfRangeError("tag count", len(out), 0, MaxTags)
	}
	r.tags = out
	return nil
}

func (r *SupportRequest) String() string {
	return fmt.Sprintf("%s %s", r.ticketNumber, r.subject)
}
