package queries

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/support"
	"parcelmybox/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrGetSupportRequestQueryIsNotConstructed = errors.New(
		"GetSupportRequestQuery must be created via NewGetSupportRequestQuery constructor",
	)
	ErrListSupportRequestsQueryIsNotConstructed = errors.New(
		"ListSupportRequestsQuery must be created via NewListSupportRequestsQuery constructor",
	)
)

type SupportRequestView struct {
	ID               string     `json:"id"`
	TicketNumber     string     `json:"ticket_number"`
	OwnerID          string     `json:"owner_id"`
	ShipmentID       *string    `json:"shipment_id"`
	Subject          string     `json:"subject"`
	Description      string     `json:"description"`
	Category         string     `json:"category"`
	Priority         string     `json:"priority"`
	Status           string     `json:"status"`
	Tags             []string   `json:"tags"`
	AssigneeID       *string    `json:"assignee_id"`
	AssigneeUsername string     `json:"assignee_username"`
	AssignedAt       *time.Time `json:"assigned_at"`
	ResolvedAt       *time.Time `json:"resolved_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type supportRequestRow struct {
	ID               uuid.UUID
	TicketNumber     string
	OwnerID          uuid.UUID
	ShipmentID       *uuid.UUID
	Subject          string
	Description      string
	Category         string
	Priority         string
	Status           string
	Tags             pq.StringArray `gorm:"type:text[]"`
	AssigneeID       *uuid.UUID
	AssigneeUsername *string
	AssignedAt       *time.Time
	ResolvedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r supportRequestRow) view() SupportRequestView {
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	v := SupportRequestView{
		ID:           r.ID.String(),
		TicketNumber: r.TicketNumber,
		OwnerID:      r.OwnerID.String(),
		ShipmentID:   optionalID(r.ShipmentID),
		Subject:      r.Subject,
		Description:  r.Description,
		Category:     r.Category,
		Priority:     r.Priority,
		Status:       r.Status,
		Tags:         tags,
		AssigneeID:   optionalID(r.AssigneeID),
		AssignedAt:   utcPtr(r.AssignedAt),
		ResolvedAt:   utcPtr(r.ResolvedAt),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if r.AssigneeUsername != nil {
		v.AssigneeUsername = *r.AssigneeUsername
	}
	return v
}

func selectSupportRequests() sq.SelectBuilder {
	return sq.Select("s.id", "s.ticket_number", "s.owner_id", "s.shipment_id", "s.subject", "s.description",
		"s.category", "s.priority", "s.status", "s.tags", "s.assignee_id", "u.username AS assignee_username",
		"s.assigned_at", "s.resolved_at", "s.created_at", "s.updated_at").
		From("support_requests s").
		LeftJoin("users u ON u.id = s.assignee_id")
}

// GetSupportRequestQuery reads a ticket visible to its owner or to staff,
// which includes the assignee.
type GetSupportRequestQuery struct {
	actor     kernel.Actor
	requestID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetSupportRequestQuery(actor kernel.Actor, requestID kernel.UUID) (GetSupportRequestQuery, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate()); err != nil {
		return GetSupportRequestQuery{}, err
	}
	return GetSupportRequestQuery{actor: actor, requestID: requestID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSupportRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetSupportRequestQueryIsNotConstructed)
}

type GetSupportRequestQueryHandler struct {
	db *gorm.DB
}

func NewGetSupportRequestQueryHandler(db *gorm.DB) GetSupportRequestQueryHandler {
	return GetSupportRequestQueryHandler{db: db}
}

func (h GetSupportRequestQueryHandler) Handle(
	ctx context.Context,
	query GetSupportRequestQuery,
) (SupportRequestView, error) {
	if err := query.Validate(); err != nil {
		return SupportRequestView{}, err
	}

	var row supportRequestRow
	b := scopeToActor(selectSupportRequests().Where(sq.Eq{"s.id": query.requestID.Bytes()}), "s.owner_id", query.actor)
	if err := scanOne(ctx, h.db, b, &row, "support request", query.requestID); err != nil {
		return SupportRequestView{}, err
	}
	return row.view(), nil
}

// ListSupportRequestsQuery lists tickets newest first. Customers see their
// own tickets; staff see all of them, optionally only those assigned to
// one staff member.
type ListSupportRequestsQuery struct {
	actor      kernel.Actor
	status     support.Status
	assigneeID *kernel.UUID
	page       Page
	guard      guard.ConstructorGuard
}

func NewListSupportRequestsQuery(
	actor kernel.Actor,
	status support.Status,
	assigneeID *kernel.UUID,
	page Page,
) (ListSupportRequestsQuery, error) {
	var statusErr, assigneeErr error
	if status != support.UnknownStatus {
		statusErr = status.Validate()
	}
	if assigneeID != nil {
		assigneeErr = assigneeID.Validate()
	}
	if err := errors.Join(actor.Validate(), page.Validate(), statusErr, assigneeErr); err != nil {
		return ListSupportRequestsQuery{}, err
	}
	return ListSupportRequestsQuery{
		actor:      actor,
		status:     status,
		assigneeID: assigneeID,
		page:       page,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListSupportRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListSupportRequestsQueryIsNotConstructed)
}

type ListSupportRequestsQueryHandler struct {
	db *gorm.DB
}

func NewListSupportRequestsQueryHandler(db *gorm.DB) ListSupportRequestsQueryHandler {
	return ListSupportRequestsQueryHandler{db: db}
}

func (h ListSupportRequestsQueryHandler) Handle(
	ctx context.Context,
	query ListSupportRequestsQuery,
) ([]SupportRequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := scopeToActor(selectSupportRequests(), "s.owner_id", query.actor).OrderBy("s.created_at DESC", "s.ticket_number")
	if query.status != support.UnknownStatus {
		b = b.Where(sq.Eq{"s.status": query.status.String()})
	}
	if query.assigneeID != nil {
		b = b.Where(sq.Eq{"s.assignee_id": query.assigneeID.Bytes()})
	}

	var rows []supportRequestRow
	if err := scan(ctx, h.db, query.page.apply(b), &rows); err != nil {
		return nil, err
	}

	requests := make([]SupportRequestView, 0, len(rows))
	for _, r := range rows {
		requests = append(requests, r.view())
	}
	return requests, nil
}
