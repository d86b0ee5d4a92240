package queries

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrListActivityQueryIsNotConstructed = errors.New("ListActivityQuery must be created via NewListActivityQuery constructor")

type ActivityView struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entity_type"`
	EntityID    string    `json:"entity_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type activityRow struct {
	ID          uuid.UUID
	Action      string
	EntityType  string
	EntityID    uuid.UUID
	Description string
	CreatedAt   time.Time
}

// ListActivityQuery lists the actor's own history, newest first.
type ListActivityQuery struct {
	userID kernel.UUID
	page   Page
	guard  guard.ConstructorGuard
}

func NewListActivityQuery(actor kernel.Actor, page Page) (ListActivityQuery, error) {
	if err := errors.Join(actor.Validate(), page.Validate()); err != nil {
		return ListActivityQuery{}, err
	}
	return ListActivityQuery{userID: actor.ID(), page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListActivityQuery) Validate() error {
	return q.guard.Validate(ErrListActivityQueryIsNotConstructed)
}

type ListActivityQueryHandler struct {
	db *gorm.DB
}

func NewListActivityQueryHandler(db *gorm.DB) ListActivityQueryHandler {
	return ListActivityQueryHandler{db: db}
}

func (h ListActivityQueryHandler) Handle(ctx context.Context, query ListActivityQuery) ([]ActivityView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := sq.Select("id", "action", "entity_type", "entity_id", "description", "created_at").
		From("activity_entries").
		Where(sq.Eq{"user_id": query.userID.Bytes()}).
		OrderBy("created_at DESC", "id")

	var rows []activityRow
	if err := scan(ctx, h.db, query.page.apply(b), &rows); err != nil {
		return nil, err
	}

	entries := make([]ActivityView, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, ActivityView{
			ID:          r.ID.String(),
			Action:      r.Action,
			EntityType:  r.EntityType,
			EntityID:    r.EntityID.String(),
			Description: r.Description,
			CreatedAt:   r.CreatedAt.UTC(),
		})
	}
	return entries, nil
}
