package queries

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/user"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetUserQueryIsNotConstructed   = errors.New("GetUserQuery must be created via NewGetUserQuery constructor")
	ErrListUsersQueryIsNotConstructed = errors.New("ListUsersQuery must be created via NewListUsersQuery constructor")
)

// UserView is an account as shown to its owner and to staff. The password
// hash never leaves the database.
type UserView struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type userRow struct {
	ID          uuid.UUID
	Email       string
	Username    string
	FullName    string
	Phone       string
	Role        string
	Active      bool
	LastLoginAt *time.Time
	CreatedAt   time.Time
}

func (r userRow) view() UserView {
	return UserView{
		ID:          r.ID.String(),
		Email:       r.Email,
		Username:    r.Username,
		FullName:    r.FullName,
		Phone:       r.Phone,
		Role:        r.Role,
		Active:      r.Active,
		LastLoginAt: utcPtr(r.LastLoginAt),
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func selectUsers() sq.SelectBuilder {
	return sq.Select("id", "email", "username", "full_name", "phone", "role", "active", "last_login_at", "created_at").
		From("users")
}

// GetUserQuery reads one account. Customers may only read their own.
type GetUserQuery struct {
	actor  kernel.Actor
	userID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetUserQuery(actor kernel.Actor, userID kernel.UUID) (GetUserQuery, error) {
	if err := errors.Join(actor.Validate(), userID.Validate()); err != nil {
		return GetUserQuery{}, err
	}
	return GetUserQuery{actor: actor, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

type GetUserQueryHandler struct {
	db *gorm.DB
}

func NewGetUserQueryHandler(db *gorm.DB) GetUserQueryHandler {
	return GetUserQueryHandler{db: db}
}

func (h GetUserQueryHandler) Handle(ctx context.Context, query GetUserQuery) (UserView, error) {
	if err := query.Validate(); err != nil {
		return UserView{}, err
	}
	if !query.actor.CanAccess(query.userID) {
		return UserView{}, errs.NewObjectNotFoundError("user", query.userID.String())
	}

	var row userRow
	b := selectUsers().Where(sq.Eq{"id": query.userID.Bytes()})
	if err := scanOne(ctx, h.db, b, &row, "user", query.userID); err != nil {
		return UserView{}, err
	}
	return row.view(), nil
}

// ListUsersQuery is the staff directory, optionally filtered by role.
type ListUsersQuery struct {
	actor kernel.Actor
	role  user.Role
	page  Page
	guard guard.ConstructorGuard
}

// NewListUsersQuery builds the query; pass user.UnknownRole for every role.
func NewListUsersQuery(actor kernel.Actor, role user.Role, page Page) (ListUsersQuery, error) {
	if err := errors.Join(actor.Validate(), page.Validate()); err != nil {
		return ListUsersQuery{}, err
	}
	if !actor.IsStaff() {
		return ListUsersQuery{}, errs.NewAccessDeniedError("list users")
	}
	if role != user.UnknownRole {
		if err := role.Validate(); err != nil {
			return ListUsersQuery{}, err
		}
	}
	return ListUsersQuery{actor: actor, role: role, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

// Handle returns users ordered by username.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := selectUsers().OrderBy("username")
	if query.role != user.UnknownRole {
		b = b.Where(sq.Eq{"role": query.role.String()})
	}

	var rows []userRow
	if err := scan(ctx, h.db, query.page.apply(b), &rows); err != nil {
		return nil, err
	}

	users := make([]UserView, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.view())
	}
	return users, nil
}
