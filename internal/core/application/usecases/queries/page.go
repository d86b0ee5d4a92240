// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Handlers read straight from the database with SQL built by squirrel and
// return flat read models ready to be serialised.
package queries

import (
	"context"
	"errors"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var ErrPageIsNotConstructed = errors.New("Page must be created via NewPage constructor")

// Page is the limit/offset window of a list query. A zero limit selects
// DefaultLimit; limits above MaxLimit are capped.
type Page struct {
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

func NewPage(limit, offset int) (Page, error) {
	if limit < 0 {
		return Page{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxLimit)
	}
	if offset < 0 {
		return Page{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{limit: limit, offset: offset, guard: guard.NewConstructorGuard()}, nil
}

// DefaultPage is the first DefaultLimit rows.
func DefaultPage() Page {
	p, _ := NewPage(DefaultLimit, 0)
	return p
}

func (p Page) Validate() error {
	return p.guard.Validate(ErrPageIsNotConstructed)
}

func (p Page) Limit() int  { return p.limit }
func (p Page) Offset() int { return p.offset }

func (p Page) apply(b sq.SelectBuilder) sq.SelectBuilder {
	return b.Limit(uint64(p.limit)).Offset(uint64(p.offset)) //nolint:gosec // validated non-negative
}

// scopeToActor restricts customers to their own rows; staff see everything.
func scopeToActor(b sq.SelectBuilder, ownerColumn string, actor kernel.Actor) sq.SelectBuilder {
	if actor.IsStaff() {
		return b
	}
	return b.Where(sq.Eq{ownerColumn: actor.ID().Bytes()})
}

// scan runs a squirrel query through gorm and scans every row into dest.
func scan(ctx context.Context, db *gorm.DB, b sq.Sqlizer, dest any) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Raw(query, args...).Scan(dest).Error
}

// scanOne is scan for a single row; an empty result becomes ObjectNotFound.
func scanOne(ctx context.Context, db *gorm.DB, b sq.Sqlizer, dest any, what string, id kernel.UUID) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	result := db.WithContext(ctx).Raw(query, args...).Scan(dest)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(what, id.String())
	}
	return nil
}
