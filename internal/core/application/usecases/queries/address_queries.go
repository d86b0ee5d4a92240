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

var (
	ErrGetAddressQueryIsNotConstructed    = errors.New("GetAddressQuery must be created via NewGetAddressQuery constructor")
	ErrListAddressesQueryIsNotConstructed = errors.New(
		"ListAddressesQuery must be created via NewListAddressesQuery constructor",
	)
)

type AddressView struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Label       string     `json:"label"`
	ContactName string     `json:"contact_name"`
	Phone       string     `json:"phone"`
	Address     PostalView `json:"address"`
	IsDefault   bool       `json:"is_default"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type addressRow struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Label       string
	ContactName string
	Phone       string
	Postal      postalRow `gorm:"embedded"`
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r addressRow) view() AddressView {
	return AddressView{
		ID:          r.ID.String(),
		OwnerID:     r.OwnerID.String(),
		Label:       r.Label,
		ContactName: r.ContactName,
		Phone:       r.Phone,
		Address:     r.Postal.view(),
		IsDefault:   r.IsDefault,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

func selectAddresses() sq.SelectBuilder {
	cols := append([]string{"id", "owner_id", "label", "contact_name", "phone"}, postalColumns("")...)
	cols = append(cols, "is_default", "created_at", "updated_at")
	return sq.Select(cols...).From("addresses")
}

// GetAddressQuery reads one address-book entry visible to the actor.
type GetAddressQuery struct {
	actor     kernel.Actor
	addressID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetAddressQuery(actor kernel.Actor, addressID kernel.UUID) (GetAddressQuery, error) {
	if err := errors.Join(actor.Validate(), addressID.Validate()); err != nil {
		return GetAddressQuery{}, err
	}
	return GetAddressQuery{actor: actor, addressID: addressID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAddressQuery) Validate() error {
	return q.guard.Validate(ErrGetAddressQueryIsNotConstructed)
}

type GetAddressQueryHandler struct {
	db *gorm.DB
}

func NewGetAddressQueryHandler(db *gorm.DB) GetAddressQueryHandler {
	return GetAddressQueryHandler{db: db}
}

func (h GetAddressQueryHandler) Handle(ctx context.Context, query GetAddressQuery) (AddressView, error) {
	if err := query.Validate(); err != nil {
		return AddressView{}, err
	}

	var row addressRow
	b := scopeToActor(selectAddresses().Where(sq.Eq{"id": query.addressID.Bytes()}), "owner_id", query.actor)
	if err := scanOne(ctx, h.db, b, &row, "address", query.addressID); err != nil {
		return AddressView{}, err
	}
	return row.view(), nil
}

// ListAddressesQuery returns the actor's own address book, default entry first.
type ListAddressesQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

func NewListAddressesQuery(actor kernel.Actor) (ListAddressesQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListAddressesQuery{}, err
	}
	return ListAddressesQuery{actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q ListAddressesQuery) Validate() error {
	return q.guard.Validate(ErrListAddressesQueryIsNotConstructed)
}

type ListAddressesQueryHandler struct {
	db *gorm.DB
}

func NewListAddressesQueryHandler(db *gorm.DB) ListAddressesQueryHandler {
	return ListAddressesQueryHandler{db: db}
}

func (h ListAddressesQueryHandler) Handle(ctx context.Context, query ListAddressesQuery) ([]AddressView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := selectAddresses().
		Where(sq.Eq{"owner_id": query.actor.ID().Bytes()}).
		OrderBy("is_default DESC", "label")

	var rows []addressRow
	if err := scan(ctx, h.db, b, &rows); err != nil {
		return nil, err
	}

	addresses := make([]AddressView, 0, len(rows))
	for _, r := range rows {
		addresses = append(addresses, r.view())
	}
	return addresses, nil
}
