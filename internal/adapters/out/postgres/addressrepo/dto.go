// Package addressrepo persists the customers' address books.
package addressrepo

import (
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgdto"
	"parcelmybox/internal/core/domain/model/address"

	"github.com/google/uuid"
)

// AddressDTO represents a row of the addresses table.
type AddressDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Label       string          `gorm:"type:varchar(64);not null"`
	ContactName string          `gorm:"type:varchar(255);not null"`
	Phone       string          `gorm:"type:varchar(64);not null;default:''"`
	Postal      pgdto.PostalDTO `gorm:"embedded"`
	IsDefault   bool            `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt   time.Time       `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(a *address.ShippingAddress) AddressDTO {
	return AddressDTO{
		ID:          a.ID().Bytes(),
		OwnerID:     a.OwnerID().Bytes(),
		Label:       a.Label(),
		ContactName: a.ContactName(),
		Phone:       a.Phone(),
		Postal:      pgdto.PostalFromDomain(a.Postal()),
		IsDefault:   a.IsDefault(),
		CreatedAt:   a.CreatedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func toDomain(dto AddressDTO) (*address.ShippingAddress, error) {
	id, err := pgdto.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := pgdto.ID(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	postal, err := dto.Postal.ToDomain()
	if err != nil {
		return nil, err
	}
	return address.RestoreShippingAddress(id, ownerID, dto.Label, dto.ContactName, dto.Phone, postal,
		dto.IsDefault, dto.CreatedAt, dto.UpdatedAt)
}
