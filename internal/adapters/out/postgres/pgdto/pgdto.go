// Package pgdto holds column groups and conversions shared by the repositories.
package pgdto

import (
	"time"

	"parcelmybox/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// PostalDTO is embedded wherever a postal address is stored inline.
type PostalDTO struct {
	Line1      string `gorm:"type:text;not null"`
	Line2      string `gorm:"type:text;not null;default:''"`
	City       string `gorm:"type:varchar(128);not null"`
	State      string `gorm:"type:varchar(128);not null;default:''"`
	PostalCode string `gorm:"type:varchar(32);not null"`
	Country    string `gorm:"type:char(2);not null"`
}

func PostalFromDomain(a kernel.PostalAddress) PostalDTO {
	return PostalDTO{
		Line1:      a.Line1(),
		Line2:      a.Line2(),
		City:       a.City(),
		State:      a.State(),
		PostalCode: a.PostalCode(),
		Country:    a.Country(),
	}
}

func (d PostalDTO) ToDomain() (kernel.PostalAddress, error) {
	return kernel.NewPostalAddress(d.Line1, d.Line2, d.City, d.State, d.PostalCode, d.Country)
}

// IDPtr converts an optional domain ID into a nullable column value.
func IDPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// ID converts a column value into a domain ID.
func ID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromGoogle(raw)
}

// OptionalID converts a nullable column value into an optional domain ID.
func OptionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// UTC normalises an optional timestamp read from the database.
func UTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
