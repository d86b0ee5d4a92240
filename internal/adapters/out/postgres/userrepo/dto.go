// Package userrepo persists portal accounts.
package userrepo

import (
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgdto"
	"parcelmybox/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents a row of the users table.
type UserDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(254);not null"`
	Username     string     `gorm:"type:varchar(150);not null"`
	FullName     string     `gorm:"type:varchar(255);not null;default:''"`
	Phone        string     `gorm:"type:varchar(64);not null;default:''"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	Role         string     `gorm:"type:varchar(16);not null"`
	Active       bool       `gorm:"not null"`
	LastLoginAt  *time.Time `gorm:"type:timestamptz"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt    time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:           u.ID().Bytes(),
		Email:        u.Email(),
		Username:     u.Username(),
		FullName:     u.FullName(),
		Phone:        u.Phone(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role().String(),
		Active:       u.IsActive(),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := pgdto.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, dto.Email, dto.Username, dto.FullName, dto.Phone, dto.PasswordHash,
		role, dto.Active, pgdto.UTC(dto.LastLoginAt), dto.CreatedAt, dto.UpdatedAt)
}
