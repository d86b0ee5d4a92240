// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcelmybox/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	AddressRepoFactory interface {
		AddressRepository() ports.AddressRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	BillingRepoFactory interface {
		BillRepository() ports.BillRepository
		InvoiceRepository() ports.InvoiceRepository
	}

	PickupRepoFactory interface {
		PickupRepository() ports.PickupRepository
	}

	SupportRepoFactory interface {
		SupportRepository() ports.SupportRepository
	}

	ActivityRepoFactory interface {
		ActivityRepository() ports.ActivityRepository
	}

	// UoW manages transactions across every aggregate of the portal. A shipment
	// booking, for instance, writes the shipment, its bill and an activity
	// record in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   shipments := uow.ShipmentRepository()
	//   bills := uow.BillRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		UserRepoFactory
		AddressRepoFactory
		ShipmentRepoFactory
		BillingRepoFactory
		PickupRepoFactory
		SupportRepoFactory
		ActivityRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
