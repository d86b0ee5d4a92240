// Package ports defines the persistence contracts of ParcelMyBox.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"parcelmybox/internal/core/domain/model/activity"
	"parcelmybox/internal/core/domain/model/address"
	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/pickup"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/model/support"
	"parcelmybox/internal/core/domain/model/user"
)

// UserRepository persists portal accounts.
type UserRepository interface {
	// Add stores a new user. Returns errs.ObjectAlreadyExistsError when the
	// email or username is taken.
	Add(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByLogin finds a user by email (case-insensitive) or username.
	GetByLogin(ctx context.Context, login string) (*user.User, error)

	// GetActiveStaff returns active staff and admin accounts.
	GetActiveStaff(ctx context.Context) ([]*user.User, error)
}

// AddressRepository persists address-book entries.
type AddressRepository interface {
	Add(ctx context.Context, a *address.ShippingAddress) error
	Update(ctx context.Context, a *address.ShippingAddress) error
	Delete(ctx context.Context, id kernel.UUID) error
	Get(ctx context.Context, id kernel.UUID) (*address.ShippingAddress, error)
	ListByOwner(ctx context.Context, ownerID kernel.UUID) ([]*address.ShippingAddress, error)
}

// ShipmentRepository persists shipments together with their tracking events.
type ShipmentRepository interface {
	// Add stores a new shipment. Returns errs.ObjectAlreadyExistsError when the
	// tracking number collides with an existing one.
	Add(ctx context.Context, s *shipment.Shipment) error

	// Update stores status changes and appends tracking events not yet persisted.
	Update(ctx context.Context, s *shipment.Shipment) error
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error)
}

// BillRepository persists bills.
type BillRepository interface {
	Add(ctx context.Context, b *billing.Bill) error
	Update(ctx context.Context, b *billing.Bill) error
	Get(ctx context.Context, id kernel.UUID) (*billing.Bill, error)

	// ListOpenByShipment returns pending and overdue bills raised for a shipment.
	ListOpenByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*billing.Bill, error)

	// ListPendingDueBefore returns pending bills whose due date is before day.
	ListPendingDueBefore(ctx context.Context, day time.Time) ([]*billing.Bill, error)
}

// InvoiceRepository persists invoices and their lines.
type InvoiceRepository interface {
	Add(ctx context.Context, i *billing.Invoice) error
	Update(ctx context.Context, i *billing.Invoice) error
	Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error)

	// ListPendingDueBefore returns pending invoices whose due date is before day.
	ListPendingDueBefore(ctx context.Context, day time.Time) ([]*billing.Invoice, error)
}

// PickupRepository persists pickup requests.
type PickupRepository interface {
	Add(ctx context.Context, p *pickup.PickupRequest) error
	Update(ctx context.Context, p *pickup.PickupRequest) error
	Get(ctx context.Context, id kernel.UUID) (*pickup.PickupRequest, error)
}

// SupportRepository persists support tickets.
type SupportRepository interface {
	Add(ctx context.Context, r *support.SupportRequest) error
	Update(ctx context.Context, r *support.SupportRequest) error
	Get(ctx context.Context, id kernel.UUID) (*support.SupportRequest, error)

	// LastAssigneeUsername returns the username of the staff member who got the
	// most recently assigned ticket, or "" when no ticket was ever assigned.
	LastAssigneeUsername(ctx context.Context) (string, error)
}

// ActivityRepository appends to the activity history.
type ActivityRepository interface {
	Add(ctx context.Context, e *activity.Entry) error
}
