// Package activity is the append-only history of what users did.
package activity

import (
	"errors"
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry")

// Actions recorded by command handlers.
const (
	ActionUserRegistered    = "user.registered"
	ActionAddressCreated    = "address.created"
	ActionAddressUpdated    = "address.updated"
	ActionAddressDeleted    = "address.deleted"
	ActionShipmentCreated   = "shipment.created"
	ActionShipmentStatus    = "shipment.status_changed"
	ActionShipmentCancelled = "shipment.cancelled"
	ActionBillCreated       = "bill.created"
	ActionBillPaid          = "bill.paid"
	ActionBillCancelled     = "bill.cancelled"
	ActionInvoiceCreated    = "invoice.created"
	ActionInvoicePaid       = "invoice.paid"
	ActionInvoiceCancelled  = "invoice.cancelled"
	ActionPickupRequested   = "pickup.requested"
	ActionPickupStatus      = "pickup.status_changed"
	ActionPickupCancelled   = "pickup.cancelled"
	ActionSupportOpened     = "support.opened"
	ActionSupportStatus     = "support.status_changed"
	ActionSupportAssigned   = "support.assigned"
)

const (
	EntityTypeUser           = "user"
	EntityTypeAddress        = "address"
	EntityTypeShipment       = "shipment"
	EntityTypeBill           = "bill"
	EntityTypeInvoice        = "invoice"
	EntityTypePickupRequest  = "pickup_request"
	EntityTypeSupportRequest = "support_request"
)

const DescriptionMaxLength = 500

type Entry struct {
	id          kernel.UUID
	userID      kernel.UUID
	action      string
	entityType  string
	entityID    kernel.UUID
	description string
	createdAt   time.Time

	isConstructed bool
}

func NewEntry(id, userID kernel.UUID, action, entityType string, entityID kernel.UUID, description string, now time.Time) (*Entry, error) {
	e := &Entry{
		action:        strings.TrimSpace(action),
		entityType:    strings.TrimSpace(entityType),
		createdAt:     now.UTC(),
		isConstructed: true,
	}

	var actionErr, typeErr error
	if e.action == "" {
		actionErr = errs.NewValueIsRequiredError("action")
	}
	if e.entityType == "" {
		typeErr = errs.NewValueIsRequiredError("entity type")
	}
	description = strings.TrimSpace(description)
	if r := []rune(description); len(r) > DescriptionMaxLength {
		description = string(r[:DescriptionMaxLength])
	}
	e.description = description

	if err := errors.Join(id.Validate(), userID.Validate(), entityID.Validate(), actionErr, typeErr); err != nil {
		return nil, err
	}
	e.id = id
	e.userID = userID
	e.entityID = entityID
	return e, nil
}

// RestoreEntry rebuilds an entry from persistence.
func RestoreEntry(id, userID kernel.UUID, action, entityType string, entityID kernel.UUID, description string, createdAt time.Time) (*Entry, error) {
	return NewEntry(id, userID, action, entityType, entityID, description, createdAt)
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID       { return e.id }
func (e *Entry) UserID() kernel.UUID   { return e.userID }
func (e *Entry) Action() string        { return e.action }
func (e *Entry) EntityType() string    { return e.entityType }
func (e *Entry) EntityID() kernel.UUID { return e.entityID }
func (e *Entry) Description() string   { return e.description }
func (e *Entry) CreatedAt() time.Time  { return e.createdAt }
