// Package address holds the customer's address book.
package address

import (
	"errors"
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

var ErrShippingAddressIsNotConstructed = errors.New("ShippingAddress must be created via NewShippingAddress or RestoreShippingAddress")

const LabelMaxLength = 64

// ShippingAddress is an address-book entry a customer can ship from, ship to
// or have parcels picked up at.
type ShippingAddress struct {
	id          kernel.UUID
	ownerID     kernel.UUID
	label       string
	contactName string
	phone       string
	postal      kernel.PostalAddress
	isDefault   bool
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

func NewShippingAddress(
	id, ownerID kernel.UUID,
	label, contactName, phone string,
	postal kernel.PostalAddress,
	isDefault bool,
	now time.Time,
) (*ShippingAddress, error) {
	a := &ShippingAddress{
		phone:         strings.TrimSpace(phone),
		isDefault:     isDefault,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(id),
		a.setOwner(ownerID),
		a.setLabel(label),
		a.setContactName(contactName),
		a.setPostal(postal),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func RestoreShippingAddress(
	id, ownerID kernel.UUID,
	label, contactName, phone string,
	postal kernel.PostalAddress,
	isDefault bool,
	createdAt, updatedAt time.Time,
) (*ShippingAddress, error) {
	a, err := NewShippingAddress(id, ownerID, label, contactName, phone, postal, isDefault, createdAt)
	if err != nil {
		return nil, err
	}
	a.updatedAt = updatedAt.UTC()
	return a, nil
}

func (a *ShippingAddress) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrShippingAddressIsNotConstructed
	}
	return nil
}

func (a *ShippingAddress) ID() kernel.UUID              { return a.id }
func (a *ShippingAddress) OwnerID() kernel.UUID         { return a.ownerID }
func (a *ShippingAddress) Label() string                { return a.label }
func (a *ShippingAddress) ContactName() string          { return a.contactName }
func (a *ShippingAddress) Phone() string                { return a.phone }
func (a *ShippingAddress) Postal() kernel.PostalAddress { return a.postal }
func (a *ShippingAddress) IsDefault() bool              { return a.isDefault }
func (a *ShippingAddress) CreatedAt() time.Time         { return a.createdAt }
func (a *ShippingAddress) UpdatedAt() time.Time         { return a.updatedAt }

// IsOwnedBy reports whether userID owns the entry.
func (a *ShippingAddress) IsOwnedBy(userID kernel.UUID) bool {
	return a.ownerID.IsEqual(userID)
}

// Update replaces every editable field; the owner never changes.
func (a *ShippingAddress) Update(
	label, contactName, phone string,
	postal kernel.PostalAddress,
	isDefault bool,
	now time.Time,
) error {
	if err := errors.Join(
		a.setLabel(label),
		a.setContactName(contactName),
		a.setPostal(postal),
	); err != nil {
		return err
	}
	a.phone = strings.TrimSpace(phone)
	a.isDefault = isDefault
	a.updatedAt = now.UTC()
	return nil
}

// ClearDefault drops the default flag when another entry becomes the default.
func (a *ShippingAddress) ClearDefault(now time.Time) {
	if !a.isDefault {
		return
	}
	a.isDefault = false
	a.updatedAt = now.UTC()
}

func (a *ShippingAddress) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *ShippingAddress) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	a.ownerID = ownerID
	return nil
}

func (a *ShippingAddress) setLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "Address"
	}
	if n := len([]rune(label)); n > LabelMaxLength {
		return errs.NewValueIsOutOfRangeError("label length", n, 1, LabelMaxLength)
	}
	a.label = label
	return nil
}

func (a *ShippingAddress) setContactName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("contact name")
	}
	a.contactName = name
	return nil
}

func (a *ShippingAddress) setPostal(postal kernel.PostalAddress) error {
	if err := postal.Validate(); err != nil {
		return err
	}
	a.postal = postal
	return nil
}
