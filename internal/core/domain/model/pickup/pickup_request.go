// Package pickup models requests for a courier to collect parcels from a
// customer's address.
package pickup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
)

var ErrPickupRequestIsNotConstructed = errors.New("PickupRequest must be created via NewPickupRequest or RestorePickupRequest")

const (
	MaxPackageCount       = 50
	InstructionsMaxLength = 500
)

type PickupRequest struct {
	id            kernel.UUID
	ownerID       kernel.UUID
	shipmentID    *kernel.UUID
	contactName   string
	phone         string
	address       kernel.PostalAddress
	pickupDate    time.Time
	window        TimeWindow
	packageCount  int
	totalWeight   int
	instructions  string
	status        Status
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// NewPickupRequest files a request. The pickup date may not lie before today.
func NewPickupRequest(
	id, ownerID kernel.UUID,
	shipmentID *kernel.UUID,
	contactName, phone string,
	address kernel.PostalAddress,
	pickupDate time.Time,
	window TimeWindow,
	packageCount, totalWeightGrams int,
	instructions string,
	now time.Time,
) (*PickupRequest, error) {
	p, err := build(id, ownerID, shipmentID, contactName, phone, address, pickupDate, window,
		packageCount, totalWeightGrams, instructions, now)
	if err != nil {
		return nil, err
	}
	if kernel.IsBeforeDay(p.pickupDate, now) {
		return nil, errs.NewValueIsInvalidErrorWithCause("pickup date",
			fmt.Errorf("%s is in the past", p.pickupDate.Format(time.DateOnly)))
	}
	return p, nil
}

// RestorePickupRequest rebuilds a request from persistence. Past pickup dates
// are accepted.
func RestorePickupRequest(
	id, ownerID kernel.UUID,
	shipmentID *kernel.UUID,
	contactName, phone string,
	address kernel.PostalAddress,
	pickupDate time.Time,
	window TimeWindow,
	packageCount, totalWeightGrams int,
	instructions string,
	status Status,
	createdAt, updatedAt time.Time,
) (*PickupRequest, error) {
	p, err := build(id, ownerID, shipmentID, contactName, phone, address, pickupDate, window,
		packageCount, totalWeightGrams, instructions, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	p.status = status
	p.updatedAt = updatedAt.UTC()
	return p, nil
}

func build(
	id, ownerID kernel.UUID,
	shipmentID *kernel.UUID,
	contactName, phone string,
	address kernel.PostalAddress,
	pickupDate time.Time,
	window TimeWindow,
	packageCount, totalWeightGrams int,
	instructions string,
	now time.Time,
) (*PickupRequest, error) {
	p := &PickupRequest{
		phone:         strings.TrimSpace(phone),
		pickupDate:    kernel.DateOf(pickupDate),
		status:        Requested,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setOwner(ownerID),
		p.setShipment(shipmentID),
		p.setContactName(contactName),
		p.setAddress(address),
		p.setWindow(window),
		p.setPackages(packageCount, totalWeightGrams),
		p.setInstructions(instructions),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PickupRequest) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPickupRequestIsNotConstructed
	}
	return nil
}

func (p *PickupRequest) ID() kernel.UUID               { return p.id }
func (p *PickupRequest) OwnerID() kernel.UUID          { return p.ownerID }
func (p *PickupRequest) ShipmentID() *kernel.UUID      { return p.shipmentID }
func (p *PickupRequest) ContactName() string           { return p.contactName }
func (p *PickupRequest) Phone() string                 { return p.phone }
func (p *PickupRequest) Address() kernel.PostalAddress { return p.address }
func (p *PickupRequest) PickupDate() time.Time         { return p.pickupDate }
func (p *PickupRequest) Window() TimeWindow            { return p.window }
func (p *PickupRequest) PackageCount() int             { return p.packageCount }
func (p *PickupRequest) TotalWeightGrams() int         { return p.totalWeight }
func (p *PickupRequest) Instructions() string          { return p.instructions }
func (p *PickupRequest) Status() Status                { return p.status }
func (p *PickupRequest) CreatedAt() time.Time          { return p.createdAt }
func (p *PickupRequest) UpdatedAt() time.Time          { return p.updatedAt }
func (p *PickupRequest) IsOwnedBy(u kernel.UUID) bool  { return p.ownerID.IsEqual(u) }

// ChangeStatus moves the request along its lifecycle.
func (p *PickupRequest) ChangeStatus(next Status, now time.Time) error {
	if err := p.status.ValidateTransition(next); err != nil {
		return err
	}
	p.status = next
	p.updatedAt = now.UTC()
	return nil
}

func (p *PickupRequest) Cancel(now time.Time) error {
	return p.ChangeStatus(Cancelled, now)
}

func (p *PickupRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PickupRequest) setOwner(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	p.ownerID = ownerID
	return nil
}

func (p *PickupRequest) setShipment(shipmentID *kernel.UUID) error {
	if shipmentID == nil {
		return nil
	}
	if err := shipmentID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipment", err)
	}
	id := *shipmentID
	p.shipmentID = &id
	return nil
}

func (p *PickupRequest) setContactName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("contact name")
	}
	p.contactName = name
	return nil
}

func (p *PickupRequest) setAddress(a kernel.PostalAddress) error {
	if err := a.Validate(); err != nil {
		return err
	}
	p.address = a
	return nil
}

func (p *PickupRequest) setWindow(w TimeWindow) error {
	if err := w.Validate(); err != nil {
		return err
	}
	p.window = w
	return nil
}

func (p *PickupRequest) setPackages(count, weightGrams int) error {
	var countErr, weightErr error
	if count < 1 || count > MaxPackageCount {
		countErr = errs.NewValueIsOutOfRangeError("package count", count, 1, MaxPackageCount)
	}
	if weightGrams <= 0 {
		weightErr = errs.NewValueIsInvalidErrorWithCause("total weight grams", fmt.Errorf("%d is not positive", weightGrams))
	}
	if err := errors.Join(countErr, weightErr); err != nil {
		return err
	}
	p.packageCount = count
	p.totalWeight = weightGrams
	return nil
}

func (p *PickupRequest) setInstructions(s string) error {
	s = strings.TrimSpace(s)
	if n := len([]rune(s)); n > InstructionsMaxLength {
		return errs.NewValueIsOutOfRangeError("instructions length", n, 0, InstructionsMaxLength)
	}
	p.instructions = s
	return nil
}
