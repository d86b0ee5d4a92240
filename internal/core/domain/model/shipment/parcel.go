package shipment

import (
	"errors"

	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

const (
	MaxWeightGrams = 70_000
	MaxDimensionCm = 300
	// VolumetricDivisor converts cm³ to grams of volumetric weight (cm³ / 5000 kg).
	VolumetricDivisor = 5
)

var ErrParcelIsNotConstructed = errs.NewValueIsRequiredError("parcel must be created via NewParcel")

// Parcel describes the physical package: weight in grams, dimensions in cm.
type Parcel struct { //nolint:recvcheck //using for validation
	weightGrams int
	lengthCm    int
	widthCm     int
	heightCm    int
	guard       guard.ConstructorGuard
}

func NewParcel(weightGrams, lengthCm, widthCm, heightCm int) (Parcel, error) {
	p := Parcel{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setWeight(weightGrams),
		setDimension(&p.lengthCm, "length", lengthCm),
		setDimension(&p.widthCm, "width", widthCm),
		setDimension(&p.heightCm, "height", heightCm),
	); err != nil {
		return Parcel{}, err
	}

	return p, nil
}

func (p Parcel) Validate() error {
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p Parcel) WeightGrams() int { return p.weightGrams }
func (p Parcel) LengthCm() int    { return p.lengthCm }
func (p Parcel) WidthCm() int     { return p.widthCm }
func (p Parcel) HeightCm() int    { return p.heightCm }

// VolumetricGrams is the dimensional weight couriers bill bulky parcels by.
func (p Parcel) VolumetricGrams() int {
	return p.lengthCm * p.widthCm * p.heightCm / VolumetricDivisor
}

// ChargeableGrams is the larger of actual and volumetric weight.
func (p Parcel) ChargeableGrams() int {
	return max(p.weightGrams, p.VolumetricGrams())
}

func (p *Parcel) setWeight(grams int) error {
	if grams <= 0 || grams > MaxWeightGrams {
		return errs.NewValueIsOutOfRangeError("weight grams", grams, 1, MaxWeightGrams)
	}
	p.weightGrams = grams
	return nil
}

func setDimension(dst *int, name string, cm int) error {
	if cm <= 0 || cm > MaxDimensionCm {
		return errs.NewValueIsOutOfRangeError(name+" cm", cm, 1, MaxDimensionCm)
	}
	*dst = cm
	return nil
}
