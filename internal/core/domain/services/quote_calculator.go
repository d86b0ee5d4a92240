package services

import (
	"errors"
	"fmt"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/quote"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/pkg/errs"
)

const (
	// WeightStepGrams is the billing increment: every started step is charged.
	WeightStepGrams = 500
	// FuelSurchargeBP is the fuel surcharge on freight in basis points.
	FuelSurchargeBP = 800
	// InsuranceFreeAmount is the part of the declared value covered for free (100.00).
	InsuranceFreeAmount = 10_000
	// InsuranceRatePercent is charged on the declared value above the free amount.
	InsuranceRatePercent = 1
)

// ErrServiceNotOffered is returned for zone and service combinations missing
// from the rate table, such as overnight international.
var ErrServiceNotOffered = errors.New("service not offered")

type rate struct {
	base        int64
	perStep     int64
	transitDays int
}

type rateKey struct {
	zone  quote.Zone
	level shipment.ServiceLevel
}

func defaultRates() map[rateKey]rate {
	return map[rateKey]rate{
		{quote.Local, shipment.Standard}:         {base: 499, perStep: 50, transitDays: 2},
		{quote.Local, shipment.Express}:          {base: 899, perStep: 80, transitDays: 1},
		{quote.Local, shipment.Overnight}:        {base: 1499, perStep: 120, transitDays: 1},
		{quote.Domestic, shipment.Standard}:      {base: 799, perStep: 90, transitDays: 4},
		{quote.Domestic, shipment.Express}:       {base: 1299, perStep: 140, transitDays: 2},
		{quote.Domestic, shipment.Overnight}:     {base: 2199, perStep: 200, transitDays: 1},
		{quote.International, shipment.Standard}: {base: 1999, perStep: 250, transitDays: 10},
		{quote.International, shipment.Express}:  {base: 3499, perStep: 400, transitDays: 5},
	}
}

// QuoteCalculator prices a parcel over a route from a fixed rate table.
//
// Pricing rules:
//   - chargeable weight is the larger of actual and volumetric weight, rounded
//     up to the next 500 g step
//   - freight is the zone/service base rate plus a per-step rate for every
//     started step
//   - fuel surcharge is 8 % of freight, rounded half up
//   - insurance is 1 % of the declared value above 100.00, rounded up
//
// Example usage:
//
//	calc := services.NewQuoteCalculator("USD")
//	q, err := calc.Calculate(origin, destination, parcel, shipment.Express, declared)
//	if errors.Is(err, services.ErrServiceNotOffered) {
//	    // e.g. overnight international
//	}
type QuoteCalculator struct {
	currency string
	rates    map[rateKey]rate
}

// NewQuoteCalculator creates a calculator quoting in the given ISO-4217 currency.
func NewQuoteCalculator(currency string) QuoteCalculator {
	return QuoteCalculator{currency: currency, rates: defaultRates()}
}

func (c QuoteCalculator) Currency() string {
	return c.currency
}

// Calculate prices the parcel.
//
// Parameters:
//   - origin, destination: routing endpoints, they decide the zone
//   - parcel: a validated parcel (weight and dimensions are range checked by it)
//   - level: requested service level
//   - declared: declared value in the calculator's currency
//
// Returns:
//   - quote.Quote: the priced offer
//   - error: validation errors, or ErrServiceNotOffered
func (c QuoteCalculator) Calculate(
	origin, destination quote.Endpoint,
	parcel shipment.Parcel,
	level shipment.ServiceLevel,
	declared kernel.Money,
) (quote.Quote, error) {
	if err := errors.Join(
		origin.Validate(),
		destination.Validate(),
		parcel.Validate(),
		level.Validate(),
		declared.Validate(),
	); err != nil {
		return quote.Quote{}, err
	}
	if declared.Currency() != c.currency {
		return quote.Quote{}, errs.NewValueIsInvalidErrorWithCause("declared value",
			fmt.Errorf("expected %s, got %s", c.currency, declared.Currency()))
	}

	zone := quote.ZoneOf(origin, destination)
	r, ok := c.rates[rateKey{zone: zone, level: level}]
	if !ok {
		return quote.Quote{}, errs.NewValueIsInvalidErrorWithCause("service level",
			fmt.Errorf("%w: %s is not available for %s shipments", ErrServiceNotOffered, level, zone))
	}

	steps := ceilDiv(int64(parcel.ChargeableGrams()), WeightStepGrams)

	freight, err := kernel.NewMoney(r.base+r.perStep*steps, c.currency)
	if err != nil {
		return quote.Quote{}, err
	}
	fuel, err := freight.BasisPoints(FuelSurchargeBP)
	if err != nil {
		return quote.Quote{}, err
	}
	insurance, err := kernel.NewMoney(insurancePremium(declared.Amount()), c.currency)
	if err != nil {
		return quote.Quote{}, err
	}
	total, err := freight.Add(fuel)
	if err != nil {
		return quote.Quote{}, err
	}
	if total, err = total.Add(insurance); err != nil {
		return quote.Quote{}, err
	}

	return quote.Quote{
		Zone:            zone,
		ServiceLevel:    level,
		ChargeableGrams: int(steps) * WeightStepGrams,
		Freight:         freight,
		FuelSurcharge:   fuel,
		Insurance:       insurance,
		Total:           total,
		TransitDays:     r.transitDays,
	}, nil
}

func insurancePremium(declared int64) int64 {
	excess := declared - InsuranceFreeAmount
	if excess <= 0 {
		return 0
	}
	return ceilDiv(excess*InsuranceRatePercent, 100)
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
