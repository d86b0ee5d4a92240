package queries

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/quote"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/services"
	"parcelmybox/internal/pkg/guard"
)

var ErrCalculateQuoteQueryIsNotConstructed = errors.New(
	"CalculateQuoteQuery must be created via NewCalculateQuoteQuery constructor",
)

// CalculateQuoteQuery prices a parcel without booking it.
type CalculateQuoteQuery struct {
	origin       quote.Endpoint
	destination  quote.Endpoint
	parcel       shipment.Parcel
	serviceLevel shipment.ServiceLevel
	declared     kernel.Money
	guard        guard.ConstructorGuard
}

func NewCalculateQuoteQuery(
	origin, destination quote.Endpoint,
	parcel shipment.Parcel,
	serviceLevel shipment.ServiceLevel,
	declared kernel.Money,
) (CalculateQuoteQuery, error) {
	if err := errors.Join(
		origin.Validate(),
		destination.Validate(),
		parcel.Validate(),
		serviceLevel.Validate(),
		declared.Validate(),
	); err != nil {
		return CalculateQuoteQuery{}, err
	}
	return CalculateQuoteQuery{
		origin:       origin,
		destination:  destination,
		parcel:       parcel,
		serviceLevel: serviceLevel,
		declared:     declared,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q CalculateQuoteQuery) Validate() error {
	return q.guard.Validate(ErrCalculateQuoteQueryIsNotConstructed)
}

type QuoteView struct {
	Zone              string    `json:"zone"`
	ServiceLevel      string    `json:"service_level"`
	ChargeableGrams   int       `json:"chargeable_grams"`
	Freight           MoneyView `json:"freight"`
	FuelSurcharge     MoneyView `json:"fuel_surcharge"`
	Insurance         MoneyView `json:"insurance"`
	Total             MoneyView `json:"total"`
	TransitDays       int       `json:"transit_days"`
	EstimatedDelivery string    `json:"estimated_delivery"`
}

type CalculateQuoteQueryHandler struct {
	calculator services.QuoteCalculator
	clock      func() time.Time
}

func NewCalculateQuoteQueryHandler(calculator services.QuoteCalculator) CalculateQuoteQueryHandler {
	return CalculateQuoteQueryHandler{calculator: calculator, clock: time.Now}
}

func (h CalculateQuoteQueryHandler) Handle(_ context.Context, query CalculateQuoteQuery) (QuoteView, error) {
	if err := query.Validate(); err != nil {
		return QuoteView{}, err
	}

	q, err := h.calculator.Calculate(query.origin, query.destination, query.parcel, query.serviceLevel, query.declared)
	if err != nil {
		return QuoteView{}, err
	}

	return QuoteView{
		Zone:              q.Zone.String(),
		ServiceLevel:      q.ServiceLevel.String(),
		ChargeableGrams:   q.ChargeableGrams,
		Freight:           moneyViewOf(q.Freight),
		FuelSurcharge:     moneyViewOf(q.FuelSurcharge),
		Insurance:         moneyViewOf(q.Insurance),
		Total:             moneyViewOf(q.Total),
		TransitDays:       q.TransitDays,
		EstimatedDelivery: q.EstimatedDelivery(h.clock()).Format(dateLayout),
	}, nil
}
