// Package quote holds the result of pricing a parcel over a route.
package quote

import (
	"time"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"
)

// Quote is a priced offer. It is a plain value computed by the quote
// calculator and never persisted on its own.
type Quote struct {
	Zone            Zone
	ServiceLevel    shipment.ServiceLevel
	ChargeableGrams int
	Freight         kernel.Money
	FuelSurcharge   kernel.Money
	Insurance       kernel.Money
	Total           kernel.Money
	TransitDays     int
}

// EstimatedDelivery counts transit days from the booking day.
func (q Quote) EstimatedDelivery(bookedAt time.Time) time.Time {
	return kernel.DateOf(bookedAt).AddDate(0, 0, q.TransitDays)
}
