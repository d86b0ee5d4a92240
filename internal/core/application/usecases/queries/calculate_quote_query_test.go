package queries_test

import (
	"context"
	"testing"
	"time"

	"parcelmybox/internal/core/application/usecases/queries"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/quote"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuoteQuery(
	t *testing.T,
	originCountry, originPostal, destCountry, destPostal string,
	level shipment.ServiceLevel,
) queries.CalculateQuoteQuery {
	t.Helper()
	origin, err := quote.NewEndpoint(originCountry, originPostal)
	require.NoError(t, err)
	destination, err := quote.NewEndpoint(destCountry, destPostal)
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(1200, 10, 10, 10)
	require.NoError(t, err)
	declared, err := kernel.NewMoney(0, "USD")
	require.NoError(t, err)

	query, err := queries.NewCalculateQuoteQuery(origin, destination, parcel, level, declared)
	require.NoError(t, err)
	return query
}

func TestCalculateQuoteQueryHandler_LocalStandard(t *testing.T) {
	// Given
	handler := queries.NewCalculateQuoteQueryHandler(services.NewQuoteCalculator("USD"))
	query := newQuoteQuery(t, "US", "02108", "US", "02110", shipment.Standard)

	// When
	view, err := handler.Handle(context.Background(), query)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "local", view.Zone)
	assert.Equal(t, "standard", view.ServiceLevel)
	assert.Equal(t, 1500, view.ChargeableGrams)
	assert.Equal(t, int64(649), view.Freight.Amount)
	assert.Equal(t, int64(52), view.FuelSurcharge.Amount)
	assert.Equal(t, int64(0), view.Insurance.Amount)
	assert.Equal(t, int64(701), view.Total.Amount)
	assert.Equal(t, "7.01", view.Total.Display)
	assert.Equal(t, 2, view.TransitDays)
	assert.Equal(t, kernel.DateOf(time.Now()).AddDate(0, 0, 2).Format(time.DateOnly), view.EstimatedDelivery)
}

func TestCalculateQuoteQueryHandler_OvernightInternational_ReturnsError(t *testing.T) {
	handler := queries.NewCalculateQuoteQueryHandler(services.NewQuoteCalculator("USD"))
	query := newQuoteQuery(t, "US", "02108", "DE", "10115", shipment.Overnight)

	_, err := handler.Handle(context.Background(), query)

	require.ErrorIs(t, err, services.ErrServiceNotOffered)
}

func TestCalculateQuoteQuery_NotConstructedViaConstructor(t *testing.T) {
	handler := queries.NewCalculateQuoteQueryHandler(services.NewQuoteCalculator("USD"))

	_, err := handler.Handle(context.Background(), queries.CalculateQuoteQuery{})

	require.ErrorIs(t, err, queries.ErrCalculateQuoteQueryIsNotConstructed)
}
