package queries_test

import (
	"context"
	"testing"

	"parcelmybox/internal/core/application/usecases/queries"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTrackingCache struct {
	mock.Mock
}

func (m *MockTrackingCache) Get(ctx context.Context, trackingNumber string) (*ports.TrackingView, error) {
	args := m.Called(ctx, trackingNumber)
	view, _ := args.Get(0).(*ports.TrackingView)
	return view, args.Error(1)
}

func (m *MockTrackingCache) Set(ctx context.Context, view *ports.TrackingView) error {
	return m.Called(ctx, view).Error(0)
}

func (m *MockTrackingCache) Invalidate(ctx context.Context, trackingNumber string) error {
	return m.Called(ctx, trackingNumber).Error(0)
}

func TestTrackShipmentQueryHandler_SharedLookupIgnoresCallerCancellation(t *testing.T) {
	// Given
	tn := shipment.NewTrackingNumber()
	query, err := queries.NewTrackShipmentQuery(tn)
	require.NoError(t, err)

	cache := new(MockTrackingCache)
	cache.On("Get", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), tn).
		Return(&ports.TrackingView{TrackingNumber: tn, Status: "in_transit"}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When
	view, err := queries.NewTrackShipmentQueryHandler(nil, cache).Handle(ctx, query)

	// Then
	require.NoError(t, err)
	assert.Equal(t, tn, view.TrackingNumber)
	assert.Equal(t, "in_transit", view.Status)
	cache.AssertExpectations(t)
}
