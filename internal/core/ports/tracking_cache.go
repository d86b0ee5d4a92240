package ports

import (
	"context"
	"time"
)

// TrackingView is the public projection of a shipment shown on the tracking page.
type TrackingView struct {
	TrackingNumber     string              `json:"tracking_number"`
	Status             string              `json:"status"`
	ServiceLevel       string              `json:"service_level"`
	OriginCity         string              `json:"origin_city"`
	OriginCountry      string              `json:"origin_country"`
	DestinationCity    string              `json:"destination_city"`
	DestinationCountry string              `json:"destination_country"`
	EstimatedDelivery  string              `json:"estimated_delivery"`
	Events             []TrackingViewEvent `json:"events"`
}

type TrackingViewEvent struct {
	Status     string    `json:"status"`
	Location   string    `json:"location"`
	Note       string    `json:"note"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TrackingCache stores public tracking views by tracking number.
// Get returns (nil, nil) on a miss.
type TrackingCache interface {
	Get(ctx context.Context, trackingNumber string) (*TrackingView, error)
	Set(ctx context.Context, view *TrackingView) error
	Invalidate(ctx context.Context, trackingNumber string) error
}
