package queries

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/ports"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// trackingLoadTimeout bounds a shared lookup, which no longer follows the
// cancellation of the request that started it.
const trackingLoadTimeout = 5 * time.Second

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery is the anonymous tracking-page lookup.
type TrackShipmentQuery struct {
	trackingNumber string
	guard          guard.ConstructorGuard
}

// NewTrackShipmentQuery normalises the tracking number, so "pmb…" and
// " PMB… " find the same shipment.
func NewTrackShipmentQuery(trackingNumber string) (TrackShipmentQuery, error) {
	tn, err := shipment.NormalizeTrackingNumber(trackingNumber)
	if err != nil {
		return TrackShipmentQuery{}, err
	}
	return TrackShipmentQuery{trackingNumber: tn, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

func (q TrackShipmentQuery) TrackingNumber() string { return q.trackingNumber }

// TrackShipmentQueryHandler serves tracking views from the cache and falls
// back to the database. Concurrent misses for one tracking number share a
// single database read. A nil cache disables caching.
type TrackShipmentQueryHandler struct {
	db    *gorm.DB
	cache ports.TrackingCache
	group *singleflight.Group
}

func NewTrackShipmentQueryHandler(db *gorm.DB, cache ports.TrackingCache) TrackShipmentQueryHandler {
	return TrackShipmentQueryHandler{db: db, cache: cache, group: new(singleflight.Group)}
}

func (h TrackShipmentQueryHandler) Handle(ctx context.Context, query TrackShipmentQuery) (ports.TrackingView, error) {
	if err := query.Validate(); err != nil {
		return ports.TrackingView{}, err
	}

	v, err, _ := h.group.Do(query.trackingNumber, func() (any, error) {
		// other callers may be waiting on this lookup
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), trackingLoadTimeout)
		defer cancel()

		if h.cache != nil {
			// cache failures degrade to a database read
			if cached, cacheErr := h.cache.Get(ctx, query.trackingNumber); cacheErr == nil && cached != nil {
				return cached, nil
			}
		}

		view, loadErr := h.load(ctx, query.trackingNumber)
		if loadErr != nil {
			return nil, loadErr
		}
		if h.cache != nil {
			_ = h.cache.Set(ctx, view)
		}
		return view, nil
	})
	if err != nil {
		return ports.TrackingView{}, err
	}

	view, _ := v.(*ports.TrackingView)
	if view == nil {
		return ports.TrackingView{}, errs.NewObjectNotFoundError("tracking number", query.trackingNumber)
	}
	out := *view
	out.Events = append([]ports.TrackingViewEvent(nil), view.Events...)
	return out, nil
}

type trackingRow struct {
	ID                 uuid.UUID
	TrackingNumber     string
	Status             string
	ServiceLevel       string
	OriginCity         string
	OriginCountry      string
	DestinationCity    string
	DestinationCountry string
	EstimatedDelivery  time.Time
}

func (h TrackShipmentQueryHandler) load(ctx context.Context, trackingNumber string) (*ports.TrackingView, error) {
	b := sq.Select("id", "tracking_number", "status", "service_level",
		"sender_city AS origin_city", "sender_country AS origin_country",
		"recipient_city AS destination_city", "recipient_country AS destination_country",
		"estimated_delivery").
		From("shipments").
		Where(sq.Eq{"tracking_number": trackingNumber})

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	var row trackingRow
	result := h.db.WithContext(ctx).Raw(query, args...).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("tracking number", trackingNumber)
	}

	events, err := loadTrackingEvents(ctx, h.db, row.ID)
	if err != nil {
		return nil, err
	}

	view := &ports.TrackingView{
		TrackingNumber:     row.TrackingNumber,
		Status:             row.Status,
		ServiceLevel:       row.ServiceLevel,
		OriginCity:         row.OriginCity,
		OriginCountry:      row.OriginCountry,
		DestinationCity:    row.DestinationCity,
		DestinationCountry: row.DestinationCountry,
		EstimatedDelivery:  row.EstimatedDelivery.Format(dateLayout),
		Events:             make([]ports.TrackingViewEvent, 0, len(events)),
	}
	for _, e := range events {
		view.Events = append(view.Events, ports.TrackingViewEvent(e))
	}
	return view, nil
}
