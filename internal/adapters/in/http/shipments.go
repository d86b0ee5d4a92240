package http

import (
	"net/http"
	"strings"

	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/application/usecases/queries"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// ListAddresses handles GET /api/v1/addresses.
func (s *Server) ListAddresses(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListAddressesQuery(actor)
	if err != nil {
		return err
	}
	addresses, err := s.h.ListAddresses.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, addresses)
}

// CreateAddress handles POST /api/v1/addresses.
func (s *Server) CreateAddress(ctx echo.Context) error {
	actor, cmd, err := s.bindAddress(ctx, kernel.NewUUID())
	if err != nil {
		return err
	}
	if err = s.h.CreateAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondAddress(ctx, http.StatusCreated, actor, cmd.AddressID())
}

// GetAddress handles GET /api/v1/addresses/{id}.
func (s *Server) GetAddress(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return s.respondAddress(ctx, http.StatusOK, actor, id)
}

// UpdateAddress handles PUT /api/v1/addresses/{id}.
func (s *Server) UpdateAddress(ctx echo.Context, id kernel.UUID) error {
	actor, cmd, err := s.bindAddress(ctx, id)
	if err != nil {
		return err
	}
	if err = s.h.UpdateAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondAddress(ctx, http.StatusOK, actor, id)
}

// DeleteAddress handles DELETE /api/v1/addresses/{id}.
func (s *Server) DeleteAddress(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteAddressCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.h.DeleteAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) bindAddress(ctx echo.Context, id kernel.UUID) (kernel.Actor, commands.SaveAddressCommand, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return kernel.Actor{}, commands.SaveAddressCommand{}, err
	}
	var req AddressRequest
	if err = ctx.Bind(&req); err != nil {
		return kernel.Actor{}, commands.SaveAddressCommand{}, badRequest("invalid request body")
	}
	postal, err := req.Address.toDomain()
	if err != nil {
		return kernel.Actor{}, commands.SaveAddressCommand{}, err
	}
	cmd, err := commands.NewSaveAddressCommand(actor, id, req.Label, req.ContactName, req.Phone, postal, req.IsDefault)
	return actor, cmd, err
}

func (s *Server) respondAddress(ctx echo.Context, status int, actor kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetAddressQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetAddress.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, view)
}

// CalculateQuote handles POST /api/v1/quotes. It is public.
func (s *Server) CalculateQuote(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	origin, err := req.Origin.toDomain()
	if err != nil {
		return err
	}
	destination, err := req.Destination.toDomain()
	if err != nil {
		return err
	}
	parcel, err := req.Parcel.toDomain()
	if err != nil {
		return err
	}
	level, err := shipment.ParseServiceLevel(req.ServiceLevel)
	if err != nil {
		return err
	}
	declared, err := s.optionalMoney(req.DeclaredValue)
	if err != nil {
		return err
	}

	query, err := queries.NewCalculateQuoteQuery(origin, destination, parcel, level, declared)
	if err != nil {
		return err
	}
	view, err := s.h.CalculateQuote.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

// ListShipments handles GET /api/v1/shipments.
func (s *Server) ListShipments(ctx echo.Context, params ListParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	page, err := params.page()
	if err != nil {
		return err
	}
	status, err := parseFilter(params.Status, shipment.ParseStatus, shipment.UnknownStatus)
	if err != nil {
		return err
	}
	query, err := queries.NewListShipmentsQuery(actor, status, page)
	if err != nil {
		return err
	}
	shipments, err := s.h.ListShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, shipments)
}

// CreateShipment handles POST /api/v1/shipments. The shipping cost is billed
// to the caller in the same transaction.
func (s *Server) CreateShipment(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req ShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	sender, err := req.Sender.toDomain("sender")
	if err != nil {
		return err
	}
	recipient, err := req.Recipient.toDomain("recipient")
	if err != nil {
		return err
	}
	parcel, err := req.Parcel.toDomain()
	if err != nil {
		return err
	}
	level, err := shipment.ParseServiceLevel(req.ServiceLevel)
	if err != nil {
		return err
	}
	declared, err := s.optionalMoney(req.DeclaredValue)
	if err != nil {
		return err
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(
		actor, shipmentID, kernel.NewUUID(), sender, recipient, parcel, level, declared, req.Description,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreateShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondShipment(ctx, http.StatusCreated, actor, shipmentID)
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return s.respondShipment(ctx, http.StatusOK, actor, id)
}

// UpdateShipmentStatus handles POST /api/v1/shipments/{id}/status (staff).
func (s *Server) UpdateShipmentStatus(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req ShipmentStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	status, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(actor, id, status, req.Location, req.Note)
	if err != nil {
		return err
	}
	if err = s.h.UpdateShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondShipment(ctx, http.StatusOK, actor, id)
}

// CancelShipment handles POST /api/v1/shipments/{id}/cancel.
func (s *Server) CancelShipment(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req CancelRequest
	if ctx.Request().ContentLength != 0 {
		if err = ctx.Bind(&req); err != nil {
			return badRequest("invalid request body")
		}
	}

	cmd, err := commands.NewCancelShipmentCommand(actor, id, req.Reason)
	if err != nil {
		return err
	}
	if err = s.h.CancelShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondShipment(ctx, http.StatusOK, actor, id)
}

// GetShippingLabel handles GET /api/v1/shipments/{id}/label.
func (s *Server) GetShippingLabel(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetShippingLabelQuery(actor, id)
	if err != nil {
		return err
	}
	doc, err := s.h.ShippingLabel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return attachment(ctx, doc)
}

// TrackShipment handles GET /api/v1/track/{trackingNumber}. It is public.
func (s *Server) TrackShipment(ctx echo.Context, trackingNumber string) error {
	query, err := queries.NewTrackShipmentQuery(trackingNumber)
	if err != nil {
		return err
	}
	view, err := s.h.TrackShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, view)
}

func (s *Server) respondShipment(ctx echo.Context, status int, actor kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetShipmentQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, view)
}

// optionalMoney reads an optional amount; blank is zero.
func (s *Server) optionalMoney(value string) (kernel.Money, error) {
	if strings.TrimSpace(value) == "" {
		return kernel.NewMoney(0, s.currency)
	}
	return kernel.ParseMoney(value, s.currency)
}

func attachment(ctx echo.Context, doc queries.Document) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
	return ctx.Blob(http.StatusOK, doc.ContentType, doc.Content)
}
