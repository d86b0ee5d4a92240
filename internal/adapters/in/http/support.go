package http

import (
	"net/http"

	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/application/usecases/queries"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/pickup"
	"parcelmybox/internal/core/domain/model/support"

	"github.com/labstack/echo/v4"
)

// ListPickups handles GET /api/v1/pickup-requests.
func (s *Server) ListPickups(ctx echo.Context, params ListParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	page, err := params.page()
	if err != nil {
		return err
	}
	status, err := parseFilter(params.Status, pickup.ParseStatus, pickup.UnknownStatus)
	if err != nil {
		return err
	}
	query, err := queries.NewListPickupsQuery(actor, status, page)
	if err != nil {
		return err
	}
	pickups, err := s.h.ListPickups.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pickups)
}

// CreatePickup handles POST /api/v1/pickup-requests.
func (s *Server) CreatePickup(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req PickupRequestBody
	if err = ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	addressID, err := kernel.UUIDFromGoogle(req.AddressID)
	if err != nil {
		return err
	}
	shipmentID, err := optionalUUID(req.ShipmentID)
	if err != nil {
		return err
	}
	window, err := pickup.ParseTimeWindow(req.TimeWindow)
	if err != nil {
		return err
	}

	pickupID := kernel.NewUUID()
	cmd, err := commands.NewCreatePickupCommand(
		actor, pickupID, addressID, shipmentID, req.PickupDate.Time, window,
		req.PackageCount, req.TotalWeightGrams, req.Instructions,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreatePickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondPickup(ctx, http.StatusCreated, actor, pickupID)
}

// GetPickup handles GET /api/v1/pickup-requests/{id}.
func (s *Server) GetPickup(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return s.respondPickup(ctx, http.StatusOK, actor, id)
}

// UpdatePickupStatus handles POST /api/v1/pickup-requests/{id}/status (staff).
func (s *Server) UpdatePickupStatus(ctx echo.Context, id kernel.UUID) error {
	var req StatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	status, err := pickup.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	return s.movePickup(ctx, id, status)
}

// CancelPickup handles POST /api/v1/pickup-requests/{id}/cancel.
func (s *Server) CancelPickup(ctx echo.Context, id kernel.UUID) error {
	return s.movePickup(ctx, id, pickup.Cancelled)
}

func (s *Server) movePickup(ctx echo.Context, id kernel.UUID, status pickup.Status) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdatePickupStatusCommand(actor, id, status)
	if err != nil {
		return err
	}
	if err = s.h.UpdatePickupStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondPickup(ctx, http.StatusOK, actor, id)
}

func (s *Server) respondPickup(ctx echo.Context, status int, actor kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetPickupQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetPickup.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, view)
}

// ListSupportRequests handles GET /api/v1/support-requests.
func (s *Server) ListSupportRequests(ctx echo.Context, params ListSupportParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	page, err := params.page()
	if err != nil {
		return err
	}
	status, err := parseFilter(params.Status, support.ParseStatus, support.UnknownStatus)
	if err != nil {
		return err
	}
	assignee, err := optionalUUID(params.Assignee)
	if err != nil {
		return err
	}
	query, err := queries.NewListSupportRequestsQuery(actor, status, assignee, page)
	if err != nil {
		return err
	}
	requests, err := s.h.ListSupport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, requests)
}

// CreateSupportRequest handles POST /api/v1/support-requests. Category and
// priority default to "other" and "normal".
func (s *Server) CreateSupportRequest(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req SupportRequestBody
	if err = ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	shipmentID, err := optionalUUID(req.ShipmentID)
	if err != nil {
		return err
	}
	category, err := parseFilter(&req.Category, support.ParseCategory, support.CategoryOther)
	if err != nil {
		return err
	}
	priority, err := parseFilter(&req.Priority, support.ParsePriority, support.Normal)
	if err != nil {
		return err
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateSupportRequestCommand(
		actor, requestID, shipmentID, req.Subject, req.Description, category, priority, req.Tags,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreateSupport.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondSupport(ctx, http.StatusCreated, actor, requestID)
}

// GetSupportRequest handles GET /api/v1/support-requests/{id}.
func (s *Server) GetSupportRequest(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return s.respondSupport(ctx, http.StatusOK, actor, id)
}

// UpdateSupportStatus handles POST /api/v1/support-requests/{id}/status (staff).
func (s *Server) UpdateSupportStatus(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req StatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	status, err := support.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateSupportStatusCommand(actor, id, status)
	if err != nil {
		return err
	}
	if err = s.h.UpdateSupport.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondSupport(ctx, http.StatusOK, actor, id)
}

// AssignSupportRequest handles POST /api/v1/support-requests/{id}/assign (staff).
func (s *Server) AssignSupportRequest(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req AssignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	assigneeID, err := kernel.UUIDFromGoogle(req.AssigneeID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignSupportRequestCommand(actor, id, assigneeID)
	if err != nil {
		return err
	}
	if err = s.h.AssignSupport.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondSupport(ctx, http.StatusOK, actor, id)
}

func (s *Server) respondSupport(ctx echo.Context, status int, actor kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetSupportRequestQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetSupport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, view)
}
