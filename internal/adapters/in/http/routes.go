package http

import (
	"fmt"
	"net/http"

	"parcelmybox/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface is the set of operations served under /api/v1.
type ServerInterface interface {
	Health(ctx echo.Context) error

	Register(ctx echo.Context) error
	IssueToken(ctx echo.Context) error
	RefreshToken(ctx echo.Context) error
	GetMe(ctx echo.Context) error
	ListUsers(ctx echo.Context, params ListUsersParams) error
	DeactivateUser(ctx echo.Context, id kernel.UUID) error
	ListActivity(ctx echo.Context, params PageParams) error

	ListAddresses(ctx echo.Context) error
	CreateAddress(ctx echo.Context) error
	GetAddress(ctx echo.Context, id kernel.UUID) error
	UpdateAddress(ctx echo.Context, id kernel.UUID) error
	DeleteAddress(ctx echo.Context, id kernel.UUID) error

	CalculateQuote(ctx echo.Context) error
	ListShipments(ctx echo.Context, params ListParams) error
	CreateShipment(ctx echo.Context) error
	GetShipment(ctx echo.Context, id kernel.UUID) error
	UpdateShipmentStatus(ctx echo.Context, id kernel.UUID) error
	CancelShipment(ctx echo.Context, id kernel.UUID) error
	GetShippingLabel(ctx echo.Context, id kernel.UUID) error
	TrackShipment(ctx echo.Context, trackingNumber string) error

	ListBills(ctx echo.Context, params ListParams) error
	CreateBill(ctx echo.Context) error
	ExportBills(ctx echo.Context, params ExportBillsParams) error
	GetBill(ctx echo.Context, id kernel.UUID) error
	PayBill(ctx echo.Context, id kernel.UUID) error
	CancelBill(ctx echo.Context, id kernel.UUID) error
	ListInvoices(ctx echo.Context, params ListParams) error
	CreateInvoice(ctx echo.Context) error
	GetInvoice(ctx echo.Context, id kernel.UUID) error
	GetInvoicePDF(ctx echo.Context, id kernel.UUID) error
	PayInvoice(ctx echo.Context, id kernel.UUID) error
	CancelInvoice(ctx echo.Context, id kernel.UUID) error

	ListPickups(ctx echo.Context, params ListParams) error
	CreatePickup(ctx echo.Context) error
	GetPickup(ctx echo.Context, id kernel.UUID) error
	UpdatePickupStatus(ctx echo.Context, id kernel.UUID) error
	CancelPickup(ctx echo.Context, id kernel.UUID) error

	ListSupportRequests(ctx echo.Context, params ListSupportParams) error
	CreateSupportRequest(ctx echo.Context) error
	GetSupportRequest(ctx echo.Context, id kernel.UUID) error
	UpdateSupportStatus(ctx echo.Context, id kernel.UUID) error
	AssignSupportRequest(ctx echo.Context, id kernel.UUID) error
}

// ServerInterfaceWrapper converts path and query parameters before calling
// the typed ServerInterface methods.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) withID(next func(echo.Context, kernel.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var id openapi_types.UUID
		err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
		}
		kid, err := kernel.UUIDFromGoogle(id)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
		}
		return next(ctx, kid)
	}
}

func (w *ServerInterfaceWrapper) TrackShipment(ctx echo.Context) error {
	var trackingNumber string
	err := runtime.BindStyledParameterWithOptions("simple", "trackingNumber", ctx.Param("trackingNumber"), &trackingNumber,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter trackingNumber: %s", err))
	}
	return w.Handler.TrackShipment(ctx, trackingNumber)
}

func (w *ServerInterfaceWrapper) ListUsers(ctx echo.Context) error {
	var params ListUsersParams
	if err := bindPage(ctx, &params.PageParams); err != nil {
		return err
	}
	if err := bindQuery(ctx, "role", &params.Role); err != nil {
		return err
	}
	return w.Handler.ListUsers(ctx, params)
}

func (w *ServerInterfaceWrapper) ListActivity(ctx echo.Context) error {
	var params PageParams
	if err := bindPage(ctx, &params); err != nil {
		return err
	}
	return w.Handler.ListActivity(ctx, params)
}

func (w *ServerInterfaceWrapper) ExportBills(ctx echo.Context) error {
	var params ExportBillsParams
	if err := bindQuery(ctx, "status", &params.Status); err != nil {
		return err
	}
	return w.Handler.ExportBills(ctx, params)
}

func (w *ServerInterfaceWrapper) ListSupportRequests(ctx echo.Context) error {
	var params ListSupportParams
	if err := bindList(ctx, &params.ListParams); err != nil {
		return err
	}
	if err := bindQuery(ctx, "assignee", &params.Assignee); err != nil {
		return err
	}
	return w.Handler.ListSupportRequests(ctx, params)
}

// list adapts the status-filtered list endpoints.
func (w *ServerInterfaceWrapper) list(next func(echo.Context, ListParams) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var params ListParams
		if err := bindList(ctx, &params); err != nil {
			return err
		}
		return next(ctx, params)
	}
}

func bindList(ctx echo.Context, params *ListParams) error {
	if err := bindPage(ctx, &params.PageParams); err != nil {
		return err
	}
	return bindQuery(ctx, "status", &params.Status)
}

func bindPage(ctx echo.Context, params *PageParams) error {
	if err := bindQuery(ctx, "limit", &params.Limit); err != nil {
		return err
	}
	return bindQuery(ctx, "offset", &params.Offset)
}

func bindQuery(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

// RegisterHandlers mounts the API under /api/v1. Routes other than
// registration, login, quotes and tracking go through auth.
func RegisterHandlers(router *echo.Echo, si ServerInterface, auth echo.MiddlewareFunc) {
	w := &ServerInterfaceWrapper{Handler: si}

	router.GET("/health", si.Health)

	api := router.Group("/api/v1")
	api.POST("/auth/register", si.Register)
	api.POST("/auth/token", si.IssueToken)
	api.POST("/auth/token/refresh", si.RefreshToken)
	api.POST("/quotes", si.CalculateQuote)
	api.GET("/track/:trackingNumber", w.TrackShipment)

	p := api.Group("", auth)
	p.GET("/users/me", si.GetMe)
	p.GET("/users", w.ListUsers)
	p.POST("/users/:id/deactivate", w.withID(si.DeactivateUser))
	p.GET("/activity", w.ListActivity)

	p.GET("/addresses", si.ListAddresses)
	p.POST("/addresses", si.CreateAddress)
	p.GET("/addresses/:id", w.withID(si.GetAddress))
	p.PUT("/addresses/:id", w.withID(si.UpdateAddress))
	p.DELETE("/addresses/:id", w.withID(si.DeleteAddress))

	p.GET("/shipments", w.list(si.ListShipments))
	p.POST("/shipments", si.CreateShipment)
	p.GET("/shipments/:id", w.withID(si.GetShipment))
	p.POST("/shipments/:id/status", w.withID(si.UpdateShipmentStatus))
	p.POST("/shipments/:id/cancel", w.withID(si.CancelShipment))
	p.GET("/shipments/:id/label", w.withID(si.GetShippingLabel))

	p.GET("/bills", w.list(si.ListBills))
	p.POST("/bills", si.CreateBill)
	p.GET("/bills/export", w.ExportBills)
	p.GET("/bills/:id", w.withID(si.GetBill))
	p.POST("/bills/:id/pay", w.withID(si.PayBill))
	p.POST("/bills/:id/cancel", w.withID(si.CancelBill))

	p.GET("/invoices", w.list(si.ListInvoices))
	p.POST("/invoices", si.CreateInvoice)
	p.GET("/invoices/:id", w.withID(si.GetInvoice))
	p.GET("/invoices/:id/pdf", w.withID(si.GetInvoicePDF))
	p.POST("/invoices/:id/pay", w.withID(si.PayInvoice))
	p.POST("/invoices/:id/cancel", w.withID(si.CancelInvoice))

	p.GET("/pickup-requests", w.list(si.ListPickups))
	p.POST("/pickup-requests", si.CreatePickup)
	p.GET("/pickup-requests/:id", w.withID(si.GetPickup))
	p.POST("/pickup-requests/:id/status", w.withID(si.UpdatePickupStatus))
	p.POST("/pickup-requests/:id/cancel", w.withID(si.CancelPickup))

	p.GET("/support-requests", w.ListSupportRequests)
	p.POST("/support-requests", si.CreateSupportRequest)
	p.GET("/support-requests/:id", w.withID(si.GetSupportRequest))
	p.POST("/support-requests/:id/status", w.withID(si.UpdateSupportStatus))
	p.POST("/support-requests/:id/assign", w.withID(si.AssignSupportRequest))
}
