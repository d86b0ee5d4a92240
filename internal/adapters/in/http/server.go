package http

import (
	"net/http"
	"time"

	"parcelmybox/internal/auth"
	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/application/usecases/queries"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/user"

	"github.com/labstack/echo/v4"
)

// Tokens issues and validates the JWT pairs handed out by /auth/token.
type Tokens interface {
	TokenParser
	ParseRefresh(token string) (auth.Identity, error)
	Issue(id kernel.UUID, role user.Role) (auth.TokenPair, error)
}

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	// Command handlers
	RegisterUser       commands.RegisterUserCommandHandler
	AuthenticateUser   commands.AuthenticateUserCommandHandler
	DeactivateUser     commands.DeactivateUserCommandHandler
	CreateAddress      commands.CreateAddressCommandHandler
	UpdateAddress      commands.UpdateAddressCommandHandler
	DeleteAddress      commands.DeleteAddressCommandHandler
	CreateShipment     commands.CreateShipmentCommandHandler
	UpdateShipment     commands.UpdateShipmentStatusCommandHandler
	CancelShipment     commands.CancelShipmentCommandHandler
	CreateBill         commands.CreateBillCommandHandler
	PayBill            commands.PayBillCommandHandler
	CancelBill         commands.CancelBillCommandHandler
	CreateInvoice      commands.CreateInvoiceCommandHandler
	PayInvoice         commands.PayInvoiceCommandHandler
	CancelInvoice      commands.CancelInvoiceCommandHandler
	CreatePickup       commands.CreatePickupCommandHandler
	UpdatePickupStatus commands.UpdatePickupStatusCommandHandler
	CreateSupport      commands.CreateSupportRequestCommandHandler
	UpdateSupport      commands.UpdateSupportStatusCommandHandler
	AssignSupport      commands.AssignSupportRequestCommandHandler

	// Query handlers
	GetUser        queries.GetUserQueryHandler
	ListUsers      queries.ListUsersQueryHandler
	GetAddress     queries.GetAddressQueryHandler
	ListAddresses  queries.ListAddressesQueryHandler
	CalculateQuote queries.CalculateQuoteQueryHandler
	GetShipment    queries.GetShipmentQueryHandler
	ListShipments  queries.ListShipmentsQueryHandler
	TrackShipment  queries.TrackShipmentQueryHandler
	ShippingLabel  queries.GetShippingLabelQueryHandler
	GetBill        queries.GetBillQueryHandler
	ListBills      queries.ListBillsQueryHandler
	ExportBills    queries.ExportBillsQueryHandler
	GetInvoice     queries.GetInvoiceQueryHandler
	ListInvoices   queries.ListInvoicesQueryHandler
	InvoicePDF     queries.GetInvoicePDFQueryHandler
	GetPickup      queries.GetPickupQueryHandler
	ListPickups    queries.ListPickupsQueryHandler
	GetSupport     queries.GetSupportRequestQueryHandler
	ListSupport    queries.ListSupportRequestsQueryHandler
	ListActivity   queries.ListActivityQueryHandler
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	h        Handlers
	tokens   Tokens
	currency string
	now      func() time.Time
}

// NewServer creates the HTTP server. Money in request bodies is read in currency.
func NewServer(h Handlers, tokens Tokens, currency string) *Server {
	return &Server{h: h, tokens: tokens, currency: currency, now: time.Now}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Register handles POST /api/v1/auth/register. Self-registration always
// creates a customer.
func (s *Server) Register(ctx echo.Context) error {
	var req RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	userID := kernel.NewUUID()
	cmd, err := commands.NewRegisterUserCommand(
		userID, string(req.Email), req.Username, req.Password, req.FullName, req.Phone, user.Customer,
	)
	if err != nil {
		return err
	}
	if err = s.h.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	actor, err := kernel.NewActor(userID, false)
	if err != nil {
		return err
	}
	return s.respondUser(ctx, http.StatusCreated, actor, userID)
}

// IssueToken handles POST /api/v1/auth/token.
func (s *Server) IssueToken(ctx echo.Context) error {
	var req TokenRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	cmd, err := commands.NewAuthenticateUserCommand(req.login(), req.Password)
	if err != nil {
		return err
	}
	u, err := s.h.AuthenticateUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	pair, err := s.tokens.Issue(u.ID(), u.Role())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pair)
}

// RefreshToken handles POST /api/v1/auth/token/refresh. The account is
// re-read so a deactivated user cannot keep refreshing.
func (s *Server) RefreshToken(ctx echo.Context) error {
	var req RefreshRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	identity, err := s.tokens.ParseRefresh(req.Refresh)
	if err != nil {
		return errUnauthorized
	}
	actor, err := identity.Actor()
	if err != nil {
		return errUnauthorized
	}
	query, err := queries.NewGetUserQuery(actor, identity.UserID)
	if err != nil {
		return err
	}
	view, err := s.h.GetUser.Handle(ctx.Request().Context(), query)
	if err != nil || !view.Active {
		return errUnauthorized
	}
	role, err := user.ParseRole(view.Role)
	if err != nil {
		return err
	}

	pair, err := s.tokens.Issue(identity.UserID, role)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, pair)
}

// GetMe handles GET /api/v1/users/me.
func (s *Server) GetMe(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return s.respondUser(ctx, http.StatusOK, actor, actor.ID())
}

// ListUsers handles GET /api/v1/users (staff).
func (s *Server) ListUsers(ctx echo.Context, params ListUsersParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	page, err := params.page()
	if err != nil {
		return err
	}
	role, err := parseFilter(params.Role, user.ParseRole, user.UnknownRole)
	if err != nil {
		return err
	}

	query, err := queries.NewListUsersQuery(actor, role, page)
	if err != nil {
		return err
	}
	users, err := s.h.ListUsers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}

// DeactivateUser handles POST /api/v1/users/{id}/deactivate (staff).
func (s *Server) DeactivateUser(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeactivateUserCommand(actor, id)
	if err != nil {
		return err
	}
	if err = s.h.DeactivateUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondUser(ctx, http.StatusOK, actor, id)
}

func (s *Server) respondUser(ctx echo.Context, status int, actor kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetUserQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetUser.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, view)
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}

// parseFilter reads an optional enum query parameter; absent means no filter.
func parseFilter[T any](value *string, parse func(string) (T, error), unset T) (T, error) {
	if value == nil || *value == "" {
		return unset, nil
	}
	return parse(*value)
}

// ListActivity handles GET /api/v1/activity.
func (s *Server) ListActivity(ctx echo.Context, params PageParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	page, err := params.page()
	if err != nil {
		return err
	}
	query, err := queries.NewListActivityQuery(actor, page)
	if err != nil {
		return err
	}
	entries, err := s.h.ListActivity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}
