package http

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"

	"parcelmybox/internal/core/application/usecases/commands"
	"parcelmybox/internal/core/application/usecases/queries"
	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

var billExportHeader = []string{
	"number", "owner_username", "owner_email", "tracking_number", "description",
	"amount", "currency", "status", "due_date", "paid_at", "created_at",
}

// ListBills handles GET /api/v1/bills.
func (s *Server) ListBills(ctx echo.Context, params ListParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	page, err := params.page()
	if err != nil {
		return err
	}
	status, err := parseFilter(params.Status, billing.ParseStatus, billing.UnknownStatus)
	if err != nil {
		return err
	}
	query, err := queries.NewListBillsQuery(actor, status, page)
	if err != nil {
		return err
	}
	bills, err := s.h.ListBills.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, bills)
}

// CreateBill handles POST /api/v1/bills (staff).
func (s *Server) CreateBill(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req BillRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	ownerID, err := kernel.UUIDFromGoogle(req.OwnerID)
	if err != nil {
		return err
	}
	shipmentID, err := optionalUUID(req.ShipmentID)
	if err != nil {
		return err
	}
	amount, err := kernel.ParseMoney(req.Amount, s.currency)
	if err != nil {
		return err
	}

	billID := kernel.NewUUID()
	cmd, err := commands.NewCreateBillCommand(actor, billID, ownerID, shipmentID, req.Description, amount, req.DueDate.Time)
	if err != nil {
		return err
	}
	if err = s.h.CreateBill.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondBill(ctx, http.StatusCreated, actor, billID)
}

// GetBill handles GET /api/v1/bills/{id}.
func (s *Server) GetBill(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return s.respondBill(ctx, http.StatusOK, actor, id)
}

// PayBill handles POST /api/v1/bills/{id}/pay.
func (s *Server) PayBill(ctx echo.Context, id kernel.UUID) error {
	return s.billTransition(ctx, id, s.h.PayBill.Handle)
}

// CancelBill handles POST /api/v1/bills/{id}/cancel (staff).
func (s *Server) CancelBill(ctx echo.Context, id kernel.UUID) error {
	return s.billTransition(ctx, id, s.h.CancelBill.Handle)
}

// ExportBills handles GET /api/v1/bills/export (staff) as CSV.
func (s *Server) ExportBills(ctx echo.Context, params ExportBillsParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	status, err := parseFilter(params.Status, billing.ParseStatus, billing.UnknownStatus)
	if err != nil {
		return err
	}
	query, err := queries.NewExportBillsQuery(actor, status)
	if err != nil {
		return err
	}
	rows, err := s.h.ExportBills.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="bills-%s.csv"`, s.now().UTC().Format("20060102")))
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err = w.Write(billExportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.Number, r.OwnerUsername, r.OwnerEmail, r.TrackingNumber, r.Description,
			r.Amount, r.Currency, r.Status, r.DueDate, r.PaidAt, r.CreatedAt,
		}
		if err = w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ListInvoices handles GET /api/v1/invoices.
func (s *Server) ListInvoices(ctx echo.Context, params ListParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	page, err := params.page()
	if err != nil {
		return err
	}
	status, err := parseFilter(params.Status, billing.ParseStatus, billing.UnknownStatus)
	if err != nil {
		return err
	}
	query, err := queries.NewListInvoicesQuery(actor, status, page)
	if err != nil {
		return err
	}
	invoices, err := s.h.ListInvoices.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, invoices)
}

// CreateInvoice handles POST /api/v1/invoices (staff).
func (s *Server) CreateInvoice(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	var req InvoiceRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}

	ownerID, err := kernel.UUIDFromGoogle(req.OwnerID)
	if err != nil {
		return err
	}
	lines := make([]billing.InvoiceLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		price, err := kernel.ParseMoney(l.UnitPrice, s.currency)
		if err != nil {
			return err
		}
		line, err := billing.NewInvoiceLine(l.Description, l.Quantity, price)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	invoiceID := kernel.NewUUID()
	cmd, err := commands.NewCreateInvoiceCommand(
		actor, invoiceID, ownerID, req.IssueDate.Time, req.DueDate.Time, req.TaxRateBP, req.Notes, lines,
	)
	if err != nil {
		return err
	}
	if err = s.h.CreateInvoice.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondInvoice(ctx, http.StatusCreated, actor, invoiceID)
}

// GetInvoice handles GET /api/v1/invoices/{id}.
func (s *Server) GetInvoice(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	return s.respondInvoice(ctx, http.StatusOK, actor, id)
}

// GetInvoicePDF handles GET /api/v1/invoices/{id}/pdf.
func (s *Server) GetInvoicePDF(ctx echo.Context, id kernel.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetInvoicePDFQuery(actor, id)
	if err != nil {
		return err
	}
	doc, err := s.h.InvoicePDF.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return attachment(ctx, doc)
}

// PayInvoice handles POST /api/v1/invoices/{id}/pay.
func (s *Server) PayInvoice(ctx echo.Context, id kernel.UUID) error {
	return s.invoiceTransition(ctx, id, s.h.PayInvoice.Handle)
}

// CancelInvoice handles POST /api/v1/invoices/{id}/cancel (staff).
func (s *Server) CancelInvoice(ctx echo.Context, id kernel.UUID) error {
	return s.invoiceTransition(ctx, id, s.h.CancelInvoice.Handle)
}

type documentCommandFunc func(ctx context.Context, cmd commands.BillingDocumentCommand) error

func (s *Server) billTransition(ctx echo.Context, id kernel.UUID, handle documentCommandFunc) error {
	actor, err := runDocumentCommand(ctx, id, handle)
	if err != nil {
		return err
	}
	return s.respondBill(ctx, http.StatusOK, actor, id)
}

func (s *Server) invoiceTransition(ctx echo.Context, id kernel.UUID, handle documentCommandFunc) error {
	actor, err := runDocumentCommand(ctx, id, handle)
	if err != nil {
		return err
	}
	return s.respondInvoice(ctx, http.StatusOK, actor, id)
}

func runDocumentCommand(ctx echo.Context, id kernel.UUID, handle documentCommandFunc) (kernel.Actor, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return kernel.Actor{}, err
	}
	cmd, err := commands.NewBillingDocumentCommand(actor, id)
	if err != nil {
		return kernel.Actor{}, err
	}
	return actor, handle(ctx.Request().Context(), cmd)
}

func (s *Server) respondBill(ctx echo.Context, status int, actor kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetBillQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetBill.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, view)
}

func (s *Server) respondInvoice(ctx echo.Context, status int, actor kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetInvoiceQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.h.GetInvoice.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(status, view)
}
