package queries

import (
	"context"
	"errors"
	"time"

	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGetBillQueryIsNotConstructed      = errors.New("GetBillQuery must be created via NewGetBillQuery constructor")
	ErrListBillsQueryIsNotConstructed    = errors.New("ListBillsQuery must be created via NewListBillsQuery constructor")
	ErrExportBillsQueryIsNotConstructed  = errors.New("ExportBillsQuery must be created via NewExportBillsQuery constructor")
	ErrGetInvoiceQueryIsNotConstructed   = errors.New("GetInvoiceQuery must be created via NewGetInvoiceQuery constructor")
	ErrListInvoicesQueryIsNotConstructed = errors.New(
		"ListInvoicesQuery must be created via NewListInvoicesQuery constructor",
	)
)

type BillView struct {
	ID          string     `json:"id"`
	Number      string     `json:"number"`
	OwnerID     string     `json:"owner_id"`
	ShipmentID  *string    `json:"shipment_id"`
	Description string     `json:"description"`
	Amount      MoneyView  `json:"amount"`
	Status      string     `json:"status"`
	DueDate     string     `json:"due_date"`
	IsOverdue   bool       `json:"is_overdue"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type billRow struct {
	ID          uuid.UUID
	Number      string
	OwnerID     uuid.UUID
	ShipmentID  *uuid.UUID
	Description string
	Amount      int64
	Currency    string
	Status      string
	DueDate     time.Time
	PaidAt      *time.Time
	CreatedAt   time.Time
}

func (r billRow) view(now time.Time) BillView {
	return BillView{
		ID:          r.ID.String(),
		Number:      r.Number,
		OwnerID:     r.OwnerID.String(),
		ShipmentID:  optionalID(r.ShipmentID),
		Description: r.Description,
		Amount:      moneyView(r.Amount, r.Currency),
		Status:      r.Status,
		DueDate:     r.DueDate.Format(dateLayout),
		IsOverdue:   isOverdue(r.Status, r.DueDate, now),
		PaidAt:      utcPtr(r.PaidAt),
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

// isOverdue mirrors the domain rule on raw columns: still open and due
// before today.
func isOverdue(status string, due, now time.Time) bool {
	s, err := billing.ParseStatus(status)
	if err != nil {
		return false
	}
	return s.IsOpen() && kernel.IsBeforeDay(due, now)
}

func selectBills() sq.SelectBuilder {
	return sq.Select("id", "number", "owner_id", "shipment_id", "description", "amount", "currency",
		"status", "due_date", "paid_at", "created_at").
		From("bills")
}

// statusFilter validates an optional billing status filter.
func statusFilter(status billing.Status) error {
	if status == billing.UnknownStatus {
		return nil
	}
	return status.Validate()
}

// GetBillQuery reads one bill visible to the actor.
type GetBillQuery struct {
	actor  kernel.Actor
	billID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewGetBillQuery(actor kernel.Actor, billID kernel.UUID) (GetBillQuery, error) {
	if err := errors.Join(actor.Validate(), billID.Validate()); err != nil {
		return GetBillQuery{}, err
	}
	return GetBillQuery{actor: actor, billID: billID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBillQuery) Validate() error {
	return q.guard.Validate(ErrGetBillQueryIsNotConstructed)
}

type GetBillQueryHandler struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewGetBillQueryHandler(db *gorm.DB) GetBillQueryHandler {
	return GetBillQueryHandler{db: db, clock: time.Now}
}

func (h GetBillQueryHandler) Handle(ctx context.Context, query GetBillQuery) (BillView, error) {
	if err := query.Validate(); err != nil {
		return BillView{}, err
	}

	var row billRow
	b := scopeToActor(selectBills().Where(sq.Eq{"id": query.billID.Bytes()}), "owner_id", query.actor)
	if err := scanOne(ctx, h.db, b, &row, "bill", query.billID); err != nil {
		return BillView{}, err
	}
	return row.view(h.clock()), nil
}

// ListBillsQuery lists bills newest first.
type ListBillsQuery struct {
	actor  kernel.Actor
	status billing.Status
	page   Page
	guard  guard.ConstructorGuard
}

// NewListBillsQuery builds the query; pass billing.UnknownStatus for every status.
func NewListBillsQuery(actor kernel.Actor, status billing.Status, page Page) (ListBillsQuery, error) {
	if err := errors.Join(actor.Validate(), page.Validate(), statusFilter(status)); err != nil {
		return ListBillsQuery{}, err
	}
	return ListBillsQuery{actor: actor, status: status, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBillsQuery) Validate() error {
	return q.guard.Validate(ErrListBillsQueryIsNotConstructed)
}

type ListBillsQueryHandler struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewListBillsQueryHandler(db *gorm.DB) ListBillsQueryHandler {
	return ListBillsQueryHandler{db: db, clock: time.Now}
}

func (h ListBillsQueryHandler) Handle(ctx context.Context, query ListBillsQuery) ([]BillView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := scopeToActor(selectBills(), "owner_id", query.actor).OrderBy("created_at DESC", "number")
	if query.status != billing.UnknownStatus {
		b = b.Where(sq.Eq{"status": query.status.String()})
	}

	var rows []billRow
	if err := scan(ctx, h.db, query.page.apply(b), &rows); err != nil {
		return nil, err
	}

	now := h.clock()
	bills := make([]BillView, 0, len(rows))
	for _, r := range rows {
		bills = append(bills, r.view(now))
	}
	return bills, nil
}

// BillExportRow is one line of the staff billing export.
type BillExportRow struct {
	Number         string
	OwnerUsername  string
	OwnerEmail     string
	TrackingNumber string
	Description    string
	Amount         string
	Currency       string
	Status         string
	DueDate        string
	PaidAt         string
	CreatedAt      string
}

type billExportRow struct {
	Number         string
	Username       string
	Email          string
	TrackingNumber *string
	Description    string
	Amount         int64
	Currency       string
	Status         string
	DueDate        time.Time
	PaidAt         *time.Time
	CreatedAt      time.Time
}

// ExportBillsQuery selects every bill, optionally of one status, for the
// staff CSV export. It is not paginated.
type ExportBillsQuery struct {
	status billing.Status
	guard  guard.ConstructorGuard
}

func NewExportBillsQuery(actor kernel.Actor, status billing.Status) (ExportBillsQuery, error) {
	if err := errors.Join(actor.Validate(), statusFilter(status)); err != nil {
		return ExportBillsQuery{}, err
	}
	if !actor.IsStaff() {
		return ExportBillsQuery{}, errs.NewAccessDeniedError("export bills")
	}
	return ExportBillsQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

func (q ExportBillsQuery) Validate() error {
	return q.guard.Validate(ErrExportBillsQueryIsNotConstructed)
}

type ExportBillsQueryHandler struct {
	db *gorm.DB
}

func NewExportBillsQueryHandler(db *gorm.DB) ExportBillsQueryHandler {
	return ExportBillsQueryHandler{db: db}
}

func (h ExportBillsQueryHandler) Handle(ctx context.Context, query ExportBillsQuery) ([]BillExportRow, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := sq.Select("b.number", "u.username", "u.email", "s.tracking_number", "b.description", "b.amount",
		"b.currency", "b.status", "b.due_date", "b.paid_at", "b.created_at").
		From("bills b").
		Join("users u ON u.id = b.owner_id").
		LeftJoin("shipments s ON s.id = b.shipment_id").
		OrderBy("b.created_at", "b.number")
	if query.status != billing.UnknownStatus {
		b = b.Where(sq.Eq{"b.status": query.status.String()})
	}

	var rows []billExportRow
	if err := scan(ctx, h.db, b, &rows); err != nil {
		return nil, err
	}

	out := make([]BillExportRow, 0, len(rows))
	for _, r := range rows {
		row := BillExportRow{
			Number:        r.Number,
			OwnerUsername: r.Username,
			OwnerEmail:    r.Email,
			Description:   r.Description,
			Amount:        moneyView(r.Amount, r.Currency).Display,
			Currency:      r.Currency,
			Status:        r.Status,
			DueDate:       r.DueDate.Format(dateLayout),
			CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if r.TrackingNumber != nil {
			row.TrackingNumber = *r.TrackingNumber
		}
		if r.PaidAt != nil {
			row.PaidAt = r.PaidAt.UTC().Format(time.RFC3339)
		}
		out = append(out, row)
	}
	return out, nil
}

type InvoiceLineView struct {
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   MoneyView `json:"unit_price"`
	Total       MoneyView `json:"total"`
}

// InvoiceView carries totals computed with the same rounding as the domain.
// Lines are only filled in by GetInvoiceQuery.
type InvoiceView struct {
	ID        string            `json:"id"`
	Number    string            `json:"number"`
	OwnerID   string            `json:"owner_id"`
	IssueDate string            `json:"issue_date"`
	DueDate   string            `json:"due_date"`
	TaxRateBP int               `json:"tax_rate_bp"`
	Notes     string            `json:"notes"`
	Status    string            `json:"status"`
	IsOverdue bool              `json:"is_overdue"`
	Subtotal  MoneyView         `json:"subtotal"`
	Tax       MoneyView         `json:"tax"`
	Total     MoneyView         `json:"total"`
	Lines     []InvoiceLineView `json:"lines,omitempty"`
	PaidAt    *time.Time        `json:"paid_at"`
	CreatedAt time.Time         `json:"created_at"`
}

type invoiceRow struct {
	ID        uuid.UUID
	Number    string
	OwnerID   uuid.UUID
	IssueDate time.Time
	DueDate   time.Time
	TaxRateBP int `gorm:"column:tax_rate_bp"`
	Notes     string
	Currency  string
	Status    string
	Subtotal  int64
	PaidAt    *time.Time
	CreatedAt time.Time
}

func (r invoiceRow) view(now time.Time) InvoiceView {
	subtotal := moneyView(r.Subtotal, r.Currency)
	tax := subtotal
	total := subtotal
	if m, err := kernel.NewMoney(r.Subtotal, r.Currency); err == nil {
		if t, taxErr := m.BasisPoints(int64(r.TaxRateBP)); taxErr == nil {
			tax = moneyViewOf(t)
			if sum, sumErr := m.Add(t); sumErr == nil {
				total = moneyViewOf(sum)
			}
		}
	}

	return InvoiceView{
		ID:        r.ID.String(),
		Number:    r.Number,
		OwnerID:   r.OwnerID.String(),
		IssueDate: r.IssueDate.Format(dateLayout),
		DueDate:   r.DueDate.Format(dateLayout),
		TaxRateBP: r.TaxRateBP,
		Notes:     r.Notes,
		Status:    r.Status,
		IsOverdue: isOverdue(r.Status, r.DueDate, now),
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
		PaidAt:    utcPtr(r.PaidAt),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type invoiceLineRow struct {
	Description string
	Quantity    int
	UnitPrice   int64
}

func selectInvoices() sq.SelectBuilder {
	subtotal := "(SELECT COALESCE(SUM(l.quantity * l.unit_price), 0) FROM invoice_lines l " +
		"WHERE l.invoice_id = invoices.id) AS subtotal"
	return sq.Select("id", "number", "owner_id", "issue_date", "due_date", "tax_rate_bp", "notes", "currency",
		"status", subtotal, "paid_at", "created_at").
		From("invoices")
}

// GetInvoiceQuery reads one invoice with its lines.
type GetInvoiceQuery struct {
	actor     kernel.Actor
	invoiceID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetInvoiceQuery(actor kernel.Actor, invoiceID kernel.UUID) (GetInvoiceQuery, error) {
	if err := errors.Join(actor.Validate(), invoiceID.Validate()); err != nil {
		return GetInvoiceQuery{}, err
	}
	return GetInvoiceQuery{actor: actor, invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetInvoiceQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoiceQueryIsNotConstructed)
}

type GetInvoiceQueryHandler struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewGetInvoiceQueryHandler(db *gorm.DB) GetInvoiceQueryHandler {
	return GetInvoiceQueryHandler{db: db, clock: time.Now}
}

func (h GetInvoiceQueryHandler) Handle(ctx context.Context, query GetInvoiceQuery) (InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return InvoiceView{}, err
	}

	var row invoiceRow
	b := scopeToActor(selectInvoices().Where(sq.Eq{"id": query.invoiceID.Bytes()}), "owner_id", query.actor)
	if err := scanOne(ctx, h.db, b, &row, "invoice", query.invoiceID); err != nil {
		return InvoiceView{}, err
	}

	lines := sq.Select("description", "quantity", "unit_price").
		From("invoice_lines").
		Where(sq.Eq{"invoice_id": row.ID}).
		OrderBy("position")
	var lineRows []invoiceLineRow
	if err := scan(ctx, h.db, lines, &lineRows); err != nil {
		return InvoiceView{}, err
	}

	view := row.view(h.clock())
	view.Lines = make([]InvoiceLineView, 0, len(lineRows))
	for _, l := range lineRows {
		view.Lines = append(view.Lines, InvoiceLineView{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   moneyView(l.UnitPrice, row.Currency),
			Total:       moneyView(l.UnitPrice*int64(l.Quantity), row.Currency),
		})
	}
	return view, nil
}

// ListInvoicesQuery lists invoices newest first.
type ListInvoicesQuery struct {
	actor  kernel.Actor
	status billing.Status
	page   Page
	guard  guard.ConstructorGuard
}

func NewListInvoicesQuery(actor kernel.Actor, status billing.Status, page Page) (ListInvoicesQuery, error) {
	if err := errors.Join(actor.Validate(), page.Validate(), statusFilter(status)); err != nil {
		return ListInvoicesQuery{}, err
	}
	return ListInvoicesQuery{actor: actor, status: status, page: page, guard: guard.NewConstructorGuard()}, nil
}

func (q ListInvoicesQuery) Validate() error {
	return q.guard.Validate(ErrListInvoicesQueryIsNotConstructed)
}

type ListInvoicesQueryHandler struct {
	db    *gorm.DB
	clock func() time.Time
}

func NewListInvoicesQueryHandler(db *gorm.DB) ListInvoicesQueryHandler {
	return ListInvoicesQueryHandler{db: db, clock: time.Now}
}

func (h ListInvoicesQueryHandler) Handle(ctx context.Context, query ListInvoicesQuery) ([]InvoiceView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	b := scopeToActor(selectInvoices(), "owner_id", query.actor).OrderBy("created_at DESC", "number")
	if query.status != billing.UnknownStatus {
		b = b.Where(sq.Eq{"status": query.status.String()})
	}

	var rows []invoiceRow
	if err := scan(ctx, h.db, query.page.apply(b), &rows); err != nil {
		return nil, err
	}

	now := h.clock()
	invoices := make([]InvoiceView, 0, len(rows))
	for _, r := range rows {
		invoices = append(invoices, r.view(now))
	}
	return invoices, nil
}
