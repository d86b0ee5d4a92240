package queries

import (
	"context"
	"errors"

	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/ports"
	"parcelmybox/internal/pkg/errs"
	"parcelmybox/internal/pkg/guard"
)

var (
	ErrGetShippingLabelQueryIsNotConstructed = errors.New(
		"GetShippingLabelQuery must be created via NewGetShippingLabelQuery constructor",
	)
	ErrGetInvoicePDFQueryIsNotConstructed = errors.New("GetInvoicePDFQuery must be created via NewGetInvoicePDFQuery constructor")
)

// Document is a rendered file ready to be served.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

const contentTypePDF = "application/pdf"

// GetShippingLabelQuery renders the printable label of a shipment.
type GetShippingLabelQuery struct {
	actor      kernel.Actor
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewGetShippingLabelQuery(actor kernel.Actor, shipmentID kernel.UUID) (GetShippingLabelQuery, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return GetShippingLabelQuery{}, err
	}
	return GetShippingLabelQuery{actor: actor, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShippingLabelQuery) Validate() error {
	return q.guard.Validate(ErrGetShippingLabelQueryIsNotConstructed)
}

// Document queries load whole aggregates through repositories, outside of a
// transaction, and hand them to the renderer.
type GetShippingLabelQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	renderer   ports.DocumentRenderer
}

func NewGetShippingLabelQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	renderer ports.DocumentRenderer,
) GetShippingLabelQueryHandler {
	return GetShippingLabelQueryHandler{uowFactory: uowFactory, renderer: renderer}
}

func (h GetShippingLabelQueryHandler) Handle(ctx context.Context, query GetShippingLabelQuery) (Document, error) {
	if err := query.Validate(); err != nil {
		return Document{}, err
	}

	s, err := h.uowFactory.Create().ShipmentRepository().Get(ctx, query.shipmentID)
	if err != nil {
		return Document{}, err
	}
	if !query.actor.CanAccess(s.OwnerID()) {
		return Document{}, errs.NewObjectNotFoundError("shipment", query.shipmentID.String())
	}

	content, err := h.renderer.RenderLabel(s)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Filename:    "label-" + s.TrackingNumber() + ".pdf",
		ContentType: contentTypePDF,
		Content:     content,
	}, nil
}

// GetInvoicePDFQuery renders an invoice addressed to its customer.
type GetInvoicePDFQuery struct {
	actor     kernel.Actor
	invoiceID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetInvoicePDFQuery(actor kernel.Actor, invoiceID kernel.UUID) (GetInvoicePDFQuery, error) {
	if err := errors.Join(actor.Validate(), invoiceID.Validate()); err != nil {
		return GetInvoicePDFQuery{}, err
	}
	return GetInvoicePDFQuery{actor: actor, invoiceID: invoiceID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetInvoicePDFQuery) Validate() error {
	return q.guard.Validate(ErrGetInvoicePDFQueryIsNotConstructed)
}

type GetInvoicePDFQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	renderer   ports.DocumentRenderer
}

func NewGetInvoicePDFQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	renderer ports.DocumentRenderer,
) GetInvoicePDFQueryHandler {
	return GetInvoicePDFQueryHandler{uowFactory: uowFactory, renderer: renderer}
}

func (h GetInvoicePDFQueryHandler) Handle(ctx context.Context, query GetInvoicePDFQuery) (Document, error) {
	if err := query.Validate(); err != nil {
		return Document{}, err
	}

	uow := h.uowFactory.Create()
	inv, err := uow.InvoiceRepository().Get(ctx, query.invoiceID)
	if err != nil {
		return Document{}, err
	}
	if !query.actor.CanAccess(inv.OwnerID()) {
		return Document{}, errs.NewObjectNotFoundError("invoice", query.invoiceID.String())
	}

	customer, err := uow.UserRepository().Get(ctx, inv.OwnerID())
	if err != nil {
		return Document{}, err
	}

	content, err := h.renderer.RenderInvoice(inv, customer)
	if err != nil {
		return Document{}, err
	}
	return Document{
		Filename:    "invoice-" + inv.Number() + ".pdf",
		ContentType: contentTypePDF,
		Content:     content,
	}, nil
}
