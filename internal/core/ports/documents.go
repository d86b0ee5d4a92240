package ports

import (
	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/model/user"
)

// DocumentRenderer renders printable PDF documents.
type DocumentRenderer interface {
	RenderInvoice(inv *billing.Invoice, customer *user.User) ([]byte, error)
	RenderLabel(s *shipment.Shipment) ([]byte, error)
}
