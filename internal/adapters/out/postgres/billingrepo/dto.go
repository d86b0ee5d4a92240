// Package billingrepo persists bills and invoices.
package billingrepo

import (
	"time"

	"parcelmybox/internal/adapters/out/postgres/pgdto"
	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type BillDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number      string     `gorm:"type:varchar(32);not null;uniqueIndex"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShipmentID  *uuid.UUID `gorm:"type:uuid;index"`
	Description string     `gorm:"type:varchar(255);not null"`
	Amount      int64      `gorm:"not null"`
	Currency    string     `gorm:"type:char(3);not null"`
	Status      string     `gorm:"type:varchar(16);not null"`
	DueDate     time.Time  `gorm:"type:date;not null"`
	PaidAt      *time.Time `gorm:"type:timestamptz"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt   time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (BillDTO) TableName() string {
	return "bills"
}

type InvoiceDTO struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Number    string           `gorm:"type:varchar(32);not null;uniqueIndex"`
	OwnerID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	IssueDate time.Time        `gorm:"type:date;not null"`
	DueDate   time.Time        `gorm:"type:date;not null"`
	TaxRateBP int              `gorm:"column:tax_rate_bp;not null"`
	Notes     string           `gorm:"type:text;not null;default:''"`
	Currency  string           `gorm:"type:char(3);not null"`
	Status    string           `gorm:"type:varchar(16);not null"`
	PaidAt    *time.Time       `gorm:"type:timestamptz"`
	CreatedAt time.Time        `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time        `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
	Lines     []InvoiceLineDTO `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

func (InvoiceDTO) TableName() string {
	return "invoices"
}

// InvoiceLineDTO is keyed by invoice and position, so line order survives a round trip.
type InvoiceLineDTO struct {
	InvoiceID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position    int       `gorm:"primaryKey;autoIncrement:false"`
	Description string    `gorm:"type:varchar(255);not null"`
	Quantity    int       `gorm:"not null"`
	UnitPrice   int64     `gorm:"not null"`
}

func (InvoiceLineDTO) TableName() string {
	return "invoice_lines"
}

func billFromDomain(b *billing.Bill) BillDTO {
	return BillDTO{
		ID:          b.ID().Bytes(),
		Number:      b.Number(),
		OwnerID:     b.OwnerID().Bytes(),
		ShipmentID:  pgdto.IDPtr(b.ShipmentID()),
		Description: b.Description(),
		Amount:      b.Amount().Amount(),
		Currency:    b.Amount().Currency(),
		Status:      b.Status().String(),
		DueDate:     b.DueDate(),
		PaidAt:      b.PaidAt(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func billToDomain(dto BillDTO) (*billing.Bill, error) {
	id, err := pgdto.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := pgdto.ID(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	shipmentID, err := pgdto.OptionalID(dto.ShipmentID)
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}
	status, err := billing.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return billing.RestoreBill(id, dto.Number, ownerID, shipmentID, dto.Description, amount,
		dto.DueDate, status, pgdto.UTC(dto.PaidAt), dto.CreatedAt, dto.UpdatedAt)
}

func invoiceFromDomain(i *billing.Invoice) InvoiceDTO {
	invoiceID := i.ID().Bytes()
	lines := make([]InvoiceLineDTO, 0, len(i.Lines()))
	for n, l := range i.Lines() {
		lines = append(lines, InvoiceLineDTO{
			InvoiceID:   invoiceID,
			Position:    n + 1,
			Description: l.Description(),
			Quantity:    l.Quantity(),
			UnitPrice:   l.UnitPrice().Amount(),
		})
	}

	return InvoiceDTO{
		ID:        invoiceID,
		Number:    i.Number(),
		OwnerID:   i.OwnerID().Bytes(),
		IssueDate: i.IssueDate(),
		DueDate:   i.DueDate(),
		TaxRateBP: i.TaxRateBP(),
		Notes:     i.Notes(),
		Currency:  i.Currency(),
		Status:    i.Status().String(),
		PaidAt:    i.PaidAt(),
		CreatedAt: i.CreatedAt(),
		UpdatedAt: i.UpdatedAt(),
		Lines:     lines,
	}
}

func invoiceToDomain(dto InvoiceDTO) (*billing.Invoice, error) {
	id, err := pgdto.ID(dto.ID)
	if err != nil {
		return nil, err
	}
	ownerID, err := pgdto.ID(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	status, err := billing.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]billing.InvoiceLine, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		price, priceErr := kernel.NewMoney(l.UnitPrice, dto.Currency)
		if priceErr != nil {
			return nil, priceErr
		}
		line, lineErr := billing.NewInvoiceLine(l.Description, l.Quantity, price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return billing.RestoreInvoice(id, dto.Number, ownerID, dto.IssueDate, dto.DueDate, dto.TaxRateBP,
		dto.Notes, lines, status, pgdto.UTC(dto.PaidAt), dto.CreatedAt, dto.UpdatedAt)
}
