// Package pdf renders shipping labels and invoices with fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"parcelmybox/internal/core/domain/model/billing"
	"parcelmybox/internal/core/domain/model/kernel"
	"parcelmybox/internal/core/domain/model/shipment"
	"parcelmybox/internal/core/domain/model/user"
	"parcelmybox/internal/core/ports"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
)

// Renderer implements ports.DocumentRenderer. Core fonts only cover
// cp1252, so every string goes through the UTF-8 translator first.
type Renderer struct {
	company string
}

func NewRenderer(company string) *Renderer {
	if company == "" {
		company = "ParcelMyBox"
	}
	return &Renderer{company: company}
}

type document struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (r *Renderer) newDocument(orientation, size, title string) document {
	p := fpdf.New(orientation, "mm", size, "")
	p.SetTitle(title, true)
	p.SetAuthor(r.company, true)
	p.SetCreationDate(time.Now())
	p.SetMargins(10, 10, 10)
	p.SetAutoPageBreak(true, 15)
	p.AddPage()
	return document{Fpdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
}

func (d document) text(style string, size float64, w float64, s string) {
	d.SetFont(fontFamily, style, size)
	d.CellFormat(w, lineHeight, d.tr(s), "", 1, "L", false, 0, "")
}

func (d document) address(a kernel.PostalAddress) {
	d.SetFont(fontFamily, "", 11)
	for _, l := range addressLines(a) {
		d.CellFormat(0, lineHeight, d.tr(l), "", 1, "L", false, 0, "")
	}
}

func (d document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func addressLines(a kernel.PostalAddress) []string {
	lines := []string{a.Line1()}
	if a.Line2() != "" {
		lines = append(lines, a.Line2())
	}
	city := a.City()
	if a.State() != "" {
		city += ", " + a.State()
	}
	lines = append(lines, city+" "+a.PostalCode(), a.Country())
	return lines
}

// RenderLabel draws a single A6 label with both parties, the parcel and
// the tracking number in large type.
func (r *Renderer) RenderLabel(s *shipment.Shipment) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("render label: shipment is required")
	}

	d := r.newDocument("P", "A6", "Label "+s.TrackingNumber())

	d.text("B", 14, 0, r.company)
	d.text("", 9, 0, fmt.Sprintf("%s service", s.ServiceLevel()))
	d.Ln(2)

	d.text("B", 9, 0, "FROM")
	d.text("", 11, 0, s.Sender().Name())
	d.address(s.Sender().Postal())
	d.Ln(2)

	d.text("B", 9, 0, "TO")
	d.text("B", 12, 0, s.Recipient().Name())
	if phone := s.Recipient().Phone(); phone != "" {
		d.text("", 10, 0, phone)
	}
	d.address(s.Recipient().Postal())
	d.Ln(2)

	p := s.Parcel()
	d.text("", 9, 0, fmt.Sprintf("%d g, %dx%dx%d cm", p.WeightGrams(), p.LengthCm(), p.WidthCm(), p.HeightCm()))
	d.text("", 9, 0, "Estimated delivery "+s.EstimatedDelivery().Format(time.DateOnly))
	d.Ln(3)

	d.SetFont(fontFamily, "B", 18)
	d.CellFormat(0, 12, s.TrackingNumber(), "1", 1, "C", false, 0, "")

	return d.bytes()
}

// RenderInvoice draws an A4 invoice: header, customer block, line table and
// totals.
func (r *Renderer) RenderInvoice(inv *billing.Invoice, customer *user.User) ([]byte, error) {
	if inv == nil || customer == nil {
		return nil, fmt.Errorf("render invoice: invoice and customer are required")
	}

	d := r.newDocument("P", "A4", "Invoice "+inv.Number())

	d.text("B", 20, 0, r.company)
	d.text("B", 14, 0, "Invoice "+inv.Number())
	d.text("", 10, 0, "Issued "+inv.IssueDate().Format(time.DateOnly)+", due "+inv.DueDate().Format(time.DateOnly))
	d.text("", 10, 0, "Status "+inv.Status().String())
	d.Ln(4)

	d.text("B", 10, 0, "Bill to")
	name := customer.FullName()
	if name == "" {
		name = customer.Username()
	}
	d.text("", 11, 0, name)
	d.text("", 10, 0, customer.Email())
	d.Ln(4)

	widths := []float64{100, 20, 35, 35}
	d.SetFont(fontFamily, "B", 10)
	d.SetFillColor(230, 230, 230)
	for i, h := range []string{"Description", "Qty", "Unit price", "Total"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		d.CellFormat(widths[i], 8, h, "1", 0, align, true, 0, "")
	}
	d.Ln(-1)

	d.SetFont(fontFamily, "", 10)
	for _, l := range inv.Lines() {
		d.CellFormat(widths[0], 7, d.tr(l.Description()), "1", 0, "L", false, 0, "")
		d.CellFormat(widths[1], 7, strconv.Itoa(l.Quantity()), "1", 0, "R", false, 0, "")
		d.CellFormat(widths[2], 7, l.UnitPrice().String(), "1", 0, "R", false, 0, "")
		d.CellFormat(widths[3], 7, l.Total().String(), "1", 0, "R", false, 0, "")
		d.Ln(-1)
	}

	totals := []struct {
		label string
		value kernel.Money
		style string
	}{
		{"Subtotal", inv.Subtotal(), ""},
		{fmt.Sprintf("Tax (%s%%)", basisPoints(inv.TaxRateBP())), inv.Tax(), ""},
		{"Total " + inv.Currency(), inv.Total(), "B"},
	}
	for _, t := range totals {
		d.SetFont(fontFamily, t.style, 10)
		d.CellFormat(widths[0]+widths[1]+widths[2], 7, t.label, "", 0, "R", false, 0, "")
		d.CellFormat(widths[3], 7, t.value.String(), "1", 1, "R", false, 0, "")
	}

	if notes := inv.Notes(); notes != "" {
		d.Ln(6)
		d.SetFont(fontFamily, "I", 9)
		d.MultiCell(0, 5, d.tr(notes), "", "L", false)
	}

	return d.bytes()
}

// basisPoints formats 825 as "8.25".
func basisPoints(bp int) string {
	return fmt.Sprintf("%d.%02d", bp/100, bp%100)
}

var _ ports.DocumentRenderer = (*Renderer)(nil)
