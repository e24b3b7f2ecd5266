// Package pdf renders invoices as A4 PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
	dateLayout = "02/01/2006"
)

// column widths of the item table, summing to the printable width of an A4 page.
var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"Description", 80, "L"},
	{"Qté", 20, "R"},
	{"Prix unit. HT", 30, "R"},
	{"TVA", 20, "R"},
	{"Total HT", 30, "R"},
}

// InvoiceRenderer draws invoices with fpdf core fonts.
type InvoiceRenderer struct{}

var _ portssvc.InvoiceRenderer = InvoiceRenderer{}

func NewInvoiceRenderer() InvoiceRenderer {
	return InvoiceRenderer{}
}

func (InvoiceRenderer) Render(doc domain.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Facture "+inv.Number, true)
	pdf.SetCreator("NexKeep", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr("FACTURE"), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, lineHeight, tr("N° "+inv.Number), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr("Date : "+inv.Date.Format(dateLayout)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, lineHeight, tr("Échéance : "+inv.DueDate.Format(dateLayout)), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	top := pdf.GetY()
	writeParty(pdf, tr, pageMargin, top, "Émetteur", organisationLines(doc.Organisation))
	writeParty(pdf, tr, 110, top, "Client", clientLines(doc.Client))
	pdf.SetY(top + 45)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	for _, col := range itemColumns {
		pdf.CellFormat(col.width, 8, tr(col.title), "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		cells := []string{
			item.Description,
			item.Quantity.String(),
			money(item.UnitPrice),
			item.TaxRate.String() + " %",
			money(item.Subtotal),
		}
		for i, col := range itemColumns {
			pdf.CellFormat(col.width, 7, tr(truncate(cells[i], 48)), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	writeTotal(pdf, tr, "Total HT", inv.Subtotal, false)
	writeTotal(pdf, tr, "TVA", inv.TaxAmount, false)
	writeTotal(pdf, tr, "Total TTC", inv.Total, true)

	if inv.PaymentTerms != nil && *inv.PaymentTerms != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, lineHeight, tr("Conditions de paiement"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(*inv.PaymentTerms), "", "L", false)
	}
	if inv.Notes != nil && *inv.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr(*inv.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", inv.Number, err)
	}
	return buf.Bytes(), nil
}

func writeParty(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, title string, lines []string) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(85, lineHeight, tr(title), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, l := range lines {
		pdf.CellFormat(85, 5, tr(l), "", 2, "L", false, 0, "")
	}
}

func writeTotal(pdf *fpdf.Fpdf, tr func(string) string, label string, amount decimal.Decimal, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(150, lineHeight, tr(label), "", 0, "R", false, 0, "")
	pdf.CellFormat(30, lineHeight, tr(money(amount)), "", 1, "R", false, 0, "")
}

func organisationLines(o domain.Organisation) []string {
	lines := []string{o.Name}
	lines = appendSet(lines, o.Address)
	lines = appendSet(lines, cityLine(o.PostalCode, o.City))
	lines = appendSet(lines, o.Country)
	lines = appendPrefixed(lines, "SIRET : ", o.Siret)
	lines = appendPrefixed(lines, "TVA : ", o.TaxNumber)
	lines = appendSet(lines, o.Email)
	lines = appendSet(lines, o.Phone)
	return lines
}

func clientLines(c domain.Client) []string {
	lines := []string{c.Name}
	lines = appendSet(lines, c.Company)
	lines = appendSet(lines, c.Address)
	lines = appendSet(lines, cityLine(c.PostalCode, c.City))
	lines = appendSet(lines, c.Country)
	lines = appendPrefixed(lines, "SIRET : ", c.Siret)
	lines = appendPrefixed(lines, "TVA : ", c.TaxNumber)
	lines = appendSet(lines, c.Email)
	return lines
}

func cityLine(postalCode, city *string) *string {
	parts := make([]string, 0, 2)
	for _, p := range []*string{postalCode, city} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	s := strings.Join(parts, " ")
	return &s
}

func appendSet(lines []string, v *string) []string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return lines
	}
	return append(lines, *v)
}

func appendPrefixed(lines []string, prefix string, v *string) []string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return lines
	}
	return append(lines, prefix+*v)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
