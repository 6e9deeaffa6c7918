// Package pdf renders an invoice to a PDF document.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/MrJamesThe3rd/fatura/internal/render"
)

const (
	pageMargin = 20.0
	lineHeight = 6.0
)

// column widths of the items table, in mm. Sums to the usable width of an
// A4 page with 20mm margins.
var colWidths = [5]float64{80, 20, 15, 27.5, 27.5}

var colHeaders = [5]string{"Description", "Qty", "Unit", "Unit price", "Amount"}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes the invoice as a single-page A4 PDF. Long item tables flow
// onto additional pages automatically.
func (r *Renderer) Render(w io.Writer, in render.Input) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")

	writeHeader(doc, tr, in)
	writeBillTo(doc, tr, in)
	writeItems(doc, tr, in)
	writeTotals(doc, tr, in)
	writeFooter(doc, tr, in)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

func writeHeader(doc *gofpdf.Fpdf, tr func(string) string, in render.Input) {
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(100, 10, tr("Invoice "+in.Invoice.Number), "", 0, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(70, 10, tr(in.Profile.BusinessName), "", 1, "R", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(90, 90, 90)
	doc.CellFormat(100, lineHeight, tr("Issued "+in.Invoice.IssueDate+"   Due "+in.Invoice.DueDate), "", 0, "L", false, 0, "")

	x := doc.GetX()
	for _, line := range profileLines(in.Profile) {
		doc.SetX(x)
		doc.CellFormat(70, 4.5, tr(line), "", 1, "R", false, 0, "")
	}

	doc.SetTextColor(0, 0, 0)
	doc.Ln(10)
}

func profileLines(p render.ProfileView) []string {
	lines := strings.Split(p.Address, "\n")

	if p.Email != "" {
		lines = append(lines, p.Email)
	}
	if p.Phone != "" {
		lines = append(lines, p.Phone)
	}
	if p.TaxID != "" {
		lines = append(lines, "Tax ID "+p.TaxID)
	}
	if p.VatID != "" {
		lines = append(lines, "VAT ID "+p.VatID)
	}

	return lines
}

func writeBillTo(doc *gofpdf.Fpdf, tr func(string) string, in render.Input) {
	doc.SetFont("Helvetica", "B", 8)
	doc.SetTextColor(130, 130, 130)
	doc.CellFormat(0, 5, "BILLED TO", "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, lineHeight, tr(in.Client.Name), "", 1, "L", false, 0, "")

	if in.Client.Contact != "" {
		doc.CellFormat(0, lineHeight, tr(in.Client.Contact), "", 1, "L", false, 0, "")
	}

	for _, line := range strings.Split(in.Client.Address, "\n") {
		if line != "" {
			doc.CellFormat(0, lineHeight, tr(line), "", 1, "L", false, 0, "")
		}
	}

	doc.Ln(8)
}

func writeItems(doc *gofpdf.Fpdf, tr func(string) string, in render.Input) {
	doc.SetFont("Helvetica", "B", 9)
	doc.SetFillColor(240, 240, 240)

	for i, h := range colHeaders {
		align := "L"
		if i == 1 || i >= 3 {
			align = "R"
		}

		doc.CellFormat(colWidths[i], 7, h, "B", 0, align, true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 9)

	for _, item := range in.Items {
		doc.CellFormat(colWidths[0], 7, tr(item.Description), "B", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[1], 7, item.Quantity, "B", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[2], 7, tr(item.Unit), "B", 0, "L", false, 0, "")
		doc.CellFormat(colWidths[3], 7, item.UnitPrice, "B", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[4], 7, item.Amount, "B", 1, "R", false, 0, "")
	}

	doc.Ln(4)
}

func writeTotals(doc *gofpdf.Fpdf, tr func(string) string, in render.Input) {
	labelW := colWidths[0] + colWidths[1] + colWidths[2] + colWidths[3]

	row := func(label, amount string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}

		doc.SetFont("Helvetica", style, 10)
		doc.CellFormat(labelW, lineHeight, tr(label), "", 0, "R", false, 0, "")
		doc.CellFormat(colWidths[4], lineHeight, tr(amount+" "+in.Currency), "", 1, "R", false, 0, "")
	}

	row("Net", in.Totals.Net, false)
	row("VAT ("+in.Totals.VatRate+"%)", in.Totals.Vat, false)
	row("Total", in.Totals.Gross, true)
}

func writeFooter(doc *gofpdf.Fpdf, tr func(string) string, in render.Input) {
	if in.Invoice.Notes != "" {
		doc.Ln(8)
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(0, 5, tr(in.Invoice.Notes), "", "L", false)
	}

	var lines []string

	if in.Profile.Bank != "" {
		lines = append(lines, in.Profile.Bank)
	}
	if in.Profile.IBAN != "" {
		line := "IBAN " + in.Profile.IBAN
		if in.Profile.BIC != "" {
			line += "  BIC " + in.Profile.BIC
		}
		lines = append(lines, line)
	}
	if in.Profile.FooterNotes != "" {
		lines = append(lines, in.Profile.FooterNotes)
	}

	if len(lines) == 0 {
		return
	}

	doc.Ln(10)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(110, 110, 110)

	for _, line := range lines {
		doc.MultiCell(0, 4.5, tr(line), "", "L", false)
	}

	doc.SetTextColor(0, 0, 0)
}
