package renderer

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"invoice-generator/internal/billing"
	u "invoice-generator/internal/utils"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// item table columns as fractions of the printable width
var (
	columnHeaders = []string{"Item", "Quantity", "Unit", "Price", "Amount"}
	columnWidths  = []float64{0.44, 0.12, 0.10, 0.17, 0.17}
	columnAligns  = []string{"L", "C", "C", "R", "R"}
)

// PDF draws invoices directly with gofpdf.
type PDF struct {
	paper string
	font  string
}

func NewPDF(cfg u.RendererConfig) *PDF {
	return &PDF{paper: cfg.Paper, font: cfg.Font}
}

// Render lays out doc on a single portrait page.
func (r *PDF) Render(ctx context.Context, doc billing.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", r.paper, "")
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("gofpdf init: %w", err)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle("Invoice "+doc.Number(), true)
	pdf.SetCreator("invoice-generator", true)
	pdf.SetAuthor(doc.Provider.Name, true)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	width := pageW - 2*pageMargin
	half := width / 2

	// Header
	pdf.SetFont(r.font, "B", 20)
	pdf.CellFormat(half, 10, "Invoice", "", 0, "L", false, 0, "")
	pdf.SetFont(r.font, "", 12)
	pdf.CellFormat(half, 10, tr(doc.Number()), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Parties
	top := pdf.GetY()
	r.party(pdf, tr, pageMargin, top, half, "Provider", doc.Provider.Name, doc.Provider.AddressLines())
	bottom := pdf.GetY()
	r.party(pdf, tr, pageMargin+half, top, half, "Purchaser", doc.Customer.Name, doc.Customer.AddressLines())
	pdf.SetY(max(bottom, pdf.GetY()) + 6)

	// Dates
	pdf.SetFont(r.font, "", 10)
	pdf.CellFormat(half, lineHeight, "Issue date: "+doc.Dates.IssueDate, "", 0, "L", false, 0, "")
	pdf.CellFormat(half, lineHeight, "Due date: "+doc.Dates.DueDate, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Items
	cols := make([]float64, len(columnWidths))
	for i, f := range columnWidths {
		cols[i] = width * f
	}
	pdf.SetFont(r.font, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range columnHeaders {
		ln := 0
		if i == len(columnHeaders)-1 {
			ln = 1
		}
		pdf.CellFormat(cols[i], 8, h, "1", ln, columnAligns[i], true, 0, "")
	}

	pdf.SetFont(r.font, "", 10)
	for _, item := range doc.Items {
		r.itemRow(pdf, tr, cols, item)
	}

	// Total
	pdf.SetFont(r.font, "B", 11)
	last := cols[len(cols)-1]
	pdf.CellFormat(width-last, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(last, 8, tr(doc.Total), "1", 1, "R", true, 0, "")
	pdf.Ln(8)

	// Payment
	pdf.SetFont(r.font, "", 10)
	pdf.CellFormat(width, lineHeight, "Bank account number: "+tr(doc.Customer.BankAccountNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(width, lineHeight, "Please pay by "+doc.Dates.DueDate+".", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("gofpdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// party prints a labelled name and address block at (x, y).
func (r *PDF) party(pdf *gofpdf.Fpdf, tr func(string) string, x, y, w float64, label, name string, lines []string) {
	pdf.SetXY(x, y)
	pdf.SetFont(r.font, "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(w, 5, label, "", 2, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(r.font, "B", 11)
	pdf.CellFormat(w, lineHeight, tr(name), "", 2, "L", false, 0, "")
	pdf.SetFont(r.font, "", 10)
	for _, line := range lines {
		pdf.CellFormat(w, 5, tr(line), "", 2, "L", false, 0, "")
	}
}

// itemRow wraps the item name inside its column and stretches the other cells
// to the same height.
func (r *PDF) itemRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []float64, item billing.LineItem) {
	x, y := pdf.GetXY()
	name := pdf.SplitText(tr(item.Name), cols[0]-2)
	if len(name) == 0 {
		name = []string{""}
	}
	h := float64(len(name)) * lineHeight

	pdf.MultiCell(cols[0], lineHeight, strings.Join(name, "\n"), "1", "L", false)
	pdf.SetXY(x+cols[0], y)

	values := []string{item.Quantity, item.Unit, item.Price, item.Amount}
	for i, v := range values {
		ln := 0
		if i == len(values)-1 {
			ln = 1
		}
		pdf.CellFormat(cols[i+1], h, tr(v), "1", ln, columnAligns[i+1], false, 0, "")
	}
}
