package pdf

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"invoicegen-cli/models"
	"invoicegen-cli/utils"
)

// Render writes an invoice as an A4 PDF document: customer header,
// one row per product line with its derived total, and the recomputed
// invoice total at the bottom.
func Render(inv *models.Invoice, w io.Writer) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 18)
	doc.Cell(0, 12, "INVOICE")
	doc.Ln(14)

	doc.SetFont("Arial", "", 11)
	doc.Cell(0, 7, "Customer: "+inv.CustomerName)
	doc.Ln(7)
	doc.Cell(0, 7, "Email: "+inv.CustomerEmail)
	doc.Ln(7)
	if inv.CompanyOrIndividual != "" {
		doc.Cell(0, 7, "Billed as: "+inv.CompanyOrIndividual)
		doc.Ln(7)
	}
	doc.Cell(0, 7, "Created: "+inv.CreatedAt.Format())
	doc.Ln(12)

	// Table header
	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(90, 8, "Product", "B", 0, "L", false, 0, "")
	doc.CellFormat(30, 8, "Price", "B", 0, "R", false, 0, "")
	doc.CellFormat(25, 8, "Qty", "B", 0, "R", false, 0, "")
	doc.CellFormat(35, 8, "Total", "B", 1, "R", false, 0, "")

	doc.SetFont("Arial", "", 11)
	for _, p := range inv.Products {
		doc.CellFormat(90, 8, p.ProductName, "", 0, "L", false, 0, "")
		doc.CellFormat(30, 8, utils.FormatMoney(utils.ParseAmount(string(p.Price))), "", 0, "R", false, 0, "")
		doc.CellFormat(25, 8, string(p.Quantity), "", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, utils.FormatMoney(p.Total()), "", 1, "R", false, 0, "")
	}

	doc.Ln(4)
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(145, 10, "TOTAL", "T", 0, "R", false, 0, "")
	doc.CellFormat(35, 10, utils.FormatMoney(inv.LineItemSum()), "T", 1, "R", false, 0, "")

	return doc.Output(w)
}
