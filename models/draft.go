package models

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"invoicegen-cli/utils"
)

// Field names a mutable line-item column.
type Field string

const (
	FieldProductName Field = "productName"
	FieldPrice       Field = "price"
	FieldQuantity    Field = "quantity"
)

// LineItem is one product row in a draft. Price and quantity hold the
// text exactly as entered; totals are derived on demand and never stored.
type LineItem struct {
	ProductName string
	Price       string
	Quantity    string
}

// Total is the derived price × quantity for this line, with unparsable
// or missing numeric input counting as zero.
func (li LineItem) Total() decimal.Decimal {
	return utils.ParseAmount(li.Price).Mul(decimal.NewFromInt(utils.ParseCount(li.Quantity)))
}

func blankLine() LineItem {
	return LineItem{Quantity: "1"}
}

// Draft is an in-progress, unsaved invoice. It is owned by a single
// view at a time and always keeps at least one editable line.
type Draft struct {
	CustomerName        string
	CustomerEmail       string
	CompanyOrIndividual string
	Lines               []LineItem
}

// NewDraft returns an empty draft with one blank line.
func NewDraft() *Draft {
	return &Draft{
		CompanyOrIndividual: "Individual",
		Lines:               []LineItem{blankLine()},
	}
}

// DraftFromInvoice hydrates a draft from a fetched invoice so the edit
// flow starts from the remote state. An invoice without products still
// yields one blank line.
func DraftFromInvoice(inv *Invoice) *Draft {
	d := &Draft{
		CustomerName:        inv.CustomerName,
		CustomerEmail:       inv.CustomerEmail,
		CompanyOrIndividual: inv.CompanyOrIndividual,
	}
	if d.CompanyOrIndividual == "" {
		d.CompanyOrIndividual = "Individual"
	}
	for _, p := range inv.Products {
		li := LineItem{
			ProductName: p.ProductName,
			Price:       string(p.Price),
			Quantity:    string(p.Quantity),
		}
		if li.Quantity == "" {
			li.Quantity = "1"
		}
		d.Lines = append(d.Lines, li)
	}
	if len(d.Lines) == 0 {
		d.Lines = []LineItem{blankLine()}
	}
	return d
}

// AddLine appends a blank line (empty name, empty price, quantity 1).
func (d *Draft) AddLine() {
	d.Lines = append(d.Lines, blankLine())
}

// RemoveLine removes the line at i. The last remaining line is never
// removed, and an out-of-range index is ignored.
func (d *Draft) RemoveLine(i int) {
	if len(d.Lines) <= 1 || i < 0 || i >= len(d.Lines) {
		return
	}
	d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
}

// SetField updates one column of the line at i. Order is preserved;
// out-of-range indices and unknown fields are ignored.
func (d *Draft) SetField(i int, f Field, value string) {
	if i < 0 || i >= len(d.Lines) {
		return
	}
	switch f {
	case FieldProductName:
		d.Lines[i].ProductName = value
	case FieldPrice:
		d.Lines[i].Price = value
	case FieldQuantity:
		d.Lines[i].Quantity = value
	}
}

// LineTotal recomputes the derived total for the line at i.
func (d *Draft) LineTotal(i int) decimal.Decimal {
	if i < 0 || i >= len(d.Lines) {
		return decimal.Zero
	}
	return d.Lines[i].Total()
}

// OverallTotal recomputes the aggregate from current field values on
// every call; nothing cached is trusted.
func (d *Draft) OverallTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range d.Lines {
		sum = sum.Add(li.Total())
	}
	return sum
}

// ValidProducts filters to the lines eligible for submission: a trimmed
// non-empty name, a non-zero price and a non-zero quantity. Zero-priced
// lines are deliberately excluded, matching the submission gate of the
// original forms.
func (d *Draft) ValidProducts() []LineItem {
	return lo.Filter(d.Lines, func(li LineItem, _ int) bool {
		return strings.TrimSpace(li.ProductName) != "" &&
			!utils.ParseAmount(li.Price).IsZero() &&
			utils.ParseCount(li.Quantity) != 0
	})
}
