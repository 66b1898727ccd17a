package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftStartsWithOneBlankLine(t *testing.T) {
	d := NewDraft()
	require.Len(t, d.Lines, 1)
	assert.Equal(t, "", d.Lines[0].ProductName)
	assert.Equal(t, "", d.Lines[0].Price)
	assert.Equal(t, "1", d.Lines[0].Quantity)
	assert.Equal(t, "Individual", d.CompanyOrIndividual)
	assert.True(t, d.OverallTotal().IsZero())
}

func TestDraftAlwaysRetainsOneLine(t *testing.T) {
	d := NewDraft()

	// The last line can never be removed.
	d.RemoveLine(0)
	assert.Len(t, d.Lines, 1)

	// Arbitrary add/remove sequences keep the floor.
	d.AddLine()
	d.AddLine()
	require.Len(t, d.Lines, 3)
	d.RemoveLine(1)
	d.RemoveLine(0)
	d.RemoveLine(0)
	assert.Len(t, d.Lines, 1)

	// Out-of-range removals are ignored.
	d.RemoveLine(-1)
	d.RemoveLine(5)
	assert.Len(t, d.Lines, 1)
}

func TestRemoveLinePreservesOrder(t *testing.T) {
	d := NewDraft()
	d.SetField(0, FieldProductName, "first")
	d.AddLine()
	d.SetField(1, FieldProductName, "second")
	d.AddLine()
	d.SetField(2, FieldProductName, "third")

	d.RemoveLine(1)
	require.Len(t, d.Lines, 2)
	assert.Equal(t, "first", d.Lines[0].ProductName)
	assert.Equal(t, "third", d.Lines[1].ProductName)
}

func TestLineTotalRecomputedOnEveryEdit(t *testing.T) {
	d := NewDraft()
	d.SetField(0, FieldPrice, "2.50")
	d.SetField(0, FieldQuantity, "4")
	assert.Equal(t, "10.00", d.LineTotal(0).StringFixed(2))

	// Unparsable numeric input counts as zero.
	d.SetField(0, FieldPrice, "abc")
	d.SetField(0, FieldQuantity, "3")
	assert.True(t, d.LineTotal(0).IsZero())

	d.SetField(0, FieldPrice, "5")
	d.SetField(0, FieldQuantity, "")
	assert.True(t, d.LineTotal(0).IsZero())
}

func TestSetFieldIgnoresBadInput(t *testing.T) {
	d := NewDraft()
	d.SetField(7, FieldPrice, "3")
	d.SetField(-1, FieldPrice, "3")
	d.SetField(0, Field("unknown"), "3")
	assert.Equal(t, LineItem{Quantity: "1"}, d.Lines[0])
}

func TestOverallTotalMatchesLineSum(t *testing.T) {
	d := NewDraft()
	d.SetField(0, FieldProductName, "Widget")
	d.SetField(0, FieldPrice, "10")
	d.SetField(0, FieldQuantity, "2")
	d.AddLine()
	d.SetField(1, FieldProductName, "Gadget")
	d.SetField(1, FieldPrice, "0")
	d.SetField(1, FieldQuantity, "5")
	d.AddLine()
	d.SetField(2, FieldPrice, "1.25")
	d.SetField(2, FieldQuantity, "4")

	sum := decimal.Zero
	for i := range d.Lines {
		sum = sum.Add(d.LineTotal(i))
	}
	assert.True(t, d.OverallTotal().Equal(sum))
	assert.Equal(t, "25.00", d.OverallTotal().StringFixed(2))

	d.RemoveLine(2)
	assert.Equal(t, "20.00", d.OverallTotal().StringFixed(2))
}

func TestValidProductsFilter(t *testing.T) {
	d := &Draft{Lines: []LineItem{
		{ProductName: "Widget", Price: "10", Quantity: "2"},
		{ProductName: "Gadget", Price: "0", Quantity: "5"},
		{ProductName: "   ", Price: "3", Quantity: "1"},
		{ProductName: "NoQty", Price: "3", Quantity: ""},
		{ProductName: "NoPrice", Price: "", Quantity: "2"},
	}}

	valid := d.ValidProducts()
	require.Len(t, valid, 1)
	assert.Equal(t, "Widget", valid[0].ProductName)

	// Invalid lines stay editable and still count toward the raw total.
	assert.Len(t, d.Lines, 5)
	assert.Equal(t, "23.00", d.OverallTotal().StringFixed(2))
}

func TestDraftFromInvoice(t *testing.T) {
	inv := &Invoice{
		CustomerName:        "Alice",
		CustomerEmail:       "alice@x.com",
		CompanyOrIndividual: "Company",
		Products: []Product{
			{ProductName: "Pen", Price: "2.50", Quantity: "4"},
			{ProductName: "Pad", Price: "3", Quantity: ""},
		},
	}

	d := DraftFromInvoice(inv)
	assert.Equal(t, "Alice", d.CustomerName)
	assert.Equal(t, "Company", d.CompanyOrIndividual)
	require.Len(t, d.Lines, 2)
	assert.Equal(t, "2.50", d.Lines[0].Price)
	// Missing quantity defaults to 1 the way the edit form hydrates.
	assert.Equal(t, "1", d.Lines[1].Quantity)
}

func TestDraftFromInvoiceWithoutProducts(t *testing.T) {
	d := DraftFromInvoice(&Invoice{CustomerName: "Bob"})
	require.Len(t, d.Lines, 1)
	assert.Equal(t, "Individual", d.CompanyOrIndividual)
}
