package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"invoicegen-cli/utils"
)

// FlexString accepts a JSON string or number and keeps the raw text,
// since the backend is not consistent about quoting prices/quantities.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(data)
	return nil
}

// Product is one line item on a persisted invoice.
type Product struct {
	ProductName string     `json:"productName"`
	Price       FlexString `json:"price"`
	Quantity    FlexString `json:"quantity"`
}

// Total is the derived price × quantity for this product.
func (p Product) Total() decimal.Decimal {
	return utils.ParseAmount(string(p.Price)).
		Mul(decimal.NewFromInt(utils.ParseCount(string(p.Quantity))))
}

// Invoice is the remote entity. The client only ever holds transient,
// possibly stale copies of it.
type Invoice struct {
	ID                  int64           `json:"id"`
	CustomerName        string          `json:"customerName"`
	CustomerEmail       string          `json:"customerEmail"`
	CompanyOrIndividual string          `json:"companyOrIndividual"`
	Products            []Product       `json:"products"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	CreatedAt           Timestamp       `json:"createdAt"`
	UpdatedAt           Timestamp       `json:"updatedAt"`
}

// LineItemSum recomputes the invoice total from its products. The
// stored TotalAmount is never trusted before a create or update.
func (inv *Invoice) LineItemSum() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range inv.Products {
		sum = sum.Add(p.Total())
	}
	return sum
}
