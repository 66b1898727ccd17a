package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/samber/lo"

	"invoicegen-cli/models"
)

// The backend's DTOs type price and quantity as strings, so the typed
// line items cross a deliberate serialization boundary here: pure
// mapping functions from the in-memory model to the wire shape.

type createInvoiceDTO struct {
	CustomerName        string      `json:"customerName"`
	CustomerEmail       string      `json:"customerEmail"`
	CompanyOrIndividual string      `json:"companyOrIndividual"`
	TotalAmount         json.Number `json:"totalAmount"`
	InvoiceDate         string      `json:"invoiceDate"`
}

type productDTO struct {
	ProductName string `json:"productName"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
}

type invoiceEnvelope struct {
	CreateInvoiceDTO createInvoiceDTO `json:"createInvoiceDto"`
	AddProductsDTO   []productDTO     `json:"addProductsDto"`
}

// wireProduct coerces one line item to the string-typed DTO. Empty
// numeric fields fall back the way the original client did: price "0",
// quantity "1".
func wireProduct(li models.LineItem) productDTO {
	price := strings.TrimSpace(li.Price)
	if price == "" {
		price = "0"
	}
	quantity := strings.TrimSpace(li.Quantity)
	if quantity == "" {
		quantity = "1"
	}
	return productDTO{
		ProductName: strings.TrimSpace(li.ProductName),
		Price:       price,
		Quantity:    quantity,
	}
}

// invoicePayload assembles the create/update envelope. The total is
// recomputed from the supplied lines, never taken from a cached value,
// and covers all of them: the caller is expected to have filtered with
// ValidProducts already.
func invoicePayload(customerName, customerEmail, companyOrIndividual string, lines []models.LineItem, today time.Time) invoiceEnvelope {
	total := (&models.Draft{Lines: lines}).OverallTotal()
	return invoiceEnvelope{
		CreateInvoiceDTO: createInvoiceDTO{
			CustomerName:        customerName,
			CustomerEmail:       customerEmail,
			CompanyOrIndividual: companyOrIndividual,
			TotalAmount:         json.Number(total.StringFixed(2)),
			InvoiceDate:         today.Format("2006-01-02"),
		},
		AddProductsDTO: lo.Map(lines, func(li models.LineItem, _ int) productDTO {
			return wireProduct(li)
		}),
	}
}
