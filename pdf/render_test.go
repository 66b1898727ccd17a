package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicegen-cli/models"
)

func TestRenderProducesPDF(t *testing.T) {
	inv := &models.Invoice{
		ID:                  7,
		CustomerName:        "Alice",
		CustomerEmail:       "alice@x.com",
		CompanyOrIndividual: "Individual",
		Products: []models.Product{
			{ProductName: "Pen", Price: "2.50", Quantity: "4"},
			{ProductName: "Pad", Price: "3", Quantity: "2"},
		},
		CreatedAt: models.Timestamp{Time: time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local), Valid: true},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(inv, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestRenderEmptyInvoice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&models.Invoice{CustomerName: "Bob"}, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
