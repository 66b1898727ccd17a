package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unmarshalTimestamp(t *testing.T, raw string) Timestamp {
	t.Helper()
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(raw), &ts))
	return ts
}

func TestTimestampArrayForm(t *testing.T) {
	// 1-based month in the array form.
	ts := unmarshalTimestamp(t, "[2024, 3, 15, 9, 30, 0]")
	require.True(t, ts.Valid)
	assert.Equal(t, time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local), ts.Time)
	assert.Equal(t, "Mar 15, 2024, 09:30 AM", ts.Format())
}

func TestTimestampArrayFormShortAndLong(t *testing.T) {
	ts := unmarshalTimestamp(t, "[2024, 12, 1]")
	require.True(t, ts.Valid)
	assert.Equal(t, time.December, ts.Time.Month())

	// Trailing nanoseconds element is ignored.
	ts = unmarshalTimestamp(t, "[2024, 3, 15, 9, 30, 0, 123456789]")
	require.True(t, ts.Valid)
	assert.Equal(t, 30, ts.Time.Minute())
}

func TestTimestampStringForms(t *testing.T) {
	for _, raw := range []string{
		`"2024-03-15T09:30:00"`,
		`"2024-03-15T09:30:00Z"`,
		`"2024-03-15"`,
	} {
		ts := unmarshalTimestamp(t, raw)
		assert.True(t, ts.Valid, raw)
		assert.Equal(t, 2024, ts.Time.Year(), raw)
	}
}

func TestTimestampNumericForm(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
	ts := unmarshalTimestamp(t, "1710495000000")
	require.True(t, ts.Valid)
	assert.True(t, ts.Time.Equal(ref))
}

func TestTimestampUnrecognizedRendersNA(t *testing.T) {
	for _, raw := range []string{
		"null",
		`""`,
		`"not a date"`,
		"[2024]",
		`{"year": 2024}`,
	} {
		ts := unmarshalTimestamp(t, raw)
		assert.False(t, ts.Valid, raw)
		assert.Equal(t, "N/A", ts.Format(), raw)
	}
}

func TestTimestampZeroValueRendersNA(t *testing.T) {
	var ts Timestamp
	assert.Equal(t, "N/A", ts.Format())
}

func TestInvoiceUnmarshalFlexibleShapes(t *testing.T) {
	raw := `{
		"id": 7,
		"customerName": "Alice",
		"customerEmail": "alice@x.com",
		"companyOrIndividual": "Individual",
		"products": [
			{"productName": "Pen", "price": 2.5, "quantity": "4"},
			{"productName": "Pad", "price": "3.00", "quantity": 2}
		],
		"totalAmount": 16,
		"createdAt": [2024, 3, 15, 9, 30, 0],
		"updatedAt": "2024-03-16T10:00:00"
	}`

	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(raw), &inv))
	assert.Equal(t, int64(7), inv.ID)
	assert.Equal(t, FlexString("2.5"), inv.Products[0].Price)
	assert.Equal(t, FlexString("4"), inv.Products[0].Quantity)
	assert.Equal(t, FlexString("3.00"), inv.Products[1].Price)
	assert.Equal(t, FlexString("2"), inv.Products[1].Quantity)
	assert.Equal(t, "16.00", inv.LineItemSum().StringFixed(2))
	assert.True(t, inv.CreatedAt.Valid)
	assert.True(t, inv.UpdatedAt.Valid)
}
