package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItem(t *testing.T) {
	li, err := parseItem("Pen:2.50:4")
	require.NoError(t, err)
	assert.Equal(t, "Pen", li.ProductName)
	assert.Equal(t, "2.50", li.Price)
	assert.Equal(t, "4", li.Quantity)

	// Names may contain colons; price and quantity anchor from the right.
	li, err = parseItem("USB-C cable 1:2m:9.99:3")
	require.NoError(t, err)
	assert.Equal(t, "USB-C cable 1:2m", li.ProductName)
	assert.Equal(t, "9.99", li.Price)
	assert.Equal(t, "3", li.Quantity)

	_, err = parseItem("Pen:2.50")
	assert.Error(t, err)
	_, err = parseItem("just-a-name")
	assert.Error(t, err)
}
