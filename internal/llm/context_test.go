package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopassist/shop-assistant/model"
)

func TestFormatContext(t *testing.T) {
	products := []model.Product{
		{
			"name":         "Widget",
			"price":        "$10.00",
			"rating":       "4.5 out of 5",
			"description":  "A fine widget",
			"availability": "In Stock",
		},
		{
			"name": "Gadget",
		},
	}

	context := FormatContext(products)

	assert.Contains(t, context, "Product 1:")
	assert.Contains(t, context, "  Name: Widget")
	assert.Contains(t, context, "  Price: $10.00")
	assert.Contains(t, context, "  Rating: 4.5 out of 5")
	assert.Contains(t, context, "  Description: A fine widget")
	assert.Contains(t, context, "  Availability: In Stock")

	// Absent fields render as N/A.
	assert.Contains(t, context, "Product 2:")
	assert.Contains(t, context, "  Price: N/A")
	assert.Contains(t, context, "  Description: N/A")

	assert.Equal(t, 1, strings.Count(context, "Name: Gadget"))
}

func TestFormatContextEmpty(t *testing.T) {
	assert.Equal(t, "No products available.", FormatContext(nil))
	assert.Equal(t, "No products available.", FormatContext([]model.Product{}))
}

func TestFormatContextAllAbsent(t *testing.T) {
	context := FormatContext([]model.Product{{}})
	assert.Equal(t, 5, strings.Count(context, "N/A"))
}
