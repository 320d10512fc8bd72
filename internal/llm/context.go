package llm

import (
	"fmt"
	"strings"

	"github.com/shopassist/shop-assistant/model"
)

// contextFields maps the recognized record fields to the labels used in
// the prompt context, in render order.
var contextFields = []struct {
	key   string
	label string
}{
	{model.FieldName, "Name"},
	{model.FieldPrice, "Price"},
	{model.FieldRating, "Rating"},
	{model.FieldDescription, "Description"},
	{model.FieldAvailability, "Availability"},
}

// FormatContext renders the selected records into the single
// prompt-context string handed to the text-generation backend: numbered
// records with labeled fields, substituting "N/A" for absent values.
func FormatContext(products []model.Product) string {
	if len(products) == 0 {
		return "No products available."
	}

	blocks := make([]string, 0, len(products))
	for i, product := range products {
		var b strings.Builder
		fmt.Fprintf(&b, "Product %d:\n", i+1)
		for _, field := range contextFields {
			value, ok := product.GetField(field.key)
			if !ok {
				value = "N/A"
			}
			fmt.Fprintf(&b, "  %s: %s\n", field.label, value)
		}
		blocks = append(blocks, b.String())
	}

	return strings.Join(blocks, "\n")
}
