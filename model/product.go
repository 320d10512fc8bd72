package model

// Recognized product fields. Everything the scraper extracts is free-form
// text; absence of a key means the source page did not expose that field.
const (
	FieldName         = "name"
	FieldPrice        = "price"
	FieldRating       = "rating"
	FieldDescription  = "description"
	FieldAvailability = "availability"

	// FieldRelevanceScore is set only on copies annotated by the scorer,
	// never on records coming from the scraper or a loaded snapshot.
	FieldRelevanceScore = "relevance_score"
)

// TextFields lists the scraped text fields in the order they are
// extracted and rendered for the answer context.
var TextFields = []string{FieldName, FieldPrice, FieldRating, FieldDescription, FieldAvailability}

// Product is a flexible map representing one scraped product record.
// The five recognized fields are accessed by their string keys; all of
// them are optional. Example: product["name"], product["price"].
type Product map[string]interface{}

// GetField returns the string value stored under key, if present and
// non-empty.
func (p Product) GetField(key string) (string, bool) {
	if val, ok := p[key]; ok {
		if str, sok := val.(string); sok && str != "" {
			return str, true
		}
	}
	return "", false
}

// GetName returns the product name if it's stored in the record.
func (p Product) GetName() (string, bool) {
	return p.GetField(FieldName)
}

// GetRelevanceScore returns the annotated relevance score, if the record
// is a scorer-annotated copy.
func (p Product) GetRelevanceScore() (int, bool) {
	if val, ok := p[FieldRelevanceScore]; ok {
		switch v := val.(type) {
		case int:
			return v, true
		case float64: // JSON round-trips numbers as float64
			return int(v), true
		}
	}
	return 0, false
}

// Copy returns a shallow copy of the record. The scorer annotates copies
// so that the originating collection is never mutated.
func (p Product) Copy() Product {
	cp := make(Product, len(p)+1)
	for k, v := range p {
		cp[k] = v
	}
	return cp
}
