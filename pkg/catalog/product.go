package catalog

import "strings"

// Product is a single catalog record as returned by the backend.
// The id is the only stable join key; names are a display convenience
// and are never assumed unique.
type Product struct {
	Id       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Segment  string  `json:"segment,omitempty"`
	Price    float64 `json:"price"`
}

// CanonicalCategory normalizes category casing to the backend convention
// (leading capital, rest lowercase: Electronics, Furniture, ...).
// Applied once at the catalog-fetch boundary so every consumer sees the
// same casing.
func CanonicalCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + strings.ToLower(category[1:])
}

// Canonicalize applies category canonicalization to a freshly fetched
// product list in place.
func Canonicalize(products []Product) []Product {
	for i := range products {
		products[i].Category = CanonicalCategory(products[i].Category)
	}
	return products
}
