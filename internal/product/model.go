package product

import (
	"encoding/json"
	"maps"
	"slices"
)

// Product is the canonical catalog record. Price is a whole RUB amount.
type Product struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          int64             `json:"price"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	InStock        bool              `json:"inStock"`
	Features       []string          `json:"features,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

// Clone returns a copy that shares no slices or maps with p.
func (p Product) Clone() Product {
	p.Features = slices.Clone(p.Features)
	p.Specifications = maps.Clone(p.Specifications)
	return p
}

// SourceRecord is a product as the catalog source returns it. Shapes vary
// between endpoints, so the loose fields are kept raw until Normalize.
type SourceRecord struct {
	ID             int               `json:"id"`
	Title          string            `json:"title"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Rating         json.RawMessage   `json:"rating"`
	Reviews        *int              `json:"reviews"`
	InStock        *bool             `json:"inStock"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
}

type sourceRating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}
