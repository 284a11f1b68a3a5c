package product

import (
	"bytes"
	"encoding/json"
	"math"
)

const maxRating = 5

// Normalize maps any accepted source shape onto the canonical Product.
// rubPerUSD converts the source price; values <= 0 leave it unconverted.
func Normalize(rec SourceRecord, rubPerUSD float64) Product {
	name := rec.Name
	if name == "" {
		name = rec.Title
	}

	rating, reviews := parseRating(rec.Rating)
	if reviews == 0 && rec.Reviews != nil {
		reviews = *rec.Reviews
	}

	inStock := true
	if rec.InStock != nil {
		inStock = *rec.InStock
	}

	p := Product{
		ID:          rec.ID,
		Name:        name,
		Description: rec.Description,
		Price:       convertPrice(rec.Price, rubPerUSD),
		Category:    rec.Category,
		Image:       rec.Image,
		Rating:      clamp(rating, 0, maxRating),
		Reviews:     max(reviews, 0),
		InStock:     inStock,
	}

	if len(rec.Features) > 0 {
		p.Features = append([]string(nil), rec.Features...)
	}
	if len(rec.Specifications) > 0 {
		p.Specifications = make(map[string]string, len(rec.Specifications))
		for k, v := range rec.Specifications {
			p.Specifications[k] = v
		}
	}

	return p
}

// parseRating accepts {"rate":x,"count":n}, a bare number, or nothing.
func parseRating(raw json.RawMessage) (float64, int) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, 0
	}

	if raw[0] == '{' {
		var r sourceRating
		if err := json.Unmarshal(raw, &r); err != nil {
			return 0, 0
		}
		return r.Rate, r.Count
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, 0
	}
	return f, 0
}

func convertPrice(price, rate float64) int64 {
	if rate > 0 {
		price *= rate
	}
	if price < 0 || math.IsNaN(price) {
		return 0
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if price >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Round(price))
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
