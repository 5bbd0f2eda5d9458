package storefront

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxPriceCents is the largest price a product may carry.
const MaxPriceCents int64 = 999_999_999

// StoreProduct is one catalog entry. Decoding is lenient: string fields
// accept any JSON scalar and priceCents accepts numbers or numeric strings.
type StoreProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"priceCents"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Active      bool   `json:"active"`
	Badge       string `json:"badge,omitempty"`
	SKU         string `json:"sku,omitempty"`
}

// ClampPrice rounds to whole cents and clamps into [0, MaxPriceCents].
func ClampPrice(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= float64(MaxPriceCents) {
		return MaxPriceCents
	}
	return int64(math.Round(v))
}

func (p *StoreProduct) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = StoreProduct{
		ID:          looseString(raw["id"]),
		Name:        looseString(raw["name"]),
		PriceCents:  ClampPrice(looseNumber(raw["priceCents"])),
		Description: looseString(raw["description"]),
		ImageURL:    looseString(raw["imageUrl"]),
		Active:      strictTrue(raw["active"]),
		Badge:       looseString(raw["badge"]),
		SKU:         looseString(raw["sku"]),
	}
	return nil
}

// DecodeProducts decodes a JSON array of products, skipping elements that
// are not objects. Only a non-array document is an error.
func DecodeProducts(data []byte) ([]StoreProduct, error) {
	if len(strings.TrimSpace(string(data))) == 0 || strings.TrimSpace(string(data)) == "null" {
		return []StoreProduct{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("products must be a JSON array: %w", err)
	}
	out := make([]StoreProduct, 0, len(items))
	for _, item := range items {
		var p StoreProduct
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// ActiveProducts keeps products whose active flag is true, with prices clamped.
func ActiveProducts(products []StoreProduct) []StoreProduct {
	out := make([]StoreProduct, 0, len(products))
	for _, p := range products {
		if !p.Active {
			continue
		}
		p.PriceCents = ClampPrice(float64(p.PriceCents))
		out = append(out, p)
	}
	return out
}

func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func looseNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func strictTrue(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "true"
}
