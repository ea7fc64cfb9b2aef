package deals

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// DefaultName is used when a record has a name-like field that is empty.
	DefaultName = "Smartphone"

	// DefaultRetailerCount is assumed when the feed does not say how many
	// retailers carry the product.
	DefaultRetailerCount = 2

	// MissingPrice is displayed when a record has no usable price field.
	MissingPrice = "N/A"
)

// Alternate source field names, first present wins.
var (
	idFields      = []string{"id", "productId", "product_id"}
	nameFields    = []string{"name", "model", "title"}
	brandFields   = []string{"brand", "manufacturer"}
	currentFields = []string{"currentPrice", "price", "salePrice"}
	origFields    = []string{"originalPrice", "mrp", "listPrice"}
	discFields    = []string{"discount", "offer"}
	imageFields   = []string{"imageUrl", "image", "img", "thumbnail"}
	urlFields     = []string{"url", "link"}
	specFields    = []string{"storage", "ram", "display"}
)

// Normalize maps a raw feed record onto the canonical Product shape.
// A record without any name-like field is unusable and gets dropped
// (ok == false); a missing id is tolerated.
func Normalize(raw gjson.Result) (Product, bool) {
	nameRes := coalesce(raw, nameFields...)
	if !nameRes.Exists() {
		return Product{}, false
	}

	name := strings.TrimSpace(nameRes.String())
	if name == "" {
		name = DefaultName
	}

	p := Product{
		ID:       coalesce(raw, idFields...).String(),
		Name:     name,
		Brand:    coalesce(raw, brandFields...).String(),
		Discount: coalesce(raw, discFields...).String(),
		ImageURL: coalesce(raw, imageFields...).String(),
		URL:      coalesce(raw, urlFields...).String(),
	}

	p.CurrentPrice = toPrice(coalesce(raw, currentFields...))
	if !p.CurrentPrice.IsSet() {
		p.CurrentPrice = DisplayPrice(MissingPrice)
	}
	p.OriginalPrice = toPrice(coalesce(raw, origFields...))

	// Spec lines keep a fixed order: storage, ram, display.
	for _, field := range specFields {
		if v := raw.Get(field); v.Exists() && v.Type != gjson.Null && v.String() != "" {
			p.Specs = append(p.Specs, v.String())
		}
	}

	if rc := coalesce(raw, "retailerCount", "retailers"); rc.Exists() && rc.Int() > 0 {
		p.RetailerCount = int(rc.Int())
	} else {
		p.RetailerCount = DefaultRetailerCount
	}

	return p, true
}

// NormalizeAll normalizes every raw record, discarding the unusable ones.
func NormalizeAll(raws []gjson.Result) []Product {
	out := make([]Product, 0, len(raws))
	for _, raw := range raws {
		if p, ok := Normalize(raw); ok {
			out = append(out, p)
		}
	}
	return out
}

// coalesce returns the first present, non-null field among keys.
func coalesce(raw gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := raw.Get(k); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// toPrice preserves numeric-looking values as numbers and everything else
// as a literal display string.
func toPrice(v gjson.Result) Price {
	switch v.Type {
	case gjson.Number:
		return NumericPrice(v.Num)
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return Price{}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NumericPrice(f)
		}
		return DisplayPrice(s)
	default:
		return Price{}
	}
}
