package deals

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort criteria. Anything unrecognized (including "relevance") falls back
// to SortPriceAsc.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortBrandAsc  = "brand-asc"
	SortBrandDesc = "brand-desc"
	SortRelevance = "relevance"
)

// Sort orders products by the given criterion. The input slice is left
// untouched; ties keep their original relative order.
func Sort(products []Product, criterion string) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch criterion {
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CurrentPrice.Value() > out[j].CurrentPrice.Value()
		})
	case SortBrandAsc, SortBrandDesc:
		// Brand names come from user-facing feeds, so compare them the way
		// a locale-aware UI would rather than by raw bytes.
		c := collate.New(language.Und, collate.IgnoreCase)
		desc := criterion == SortBrandDesc
		sort.SliceStable(out, func(i, j int) bool {
			cmp := c.CompareString(out[i].Brand, out[j].Brand)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CurrentPrice.Value() < out[j].CurrentPrice.Value()
		})
	}
	return out
}
