package deals

import "strconv"

// Price holds a product price that may or may not be numeric. Feeds are
// inconsistent: some send numbers, some send pre-formatted display strings
// like "₹49,999", some send nothing at all.
type Price struct {
	Amount  float64
	Display string
	Numeric bool
}

// NumericPrice returns a Price carrying a parsed amount.
func NumericPrice(amount float64) Price {
	return Price{Amount: amount, Numeric: true}
}

// DisplayPrice returns a non-numeric Price carrying a literal display string.
func DisplayPrice(s string) Price {
	return Price{Display: s}
}

// Value returns the numeric amount, treating non-numeric prices as 0.
func (p Price) Value() float64 {
	if !p.Numeric {
		return 0
	}
	return p.Amount
}

// IsSet reports whether the price carries any value at all.
func (p Price) IsSet() bool {
	return p.Numeric || p.Display != ""
}

func (p Price) String() string {
	if p.Numeric {
		return strconv.FormatFloat(p.Amount, 'f', -1, 64)
	}
	return p.Display
}

// Product is the canonical product record, built once per fetch cycle and
// immutable afterwards. ID may be empty when the source record carried no
// identifier; alert and wishlist correlation is refused for such records.
type Product struct {
	ID            string
	Name          string
	Brand         string
	CurrentPrice  Price
	OriginalPrice Price
	Discount      string
	ImageURL      string
	URL           string
	Specs         []string
	RetailerCount int
}
