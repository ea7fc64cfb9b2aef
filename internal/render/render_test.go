package render

import (
	"bytes"
	"strings"
	"testing"

	"dealscope/internal/controller"
	"dealscope/pkg/deals"
)

func TestPageControls(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{1, 1, "[1]"},
		{2, 3, "1 [2] 3"},
		{6, 12, "1 … 4 5 [6] 7 8 … 12"},
		{1, 12, "[1] 2 3 … 12"},
		{12, 12, "1 … 10 11 [12]"},
	}
	for _, tt := range tests {
		got := PageControls(deals.Window(tt.current, tt.total), tt.current, tt.total)
		if got != tt.want {
			t.Errorf("PageControls(%d,%d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestRenderPageShowsProducts(t *testing.T) {
	var buf bytes.Buffer
	term := &Terminal{Out: &buf}

	items := []deals.Product{
		{ID: "p1", Name: "Phone X", Brand: "Acme", CurrentPrice: deals.NumericPrice(499),
			Specs: []string{"128GB", "8GB"}, RetailerCount: 3},
	}
	term.RenderPage(items, controller.PageInfo{
		Page: 1, TotalPages: 1, TotalItems: 1, SortBy: deals.SortPriceAsc,
		Window: deals.Window(1, 1),
	})

	out := buf.String()
	for _, want := range []string{"Phone X", "Acme", "499", "128GB | 8GB", "[1]", "sorted by price-asc"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfirmAlert(t *testing.T) {
	var buf bytes.Buffer

	// Empty answer takes the suggested price.
	term := &Terminal{Out: &buf, In: strings.NewReader("\nme@example.com\n")}
	price, email, ok := term.ConfirmAlert(deals.Product{Name: "Phone"}, 900)
	if !ok || price != 900 || email != "me@example.com" {
		t.Fatalf("got %v/%q/%v", price, email, ok)
	}

	// Explicit price.
	term = &Terminal{Out: &buf, In: strings.NewReader("850\n\n")}
	price, email, ok = term.ConfirmAlert(deals.Product{Name: "Phone"}, 900)
	if !ok || price != 850 || email != "" {
		t.Fatalf("got %v/%q/%v", price, email, ok)
	}

	// Garbage cancels.
	term = &Terminal{Out: &buf, In: strings.NewReader("cheap\n")}
	if _, _, ok = term.ConfirmAlert(deals.Product{Name: "Phone"}, 900); ok {
		t.Fatal("non-numeric answer should cancel")
	}
}
