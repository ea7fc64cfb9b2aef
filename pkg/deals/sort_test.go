package deals

import "testing"

func phones(prices ...float64) []Product {
	out := make([]Product, 0, len(prices))
	for i, p := range prices {
		out = append(out, Product{
			ID:           string(rune('a' + i)),
			Name:         "Phone",
			CurrentPrice: NumericPrice(p),
		})
	}
	return out
}

func TestSortIsPermutation(t *testing.T) {
	in := phones(300, 100, 200, 100)
	for _, criterion := range []string{SortPriceAsc, SortPriceDesc, SortBrandAsc, SortBrandDesc, SortRelevance, "bogus"} {
		got := Sort(in, criterion)
		if len(got) != len(in) {
			t.Fatalf("%s: length %d, want %d", criterion, len(got), len(in))
		}
		seen := map[string]int{}
		for _, p := range got {
			seen[p.ID]++
		}
		for _, p := range in {
			if seen[p.ID] != 1 {
				t.Fatalf("%s: record %q appears %d times", criterion, p.ID, seen[p.ID])
			}
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := phones(3, 1, 2)
	Sort(in, SortPriceAsc)
	if in[0].CurrentPrice.Value() != 3 {
		t.Fatal("input slice was mutated")
	}
}

func TestSortPriceAscDescAreReverses(t *testing.T) {
	in := phones(500, 100, 900, 300, 700)
	asc := Sort(in, SortPriceAsc)
	desc := Sort(asc, SortPriceDesc)
	for i := range asc {
		if asc[i].ID != desc[len(desc)-1-i].ID {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", asc, desc)
		}
	}
}

func TestSortMissingPriceTreatedAsZero(t *testing.T) {
	in := []Product{
		{ID: "a", CurrentPrice: NumericPrice(100)},
		{ID: "b", CurrentPrice: DisplayPrice("N/A")},
	}
	got := Sort(in, SortPriceAsc)
	if got[0].ID != "b" {
		t.Fatalf("non-numeric price should sort as 0, got order %q,%q", got[0].ID, got[1].ID)
	}
}

func TestSortBrandCaseInsensitive(t *testing.T) {
	in := []Product{
		{ID: "a", Brand: "zeta"},
		{ID: "b", Brand: "Alpha"},
		{ID: "c"}, // missing brand sorts as empty string
		{ID: "d", Brand: "alpha"},
	}

	got := Sort(in, SortBrandAsc)
	if got[0].ID != "c" {
		t.Fatalf("missing brand should sort first, got %q", got[0].ID)
	}
	// "Alpha" and "alpha" compare equal ignoring case; stable sort keeps
	// original relative order.
	if got[1].ID != "b" || got[2].ID != "d" {
		t.Fatalf("equal brands must keep input order, got %q,%q", got[1].ID, got[2].ID)
	}
	if got[3].ID != "a" {
		t.Fatalf("zeta should sort last, got %q", got[3].ID)
	}

	gotDesc := Sort(in, SortBrandDesc)
	if gotDesc[0].ID != "a" {
		t.Fatalf("brand-desc should put zeta first, got %q", gotDesc[0].ID)
	}
}

func TestSortRelevanceMatchesPriceAsc(t *testing.T) {
	in := phones(5, 3, 4, 1, 2)
	rel := Sort(in, SortRelevance)
	asc := Sort(in, SortPriceAsc)
	for i := range rel {
		if rel[i].ID != asc[i].ID {
			t.Fatalf("relevance order differs from price-asc at %d", i)
		}
	}
}
