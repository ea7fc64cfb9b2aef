package feed

import "testing"

func TestItemsEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bare array", `[{"id":"a"},{"id":"b"}]`, 2},
		{"products envelope", `{"products":[{"id":"a"}]}`, 1},
		{"smartphones envelope", `{"smartphones":[{"id":"a"},{"id":"b"},{"id":"c"}]}`, 3},
		{"items envelope", `{"items":[{"id":"a"}]}`, 1},
		{"data array", `{"data":[{"id":"a"},{"id":"b"}]}`, 2},
		{"data single object wrapped", `{"data":{"id":"only"}}`, 1},
		{"unknown envelope", `{"stuff":[{"id":"a"}]}`, 0},
		{"empty object", `{}`, 0},
		{"garbage", `<html>nope</html>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Items(tt.body)
			if len(got) != tt.want {
				t.Fatalf("Items() returned %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestItemsFieldPriority(t *testing.T) {
	// products wins over smartphones, smartphones over items.
	body := `{"items":[{"id":"i"}],"smartphones":[{"id":"s1"},{"id":"s2"}],"products":[{"id":"p"}]}`
	got := Items(body)
	if len(got) != 1 || got[0].Get("id").String() != "p" {
		t.Fatalf("expected the products field to win, got %v", got)
	}

	body = `{"items":[{"id":"i"}],"smartphones":[{"id":"s"}]}`
	got = Items(body)
	if len(got) != 1 || got[0].Get("id").String() != "s" {
		t.Fatalf("expected the smartphones field to win, got %v", got)
	}
}

func TestItemsPreservesRecords(t *testing.T) {
	body := `{"smartphones":[{"id":"a","price":1},{"id":"b","price":2}]}`
	got := Items(body)
	if len(got) != 2 {
		t.Fatalf("got %d records", len(got))
	}
	if got[0].Get("id").String() != "a" || got[1].Get("id").String() != "b" {
		t.Fatalf("records out of order or damaged: %v", got)
	}
}
