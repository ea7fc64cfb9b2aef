package controller

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"dealscope/pkg/alerts"
	"dealscope/pkg/deals"
)

type fakeFetcher struct {
	body  string
	err   error
	calls int
	block chan struct{} // when set, Fetch waits until the channel is closed
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([]gjson.Result, error) {
	f.calls++
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return gjson.Parse(f.body).Array(), nil
}

type recordingRenderer struct {
	pages [][]deals.Product
	infos []PageInfo
	empty []string
}

func (r *recordingRenderer) RenderPage(items []deals.Product, info PageInfo) {
	r.pages = append(r.pages, items)
	r.infos = append(r.infos, info)
}

func (r *recordingRenderer) RenderEmpty(reason string) {
	r.empty = append(r.empty, reason)
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Notify(title, message, severity string) {
	n.messages = append(n.messages, title+": "+message+" ("+severity+")")
}

type fixedPrompter struct {
	price     float64
	email     string
	confirmed bool
}

func (p fixedPrompter) ConfirmAlert(deals.Product, float64) (float64, string, bool) {
	return p.price, p.email, p.confirmed
}

func testStore(t *testing.T) *alerts.Store {
	t.Helper()
	s, err := alerts.Open(filepath.Join(t.TempDir(), "store.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func feedBody(n int) string {
	// Prices descend so default sorting visibly reorders.
	body := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			body += ","
		}
		body += `{"id":"p` + strconv.Itoa(i) + `","name":"Phone","price":` + strconv.Itoa(1000-i) + `}`
	}
	return body + "]"
}

func TestRefreshRendersFirstPageSorted(t *testing.T) {
	r := &recordingRenderer{}
	c := New(Deps{
		Fetcher:  &fakeFetcher{body: `[{"id":"a","name":"A","price":300},{"id":"b","name":"B","price":100},{"id":"c","name":"C","price":200}]`},
		Renderer: r,
	})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(r.pages) != 1 {
		t.Fatalf("expected 1 rendered page, got %d", len(r.pages))
	}
	got := r.pages[0]
	if len(got) != 3 || got[0].ID != "b" || got[1].ID != "c" || got[2].ID != "a" {
		t.Fatalf("default sort should be price ascending, got %v", got)
	}
	if r.infos[0].Page != 1 || r.infos[0].TotalPages != 1 {
		t.Fatalf("info = %+v", r.infos[0])
	}
}

func TestRefreshFetchFailureRendersEmptyState(t *testing.T) {
	r := &recordingRenderer{}
	c := New(Deps{
		Fetcher:  &fakeFetcher{err: errors.New("deals feed returned HTTP 500")},
		Renderer: r,
	})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("fetch failure must be recovered, got %v", err)
	}
	if len(r.empty) != 1 || r.empty[0] != "deals feed returned HTTP 500" {
		t.Fatalf("empty state = %v", r.empty)
	}
	if len(r.pages) != 0 {
		t.Fatal("no page should render on failure")
	}
}

func TestRefreshAllRecordsDroppedRendersEmptyState(t *testing.T) {
	r := &recordingRenderer{}
	c := New(Deps{
		Fetcher:  &fakeFetcher{body: `[{"price":1},{"price":2}]`},
		Renderer: r,
	})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(r.empty) != 1 {
		t.Fatalf("expected the empty state, got %v renders", len(r.pages))
	}
}

func TestChangePageAndSortDoNotRefetch(t *testing.T) {
	f := &fakeFetcher{body: feedBody(20)}
	r := &recordingRenderer{}
	c := New(Deps{Fetcher: f, Renderer: r})

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.ChangePage(2)
	if len(r.pages) != 2 {
		t.Fatalf("expected a second render, got %d", len(r.pages))
	}
	if len(r.pages[1]) != 9 {
		t.Fatalf("page 2 of 20 should have 9 items, got %d", len(r.pages[1]))
	}
	if r.infos[1].TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", r.infos[1].TotalPages)
	}

	c.ChangeSort(deals.SortPriceDesc)
	if r.infos[2].Page != 1 {
		t.Fatal("sort change should go back to page 1")
	}
	if first := r.pages[2][0]; first.CurrentPrice.Value() != 1000 {
		t.Fatalf("price-desc should put the most expensive first, got %v", first.CurrentPrice)
	}

	if f.calls != 1 {
		t.Fatalf("page/sort changes must not refetch; fetch called %d times", f.calls)
	}
}

func TestRefreshInFlightGuard(t *testing.T) {
	block := make(chan struct{})
	f := &fakeFetcher{body: `[{"name":"A"}]`, block: block}
	c := New(Deps{Fetcher: f})

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()

	// Wait for the first refresh to be in flight.
	for {
		c.mu.Lock()
		inFlight := c.inFlight
		c.mu.Unlock()
		if inFlight {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := c.Refresh(context.Background()); !errors.Is(err, ErrRefreshInFlight) {
		t.Fatalf("second refresh should be refused, got %v", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}

	// And a later refresh is allowed again.
	f.block = nil
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh after completion: %v", err)
	}
}

func TestOnAlertBellClickLifecycle(t *testing.T) {
	store := testStore(t)
	n := &recordingNotifier{}
	c := New(Deps{
		Fetcher:  &fakeFetcher{body: `[{"id":"p1","name":"Phone X","price":1000}]`},
		Notifier: n,
		Prompter: fixedPrompter{price: 900, email: "u@example.com", confirmed: true},
		Store:    store,
	})
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.OnAlertBellClick("p1")
	all := store.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 alert after bell click, got %d", len(all))
	}
	a := all["p1"]
	if a.AlertPrice != 900 || a.CurrentPrice != 1000 || a.Email != "u@example.com" || a.ProductName != "Phone X" {
		t.Fatalf("alert = %+v", a)
	}

	// Second click removes it: back to the original state.
	c.OnAlertBellClick("p1")
	if len(store.All()) != 0 {
		t.Fatal("second bell click should remove the alert")
	}
}

func TestOnAlertBellClickInvalidPrice(t *testing.T) {
	store := testStore(t)
	n := &recordingNotifier{}
	c := New(Deps{
		Fetcher:  &fakeFetcher{body: `[{"id":"p1","name":"Phone X","price":1000}]`},
		Notifier: n,
		Prompter: fixedPrompter{price: 1000, confirmed: true}, // not below current
		Store:    store,
	})
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.OnAlertBellClick("p1")
	if len(store.All()) != 0 {
		t.Fatal("invalid threshold must not create an alert")
	}
	if len(n.messages) == 0 {
		t.Fatal("user should be told the price was rejected")
	}
}

func TestOnAlertBellClickCancelled(t *testing.T) {
	store := testStore(t)
	c := New(Deps{
		Fetcher:  &fakeFetcher{body: `[{"id":"p1","name":"Phone X","price":1000}]`},
		Prompter: fixedPrompter{confirmed: false},
		Store:    store,
	})
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.OnAlertBellClick("p1")
	if len(store.All()) != 0 {
		t.Fatal("cancelling the prompt must not create an alert")
	}
}

func TestOnWishlistClick(t *testing.T) {
	store := testStore(t)
	n := &recordingNotifier{}
	c := New(Deps{
		Fetcher:  &fakeFetcher{body: `[{"id":"p1","name":"Phone X","price":500,"imageUrl":"x.png","url":"https://www.amazon.in/dp/x"}]`},
		Notifier: n,
		Store:    store,
	})
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.OnWishlistClick("p1")
	items := store.Wishlist()
	if len(items) != 1 {
		t.Fatalf("wishlist has %d items", len(items))
	}
	if items[0].Name != "Phone X" || items[0].Price != 500 || items[0].Retailer != "amazon.in" {
		t.Fatalf("item = %+v", items[0])
	}

	// Unknown and empty ids are refused.
	c.OnWishlistClick("nope")
	c.OnWishlistClick("")
	if len(store.Wishlist()) != 1 {
		t.Fatal("bad ids must not touch the wishlist")
	}
}
