// Package controller owns the deals browsing state and orchestrates
// fetch -> normalize -> sort -> paginate -> render. Rendering, toasts,
// navigation and the alert confirmation dialog are collaborators injected
// at construction; absent ones default to no-ops.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"

	"dealscope/internal/utils"
	"dealscope/pkg/alerts"
	"dealscope/pkg/deals"
)

// ErrRefreshInFlight is returned when Refresh is called while another
// refresh has not finished yet.
var ErrRefreshInFlight = errors.New("a refresh is already in flight")

// Fetcher retrieves raw product records from the remote feed.
type Fetcher interface {
	Fetch(ctx context.Context) ([]gjson.Result, error)
}

// PageInfo accompanies a rendered page.
type PageInfo struct {
	Page       int
	TotalPages int
	TotalItems int
	SortBy     string
	Window     deals.PageWindow
}

// Renderer turns a page of canonical products into visual output.
type Renderer interface {
	RenderPage(items []deals.Product, info PageInfo)
	RenderEmpty(reason string)
}

// Notifier shows a toast-style message to the user.
type Notifier interface {
	Notify(title, message, severity string)
}

// Navigator requests navigation to another listing view, keyed by a type
// string such as "android".
type Navigator interface {
	NavigateTo(view string)
}

// AlertPrompter runs the interactive confirmation step for alert creation.
// ok is false when the user cancels.
type AlertPrompter interface {
	ConfirmAlert(p deals.Product, suggested float64) (alertPrice float64, email string, ok bool)
}

// Store is the subset of the persistence layer the controller needs.
type Store interface {
	Toggle(productID string) (alerts.Action, error)
	Create(alerts.Alert) error
	AddWish(alerts.WishlistItem) error
}

// Deps wires the controller's collaborators. Fetcher is required; the rest
// may be nil.
type Deps struct {
	Fetcher   Fetcher
	Renderer  Renderer
	Notifier  Notifier
	Navigator Navigator
	Prompter  AlertPrompter
	Store     Store
	SortBy    string
	PageSize  int
}

// Controller holds the current {page, sortBy, products} state. The state
// is process-local and reset on every Refresh; nothing here is persisted.
type Controller struct {
	fetcher   Fetcher
	renderer  Renderer
	notifier  Notifier
	navigator Navigator
	prompter  AlertPrompter
	store     Store

	mu       sync.Mutex
	inFlight bool

	page     int
	sortBy   string
	pageSize int
	products []deals.Product
}

func New(deps Deps) *Controller {
	c := &Controller{
		fetcher:   deps.Fetcher,
		renderer:  deps.Renderer,
		notifier:  deps.Notifier,
		navigator: deps.Navigator,
		prompter:  deps.Prompter,
		store:     deps.Store,
		page:      1,
		sortBy:    deps.SortBy,
		pageSize:  deps.PageSize,
	}
	if c.renderer == nil {
		c.renderer = nopRenderer{}
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.navigator == nil {
		c.navigator = nopNavigator{}
	}
	if c.prompter == nil {
		c.prompter = nopPrompter{}
	}
	if c.sortBy == "" {
		c.sortBy = deals.SortRelevance
	}
	if c.pageSize <= 0 {
		c.pageSize = deals.DefaultPageSize
	}
	return c
}

// Refresh fetches the feed, rebuilds the canonical product set and renders
// page 1. A fetch failure is recovered by rendering the empty state with
// the failure reason; it is never fatal. Only one refresh may be in flight
// at a time.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrRefreshInFlight
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	raws, err := c.fetcher.Fetch(ctx)
	if err != nil {
		utils.Log.Warn("deals fetch failed: ", err)
		c.products = nil
		c.renderer.RenderEmpty(err.Error())
		return nil
	}

	products := deals.NormalizeAll(raws)
	if len(products) == 0 {
		c.products = nil
		c.renderer.RenderEmpty("no deals available right now")
		return nil
	}

	c.products = products
	c.page = 1
	c.render()
	return nil
}

// ChangePage re-slices the already-fetched set; no re-fetch happens.
func (c *Controller) ChangePage(n int) {
	c.page = n
	c.render()
}

// ChangeSort re-sorts the already-fetched set and goes back to page 1.
func (c *Controller) ChangeSort(criterion string) {
	c.sortBy = criterion
	c.page = 1
	c.render()
}

// OnCompareClick navigates to the comparison view for a product.
func (c *Controller) OnCompareClick(id string) {
	if id == "" {
		return
	}
	c.navigator.NavigateTo("compare/" + id)
}

// OnCategoryClick navigates to a filtered listing view, e.g. "android".
func (c *Controller) OnCategoryClick(category string) {
	c.navigator.NavigateTo(category)
}

// OnWishlistClick saves the clicked product to the wishlist.
func (c *Controller) OnWishlistClick(id string) {
	p, ok := c.findProduct(id)
	if !ok {
		c.notifier.Notify("Wishlist", "product not found on the current listing", "error")
		return
	}
	if c.store == nil {
		c.notifier.Notify("Wishlist", "no store configured", "error")
		return
	}

	err := c.store.AddWish(alerts.WishlistItem{
		ID:    p.ID,
		Name:  p.Name,
		Price: c.numericPrice(p),
		Image: p.ImageURL,
		URL:   p.URL,
	})
	if err != nil {
		c.notifier.Notify("Wishlist", err.Error(), "error")
		return
	}
	c.notifier.Notify("Wishlist", fmt.Sprintf("%s added to your wishlist", p.Name), "success")
}

// OnAlertBellClick toggles the price alert for a product. When no alert
// exists, the prompter supplies the threshold and optional email.
func (c *Controller) OnAlertBellClick(id string) {
	p, ok := c.findProduct(id)
	if !ok {
		c.notifier.Notify("Price alert", "product not found on the current listing", "error")
		return
	}
	if c.store == nil {
		c.notifier.Notify("Price alert", "no store configured", "error")
		return
	}

	current := c.numericPrice(p)
	if current <= 0 {
		c.notifier.Notify("Price alert", fmt.Sprintf("%s has no numeric price to track", p.Name), "error")
		return
	}

	action, err := c.store.Toggle(p.ID)
	if err != nil {
		c.notifier.Notify("Price alert", err.Error(), "error")
		return
	}
	if action == alerts.ActionRemoved {
		c.notifier.Notify("Price alert", fmt.Sprintf("alert for %s removed", p.Name), "info")
		return
	}

	alertPrice, email, confirmed := c.prompter.ConfirmAlert(p, alerts.SuggestedPrice(current))
	if !confirmed {
		return
	}

	err = c.store.Create(alerts.Alert{
		ProductID:    p.ID,
		ProductName:  p.Name,
		CurrentPrice: current,
		AlertPrice:   alertPrice,
		Email:        email,
	})
	if err != nil {
		c.notifier.Notify("Price alert", err.Error(), "error")
		return
	}
	c.notifier.Notify("Price alert", fmt.Sprintf("you will be alerted when %s drops below %.0f", p.Name, alertPrice), "success")
}

// Page and SortBy expose the current state for display.
func (c *Controller) Page() int      { return c.page }
func (c *Controller) SortBy() string { return c.sortBy }

func (c *Controller) render() {
	sorted := deals.Sort(c.products, c.sortBy)
	pg := deals.Paginate(sorted, c.page, c.pageSize)
	c.renderer.RenderPage(pg.Items, PageInfo{
		Page:       c.page,
		TotalPages: pg.TotalPages,
		TotalItems: len(sorted),
		SortBy:     c.sortBy,
		Window:     deals.Window(c.page, pg.TotalPages),
	})
}

// findProduct looks up a product on the current canonical set. Records
// that were normalized without an id cannot be correlated and are never
// matched.
func (c *Controller) findProduct(id string) (deals.Product, bool) {
	if id == "" {
		return deals.Product{}, false
	}
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return deals.Product{}, false
}

// numericPrice best-efforts a float out of the product's current price,
// falling back to parsing the display string.
func (c *Controller) numericPrice(p deals.Product) float64 {
	if v := p.CurrentPrice.Value(); v > 0 {
		return v
	}
	if f, ok := utils.ParsePrice(p.CurrentPrice.Display); ok {
		return f
	}
	return 0
}

type nopRenderer struct{}

func (nopRenderer) RenderPage([]deals.Product, PageInfo) {}
func (nopRenderer) RenderEmpty(string)                   {}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, string) {}

type nopNavigator struct{}

func (nopNavigator) NavigateTo(string) {}

type nopPrompter struct{}

func (nopPrompter) ConfirmAlert(deals.Product, float64) (float64, string, bool) {
	return 0, "", false
}
