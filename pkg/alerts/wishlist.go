package alerts

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/weppos/publicsuffix-go/publicsuffix"

	"dealscope/internal/utils"
)

// WishlistItem is a product the user saved for later.
type WishlistItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Image    string    `json:"image,omitempty"`
	URL      string    `json:"url,omitempty"`
	Retailer string    `json:"retailer,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
}

// Wishlist returns the persisted wishlist in insertion order. Corrupt data
// is treated as an empty list.
func (s *Store) Wishlist() []WishlistItem {
	raw, err := s.get(wishlistKey)
	if err != nil {
		utils.Log.Warn("could not read wishlist from store: ", err)
		return nil
	}
	if raw == "" {
		return nil
	}

	var items []WishlistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		utils.Log.Warn("corrupt wishlist data in store, treating as empty: ", err)
		return nil
	}
	return items
}

// AddWish upserts an item by ID and persists the full list.
func (s *Store) AddWish(item WishlistItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	if item.Retailer == "" {
		item.Retailer = RetailerLabel(item.URL)
	}

	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer s.lock.Unlock()

	items := s.Wishlist()
	replaced := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	return s.saveWishlistLocked(items)
}

// RemoveWish deletes the item with the given id, if present.
func (s *Store) RemoveWish(id string) error {
	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer s.lock.Unlock()

	items := s.Wishlist()
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return s.saveWishlistLocked(kept)
}

func (s *Store) saveWishlistLocked(items []WishlistItem) error {
	if items == nil {
		items = []WishlistItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.set(wishlistKey, string(data))
}

// RetailerLabel derives a display label from a product URL's registrable
// domain, e.g. "https://www.amazon.in/dp/x" -> "amazon.in". Returns ""
// when no domain can be extracted.
func RetailerLabel(rawURL string) string {
	host := rawURL
	if !strings.Contains(rawURL, "://") && strings.Contains(rawURL, ".") {
		rawURL = "https://" + rawURL
	}
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Hostname()
	} else {
		host = strings.Split(host, "/")[0]
		host = strings.Split(host, ":")[0]
	}
	if !strings.Contains(host, ".") {
		return ""
	}

	domain, err := publicsuffix.Domain(host)
	if err != nil {
		return ""
	}
	return domain
}
