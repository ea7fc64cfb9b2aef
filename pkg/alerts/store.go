package alerts

import (
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"dealscope/internal/utils"
)

const (
	alertsKey   = "alerts.v1"
	wishlistKey = "wishlist.v1"
)

// ErrInvalidPrice is returned when an alert threshold is not strictly
// between zero and the product's current price.
var ErrInvalidPrice = errors.New("alert price must be above zero and below the current price")

// Action is the outcome of toggling the alert bell for a product.
type Action int

const (
	// ActionRemoved means an existing alert was deleted.
	ActionRemoved Action = iota
	// ActionPromptCreate means no alert existed; creation is deferred to an
	// interactive confirmation step that supplies the threshold and email.
	ActionPromptCreate
)

// Alert is a user-created threshold price for one product. The collection
// is keyed by ProductID, so there is at most one active alert per product.
type Alert struct {
	ProductID    string    `json:"productId"`
	ProductName  string    `json:"productName"`
	CurrentPrice float64   `json:"currentPrice"`
	AlertPrice   float64   `json:"alertPrice"`
	Email        string    `json:"email,omitempty"`
	DateCreated  time.Time `json:"dateCreated"`
}

// Store persists the alert mapping and the wishlist in a local SQLite file.
// Each collection lives under a single key as one JSON document; every
// write replaces the whole document (read-modify-write, no partial update).
type Store struct {
	db   *sql.DB
	lock *utils.StoreLock
}

// Open opens (and if needed creates) the store at path.
func Open(path string) (*Store, error) {
	lock, err := utils.NewStoreLock(path)
	if err != nil {
		return nil, err
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
	`); err != nil {
		return nil, err
	}
	return &Store{db: db, lock: lock}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// All returns the persisted alert mapping. A missing key or a corrupt
// stored value yields an empty mapping; the failure is logged, never
// propagated.
func (s *Store) All() map[string]Alert {
	raw, err := s.get(alertsKey)
	if err != nil {
		utils.Log.Warn("could not read alerts from store: ", err)
		return map[string]Alert{}
	}
	if raw == "" {
		return map[string]Alert{}
	}

	var m map[string]Alert
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		utils.Log.Warn("corrupt alert data in store, treating as empty: ", err)
		return map[string]Alert{}
	}
	if m == nil {
		m = map[string]Alert{}
	}
	return m
}

// SaveAll overwrites the persisted mapping with the full serialization of
// alerts. There are no merge semantics.
func (s *Store) SaveAll(alerts map[string]Alert) error {
	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer s.lock.Unlock()
	return s.saveAllLocked(alerts)
}

func (s *Store) saveAllLocked(alerts map[string]Alert) error {
	data, err := json.Marshal(alerts)
	if err != nil {
		return err
	}
	return s.set(alertsKey, string(data))
}

// Toggle removes the alert for productID when one exists. When none does,
// it defers creation to the caller's confirmation step and changes nothing.
func (s *Store) Toggle(productID string) (Action, error) {
	if err := s.lock.Lock(); err != nil {
		return ActionPromptCreate, err
	}
	defer s.lock.Unlock()

	m := s.All()
	if _, exists := m[productID]; exists {
		delete(m, productID)
		if err := s.saveAllLocked(m); err != nil {
			return ActionRemoved, err
		}
		return ActionRemoved, nil
	}
	return ActionPromptCreate, nil
}

// Create validates and persists a new alert, upserting on ProductID.
func (s *Store) Create(a Alert) error {
	if a.AlertPrice <= 0 || a.AlertPrice >= a.CurrentPrice {
		return ErrInvalidPrice
	}
	if a.DateCreated.IsZero() {
		a.DateCreated = time.Now().UTC()
	}

	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer s.lock.Unlock()

	m := s.All()
	m[a.ProductID] = a
	return s.saveAllLocked(m)
}

// Remove deletes the alert for productID, if any.
func (s *Store) Remove(productID string) error {
	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer s.lock.Unlock()

	m := s.All()
	if _, exists := m[productID]; !exists {
		return nil
	}
	delete(m, productID)
	return s.saveAllLocked(m)
}

// Clear drops every alert.
func (s *Store) Clear() error {
	return s.SaveAll(map[string]Alert{})
}

// SuggestedPrice is the default alert threshold offered to the user.
func SuggestedPrice(currentPrice float64) float64 {
	return math.Floor(currentPrice * 0.9)
}

func (s *Store) get(key string) (string, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}
