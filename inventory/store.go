package inventory

import (
	"fmt"
	"sync"
	"time"

	"counting-app/controllers/idgen"
	"counting-app/models"
	"counting-app/types"
)

// Persister is the external key-value store the Store writes through
// to. A missing or malformed record is never fatal: Load reports
// absence and the Store falls back to an empty default.
type Persister interface {
	Load(key string) ([]byte, bool, error)
	Save(key string, value []byte) error
	Remove(key string) error
}

// Logical persistence keys.
const (
	KeyGroups      = "inventory-groups"
	KeyProducts    = "inventory-products"
	KeyCounts      = "inventory-counts"
	KeyResolutions = "inventory-resolutions"
	KeySession     = "inventory-session"
)

// Key addresses one counter's ledger for one product. A single flat
// map keyed by Key replaces the group->counter->product nesting, so
// "absent" is a first-class lookup result instead of a chain of
// existence checks.
type Key struct {
	GroupID   string
	CounterID models.CounterID
	ProductID int
}

type resolutionKey struct {
	GroupID   string
	ProductID int
}

// Store holds the whole reconciliation state: catalog, per-counter
// ledgers, derived totals, resolutions and the active session. The
// ledger is the sole source of truth; totals are recomputed from it
// inside the same mutation, never patched independently.
type Store struct {
	mu        sync.RWMutex
	persister Persister

	groups   []models.CountingGroup
	products []models.Product

	ledger      map[Key][]models.CountEntry
	totals      map[Key]int
	resolutions map[resolutionKey]models.Resolution
	session     *models.UserSession
}

func NewStore(p Persister) *Store {
	return &Store{
		persister:   p,
		ledger:      make(map[Key][]models.CountEntry),
		totals:      make(map[Key]int),
		resolutions: make(map[resolutionKey]models.Resolution),
	}
}

// recompute derives the aggregate total for one key from its ledger
// sequence. An empty sequence removes the key entirely, reverting the
// product to "not counted".
func (s *Store) recompute(k Key) {
	entries := s.ledger[k]
	if len(entries) == 0 {
		delete(s.ledger, k)
		delete(s.totals, k)
		return
	}
	sum := 0
	for _, e := range entries {
		sum += e.Quantity
	}
	s.totals[k] = sum
}

// Append adds a quantity entry to a counter's ledger for a product.
// The location defaults to "Location N" where N is the new sequence
// length; callers may override it (e.g. "Auto-fill").
func (s *Store) Append(groupID string, counter models.CounterID, productID int, quantity int, location string) (models.CountEntry, error) {
	if quantity < 0 {
		return models.CountEntry{}, ErrNegativeQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groupByID(groupID); !ok {
		return models.CountEntry{}, ErrUnknownGroup
	}
	if _, ok := s.productByID(productID); !ok {
		return models.CountEntry{}, ErrUnknownProduct
	}

	k := Key{GroupID: groupID, CounterID: counter, ProductID: productID}
	if location == "" {
		location = fmt.Sprintf("Location %d", len(s.ledger[k])+1)
	}

	entry := models.CountEntry{
		ID:        types.SnowflakeID(idgen.GenerateID()),
		Quantity:  quantity,
		Timestamp: time.Now(),
		Location:  location,
	}

	s.ledger[k] = append(s.ledger[k], entry)
	s.recompute(k)
	s.persistCounts()

	return entry, nil
}

// UpdateEntry replaces the quantity of one ledger entry in place.
// Timestamp and location are kept. An unknown entry id is a no-op.
func (s *Store) UpdateEntry(groupID string, counter models.CounterID, productID int, entryID types.SnowflakeID, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{GroupID: groupID, CounterID: counter, ProductID: productID}
	entries := s.ledger[k]
	for i := range entries {
		if entries[i].ID == entryID {
			entries[i].Quantity = quantity
			s.recompute(k)
			s.persistCounts()
			return nil
		}
	}
	return nil
}

// DeleteEntry removes one ledger entry. Deleting the last entry of a
// sequence reverts the product to "not counted" for that counter.
func (s *Store) DeleteEntry(groupID string, counter models.CounterID, productID int, entryID types.SnowflakeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := Key{GroupID: groupID, CounterID: counter, ProductID: productID}
	entries := s.ledger[k]
	for i := range entries {
		if entries[i].ID == entryID {
			s.ledger[k] = append(entries[:i:i], entries[i+1:]...)
			s.recompute(k)
			s.persistCounts()
			return nil
		}
	}
	return nil
}

// FillZeros appends a single zero-quantity "Auto-fill" entry for every
// group product the counter has not yet counted, so the counter can be
// force-completed before comparison. Returns the products filled.
func (s *Store) FillZeros(groupID string, counter models.CounterID) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groupByID(groupID)
	if !ok {
		return nil, ErrUnknownGroup
	}

	filled := []models.Product{}
	now := time.Now()
	for _, p := range s.productsForGroup(group) {
		k := Key{GroupID: groupID, CounterID: counter, ProductID: p.ID}
		if _, counted := s.totals[k]; counted {
			continue
		}
		s.ledger[k] = append(s.ledger[k], models.CountEntry{
			ID:        types.SnowflakeID(idgen.GenerateID()),
			Quantity:  0,
			Timestamp: now,
			Location:  "Auto-fill",
		})
		s.recompute(k)
		filled = append(filled, p)
	}

	if len(filled) > 0 {
		s.persistCounts()
	}
	return filled, nil
}

// Total returns the aggregate counted quantity for one key. The second
// return value distinguishes a counted zero from "not yet counted".
func (s *Store) Total(groupID string, counter models.CounterID, productID int) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	qty, ok := s.totals[Key{GroupID: groupID, CounterID: counter, ProductID: productID}]
	return qty, ok
}

// History returns a copy of the ledger sequence for one key, in
// insertion order. An unknown key yields an empty slice.
func (s *Store) History(groupID string, counter models.CounterID, productID int) []models.CountEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.ledger[Key{GroupID: groupID, CounterID: counter, ProductID: productID}]
	out := make([]models.CountEntry, len(entries))
	copy(out, entries)
	return out
}

// UncountedProducts lists the group products the counter has no
// aggregate total for yet.
func (s *Store) UncountedProducts(groupID string, counter models.CounterID) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groupByID(groupID)
	if !ok {
		return nil
	}

	var uncounted []models.Product
	for _, p := range s.productsForGroup(group) {
		if _, counted := s.totals[Key{GroupID: groupID, CounterID: counter, ProductID: p.ID}]; !counted {
			uncounted = append(uncounted, p)
		}
	}
	return uncounted
}

// Progress reports how many of the group's products the counter has
// counted, and the group's total product count.
func (s *Store) Progress(groupID string, counter models.CounterID) (counted, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groupByID(groupID)
	if !ok {
		return 0, 0
	}

	products := s.productsForGroup(group)
	for _, p := range products {
		if _, ok := s.totals[Key{GroupID: groupID, CounterID: counter, ProductID: p.ID}]; ok {
			counted++
		}
	}
	return counted, len(products)
}

// Resolve records an administrative override for a discrepancy. Both
// counters must have a recorded total for the product; resolving a
// half-counted product is an invariant violation. A fresh resolve
// overwrites any previous one.
func (s *Store) Resolve(groupID string, productID int, finalQuantity int) error {
	if finalQuantity < 0 {
		return ErrNegativeQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groupByID(groupID); !ok {
		return ErrUnknownGroup
	}
	if _, ok := s.productByID(productID); !ok {
		return ErrUnknownProduct
	}

	_, counted1 := s.totals[Key{GroupID: groupID, CounterID: models.Counter1, ProductID: productID}]
	_, counted2 := s.totals[Key{GroupID: groupID, CounterID: models.Counter2, ProductID: productID}]
	if !counted1 || !counted2 {
		return fmt.Errorf("%w: both counters must have counted the product before it can be resolved", ErrPrecondition)
	}

	s.resolutions[resolutionKey{GroupID: groupID, ProductID: productID}] = models.Resolution{
		Resolved:      true,
		FinalQuantity: finalQuantity,
	}
	s.persistResolutions()
	return nil
}

// ResolutionFor returns the manual override for one product, if any.
func (s *Store) ResolutionFor(groupID string, productID int) (models.Resolution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.resolutions[resolutionKey{GroupID: groupID, ProductID: productID}]
	return res, ok
}

// StatusFor classifies one product from the perspective of the given
// counter and view mode.
func (s *Store) StatusFor(groupID string, counter models.CounterID, productID int, view ViewMode) models.ProductStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.productByID(productID)
	if !ok {
		return models.StatusPending
	}

	activeQty, activeOK := s.totals[Key{GroupID: groupID, CounterID: counter, ProductID: productID}]
	otherQty, otherOK := s.totals[Key{GroupID: groupID, CounterID: counter.Other(), ProductID: productID}]
	res := s.resolutions[resolutionKey{GroupID: groupID, ProductID: productID}]

	return Classify(view,
		Total{Qty: activeQty, Counted: activeOK},
		Total{Qty: otherQty, Counted: otherOK},
		res, product.ExpectedQty)
}

// SetSession records the active session and persists it.
func (s *Store) SetSession(sess models.UserSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &sess
	s.persistSession()
}

// ClearSession drops only the session selection; ledger and aggregate
// data for the counter are kept.
func (s *Store) ClearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	s.removeKey(KeySession)
}

// ActiveSession returns the current session, if one is set.
func (s *Store) ActiveSession() (models.UserSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return models.UserSession{}, false
	}
	return *s.session, true
}
