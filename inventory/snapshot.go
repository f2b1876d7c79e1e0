package inventory

import (
	"encoding/json"
	"log"

	"counting-app/models"

	"golang.org/x/exp/slices"
)

// ledgerRecord is the persisted form of one (group, counter, product)
// ledger: the entry sequence plus its derived total. The total is
// stored for the benefit of external readers; Load recomputes it from
// the entries so the ledger stays the sole source of truth.
type ledgerRecord struct {
	GroupID   string              `json:"group_id"`
	CounterID models.CounterID    `json:"counter_id"`
	ProductID int                 `json:"product_id"`
	Entries   []models.CountEntry `json:"entries"`
	Total     int                 `json:"total"`
}

type resolutionRecord struct {
	GroupID       string `json:"group_id"`
	ProductID     int    `json:"product_id"`
	Resolved      bool   `json:"resolved"`
	FinalQuantity int    `json:"final_quantity"`
}

// Load restores the whole state from the persister. A missing or
// malformed record falls back to an empty default; nothing here is
// fatal.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	loadKey(s.persister, KeyGroups, &s.groups)
	loadKey(s.persister, KeyProducts, &s.products)

	var counts []ledgerRecord
	loadKey(s.persister, KeyCounts, &counts)
	s.ledger = make(map[Key][]models.CountEntry)
	s.totals = make(map[Key]int)
	for _, rec := range counts {
		if len(rec.Entries) == 0 {
			continue
		}
		k := Key{GroupID: rec.GroupID, CounterID: rec.CounterID, ProductID: rec.ProductID}
		s.ledger[k] = rec.Entries
		s.recompute(k)
	}

	var resolutions []resolutionRecord
	loadKey(s.persister, KeyResolutions, &resolutions)
	s.resolutions = make(map[resolutionKey]models.Resolution)
	for _, rec := range resolutions {
		s.resolutions[resolutionKey{GroupID: rec.GroupID, ProductID: rec.ProductID}] = models.Resolution{
			Resolved:      rec.Resolved,
			FinalQuantity: rec.FinalQuantity,
		}
	}

	var session models.UserSession
	if loadKey(s.persister, KeySession, &session) && session.GroupID != "" {
		s.session = &session
	}
}

func loadKey(p Persister, key string, out interface{}) bool {
	b, ok, err := p.Load(key)
	if err != nil {
		log.Printf("Warning: failed to load %s, starting empty: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, out); err != nil {
		log.Printf("Warning: corrupt record %s, starting empty: %v", key, err)
		return false
	}
	return true
}

// Persistence is write-through: every mutation saves the affected key.
// A failed save is logged and the in-memory state stays authoritative
// for the session.

func (s *Store) persistCounts() {
	recs := make([]ledgerRecord, 0, len(s.ledger))
	for k, entries := range s.ledger {
		recs = append(recs, ledgerRecord{
			GroupID:   k.GroupID,
			CounterID: k.CounterID,
			ProductID: k.ProductID,
			Entries:   entries,
			Total:     s.totals[k],
		})
	}
	slices.SortFunc(recs, func(a, b ledgerRecord) int {
		switch {
		case a.GroupID != b.GroupID:
			if a.GroupID < b.GroupID {
				return -1
			}
			return 1
		case a.CounterID != b.CounterID:
			if a.CounterID < b.CounterID {
				return -1
			}
			return 1
		default:
			return a.ProductID - b.ProductID
		}
	})
	s.saveKey(KeyCounts, recs)
}

func (s *Store) persistResolutions() {
	recs := make([]resolutionRecord, 0, len(s.resolutions))
	for k, res := range s.resolutions {
		recs = append(recs, resolutionRecord{
			GroupID:       k.GroupID,
			ProductID:     k.ProductID,
			Resolved:      res.Resolved,
			FinalQuantity: res.FinalQuantity,
		})
	}
	slices.SortFunc(recs, func(a, b resolutionRecord) int {
		if a.GroupID != b.GroupID {
			if a.GroupID < b.GroupID {
				return -1
			}
			return 1
		}
		return a.ProductID - b.ProductID
	})
	s.saveKey(KeyResolutions, recs)
}

func (s *Store) persistCatalog() {
	s.saveKey(KeyGroups, s.groups)
	s.saveKey(KeyProducts, s.products)
}

func (s *Store) persistSession() {
	s.saveKey(KeySession, s.session)
}

func (s *Store) saveKey(key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("Warning: failed to encode %s: %v", key, err)
		return
	}
	if err := s.persister.Save(key, b); err != nil {
		log.Printf("Warning: failed to persist %s: %v", key, err)
	}
}

func (s *Store) removeKey(key string) {
	if err := s.persister.Remove(key); err != nil {
		log.Printf("Warning: failed to remove %s: %v", key, err)
	}
}
