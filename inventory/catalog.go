package inventory

import (
	"counting-app/models"

	"golang.org/x/exp/slices"
)

// Groups returns a copy of the counting groups.
func (s *Store) Groups() []models.CountingGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CountingGroup, len(s.groups))
	copy(out, s.groups)
	return out
}

// GroupByID looks up a counting group by id.
func (s *Store) GroupByID(id string) (models.CountingGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groupByID(id)
}

// ProductByID looks up a product by id.
func (s *Store) ProductByID(id int) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.productByID(id)
}

// ProductsForGroup returns the products whose material group belongs
// to the given counting group, ordered by SAP code.
func (s *Store) ProductsForGroup(groupID string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groupByID(groupID)
	if !ok {
		return nil
	}
	return s.productsForGroup(group)
}

// GroupForProduct finds the group a product belongs to. Material group
// sets are assumed disjoint across groups; on overlap the first match
// wins.
func (s *Store) GroupForProduct(p models.Product) (models.CountingGroup, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.Owns(p.MaterialGroup) {
			return g, true
		}
	}
	return models.CountingGroup{}, false
}

// HasCatalog reports whether any catalog data is loaded.
func (s *Store) HasCatalog() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.groups) > 0 || len(s.products) > 0
}

// SetCatalog replaces the catalog and persists it. Used by the seeder
// on first start.
func (s *Store) SetCatalog(groups []models.CountingGroup, products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups = slices.Clone(groups)
	s.products = slices.Clone(products)
	s.persistCatalog()
}

// UpdateGroup replaces one counting group's name, counter names and
// material-group assignment.
func (s *Store) UpdateGroup(group models.CountingGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.groups {
		if s.groups[i].ID == group.ID {
			s.groups[i] = group
			s.persistCatalog()
			return nil
		}
	}
	return ErrUnknownGroup
}

func (s *Store) groupByID(id string) (models.CountingGroup, bool) {
	for _, g := range s.groups {
		if g.ID == id {
			return g, true
		}
	}
	return models.CountingGroup{}, false
}

func (s *Store) productByID(id int) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (s *Store) productsForGroup(group models.CountingGroup) []models.Product {
	var out []models.Product
	for _, p := range s.products {
		if group.Owns(p.MaterialGroup) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Product) int {
		if a.SapCode < b.SapCode {
			return -1
		}
		if a.SapCode > b.SapCode {
			return 1
		}
		return 0
	})
	return out
}
