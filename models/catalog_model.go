package models

// Product is one line of the counting catalog. Immutable after load.
type Product struct {
	ID            int    `json:"id"`
	SapCode       string `json:"sap_code"`
	Name          string `json:"name"`
	MaterialGroup string `json:"material_group"`
	ExpectedQty   int    `json:"expected_qty"`
}

// CountingGroup assigns a set of material groups to two counters.
type CountingGroup struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	MaterialGroups []string `json:"material_groups"`
	Person1        string   `json:"person1"`
	Person2        string   `json:"person2"`
}

// Owns reports whether the group covers the given material group code.
func (g CountingGroup) Owns(materialGroup string) bool {
	for _, mg := range g.MaterialGroups {
		if mg == materialGroup {
			return true
		}
	}
	return false
}

// CounterName returns the display name assigned to the given counter slot.
func (g CountingGroup) CounterName(c CounterID) string {
	if c == Counter2 {
		return g.Person2
	}
	return g.Person1
}
