package inventory

import (
	"counting-app/models"
)

// ProductComparison pairs a product with both counters' totals and its
// classified status. Nil quantities mean "not yet counted".
type ProductComparison struct {
	Product       models.Product       `json:"product"`
	Person1Qty    *int                 `json:"person1_qty"`
	Person2Qty    *int                 `json:"person2_qty"`
	Status        models.ProductStatus `json:"status"`
	FinalQuantity *int                 `json:"final_quantity,omitempty"`
}

// Comparison is the counter-facing reconciliation view of a group.
// While any product is missing a total, Waiting is set and only the
// uncounted lists are populated: a counter never sees partial
// discrepancy data.
type Comparison struct {
	GroupID         string              `json:"group_id"`
	Waiting         bool                `json:"waiting"`
	ActiveUncounted []models.Product    `json:"active_uncounted,omitempty"`
	OtherUncounted  []models.Product    `json:"other_uncounted,omitempty"`
	Matched         []ProductComparison `json:"matched"`
	Discrepant      []ProductComparison `json:"discrepant"`
	Resolved        []ProductComparison `json:"resolved"`
}

// GroupReport is the admin view of a group: dual progress, open
// discrepancies and the matched products split against the expected
// baseline. The baseline split is never shown to a plain counter.
type GroupReport struct {
	Group              models.CountingGroup `json:"group"`
	TotalProducts      int                  `json:"total_products"`
	Person1Counted     int                  `json:"person1_counted"`
	Person2Counted     int                  `json:"person2_counted"`
	OpenDiscrepancies  int                  `json:"open_discrepancies"`
	Unready            []ProductComparison  `json:"unready"`
	MatchedBaseline    []ProductComparison  `json:"matched_baseline"`
	MatchedOffBaseline []ProductComparison  `json:"matched_off_baseline"`
	Discrepant         []ProductComparison  `json:"discrepant"`
	Resolved           []ProductComparison  `json:"resolved"`
}

// compare builds the ProductComparison for one product. Views are
// always computed fresh from the current ledger/resolution state.
func (s *Store) compare(groupID string, p models.Product, active models.CounterID, view ViewMode) ProductComparison {
	qty1, ok1 := s.totals[Key{GroupID: groupID, CounterID: models.Counter1, ProductID: p.ID}]
	qty2, ok2 := s.totals[Key{GroupID: groupID, CounterID: models.Counter2, ProductID: p.ID}]
	res := s.resolutions[resolutionKey{GroupID: groupID, ProductID: p.ID}]

	activeTotal := Total{Qty: qty1, Counted: ok1}
	otherTotal := Total{Qty: qty2, Counted: ok2}
	if active == models.Counter2 {
		activeTotal, otherTotal = otherTotal, activeTotal
	}

	pc := ProductComparison{
		Product: p,
		Status:  Classify(view, activeTotal, otherTotal, res, p.ExpectedQty),
	}
	if ok1 {
		q := qty1
		pc.Person1Qty = &q
	}
	if ok2 {
		q := qty2
		pc.Person2Qty = &q
	}
	if res.Resolved {
		q := res.FinalQuantity
		pc.FinalQuantity = &q
	}
	return pc
}

// Comparison builds the counter-facing view for a group from the
// perspective of the active counter.
func (s *Store) Comparison(groupID string, active models.CounterID) (Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groupByID(groupID)
	if !ok {
		return Comparison{}, ErrUnknownGroup
	}

	// Partitions marshal as [] rather than null when empty.
	view := Comparison{
		GroupID:    groupID,
		Matched:    []ProductComparison{},
		Discrepant: []ProductComparison{},
		Resolved:   []ProductComparison{},
	}
	products := s.productsForGroup(group)

	for _, p := range products {
		if _, counted := s.totals[Key{GroupID: groupID, CounterID: active, ProductID: p.ID}]; !counted {
			view.ActiveUncounted = append(view.ActiveUncounted, p)
		}
		if _, counted := s.totals[Key{GroupID: groupID, CounterID: active.Other(), ProductID: p.ID}]; !counted {
			view.OtherUncounted = append(view.OtherUncounted, p)
		}
	}

	if len(view.ActiveUncounted) > 0 || len(view.OtherUncounted) > 0 {
		view.Waiting = true
		return view, nil
	}

	for _, p := range products {
		pc := s.compare(groupID, p, active, ViewComparison)
		switch {
		case pc.FinalQuantity != nil:
			view.Resolved = append(view.Resolved, pc)
		case pc.Status == models.StatusMatch:
			view.Matched = append(view.Matched, pc)
		default:
			view.Discrepant = append(view.Discrepant, pc)
		}
	}
	return view, nil
}

// GroupReport builds the admin view for a group. Unlike the counter
// comparison it is never blocked: products missing a total are listed
// as unready alongside the classified partitions.
func (s *Store) GroupReport(groupID string) (GroupReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	group, ok := s.groupByID(groupID)
	if !ok {
		return GroupReport{}, ErrUnknownGroup
	}

	products := s.productsForGroup(group)
	report := GroupReport{
		Group:              group,
		TotalProducts:      len(products),
		Unready:            []ProductComparison{},
		MatchedBaseline:    []ProductComparison{},
		MatchedOffBaseline: []ProductComparison{},
		Discrepant:         []ProductComparison{},
		Resolved:           []ProductComparison{},
	}

	for _, p := range products {
		_, ok1 := s.totals[Key{GroupID: groupID, CounterID: models.Counter1, ProductID: p.ID}]
		_, ok2 := s.totals[Key{GroupID: groupID, CounterID: models.Counter2, ProductID: p.ID}]
		if ok1 {
			report.Person1Counted++
		}
		if ok2 {
			report.Person2Counted++
		}

		pc := s.compare(groupID, p, models.Counter1, ViewAdmin)
		switch {
		case !ok1 || !ok2:
			report.Unready = append(report.Unready, pc)
		case pc.FinalQuantity != nil:
			report.Resolved = append(report.Resolved, pc)
		case pc.Status == models.StatusMatch:
			if p.ExpectedQty == *pc.Person1Qty {
				report.MatchedBaseline = append(report.MatchedBaseline, pc)
			} else {
				report.MatchedOffBaseline = append(report.MatchedOffBaseline, pc)
			}
		default:
			report.Discrepant = append(report.Discrepant, pc)
			report.OpenDiscrepancies++
		}
	}
	return report, nil
}
