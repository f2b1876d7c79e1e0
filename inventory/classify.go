package inventory

import "counting-app/models"

// ViewMode selects how much of the reconciliation state a status
// reveals. The plain counting view never exposes cross-person data.
type ViewMode string

const (
	ViewCounting   ViewMode = "counting"
	ViewComparison ViewMode = "comparison"
	ViewAdmin      ViewMode = "admin"
)

// Total is an aggregate counted quantity. Counted distinguishes a
// recorded total of zero from "not yet counted".
type Total struct {
	Qty     int
	Counted bool
}

// Classify computes the reconciliation status of one product.
//
// The rules, in order:
//  1. the active counter has no total yet: pending
//  2. counting view: counted (a counter only sees their own progress)
//  3. a resolution exists: match/diff by final quantity vs. baseline,
//     regardless of the raw per-counter totals
//  4. the other counter has a total: match/person_diff by equality
//  5. otherwise the other counter is still counting: counted
func Classify(view ViewMode, active, other Total, res models.Resolution, expectedQty int) models.ProductStatus {
	if !active.Counted {
		return models.StatusPending
	}

	if view == ViewCounting {
		return models.StatusCounted
	}

	if res.Resolved {
		if res.FinalQuantity == expectedQty {
			return models.StatusMatch
		}
		return models.StatusDiff
	}

	if other.Counted {
		if active.Qty == other.Qty {
			return models.StatusMatch
		}
		return models.StatusPersonDiff
	}

	return models.StatusCounted
}
