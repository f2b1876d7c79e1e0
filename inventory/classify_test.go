package inventory

import (
	"testing"

	"counting-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counted(qty int) Total { return Total{Qty: qty, Counted: true} }

func TestClassify(t *testing.T) {
	resolved := func(final int) models.Resolution {
		return models.Resolution{Resolved: true, FinalQuantity: final}
	}

	tests := []struct {
		name     string
		view     ViewMode
		active   Total
		other    Total
		res      models.Resolution
		expected int
		want     models.ProductStatus
	}{
		{"not counted is pending", ViewComparison, Total{}, counted(5), models.Resolution{}, 5, models.StatusPending},
		{"counting view hides comparison", ViewCounting, counted(5), counted(9), models.Resolution{}, 5, models.StatusCounted},
		{"counting view hides resolution", ViewCounting, counted(5), counted(5), resolved(99), 5, models.StatusCounted},
		{"equal totals match", ViewComparison, counted(5), counted(5), models.Resolution{}, 99, models.StatusMatch},
		{"unequal totals differ by person", ViewComparison, counted(5), counted(7), models.Resolution{}, 5, models.StatusPersonDiff},
		{"other still counting", ViewComparison, counted(5), Total{}, models.Resolution{}, 5, models.StatusCounted},
		{"resolution matching baseline", ViewAdmin, counted(5), counted(7), resolved(10), 10, models.StatusMatch},
		{"resolution off baseline", ViewAdmin, counted(5), counted(7), resolved(9), 10, models.StatusDiff},
		{"resolution beats equal totals", ViewAdmin, counted(5), counted(5), resolved(9), 10, models.StatusDiff},
		{"admin without other total", ViewAdmin, counted(5), Total{}, models.Resolution{}, 5, models.StatusCounted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.view, tt.active, tt.other, tt.res, tt.expected)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Classification must not depend on which counter is asking when both
// totals are present.
func TestClassifySymmetry(t *testing.T) {
	for _, pair := range [][2]Total{
		{counted(5), counted(5)},
		{counted(5), counted(7)},
	} {
		a := Classify(ViewComparison, pair[0], pair[1], models.Resolution{}, 5)
		b := Classify(ViewComparison, pair[1], pair[0], models.Resolution{}, 5)
		assert.Equal(t, a, b)
	}
}

// Once a counter has a total, the counting view never reports pending
// again, whatever edits happen on the other side.
func TestCountingViewMonotonic(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, models.StatusPending, s.StatusFor("group1", models.Counter1, 1, ViewCounting))

	e, _ := s.Append("group1", models.Counter1, 1, 10, "")
	assert.Equal(t, models.StatusCounted, s.StatusFor("group1", models.Counter1, 1, ViewCounting))

	s.Append("group1", models.Counter2, 1, 99, "")
	require.NoError(t, s.UpdateEntry("group1", models.Counter1, 1, e.ID, 0))
	assert.Equal(t, models.StatusCounted, s.StatusFor("group1", models.Counter1, 1, ViewCounting))
}

// Scenario: counter1 counts 10 then 5, counter2 counts 15 in one go.
func TestTwoCountersAgreeAcrossPartialCounts(t *testing.T) {
	s, _ := newTestStore(t)

	s.Append("group1", models.Counter1, 1, 10, "")
	s.Append("group1", models.Counter1, 1, 5, "")
	s.Append("group1", models.Counter2, 1, 15, "")

	assert.Equal(t, models.StatusMatch, s.StatusFor("group1", models.Counter1, 1, ViewComparison))
	assert.Equal(t, models.StatusMatch, s.StatusFor("group1", models.Counter2, 1, ViewComparison))
}

// Scenario: disagreement resolved by the admin with the expected
// quantity turns into a match, regardless of the raw totals.
func TestResolutionPrecedence(t *testing.T) {
	s, _ := newTestStore(t)

	s.Append("group1", models.Counter1, 1, 10, "")
	s.Append("group1", models.Counter2, 1, 12, "")
	assert.Equal(t, models.StatusPersonDiff, s.StatusFor("group1", models.Counter1, 1, ViewAdmin))

	// Product 1 has ExpectedQty 10.
	require.NoError(t, s.Resolve("group1", 1, 10))
	assert.Equal(t, models.StatusMatch, s.StatusFor("group1", models.Counter1, 1, ViewAdmin))

	// Later edits to the raw totals no longer matter.
	s.Append("group1", models.Counter1, 1, 100, "")
	assert.Equal(t, models.StatusMatch, s.StatusFor("group1", models.Counter1, 1, ViewAdmin))
}
