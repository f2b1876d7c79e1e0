package inventory

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"counting-app/controllers/idgen"
	"counting-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	idgen.Init()
	os.Exit(m.Run())
}

// memPersister is an in-memory Persister for tests.
type memPersister struct {
	records map[string][]byte
	failing bool
}

func newMemPersister() *memPersister {
	return &memPersister{records: make(map[string][]byte)}
}

func (p *memPersister) Load(key string) ([]byte, bool, error) {
	if p.failing {
		return nil, false, errors.New("load failed")
	}
	b, ok := p.records[key]
	return b, ok, nil
}

func (p *memPersister) Save(key string, value []byte) error {
	if p.failing {
		return errors.New("save failed")
	}
	p.records[key] = value
	return nil
}

func (p *memPersister) Remove(key string) error {
	delete(p.records, key)
	return nil
}

func testCatalog() ([]models.CountingGroup, []models.Product) {
	groups := []models.CountingGroup{
		{ID: "group1", Name: "Group A", MaterialGroups: []string{"100"}, Person1: "Anna", Person2: "Jan"},
		{ID: "group2", Name: "Group B", MaterialGroups: []string{"200"}, Person1: "Maria", Person2: "Piotr"},
	}
	products := []models.Product{
		{ID: 1, SapCode: "12000001", Name: "STICKER A", MaterialGroup: "100", ExpectedQty: 10},
		{ID: 2, SapCode: "12000002", Name: "STICKER B", MaterialGroup: "100", ExpectedQty: 20},
		{ID: 3, SapCode: "12000003", Name: "STICKER C", MaterialGroup: "100", ExpectedQty: 30},
		{ID: 4, SapCode: "12000004", Name: "STICKER D", MaterialGroup: "100", ExpectedQty: 40},
		{ID: 5, SapCode: "12000005", Name: "STICKER E", MaterialGroup: "100", ExpectedQty: 50},
		{ID: 6, SapCode: "12000006", Name: "FOIL A", MaterialGroup: "200", ExpectedQty: 60},
	}
	return groups, products
}

func newTestStore(t *testing.T) (*Store, *memPersister) {
	t.Helper()
	p := newMemPersister()
	s := NewStore(p)
	groups, products := testCatalog()
	s.SetCatalog(groups, products)
	return s, p
}

func TestAppendAccumulatesTotal(t *testing.T) {
	s, _ := newTestStore(t)

	e1, err := s.Append("group1", models.Counter1, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, "Location 1", e1.Location)

	e2, err := s.Append("group1", models.Counter1, 1, 5, "")
	require.NoError(t, err)
	assert.Equal(t, "Location 2", e2.Location)
	assert.NotEqual(t, e1.ID, e2.ID)

	total, ok := s.Total("group1", models.Counter1, 1)
	require.True(t, ok)
	assert.Equal(t, 15, total)
}

func TestAppendRejectsNegativeQuantity(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Append("group1", models.Counter1, 1, -1, "")
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, ok := s.Total("group1", models.Counter1, 1)
	assert.False(t, ok, "failed append must not create a total")
}

func TestAppendUnknownKeys(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Append("nope", models.Counter1, 1, 5, "")
	assert.ErrorIs(t, err, ErrUnknownGroup)

	_, err = s.Append("group1", models.Counter1, 999, 5, "")
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestZeroTotalIsCounted(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Append("group1", models.Counter1, 1, 0, "")
	require.NoError(t, err)

	total, ok := s.Total("group1", models.Counter1, 1)
	require.True(t, ok, "a counted zero is not the same as absent")
	assert.Equal(t, 0, total)
}

func TestUpdateEntryRecomputesTotal(t *testing.T) {
	s, _ := newTestStore(t)

	e1, _ := s.Append("group1", models.Counter1, 1, 10, "")
	e2, _ := s.Append("group1", models.Counter1, 1, 5, "")

	require.NoError(t, s.UpdateEntry("group1", models.Counter1, 1, e1.ID, 7))

	total, _ := s.Total("group1", models.Counter1, 1)
	assert.Equal(t, 12, total)

	history := s.History("group1", models.Counter1, 1)
	require.Len(t, history, 2)
	assert.Equal(t, 7, history[0].Quantity)
	assert.Equal(t, e1.Location, history[0].Location, "location is kept on edit")
	assert.Equal(t, e2.ID, history[1].ID, "insertion order is kept")
}

func TestUpdateEntryUnknownIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t)

	s.Append("group1", models.Counter1, 1, 10, "")
	require.NoError(t, s.UpdateEntry("group1", models.Counter1, 1, 424242, 99))

	total, _ := s.Total("group1", models.Counter1, 1)
	assert.Equal(t, 10, total)
}

func TestDeleteLastEntryRevertsToNotCounted(t *testing.T) {
	s, _ := newTestStore(t)

	e, _ := s.Append("group1", models.Counter1, 1, 10, "")
	require.NoError(t, s.DeleteEntry("group1", models.Counter1, 1, e.ID))

	_, ok := s.Total("group1", models.Counter1, 1)
	assert.False(t, ok)
	assert.Empty(t, s.History("group1", models.Counter1, 1))
	assert.Equal(t, models.StatusPending, s.StatusFor("group1", models.Counter1, 1, ViewCounting))
}

func TestDeleteEntryRecomputesTotal(t *testing.T) {
	s, _ := newTestStore(t)

	e1, _ := s.Append("group1", models.Counter1, 1, 10, "")
	s.Append("group1", models.Counter1, 1, 5, "")

	require.NoError(t, s.DeleteEntry("group1", models.Counter1, 1, e1.ID))

	total, ok := s.Total("group1", models.Counter1, 1)
	require.True(t, ok)
	assert.Equal(t, 5, total)
}

func TestFillZeros(t *testing.T) {
	s, _ := newTestStore(t)

	s.Append("group1", models.Counter1, 1, 10, "")
	s.Append("group1", models.Counter1, 2, 20, "")

	filled, err := s.FillZeros("group1", models.Counter1)
	require.NoError(t, err)
	assert.Len(t, filled, 3, "the three uncounted products get filled")

	for _, id := range []int{3, 4, 5} {
		total, ok := s.Total("group1", models.Counter1, id)
		require.True(t, ok, "product %d must be counted after fill", id)
		assert.Equal(t, 0, total)

		history := s.History("group1", models.Counter1, id)
		require.Len(t, history, 1)
		assert.Equal(t, "Auto-fill", history[0].Location)
	}

	// Counted products are untouched.
	total, _ := s.Total("group1", models.Counter1, 1)
	assert.Equal(t, 10, total)

	counted, total2 := s.Progress("group1", models.Counter1)
	assert.Equal(t, 5, counted)
	assert.Equal(t, 5, total2)
}

func TestResolveRequiresBothTotals(t *testing.T) {
	s, _ := newTestStore(t)

	s.Append("group1", models.Counter1, 1, 10, "")

	err := s.Resolve("group1", 1, 10)
	assert.ErrorIs(t, err, ErrPrecondition)

	s.Append("group1", models.Counter2, 1, 12, "")
	require.NoError(t, s.Resolve("group1", 1, 10))

	res, ok := s.ResolutionFor("group1", 1)
	require.True(t, ok)
	assert.True(t, res.Resolved)
	assert.Equal(t, 10, res.FinalQuantity)
}

func TestResolveRejectsNegativeFinalQuantity(t *testing.T) {
	s, _ := newTestStore(t)

	s.Append("group1", models.Counter1, 1, 10, "")
	s.Append("group1", models.Counter2, 1, 12, "")

	assert.ErrorIs(t, s.Resolve("group1", 1, -5), ErrNegativeQuantity)
}

func TestResolveOverwrites(t *testing.T) {
	s, _ := newTestStore(t)

	s.Append("group1", models.Counter1, 1, 10, "")
	s.Append("group1", models.Counter2, 1, 12, "")

	require.NoError(t, s.Resolve("group1", 1, 11))
	require.NoError(t, s.Resolve("group1", 1, 10))

	res, _ := s.ResolutionFor("group1", 1)
	assert.Equal(t, 10, res.FinalQuantity)
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, p := newTestStore(t)

	e1, _ := s.Append("group1", models.Counter1, 1, 10, "")
	s.Append("group1", models.Counter1, 1, 5, "")
	s.Append("group1", models.Counter2, 1, 15, "")
	s.Append("group1", models.Counter2, 2, 1, "")
	require.NoError(t, s.Resolve("group1", 2, 7))
	s.SetSession(models.UserSession{SessionID: "abc", GroupID: "group1", CounterID: models.Counter1, CounterName: "Anna"})

	restored := NewStore(p)
	restored.Load()

	total, ok := restored.Total("group1", models.Counter1, 1)
	require.True(t, ok)
	assert.Equal(t, 15, total)

	history := restored.History("group1", models.Counter1, 1)
	require.Len(t, history, 2)
	assert.Equal(t, e1.ID, history[0].ID)

	res, ok := restored.ResolutionFor("group1", 2)
	require.True(t, ok)
	assert.Equal(t, 7, res.FinalQuantity)

	sess, ok := restored.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, models.Counter1, sess.CounterID)

	groups := restored.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "Group A", groups[0].Name)
}

func TestLoadIgnoresCorruptRecords(t *testing.T) {
	p := newMemPersister()
	p.records[KeyCounts] = []byte("{not json")
	p.records[KeyGroups] = []byte(`[{"id":"group1","name":"Group A","material_groups":["100"],"person1":"Anna","person2":"Jan"}]`)

	s := NewStore(p)
	s.Load()

	assert.True(t, s.HasCatalog())
	_, ok := s.Total("group1", models.Counter1, 1)
	assert.False(t, ok)
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	s, p := newTestStore(t)
	p.failing = true

	_, err := s.Append("group1", models.Counter1, 1, 10, "")
	require.NoError(t, err, "a failed write-through must not fail the mutation")

	total, ok := s.Total("group1", models.Counter1, 1)
	require.True(t, ok)
	assert.Equal(t, 10, total)
}

func TestLogoutKeepsLedger(t *testing.T) {
	s, _ := newTestStore(t)

	s.SetSession(models.UserSession{SessionID: "abc", GroupID: "group1", CounterID: models.Counter1, CounterName: "Anna"})
	s.Append("group1", models.Counter1, 1, 10, "")

	s.ClearSession()

	_, ok := s.ActiveSession()
	assert.False(t, ok)

	total, ok := s.Total("group1", models.Counter1, 1)
	require.True(t, ok)
	assert.Equal(t, 10, total)
}

func TestPersistedCountsCarryTotals(t *testing.T) {
	s, p := newTestStore(t)

	s.Append("group1", models.Counter1, 1, 10, "")
	s.Append("group1", models.Counter1, 1, 5, "")

	var recs []ledgerRecord
	require.NoError(t, json.Unmarshal(p.records[KeyCounts], &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, 15, recs[0].Total)
	assert.Len(t, recs[0].Entries, 2)
}
