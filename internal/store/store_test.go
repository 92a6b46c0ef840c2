package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-hrm/internal/model"
	"insight-hrm/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	return Open(backend, nil), backend
}

func TestOpenFreshStartsAtDefaultYear(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, model.DefaultYear, s.CurrentYear())
	assert.Equal(t, []int{model.DefaultYear}, s.Years())
}

func TestOpenCorruptDataFallsBack(t *testing.T) {
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Store(MainKey, []byte("{not json")))
	require.NoError(t, backend.Store(YearlyEvalKey, []byte("]]")))

	s := Open(backend, nil)
	assert.Equal(t, model.DefaultYear, s.CurrentYear())
	assert.Equal(t, []int{model.DefaultYear}, s.Years())
	assert.Empty(t, s.Evaluations())
}

func TestOpenReloadsPersistedState(t *testing.T) {
	s, backend := newTestStore(t)
	require.NoError(t, s.AddYear(2025))
	_, err := s.AddMember(model.Member{Name: "佐藤", Rank: model.RankConsultant})
	require.NoError(t, err)

	reopened := Open(backend, nil)
	assert.Equal(t, []int{model.DefaultYear, 2025}, reopened.Years())
	// Current year re-points at the newest stored dataset.
	assert.Equal(t, 2025, reopened.CurrentYear())
	require.Len(t, reopened.MembersForYear(2025), 1)
	assert.Equal(t, "佐藤", reopened.MembersForYear(2025)[0].Name)
}

func TestAddYearSwitchesAndIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.AddYear(2025))
	assert.Equal(t, 2025, s.CurrentYear())

	_, err := s.AddMember(model.Member{Name: "佐藤", Rank: model.RankConsultant})
	require.NoError(t, err)

	// Re-adding an existing year keeps its data.
	require.NoError(t, s.AddYear(2025))
	assert.Len(t, s.Members(), 1)
	assert.Equal(t, []int{model.DefaultYear, 2025}, s.Years())
}

func TestCopyYearDataIsDeepCopy(t *testing.T) {
	s, _ := newTestStore(t)
	m, err := s.AddMember(model.Member{Name: "佐藤", Rank: model.RankConsultant})
	require.NoError(t, err)
	require.NoError(t, s.InitializeBudget())

	require.NoError(t, s.CopyYearData(model.DefaultYear, 2025))
	assert.Equal(t, 2025, s.CurrentYear())

	b := s.Budget()
	require.NotNil(t, b)
	assert.Equal(t, 2025, b.Year)

	// Mutating the copy must not leak into the source year.
	m.Name = "changed"
	require.NoError(t, s.UpdateMember(m))
	require.NoError(t, s.UpdateRankUnitPrices([]model.RankUnitPrice{{Rank: model.RankConsultant, UnitPrice: 999}}))

	src := s.MembersForYear(model.DefaultYear)
	require.Len(t, src, 1)
	assert.Equal(t, "佐藤", src[0].Name)
	srcBudget := s.BudgetForYear(model.DefaultYear)
	require.NotNil(t, srcBudget)
	assert.Equal(t, float64(80), srcBudget.RankUnitPrices[0].UnitPrice)
}

func TestCopyYearDataMissingSourceIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.CopyYearData(1999, 2025))
	assert.Equal(t, []int{model.DefaultYear}, s.Years())
	assert.Equal(t, model.DefaultYear, s.CurrentYear())
}

func TestDeleteYearGuardsLastYear(t *testing.T) {
	s, _ := newTestStore(t)
	assert.ErrorIs(t, s.DeleteYear(model.DefaultYear), ErrLastYear)

	require.NoError(t, s.AddYear(2025))
	require.NoError(t, s.DeleteYear(2025))
	assert.Equal(t, []int{model.DefaultYear}, s.Years())
	// Deleting the active year re-points the current pointer.
	assert.Equal(t, model.DefaultYear, s.CurrentYear())

	// Absent year is a no-op, not an error.
	require.NoError(t, s.DeleteYear(1999))
}

func TestRestoreMainEmptyResetsToDefault(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.AddYear(2025))
	require.NoError(t, s.RestoreMain(nil))
	assert.Equal(t, []int{model.DefaultYear}, s.Years())
	assert.Equal(t, model.DefaultYear, s.CurrentYear())
}

func TestDeleteAllResets(t *testing.T) {
	s, backend := newTestStore(t)
	require.NoError(t, s.AddYear(2025))
	g := "A"
	require.NoError(t, s.UpdateYearlyEvaluation("m1", 2025, &g))

	require.NoError(t, s.DeleteAll())
	assert.Equal(t, []int{model.DefaultYear}, s.Years())
	assert.Empty(t, s.Evaluations())

	_, err := backend.Load(MainKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNextIDIsMonotonic(t *testing.T) {
	s, _ := newTestStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := s.nextID("member")
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
