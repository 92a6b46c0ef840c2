package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-hrm/internal/model"
)

func fp(v float64) *float64 { return &v }

func TestInitializeBudgetSeedsDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	m, err := s.AddMember(model.Member{Name: "佐藤", Rank: model.RankConsultant})
	require.NoError(t, err)

	assert.Nil(t, s.Budget(), "budget starts absent")
	require.NoError(t, s.InitializeBudget())

	b := s.Budget()
	require.NotNil(t, b)
	assert.Equal(t, model.DefaultYear, b.Year)
	assert.Equal(t, model.DefaultRankUnitPrices, b.RankUnitPrices)
	require.Len(t, b.MemberSalaries, 1)
	assert.Equal(t, m.ID, b.MemberSalaries[0].MemberID)
	assert.Empty(t, b.MemberSalaries[0].MonthlySalaries)
}

func TestInitializeBudgetIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InitializeBudget())
	require.NoError(t, s.UpdateRankUnitPrices([]model.RankUnitPrice{{Rank: model.RankConsultant, UnitPrice: 85}}))

	require.NoError(t, s.InitializeBudget())
	b := s.Budget()
	require.Len(t, b.RankUnitPrices, 1)
	assert.Equal(t, float64(85), b.RankUnitPrices[0].UnitPrice)
}

func TestUpdateMemberSalaryNormalizesMonths(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.UpdateMemberSalary(model.MemberSalary{
		MemberID: "member-1",
		MonthlySalaries: map[int]*float64{
			1:  fp(90),
			4:  nil,
			0:  fp(10),
			13: fp(10),
		},
	}))

	b := s.Budget()
	require.NotNil(t, b)
	require.Len(t, b.MemberSalaries, 1)
	months := b.MemberSalaries[0].MonthlySalaries
	require.Len(t, months, 1, "nil and out-of-range months are dropped")
	require.Contains(t, months, 1)
	assert.Equal(t, float64(90), *months[1])
}

func TestUpdateMemberSalaryUpserts(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.UpdateMemberSalary(model.MemberSalary{MemberID: "member-1", AnnualSalary: fp(960)}))
	require.NoError(t, s.UpdateMemberSalary(model.MemberSalary{MemberID: "member-1", AnnualSalary: fp(1000)}))

	b := s.Budget()
	require.Len(t, b.MemberSalaries, 1)
	assert.Equal(t, float64(1000), *b.MemberSalaries[0].AnnualSalary)
}

func TestNewHireLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	h, err := s.AddNewHire(model.NewHire{Name: "新人", Rank: model.RankConsultant, EntryMonth: 4, AnnualSalary: 480, AgentFeeRate: model.DefaultAgentFeeRate})
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)

	h.AnnualSalary = 500
	require.NoError(t, s.UpdateNewHire(h))
	assert.Equal(t, float64(500), s.Budget().NewHires[0].AnnualSalary)

	require.NoError(t, s.DeleteNewHire(h.ID))
	assert.Empty(t, s.Budget().NewHires)
}

func TestAddNewHireRejectsUnknownRank(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.AddNewHire(model.NewHire{Name: "新人", Rank: "VP", EntryMonth: 4})
	assert.ErrorIs(t, err, ErrInvalidRank)
}

func TestRaisePatternLimits(t *testing.T) {
	s, _ := newTestStore(t)
	var first model.RaisePattern
	for i := 0; i < model.MaxRaisePatterns; i++ {
		p, err := s.AddRaisePattern(model.RaisePattern{Name: fmt.Sprintf("パターン%d", i+1)})
		require.NoError(t, err)
		if i == 0 {
			first = p
		}
	}

	_, err := s.AddRaisePattern(model.RaisePattern{Name: "もう一つ"})
	assert.ErrorIs(t, err, ErrMaxPatterns)

	// Delete down to one, then the guard kicks in.
	b := s.Budget()
	for _, p := range b.SimulationPatterns[1:] {
		require.NoError(t, s.DeleteRaisePattern(p.ID))
	}
	assert.ErrorIs(t, s.DeleteRaisePattern(first.ID), ErrLastPattern)
}

func TestUpdateRankUnitPricesByYear(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.AddYear(2025))
	s.SetCurrentYear(model.DefaultYear)

	require.NoError(t, s.UpdateRankUnitPricesByYear(2025, []model.RankUnitPrice{
		{Rank: model.RankConsultant, UnitPrice: 90},
	}))

	// The active year is untouched.
	assert.Nil(t, s.Budget())
	next := s.BudgetForYear(2025)
	require.NotNil(t, next)
	require.Len(t, next.RankUnitPrices, 1)
	assert.Equal(t, float64(90), next.RankUnitPrices[0].UnitPrice)
}
