package sheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"insight-hrm/internal/model"
	"insight-hrm/internal/simulation"
)

func openSheets(t *testing.T, raw []byte) []string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()
	return f.GetSheetList()
}

func TestExportBudgetSheets(t *testing.T) {
	members := []model.Member{{ID: "m1", Name: "佐藤", Rank: model.RankConsultant}}
	budget := &model.BudgetData{
		RankUnitPrices: model.DefaultRankUnitPrices,
		NewHires:       []model.NewHire{{Name: "新人", Rank: model.RankConsultant, EntryMonth: 4, AnnualSalary: 480}},
	}

	raw, err := ExportBudget(2024, members, budget)
	require.NoError(t, err)
	assert.Equal(t, []string{"単価マスタ", "給与一覧", "採用予定"}, openSheets(t, raw))
}

func TestExportReportSheets(t *testing.T) {
	members := []model.Member{{ID: "m1", Name: "佐藤", Rank: model.RankConsultant}}

	raw, err := ExportReport(2024, members, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"サマリー", "メンバー一覧", "ランク別分析", "チーム別分析"}, openSheets(t, raw))
}

func TestExportSimulationSheets(t *testing.T) {
	results := simulation.RunRaise(simulation.RaiseInput{
		Year:    2024,
		Members: []model.Member{{ID: "m1", Name: "佐藤", Rank: model.RankConsultant}},
		Budget:  &model.BudgetData{RankUnitPrices: model.DefaultRankUnitPrices},
		Patterns: []model.RaisePattern{
			{ID: "p1", Name: "案1", Rates: map[string]float64{"B": 5}},
			{ID: "p2", Name: "案2", Rates: map[string]float64{"B": 3}},
		},
	})

	raw, err := ExportSimulation(2024, results)
	require.NoError(t, err)
	sheets := openSheets(t, raw)
	require.NotEmpty(t, sheets)
	assert.Equal(t, "パターン比較", sheets[0])
	assert.Len(t, sheets, 3)
}
