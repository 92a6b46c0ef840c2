package sheet

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"insight-hrm/internal/calc"
	"insight-hrm/internal/model"
	"insight-hrm/internal/report"
	"insight-hrm/internal/simulation"
)

func setRow(f *excelize.File, sheetName string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func newWorkbook(firstSheet string) *excelize.File {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", firstSheet)
	return f
}

func finish(f *excelize.File) ([]byte, error) {
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buf.Bytes(), nil
}

// ExportRoster builds the roster workbook for one year.
func ExportRoster(year int, members []model.Member, teams []model.Team) ([]byte, error) {
	const name = "社員マスタ"
	f := newWorkbook(name)

	teamNames := map[string]string{}
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}

	if err := setRow(f, name, 1,
		HeaderCode, HeaderAccount, HeaderNameJP, HeaderNameEN, HeaderRank,
		HeaderGender, HeaderBirthYear, HeaderJoinDate, HeaderLeaveDate,
		HeaderStatus, HeaderEmail, HeaderDepartment, "チーム"); err != nil {
		return nil, err
	}
	for i, m := range members {
		team := ""
		if m.TeamID != nil {
			team = teamNames[*m.TeamID]
		}
		gender := ""
		if m.Gender != nil {
			gender = *m.Gender
		}
		var birthYear interface{} = ""
		if m.BirthYear != nil {
			birthYear = *m.BirthYear
		}
		if err := setRow(f, name, i+2,
			m.EmployeeCode, m.Account, m.Name, m.NameEN, model.RankLabels[m.Rank],
			gender, birthYear, m.JoinDate, m.LeaveDate,
			statusLabel(m.EffectiveStatus()), m.Email, m.Department, team); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(name, "A", "B", 12)
	f.SetColWidth(name, "C", "E", 18)
	f.SetColWidth(name, "F", "J", 10)
	f.SetColWidth(name, "K", "M", 20)
	return finish(f)
}

// ExportBudget builds the budget workbook: unit price master, the
// per-member salary grid and the planned-hire table.
func ExportBudget(year int, members []model.Member, budget *model.BudgetData) ([]byte, error) {
	const priceSheet = "単価マスタ"
	f := newWorkbook(priceSheet)

	var prices []model.RankUnitPrice
	if budget != nil {
		prices = budget.RankUnitPrices
	}

	if err := setRow(f, priceSheet, 1, "ランク", "月額単価（万円）", "年間（万円）"); err != nil {
		return nil, err
	}
	for i := len(model.Ranks) - 1; i >= 0; i-- {
		r := model.Ranks[i]
		price := calc.UnitPrice(prices, r)
		if err := setRow(f, priceSheet, len(model.Ranks)-i+1,
			model.RankLabels[r], price, price*12); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(priceSheet, "A", "A", 20)
	f.SetColWidth(priceSheet, "B", "C", 16)

	const salarySheet = "給与一覧"
	f.NewSheet(salarySheet)
	header := []interface{}{"メンバー", "ランク", "単価"}
	for month := 1; month <= 12; month++ {
		header = append(header, fmt.Sprintf("%d月", month))
	}
	header = append(header, "年間合計")
	if err := setRow(f, salarySheet, 1, header...); err != nil {
		return nil, err
	}
	for i, m := range members {
		row := []interface{}{m.Name, model.RankLabels[m.Rank], calc.UnitPrice(prices, m.Rank)}
		for month := 1; month <= 12; month++ {
			row = append(row, monthValue(budget, m, month))
		}
		row = append(row, calc.MemberSalaryTotal(budget, m.ID, m.Rank))
		if err := setRow(f, salarySheet, i+2, row...); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(salarySheet, "A", "A", 18)
	f.SetColWidth(salarySheet, "B", "B", 20)
	f.SetColWidth(salarySheet, "C", "P", 8)

	const hireSheet = "採用予定"
	f.NewSheet(hireSheet)
	if err := setRow(f, hireSheet, 1,
		"名前", "ランク", "入社月", "年収", "今期給与", "エージェント率", "エージェント費用"); err != nil {
		return nil, err
	}
	if budget != nil {
		for i, h := range budget.NewHires {
			if err := setRow(f, hireSheet, i+2,
				h.Name, model.RankLabels[h.Rank], h.EntryMonth, h.AnnualSalary,
				calc.NewHireProratedSalary(h), h.AgentFeeRate, calc.AgentFee(h)); err != nil {
				return nil, err
			}
		}
	}
	f.SetColWidth(hireSheet, "A", "B", 18)
	f.SetColWidth(hireSheet, "C", "G", 14)
	return finish(f)
}

// ExportReport builds the analysis workbook: summary, member list, rank
// and team breakdowns.
func ExportReport(year int, members []model.Member, teams []model.Team,
	budget *model.BudgetData, evals []model.MemberYearlyEvaluation) ([]byte, error) {

	sum := report.Build(year, members, teams, budget, evals)

	const summarySheet = "サマリー"
	f := newWorkbook(summarySheet)
	rows := [][]interface{}{
		{"InsightHRM レポート"},
		{fmt.Sprintf("FY%d年度", year)},
		{},
		{"基本統計"},
		{"総メンバー数", sum.Stats.MemberCount, "名"},
		{"チーム数", sum.Stats.TeamCount},
		{"年間総コスト", sum.Stats.TotalAnnualCost, "万円"},
		{"平均コスト/人", calc.Round1(sum.Stats.AvgCostPerHead), "万円"},
	}
	for i, r := range rows {
		if err := setRow(f, summarySheet, i+1, r...); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(summarySheet, "A", "A", 20)

	const memberSheet = "メンバー一覧"
	f.NewSheet(memberSheet)
	if err := setRow(f, memberSheet, 1,
		"No", "名前", "ランク", "チーム", "年度評価", "年間コスト（万円）"); err != nil {
		return nil, err
	}
	teamNames := map[string]string{}
	for _, t := range teams {
		teamNames[t.ID] = t.Name
	}
	var prices []model.RankUnitPrice
	if budget != nil {
		prices = budget.RankUnitPrices
	}
	for i, m := range members {
		team := "未所属"
		if m.TeamID != nil {
			if n, ok := teamNames[*m.TeamID]; ok {
				team = n
			}
		}
		grade := "未評価"
		for _, e := range evals {
			if e.MemberID == m.ID {
				if g, ok := e.Evaluations[year]; ok && g != nil {
					grade = *g
				}
				break
			}
		}
		if err := setRow(f, memberSheet, i+2,
			i+1, m.Name, model.RankLabels[m.Rank], team, grade,
			calc.UnitPriceTotal(prices, m.Rank)); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(memberSheet, "A", "A", 5)
	f.SetColWidth(memberSheet, "B", "D", 15)
	f.SetColWidth(memberSheet, "E", "E", 10)
	f.SetColWidth(memberSheet, "F", "F", 15)

	const rankSheet = "ランク別分析"
	f.NewSheet(rankSheet)
	if err := setRow(f, rankSheet, 1, "ランク", "人数", "単価（万円/月）", "年間コスト（万円）"); err != nil {
		return nil, err
	}
	for i, r := range sum.RankCosts {
		if err := setRow(f, rankSheet, i+2, r.Label, r.Count, r.UnitPrice, r.AnnualCost); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(rankSheet, "A", "A", 20)
	f.SetColWidth(rankSheet, "B", "D", 16)

	const teamSheet = "チーム別分析"
	f.NewSheet(teamSheet)
	if err := setRow(f, teamSheet, 1, "チーム", "人数", "年間コスト（万円）"); err != nil {
		return nil, err
	}
	for i, r := range sum.TeamCosts {
		if err := setRow(f, teamSheet, i+2, r.Label, r.Count, r.AnnualCost); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(teamSheet, "A", "A", 20)
	f.SetColWidth(teamSheet, "B", "C", 16)
	return finish(f)
}

// ExportSimulation builds the raise-simulation workbook: one comparison
// sheet plus a detail sheet per pattern.
func ExportSimulation(year int, results []simulation.PatternResult) ([]byte, error) {
	const compareSheet = "パターン比較"
	f := newWorkbook(compareSheet)
	if err := setRow(f, compareSheet, 1,
		"パターン", "現年度合計", "次年度合計", "次年度予算", "差額", "予算内"); err != nil {
		return nil, err
	}
	for i, r := range results {
		within := "NG"
		if r.WithinBudget {
			within = "OK"
		}
		if err := setRow(f, compareSheet, i+2,
			r.Name, r.CurrentTotal, r.NextTotal, r.NextYearBudget, r.Difference, within); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(compareSheet, "A", "A", 18)
	f.SetColWidth(compareSheet, "B", "F", 14)

	for pi, r := range results {
		name := fmt.Sprintf("パターン%d", pi+1)
		f.NewSheet(name)
		if err := setRow(f, name, 1,
			"メンバー", "ランク", "評価", "昇給率（%）", "現月額", "次年度月額", "次年度年額"); err != nil {
			return nil, err
		}
		for i, m := range r.Members {
			if err := setRow(f, name, i+2,
				m.Name, model.RankLabels[m.Rank], m.Grade, m.RaiseRate,
				m.CurrentMonthly, m.NextMonthly, m.NextAnnual); err != nil {
				return nil, err
			}
		}
		f.SetColWidth(name, "A", "B", 18)
		f.SetColWidth(name, "C", "G", 12)
	}
	return finish(f)
}

func statusLabel(status string) string {
	switch status {
	case model.StatusInactive:
		return "退職"
	case model.StatusPlanned:
		return "入社予定"
	default:
		return "在籍"
	}
}

func monthValue(b *model.BudgetData, m model.Member, month int) interface{} {
	if b != nil {
		for i := range b.MemberSalaries {
			if b.MemberSalaries[i].MemberID == m.ID {
				if v, ok := b.MemberSalaries[i].MonthlySalaries[month]; ok && v != nil {
					return *v
				}
				break
			}
		}
		return calc.UnitPrice(b.RankUnitPrices, m.Rank)
	}
	return 0
}
