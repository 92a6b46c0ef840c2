// Package simulation projects what-if compensation figures. Both
// engines are stateless: they take a snapshot of store data and return
// derived numbers, never mutating persisted state. Per-member overrides
// are scratch values that exist only for the run.
package simulation

import (
	"insight-hrm/internal/calc"
	"insight-hrm/internal/model"
)

// RaiseInput is a snapshot for one raise-pattern run. Salary overrides
// are monthly amounts; grade overrides replace the recorded evaluation
// for the simulated year without touching it.
type RaiseInput struct {
	Year            int
	Members         []model.Member
	Budget          *model.BudgetData // simulated (current) year
	NextBudget      *model.BudgetData // the year being budgeted against
	Evaluations     []model.MemberYearlyEvaluation
	Patterns        []model.RaisePattern
	SalaryOverrides map[string]float64
	GradeOverrides  map[string]string
}

// MemberProjection is one member's next-year figures under one pattern.
type MemberProjection struct {
	MemberID       string     `json:"memberId"`
	Name           string     `json:"name"`
	Rank           model.Rank `json:"rank"`
	Grade          string     `json:"grade"`
	RaiseRate      float64    `json:"raiseRate"`
	CurrentMonthly float64    `json:"currentMonthly"`
	CurrentAnnual  float64    `json:"currentAnnual"`
	NextMonthly    float64    `json:"nextMonthly"`
	NextAnnual     float64    `json:"nextAnnual"`
}

// PatternResult aggregates one pattern across all members. The
// comparison runs against the FOLLOWING fiscal year's standard budget:
// current-year salaries and evaluations projected into a rate card that
// is already configured for next year.
type PatternResult struct {
	PatternID      string             `json:"patternId"`
	Name           string             `json:"name"`
	Comment        string             `json:"comment,omitempty"`
	Members        []MemberProjection `json:"members"`
	CurrentTotal   float64            `json:"currentTotal"`
	NextTotal      float64            `json:"nextTotal"`
	NextYearBudget float64            `json:"nextYearBudget"`
	Difference     float64            `json:"difference"`
	WithinBudget   bool               `json:"withinBudget"`
}

// RunRaise evaluates every pattern against every member. With no
// patterns configured a single pattern on the default rate table runs.
func RunRaise(in RaiseInput) []PatternResult {
	patterns := in.Patterns
	if len(patterns) == 0 {
		patterns = []model.RaisePattern{{ID: "default", Name: "標準", Rates: map[string]float64{}}}
	}

	// Shared across patterns: base salaries, grades, next-year budget.
	currentMonthly := make(map[string]float64, len(in.Members))
	grades := make(map[string]string, len(in.Members))
	var nextYearBudget float64
	for _, m := range in.Members {
		currentMonthly[m.ID] = baseMonthly(in, m)
		grades[m.ID] = gradeFor(in, m.ID)
		if in.NextBudget != nil {
			nextYearBudget += calc.UnitPriceTotal(in.NextBudget.RankUnitPrices, m.Rank)
		}
	}

	results := make([]PatternResult, 0, len(patterns))
	for _, p := range patterns {
		res := PatternResult{
			PatternID:      p.ID,
			Name:           p.Name,
			Comment:        p.Comment,
			Members:        make([]MemberProjection, 0, len(in.Members)),
			NextYearBudget: nextYearBudget,
		}
		for _, m := range in.Members {
			monthly := currentMonthly[m.ID]
			grade := grades[m.ID]
			rate := raiseRate(p, grade)
			nextMonthly := calc.Round1(monthly * (1 + rate/100))
			proj := MemberProjection{
				MemberID:       m.ID,
				Name:           m.Name,
				Rank:           m.Rank,
				Grade:          grade,
				RaiseRate:      rate,
				CurrentMonthly: monthly,
				CurrentAnnual:  monthly * 12,
				NextMonthly:    nextMonthly,
				NextAnnual:     nextMonthly * 12,
			}
			res.Members = append(res.Members, proj)
			res.CurrentTotal += proj.CurrentAnnual
			res.NextTotal += proj.NextAnnual
		}
		res.Difference = res.NextTotal - res.NextYearBudget
		res.WithinBudget = res.NextTotal <= res.NextYearBudget
		results = append(results, res)
	}
	return results
}

// baseMonthly derives a member's current monthly base: the scratch
// override when given, else one twelfth of the annual total under the
// per-month override/unit-price fallback rule.
func baseMonthly(in RaiseInput, m model.Member) float64 {
	if v, ok := in.SalaryOverrides[m.ID]; ok {
		return v
	}
	return calc.MemberSalaryTotal(in.Budget, m.ID, m.Rank) / 12
}

// gradeFor resolves the simulated grade: scratch override, else the
// recorded evaluation for the year, else B.
func gradeFor(in RaiseInput, memberID string) string {
	if g, ok := in.GradeOverrides[memberID]; ok && g != "" {
		return g
	}
	for _, e := range in.Evaluations {
		if e.MemberID != memberID {
			continue
		}
		if g, ok := e.Evaluations[in.Year]; ok && g != nil {
			return *g
		}
		break
	}
	return model.DefaultSimulationGrade
}

// raiseRate looks up the pattern's rate for a grade, falling back to
// the default table; grades in neither raise by zero.
func raiseRate(p model.RaisePattern, grade string) float64 {
	if r, ok := p.Rates[grade]; ok {
		return r
	}
	if r, ok := model.DefaultRaiseRates[grade]; ok {
		return r
	}
	return 0
}
