// Package report derives presentation-ready aggregates from a year's
// snapshot: distributions, cost rollups and overall stats.
package report

import (
	"insight-hrm/internal/calc"
	"insight-hrm/internal/model"
)

// Slice is one labeled bucket of a distribution.
type Slice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CostRow is one row of a cost analysis table.
type CostRow struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	UnitPrice  float64 `json:"unitPrice,omitempty"`
	AnnualCost float64 `json:"annualCost"`
}

// Stats are the headline figures of the report page.
type Stats struct {
	MemberCount     int     `json:"memberCount"`
	TeamCount       int     `json:"teamCount"`
	TotalAnnualCost float64 `json:"totalAnnualCost"`
	AvgCostPerHead  float64 `json:"avgCostPerHead"`
}

// Summary is the full derived report for one fiscal year.
type Summary struct {
	Year              int       `json:"year"`
	Stats             Stats     `json:"stats"`
	RankDistribution  []Slice   `json:"rankDistribution"`
	TeamDistribution  []Slice   `json:"teamDistribution"`
	GradeDistribution []Slice   `json:"gradeDistribution"`
	RankCosts         []CostRow `json:"rankCosts"`
	TeamCosts         []CostRow `json:"teamCosts"`
}

const unassignedLabel = "未所属"
const ungradedLabel = "未評価"

// Build computes the report for one year's snapshot. Empty buckets are
// dropped, matching the rendered charts.
func Build(year int, members []model.Member, teams []model.Team, budget *model.BudgetData,
	evals []model.MemberYearlyEvaluation) Summary {

	var prices []model.RankUnitPrice
	if budget != nil {
		prices = budget.RankUnitPrices
	}

	sum := Summary{Year: year}

	// Rank distribution, highest rank first.
	rankCounts := make(map[model.Rank]int)
	for _, m := range members {
		rankCounts[m.Rank]++
	}
	for i := len(model.Ranks) - 1; i >= 0; i-- {
		r := model.Ranks[i]
		if rankCounts[r] > 0 {
			sum.RankDistribution = append(sum.RankDistribution, Slice{Label: model.RankLabels[r], Count: rankCounts[r]})
		}
	}

	// Team distribution, with an unassigned bucket.
	unassigned := 0
	for _, t := range teams {
		n := 0
		for _, m := range members {
			if m.TeamID != nil && *m.TeamID == t.ID {
				n++
			}
		}
		if n > 0 {
			sum.TeamDistribution = append(sum.TeamDistribution, Slice{Label: t.Name, Count: n})
		}
	}
	for _, m := range members {
		if m.TeamID == nil {
			unassigned++
		}
	}
	if unassigned > 0 {
		sum.TeamDistribution = append(sum.TeamDistribution, Slice{Label: unassignedLabel, Count: unassigned})
	}

	// Yearly grade distribution for the report year.
	gradeCounts := make(map[string]int)
	for _, m := range members {
		gradeCounts[gradeOf(evals, m.ID, year)]++
	}
	for _, g := range append(append([]string{}, model.YearlyGrades...), ungradedLabel) {
		if gradeCounts[g] > 0 {
			sum.GradeDistribution = append(sum.GradeDistribution, Slice{Label: g, Count: gradeCounts[g]})
		}
	}

	// Rank cost rows, highest rank first.
	for i := len(model.Ranks) - 1; i >= 0; i-- {
		r := model.Ranks[i]
		price := calc.UnitPrice(prices, r)
		count := rankCounts[r]
		sum.RankCosts = append(sum.RankCosts, CostRow{
			Label:      model.RankLabels[r],
			Count:      count,
			UnitPrice:  price,
			AnnualCost: price * 12 * float64(count),
		})
	}

	// Team cost rows, standard-price based.
	for _, t := range teams {
		row := CostRow{Label: t.Name}
		for _, m := range members {
			if m.TeamID != nil && *m.TeamID == t.ID {
				row.Count++
				row.AnnualCost += calc.UnitPriceTotal(prices, m.Rank)
			}
		}
		if row.Count > 0 {
			sum.TeamCosts = append(sum.TeamCosts, row)
		}
	}

	// Overall stats.
	sum.Stats.MemberCount = len(members)
	sum.Stats.TeamCount = len(teams)
	for _, m := range members {
		sum.Stats.TotalAnnualCost += calc.UnitPriceTotal(prices, m.Rank)
	}
	if len(members) > 0 {
		sum.Stats.AvgCostPerHead = sum.Stats.TotalAnnualCost / float64(len(members))
	}
	return sum
}

func gradeOf(evals []model.MemberYearlyEvaluation, memberID string, year int) string {
	for _, e := range evals {
		if e.MemberID == memberID {
			if g, ok := e.Evaluations[year]; ok && g != nil {
				return *g
			}
			break
		}
	}
	return ungradedLabel
}
