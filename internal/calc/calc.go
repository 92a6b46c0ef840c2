// Package calc holds the pure compensation functions. All amounts are
// in 万円; monthly figures are per calendar month 1-12.
package calc

import (
	"math"

	"insight-hrm/internal/model"
)

var months = [12]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

// Round1 rounds to one decimal place, the system-wide rounding rule.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// UnitPrice returns the standard monthly price configured for a rank.
// An unconfigured rank contributes zero, not an error.
func UnitPrice(prices []model.RankUnitPrice, rank model.Rank) float64 {
	for _, p := range prices {
		if p.Rank == rank {
			return p.UnitPrice
		}
	}
	return 0
}

// UnitPriceTotal is the annualized standard price for a rank.
func UnitPriceTotal(prices []model.RankUnitPrice, rank model.Rank) float64 {
	return UnitPrice(prices, rank) * 12
}

// MemberSalaryTotal sums twelve months where each month is the explicit
// override if present, else the rank's standard price. The fallback is
// per-month, not all-or-nothing.
func MemberSalaryTotal(b *model.BudgetData, memberID string, rank model.Rank) float64 {
	var sal *model.MemberSalary
	if b != nil {
		for i := range b.MemberSalaries {
			if b.MemberSalaries[i].MemberID == memberID {
				sal = &b.MemberSalaries[i]
				break
			}
		}
	}
	var unitPrice float64
	if b != nil {
		unitPrice = UnitPrice(b.RankUnitPrices, rank)
	}

	var total float64
	for _, month := range months {
		if sal != nil {
			if v, ok := sal.MonthlySalaries[month]; ok && v != nil {
				total += *v
				continue
			}
		}
		total += unitPrice
	}
	return total
}

// ManagedSalary scales a base amount by a multiplier, rounded to one
// decimal place.
func ManagedSalary(base, multiplier float64) float64 {
	return Round1(base * multiplier)
}

// NewHireProratedSalary is the hire-year cost of a planned hire using a
// simple calendar count of months from entry through December.
func NewHireProratedSalary(h model.NewHire) float64 {
	monthsWorked := 12 - h.EntryMonth + 1
	return h.AnnualSalary / 12 * float64(monthsWorked)
}

// AgentFee returns the manual override when set, ignoring the rate
// entirely, else annual salary times the rate.
func AgentFee(h model.NewHire) float64 {
	if h.AgentFeeOverride != nil {
		return *h.AgentFeeOverride
	}
	return h.AnnualSalary * h.AgentFeeRate / 100
}

// Totals aggregates a year's labor cost figures.
type Totals struct {
	UnitPrice     float64 `json:"unitPriceTotal"`
	ActualSalary  float64 `json:"actualSalaryTotal"`
	NewHireSalary float64 `json:"newHireSalaryTotal"`
	AgentFees     float64 `json:"agentFeeTotal"`
	LaborCost     float64 `json:"totalLaborCost"`
}

// BudgetTotals sums the member and hire lists. The lists are small, so
// plain passes suffice.
func BudgetTotals(members []model.Member, b *model.BudgetData) Totals {
	var t Totals
	var prices []model.RankUnitPrice
	if b != nil {
		prices = b.RankUnitPrices
	}
	for _, m := range members {
		t.UnitPrice += UnitPriceTotal(prices, m.Rank)
		t.ActualSalary += MemberSalaryTotal(b, m.ID, m.Rank)
	}
	if b != nil {
		for _, h := range b.NewHires {
			t.NewHireSalary += NewHireProratedSalary(h)
			t.AgentFees += AgentFee(h)
		}
	}
	t.LaborCost = t.ActualSalary + t.NewHireSalary + t.AgentFees
	return t
}
