package simulation

import (
	"insight-hrm/internal/calc"
	"insight-hrm/internal/model"
)

// DefaultGlobalMultiplier is the managed-salary markup applied to any
// member without an explicit multiplier.
const DefaultGlobalMultiplier = 1.4

// ManagedInput is a snapshot for one managed-salary run. A salary
// override key present with a nil value forces the unit-price fallback
// even when budget data would supply a uniform salary.
type ManagedInput struct {
	Members           []model.Member
	Teams             []model.Team
	Budget            *model.BudgetData
	GlobalMultiplier  float64
	MemberMultipliers map[string]float64
	SalaryOverrides   map[string]*float64
}

// ManagedMember is one member's managed-salary row.
type ManagedMember struct {
	MemberID       string     `json:"memberId"`
	Name           string     `json:"name"`
	Rank           model.Rank `json:"rank"`
	TeamID         *string    `json:"teamId"`
	UnitPrice      float64    `json:"unitPrice"`
	BaseMonthly    float64    `json:"baseMonthly"`
	Multiplier     float64    `json:"multiplier"`
	ManagedMonthly float64    `json:"managedMonthly"`
	UnitPriceTotal float64    `json:"unitPriceTotal"`
	ManagedTotal   float64    `json:"managedTotal"`
}

// TeamSummary aggregates a team's rows. TeamID is empty for the
// unassigned bucket.
type TeamSummary struct {
	TeamID         string  `json:"teamId,omitempty"`
	Name           string  `json:"name"`
	MemberCount    int     `json:"memberCount"`
	UnitPriceTotal float64 `json:"unitPriceTotal"`
	ManagedTotal   float64 `json:"managedTotal"`
}

// ManagedResult is the full managed-salary projection.
type ManagedResult struct {
	Members        []ManagedMember `json:"members"`
	Teams          []TeamSummary   `json:"teams"`
	MemberCount    int             `json:"memberCount"`
	UnitPriceTotal float64         `json:"unitPriceTotal"`
	ManagedTotal   float64         `json:"managedTotal"`
}

// RunManaged computes managed salaries: base times multiplier, rounded
// to one decimal per month, twelve months per year.
func RunManaged(in ManagedInput) ManagedResult {
	global := in.GlobalMultiplier
	if global <= 0 {
		global = DefaultGlobalMultiplier
	}

	var prices []model.RankUnitPrice
	if in.Budget != nil {
		prices = in.Budget.RankUnitPrices
	}

	res := ManagedResult{MemberCount: len(in.Members)}
	byTeam := make(map[string]*TeamSummary)
	for _, t := range in.Teams {
		byTeam[t.ID] = &TeamSummary{TeamID: t.ID, Name: t.Name}
	}
	unassigned := &TeamSummary{Name: "未所属"}

	for _, m := range in.Members {
		unitPrice := calc.UnitPrice(prices, m.Rank)

		base := unitPrice
		if v, ok := in.SalaryOverrides[m.ID]; ok {
			if v != nil {
				base = *v
			}
		} else if v := uniformMonthlySalary(in.Budget, m.ID); v != nil {
			base = *v
		}

		mult, ok := in.MemberMultipliers[m.ID]
		if !ok {
			mult = global
		}

		managedMonthly := calc.ManagedSalary(base, mult)
		row := ManagedMember{
			MemberID:       m.ID,
			Name:           m.Name,
			Rank:           m.Rank,
			TeamID:         m.TeamID,
			UnitPrice:      unitPrice,
			BaseMonthly:    base,
			Multiplier:     mult,
			ManagedMonthly: managedMonthly,
			UnitPriceTotal: unitPrice * 12,
			ManagedTotal:   managedMonthly * 12,
		}
		res.Members = append(res.Members, row)
		res.UnitPriceTotal += row.UnitPriceTotal
		res.ManagedTotal += row.ManagedTotal

		sum := unassigned
		if m.TeamID != nil {
			if ts, ok := byTeam[*m.TeamID]; ok {
				sum = ts
			}
		}
		sum.MemberCount++
		sum.UnitPriceTotal += row.UnitPriceTotal
		sum.ManagedTotal += row.ManagedTotal
	}

	for _, t := range in.Teams {
		res.Teams = append(res.Teams, *byTeam[t.ID])
	}
	if unassigned.MemberCount > 0 {
		res.Teams = append(res.Teams, *unassigned)
	}
	return res
}

// uniformMonthlySalary returns the one explicit salary value when all
// twelve months carry it, the only case the simulator seeds a base from
// budget data.
func uniformMonthlySalary(b *model.BudgetData, memberID string) *float64 {
	if b == nil {
		return nil
	}
	for i := range b.MemberSalaries {
		if b.MemberSalaries[i].MemberID != memberID {
			continue
		}
		first, ok := b.MemberSalaries[i].MonthlySalaries[1]
		if !ok || first == nil {
			return nil
		}
		for month := 2; month <= 12; month++ {
			v, ok := b.MemberSalaries[i].MonthlySalaries[month]
			if !ok || v == nil || *v != *first {
				return nil
			}
		}
		v := *first
		return &v
	}
	return nil
}
