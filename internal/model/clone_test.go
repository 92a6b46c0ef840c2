package model

import "testing"

func TestCloneYearDataIsIndependent(t *testing.T) {
	team := "team-1"
	salary := 90.0
	src := YearData{
		Year: 2024,
		Members: []Member{
			{ID: "m1", Name: "佐藤", Rank: RankConsultant, TeamID: &team},
		},
		Teams: []Team{{ID: "team-1", Name: "第一チーム"}},
		Budget: &BudgetData{
			Year:           2024,
			RankUnitPrices: []RankUnitPrice{{Rank: RankConsultant, UnitPrice: 80}},
			MemberSalaries: []MemberSalary{
				{MemberID: "m1", MonthlySalaries: map[int]*float64{4: &salary}},
			},
			SimulationPatterns: []RaisePattern{
				{ID: "p1", Name: "標準", Rates: map[string]float64{"S": 10}},
			},
		},
	}

	out := CloneYearData(src)

	*out.Members[0].TeamID = "other"
	out.Budget.RankUnitPrices[0].UnitPrice = 999
	*out.Budget.MemberSalaries[0].MonthlySalaries[4] = 1
	out.Budget.SimulationPatterns[0].Rates["S"] = 99

	if *src.Members[0].TeamID != "team-1" {
		t.Fatalf("team pointer shared between clone and source")
	}
	if src.Budget.RankUnitPrices[0].UnitPrice != 80 {
		t.Fatalf("unit price slice shared")
	}
	if *src.Budget.MemberSalaries[0].MonthlySalaries[4] != 90 {
		t.Fatalf("month map shared")
	}
	if src.Budget.SimulationPatterns[0].Rates["S"] != 10 {
		t.Fatalf("rates map shared")
	}
}

func TestCloneBudgetNil(t *testing.T) {
	if CloneBudget(nil) != nil {
		t.Fatal("expected nil for nil budget")
	}
}

func TestRankFromLabel(t *testing.T) {
	if r, ok := RankFromLabel("CONS"); !ok || r != RankConsultant {
		t.Fatalf("expected coded form to resolve, got %v %v", r, ok)
	}
	if r, ok := RankFromLabel("マネージャー"); !ok || r != RankManager {
		t.Fatalf("expected label form to resolve, got %v %v", r, ok)
	}
	if _, ok := RankFromLabel("部長"); ok {
		t.Fatal("expected unknown label to fail")
	}
}

func TestEffectiveStatusDefaultsToActive(t *testing.T) {
	m := Member{}
	if m.EffectiveStatus() != StatusActive {
		t.Fatalf("expected active, got %s", m.EffectiveStatus())
	}
	m.Status = StatusPlanned
	if m.EffectiveStatus() != StatusPlanned {
		t.Fatalf("expected planned, got %s", m.EffectiveStatus())
	}
}
