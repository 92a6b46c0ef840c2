package report

import (
	"testing"

	"insight-hrm/internal/model"
)

func buildFixture() ([]model.Member, []model.Team, *model.BudgetData, []model.MemberYearlyEvaluation) {
	teamA := "team-1"
	s := "S"
	members := []model.Member{
		{ID: "m1", Name: "佐藤", Rank: model.RankDirector, TeamID: &teamA},
		{ID: "m2", Name: "鈴木", Rank: model.RankConsultant, TeamID: &teamA},
		{ID: "m3", Name: "田中", Rank: model.RankConsultant},
	}
	teams := []model.Team{
		{ID: "team-1", Name: "第一チーム"},
		{ID: "team-2", Name: "空チーム"},
	}
	budget := &model.BudgetData{RankUnitPrices: model.DefaultRankUnitPrices}
	evals := []model.MemberYearlyEvaluation{
		{MemberID: "m1", Evaluations: map[int]*string{2024: &s}},
	}
	return members, teams, budget, evals
}

func TestBuildRankDistributionHighestFirst(t *testing.T) {
	members, teams, budget, evals := buildFixture()
	sum := Build(2024, members, teams, budget, evals)

	if len(sum.RankDistribution) != 2 {
		t.Fatalf("expected 2 occupied rank buckets, got %d", len(sum.RankDistribution))
	}
	if sum.RankDistribution[0].Label != model.RankLabels[model.RankDirector] {
		t.Fatalf("expected director first, got %s", sum.RankDistribution[0].Label)
	}
	if sum.RankDistribution[1].Count != 2 {
		t.Fatalf("expected 2 consultants, got %d", sum.RankDistribution[1].Count)
	}
}

func TestBuildTeamDistributionDropsEmptyTeams(t *testing.T) {
	members, teams, budget, evals := buildFixture()
	sum := Build(2024, members, teams, budget, evals)

	if len(sum.TeamDistribution) != 2 {
		t.Fatalf("expected team + unassigned, got %+v", sum.TeamDistribution)
	}
	last := sum.TeamDistribution[len(sum.TeamDistribution)-1]
	if last.Label != "未所属" || last.Count != 1 {
		t.Fatalf("unexpected unassigned bucket %+v", last)
	}
}

func TestBuildGradeDistribution(t *testing.T) {
	members, teams, budget, evals := buildFixture()
	sum := Build(2024, members, teams, budget, evals)

	if len(sum.GradeDistribution) != 2 {
		t.Fatalf("expected S and ungraded buckets, got %+v", sum.GradeDistribution)
	}
	if sum.GradeDistribution[0].Label != "S" || sum.GradeDistribution[0].Count != 1 {
		t.Fatalf("unexpected S bucket %+v", sum.GradeDistribution[0])
	}
	if sum.GradeDistribution[1].Label != "未評価" || sum.GradeDistribution[1].Count != 2 {
		t.Fatalf("unexpected ungraded bucket %+v", sum.GradeDistribution[1])
	}
}

func TestBuildCostsAndStats(t *testing.T) {
	members, teams, budget, evals := buildFixture()
	sum := Build(2024, members, teams, budget, evals)

	// Rank cost rows cover every rank, even with zero members.
	if len(sum.RankCosts) != len(model.Ranks) {
		t.Fatalf("expected %d rank cost rows, got %d", len(model.Ranks), len(sum.RankCosts))
	}
	dir := sum.RankCosts[0]
	if dir.UnitPrice != 200 || dir.AnnualCost != 2400 {
		t.Fatalf("unexpected director cost row %+v", dir)
	}

	// Team cost rows drop empty teams.
	if len(sum.TeamCosts) != 1 {
		t.Fatalf("expected 1 team cost row, got %d", len(sum.TeamCosts))
	}
	if sum.TeamCosts[0].AnnualCost != (200+80)*12 {
		t.Fatalf("expected team annual cost 3360, got %v", sum.TeamCosts[0].AnnualCost)
	}

	total := float64(200+80+80) * 12
	if sum.Stats.TotalAnnualCost != total {
		t.Fatalf("expected total %v, got %v", total, sum.Stats.TotalAnnualCost)
	}
	if sum.Stats.AvgCostPerHead != total/3 {
		t.Fatalf("expected avg %v, got %v", total/3, sum.Stats.AvgCostPerHead)
	}
}

func TestBuildEmptyYear(t *testing.T) {
	sum := Build(2024, nil, nil, nil, nil)
	if sum.Stats.MemberCount != 0 || sum.Stats.AvgCostPerHead != 0 {
		t.Fatalf("unexpected stats for empty year %+v", sum.Stats)
	}
	if len(sum.RankDistribution) != 0 || len(sum.TeamDistribution) != 0 {
		t.Fatalf("expected empty distributions, got %+v", sum)
	}
}
