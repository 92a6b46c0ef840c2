package model

// Deep-copy helpers. copyYearData and every store read path hand out
// clones so that no two years (and no caller) share nested maps or
// pointers.

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// CloneMember returns an independent copy of m.
func CloneMember(m Member) Member {
	out := m
	out.TeamID = cloneStringPtr(m.TeamID)
	out.Gender = cloneStringPtr(m.Gender)
	out.BirthYear = cloneIntPtr(m.BirthYear)
	out.Evaluation.Grade = cloneStringPtr(m.Evaluation.Grade)
	out.Evaluation.Score = cloneFloatPtr(m.Evaluation.Score)
	out.Skills = Skills{
		Consulting:     cloneIntPtr(m.Skills.Consulting),
		Construction:   cloneIntPtr(m.Skills.Construction),
		IT:             cloneIntPtr(m.Skills.IT),
		Sales:          cloneIntPtr(m.Skills.Sales),
		Management:     cloneIntPtr(m.Skills.Management),
		Responsibility: cloneIntPtr(m.Skills.Responsibility),
		Independence:   cloneIntPtr(m.Skills.Independence),
	}
	return out
}

// CloneTeam returns an independent copy of t.
func CloneTeam(t Team) Team {
	out := t
	out.LeaderID = cloneStringPtr(t.LeaderID)
	return out
}

// CloneMemberSalary returns an independent copy of s, including the
// sparse month map.
func CloneMemberSalary(s MemberSalary) MemberSalary {
	out := s
	out.AnnualSalary = cloneFloatPtr(s.AnnualSalary)
	if s.MonthlySalaries != nil {
		out.MonthlySalaries = make(map[int]*float64, len(s.MonthlySalaries))
		for k, v := range s.MonthlySalaries {
			out.MonthlySalaries[k] = cloneFloatPtr(v)
		}
	}
	return out
}

// CloneBudget returns an independent copy of b, or nil for nil.
func CloneBudget(b *BudgetData) *BudgetData {
	if b == nil {
		return nil
	}
	out := BudgetData{Year: b.Year}
	out.RankUnitPrices = append([]RankUnitPrice(nil), b.RankUnitPrices...)
	out.MemberSalaries = make([]MemberSalary, len(b.MemberSalaries))
	for i, s := range b.MemberSalaries {
		out.MemberSalaries[i] = CloneMemberSalary(s)
	}
	out.NewHires = make([]NewHire, len(b.NewHires))
	for i, h := range b.NewHires {
		nh := h
		nh.AgentFeeOverride = cloneFloatPtr(h.AgentFeeOverride)
		out.NewHires[i] = nh
	}
	if b.SimulationPatterns != nil {
		out.SimulationPatterns = make([]RaisePattern, len(b.SimulationPatterns))
		for i, p := range b.SimulationPatterns {
			np := p
			np.Rates = make(map[string]float64, len(p.Rates))
			for g, r := range p.Rates {
				np.Rates[g] = r
			}
			out.SimulationPatterns[i] = np
		}
	}
	return &out
}

// CloneYearData returns an independent copy of d.
func CloneYearData(d YearData) YearData {
	out := YearData{Year: d.Year}
	out.Members = make([]Member, len(d.Members))
	for i, m := range d.Members {
		out.Members[i] = CloneMember(m)
	}
	out.Teams = make([]Team, len(d.Teams))
	for i, t := range d.Teams {
		out.Teams[i] = CloneTeam(t)
	}
	out.Budget = CloneBudget(d.Budget)
	return out
}

// CloneEvaluation returns an independent copy of e.
func CloneEvaluation(e MemberYearlyEvaluation) MemberYearlyEvaluation {
	out := MemberYearlyEvaluation{MemberID: e.MemberID}
	out.Evaluations = make(map[int]*string, len(e.Evaluations))
	for y, g := range e.Evaluations {
		out.Evaluations[y] = cloneStringPtr(g)
	}
	return out
}
