package handler

import (
	"github.com/valyala/fasthttp"

	"insight-hrm/internal/model"
	"insight-hrm/internal/report"
	"insight-hrm/internal/simulation"
)

type raiseRequest struct {
	Year            int                `json:"year,omitempty"`
	SalaryOverrides map[string]float64 `json:"salaryOverrides,omitempty"`
	GradeOverrides  map[string]string  `json:"gradeOverrides,omitempty"`
}

type managedRequest struct {
	Year              int                 `json:"year,omitempty"`
	GlobalMultiplier  float64             `json:"globalMultiplier,omitempty"`
	MemberMultipliers map[string]float64  `json:"memberMultipliers,omitempty"`
	SalaryOverrides   map[string]*float64 `json:"salaryOverrides,omitempty"`
}

func (s *Server) handleSimulation(ctx *fasthttp.RequestCtx, method string, rest []string) {
	if len(rest) != 1 || method != fasthttp.MethodPost {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	switch rest[0] {
	case "raise":
		var req raiseRequest
		if !readJSON(ctx, &req) {
			return
		}
		year := req.Year
		if year == 0 {
			year = s.store.CurrentYear()
		}
		budget := s.store.BudgetForYear(year)
		results := simulation.RunRaise(simulation.RaiseInput{
			Year:            year,
			Members:         s.store.MembersForYear(year),
			Budget:          budget,
			NextBudget:      s.store.BudgetForYear(year + 1),
			Evaluations:     s.store.Evaluations(),
			Patterns:        patternsOf(budget),
			SalaryOverrides: req.SalaryOverrides,
			GradeOverrides:  req.GradeOverrides,
		})
		writeJSON(ctx, fasthttp.StatusOK, results)

	case "managed":
		var req managedRequest
		if !readJSON(ctx, &req) {
			return
		}
		year := req.Year
		if year == 0 {
			year = s.store.CurrentYear()
		}
		result := simulation.RunManaged(simulation.ManagedInput{
			Members:           s.store.MembersForYear(year),
			Teams:             s.store.TeamsForYear(year),
			Budget:            s.store.BudgetForYear(year),
			GlobalMultiplier:  req.GlobalMultiplier,
			MemberMultipliers: req.MemberMultipliers,
			SalaryOverrides:   req.SalaryOverrides,
		})
		writeJSON(ctx, fasthttp.StatusOK, result)

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func patternsOf(b *model.BudgetData) []model.RaisePattern {
	if b == nil {
		return nil
	}
	return b.SimulationPatterns
}

func (s *Server) handleReports(ctx *fasthttp.RequestCtx, method string, rest []string) {
	if len(rest) != 1 || rest[0] != "summary" || method != fasthttp.MethodGet {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	year := s.yearArg(ctx)
	summary := report.Build(year, s.store.MembersForYear(year), s.store.TeamsForYear(year),
		s.store.BudgetForYear(year), s.store.Evaluations())
	writeJSON(ctx, fasthttp.StatusOK, summary)
}
