package handler

import (
	"strconv"

	"github.com/valyala/fasthttp"

	"insight-hrm/internal/calc"
	"insight-hrm/internal/model"
)

type unitPricesRequest struct {
	Prices []model.RankUnitPrice `json:"prices"`
}

func (s *Server) handleBudget(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0 && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, s.store.BudgetForYear(s.yearArg(ctx)))

	case len(rest) == 1 && rest[0] == "init" && method == fasthttp.MethodPost:
		if err := s.store.InitializeBudget(); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, s.store.Budget())

	case len(rest) >= 1 && rest[0] == "unit-prices" && method == fasthttp.MethodPut:
		var req unitPricesRequest
		if !readJSON(ctx, &req) {
			return
		}
		var err error
		if len(rest) == 2 {
			var year int
			if year, err = strconv.Atoi(rest[1]); err != nil {
				writeError(ctx, fasthttp.StatusBadRequest, "invalid year")
				return
			}
			err = s.store.UpdateRankUnitPricesByYear(year, req.Prices)
		} else {
			err = s.store.UpdateRankUnitPrices(req.Prices)
		}
		if err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) == 1 && rest[0] == "salaries" && method == fasthttp.MethodPut:
		var sal model.MemberSalary
		if !readJSON(ctx, &sal) {
			return
		}
		if sal.MemberID == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "memberId is required")
			return
		}
		if err := s.store.UpdateMemberSalary(sal); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) >= 1 && rest[0] == "hires":
		s.handleNewHires(ctx, method, rest[1:])

	case len(rest) >= 1 && rest[0] == "patterns":
		s.handleRaisePatterns(ctx, method, rest[1:])

	case len(rest) == 1 && rest[0] == "totals" && method == fasthttp.MethodGet:
		year := s.yearArg(ctx)
		totals := calc.BudgetTotals(s.store.MembersForYear(year), s.store.BudgetForYear(year))
		writeJSON(ctx, fasthttp.StatusOK, totals)

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleNewHires(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0 && method == fasthttp.MethodPost:
		var h model.NewHire
		if !readJSON(ctx, &h) {
			return
		}
		if h.EntryMonth < 1 || h.EntryMonth > 12 {
			writeError(ctx, fasthttp.StatusBadRequest, "entryMonth must be 1..12")
			return
		}
		added, err := s.store.AddNewHire(h)
		if err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, added)

	case len(rest) == 1 && method == fasthttp.MethodPut:
		var h model.NewHire
		if !readJSON(ctx, &h) {
			return
		}
		h.ID = rest[0]
		if err := s.store.UpdateNewHire(h); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) == 1 && method == fasthttp.MethodDelete:
		if err := s.store.DeleteNewHire(rest[0]); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleRaisePatterns(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0 && method == fasthttp.MethodPost:
		var p model.RaisePattern
		if !readJSON(ctx, &p) {
			return
		}
		if p.Name == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "name is required")
			return
		}
		added, err := s.store.AddRaisePattern(p)
		if err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, added)

	case len(rest) == 1 && method == fasthttp.MethodPut:
		var p model.RaisePattern
		if !readJSON(ctx, &p) {
			return
		}
		p.ID = rest[0]
		if err := s.store.UpdateRaisePattern(p); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) == 1 && method == fasthttp.MethodDelete:
		if err := s.store.DeleteRaisePattern(rest[0]); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}
