package handler

import (
	"strconv"

	"github.com/valyala/fasthttp"

	"insight-hrm/internal/model"
)

func (s *Server) handleMembers(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0 && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, s.store.MembersForYear(s.yearArg(ctx)))

	case len(rest) == 0 && method == fasthttp.MethodPost:
		var m model.Member
		if !readJSON(ctx, &m) {
			return
		}
		if m.Name == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "name is required")
			return
		}
		added, err := s.store.AddMember(m)
		if err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, added)

	case len(rest) == 1 && method == fasthttp.MethodPut:
		var m model.Member
		if !readJSON(ctx, &m) {
			return
		}
		m.ID = rest[0]
		if err := s.store.UpdateMember(m); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) == 1 && method == fasthttp.MethodDelete:
		if err := s.store.DeleteMember(rest[0]); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) handleTeams(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0 && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, s.store.Teams())

	case len(rest) == 0 && method == fasthttp.MethodPost:
		var t model.Team
		if !readJSON(ctx, &t) {
			return
		}
		if t.Name == "" {
			writeError(ctx, fasthttp.StatusBadRequest, "name is required")
			return
		}
		added, err := s.store.AddTeam(t)
		if err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, added)

	case len(rest) == 1 && method == fasthttp.MethodPut:
		var t model.Team
		if !readJSON(ctx, &t) {
			return
		}
		t.ID = rest[0]
		if err := s.store.UpdateTeam(t); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) == 1 && method == fasthttp.MethodDelete:
		if err := s.store.DeleteTeam(rest[0]); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

type evaluationRequest struct {
	Grade *string `json:"grade"`
}

func (s *Server) handleEvaluations(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0 && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, s.store.Evaluations())

	case len(rest) == 2 && method == fasthttp.MethodPut:
		year, err := strconv.Atoi(rest[1])
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid year")
			return
		}
		var req evaluationRequest
		if !readJSON(ctx, &req) {
			return
		}
		if err := s.store.UpdateYearlyEvaluation(rest[0], year, req.Grade); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}
