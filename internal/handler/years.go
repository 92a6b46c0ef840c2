package handler

import (
	"strconv"

	"github.com/valyala/fasthttp"
)

type yearsResponse struct {
	Years       []int `json:"years"`
	CurrentYear int   `json:"currentYear"`
}

type addYearRequest struct {
	Year int `json:"year"`
}

type copyYearRequest struct {
	SourceYear int `json:"sourceYear"`
	TargetYear int `json:"targetYear"`
}

type currentYearRequest struct {
	Year int `json:"year"`
}

func (s *Server) handleYears(ctx *fasthttp.RequestCtx, method string, rest []string) {
	switch {
	case len(rest) == 0 && method == fasthttp.MethodGet:
		writeJSON(ctx, fasthttp.StatusOK, yearsResponse{
			Years:       s.store.Years(),
			CurrentYear: s.store.CurrentYear(),
		})

	case len(rest) == 0 && method == fasthttp.MethodPost:
		var req addYearRequest
		if !readJSON(ctx, &req) {
			return
		}
		if req.Year <= 0 {
			writeError(ctx, fasthttp.StatusBadRequest, "year must be positive")
			return
		}
		if err := s.store.AddYear(req.Year); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) == 1 && rest[0] == "copy" && method == fasthttp.MethodPost:
		var req copyYearRequest
		if !readJSON(ctx, &req) {
			return
		}
		if req.TargetYear <= 0 {
			writeError(ctx, fasthttp.StatusBadRequest, "targetYear must be positive")
			return
		}
		if err := s.store.CopyYearData(req.SourceYear, req.TargetYear); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) == 1 && rest[0] == "current" && method == fasthttp.MethodPut:
		var req currentYearRequest
		if !readJSON(ctx, &req) {
			return
		}
		s.store.SetCurrentYear(req.Year)
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	case len(rest) == 1 && method == fasthttp.MethodDelete:
		year, err := strconv.Atoi(rest[0])
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid year")
			return
		}
		if err := s.store.DeleteYear(year); err != nil {
			s.storeErr(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}
