// Package handler exposes the store, calculators and adapters over a
// JSON HTTP API. Routing is a plain method+path dispatch; every error
// leaves through the same envelope.
package handler

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"insight-hrm/internal/store"
)

type Server struct {
	store *store.Store
	log   *zap.Logger
}

func New(st *store.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: st, log: log}
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
	}
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}

func readJSON(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// storeErr maps store contract violations onto 400s; anything else is
// a persistence failure.
func (s *Server) storeErr(ctx *fasthttp.RequestCtx, err error) {
	switch err {
	case store.ErrLastYear, store.ErrMaxPatterns, store.ErrLastPattern,
		store.ErrInvalidGrade, store.ErrInvalidRank:
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
	default:
		s.log.Error("store mutation failed", zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}

// Handle is the fasthttp entrypoint.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	if !strings.HasPrefix(path, "/api/") {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(path, "/api/"), "/"), "/")
	method := string(ctx.Method())

	switch parts[0] {
	case "years":
		s.handleYears(ctx, method, parts[1:])
	case "members":
		s.handleMembers(ctx, method, parts[1:])
	case "teams":
		s.handleTeams(ctx, method, parts[1:])
	case "evaluations":
		s.handleEvaluations(ctx, method, parts[1:])
	case "budget":
		s.handleBudget(ctx, method, parts[1:])
	case "simulation":
		s.handleSimulation(ctx, method, parts[1:])
	case "reports":
		s.handleReports(ctx, method, parts[1:])
	case "backup":
		s.handleBackup(ctx, method)
	case "sheets":
		s.handleSheets(ctx, method, parts[1:])
	case "cleanup":
		s.handleCleanup(ctx, method)
	case "data":
		s.handleData(ctx, method)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

// yearArg reads an optional ?year= query, defaulting to the active year.
func (s *Server) yearArg(ctx *fasthttp.RequestCtx) int {
	if v := ctx.QueryArgs().Peek("year"); len(v) > 0 {
		if year, err := strconv.Atoi(string(v)); err == nil {
			return year
		}
	}
	return s.store.CurrentYear()
}
