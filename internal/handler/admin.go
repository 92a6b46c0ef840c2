package handler

import (
	"bytes"
	"fmt"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"insight-hrm/internal/backup"
	"insight-hrm/internal/sheet"
	"insight-hrm/internal/simulation"
)

func (s *Server) handleBackup(ctx *fasthttp.RequestCtx, method string) {
	switch method {
	case fasthttp.MethodGet:
		years, evals := s.store.Snapshot()
		raw, err := backup.Export(years, evals)
		if err != nil {
			writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}
		ctx.SetContentType("application/json")
		ctx.Response.Header.Set("Content-Disposition", `attachment; filename="insight-hrm-backup.json"`)
		ctx.SetBody(raw)

	case fasthttp.MethodPost:
		file, err := backup.Parse(ctx.PostBody())
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		// Only sections present in the file overwrite stored data.
		if file.Data.Main != nil {
			if err := s.store.RestoreMain(file.Data.Main); err != nil {
				s.storeErr(ctx, err)
				return
			}
		}
		if file.Data.YearlyEvaluations != nil {
			if err := s.store.RestoreEvaluations(file.Data.YearlyEvaluations); err != nil {
				s.storeErr(ctx, err)
				return
			}
		}
		s.log.Info("backup restored",
			zap.String("exportDate", file.ExportDate),
			zap.Int("years", len(file.Data.Main)))
		writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func sendWorkbook(ctx *fasthttp.RequestCtx, name string, raw []byte) {
	ctx.SetContentType(xlsxContentType)
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	ctx.SetBody(raw)
}

func (s *Server) handleSheets(ctx *fasthttp.RequestCtx, method string, rest []string) {
	if len(rest) != 1 {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	year := s.yearArg(ctx)

	if method == fasthttp.MethodPost && rest[0] == "roster" {
		result, err := sheet.ImportRoster(s.store, bytes.NewReader(ctx.PostBody()))
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		s.log.Info("roster imported",
			zap.Int("inserted", result.Inserted),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", result.Skipped),
			zap.Int("errors", len(result.Errors)))
		writeJSON(ctx, fasthttp.StatusOK, result)
		return
	}
	if method != fasthttp.MethodGet {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}

	var raw []byte
	var err error
	switch rest[0] {
	case "roster":
		raw, err = sheet.ExportRoster(year, s.store.MembersForYear(year), s.store.TeamsForYear(year))
	case "budget":
		raw, err = sheet.ExportBudget(year, s.store.MembersForYear(year), s.store.BudgetForYear(year))
	case "report":
		raw, err = sheet.ExportReport(year, s.store.MembersForYear(year), s.store.TeamsForYear(year),
			s.store.BudgetForYear(year), s.store.Evaluations())
	case "simulation":
		budget := s.store.BudgetForYear(year)
		results := simulation.RunRaise(simulation.RaiseInput{
			Year:        year,
			Members:     s.store.MembersForYear(year),
			Budget:      budget,
			NextBudget:  s.store.BudgetForYear(year + 1),
			Evaluations: s.store.Evaluations(),
			Patterns:    patternsOf(budget),
		})
		raw, err = sheet.ExportSimulation(year, results)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	sendWorkbook(ctx, fmt.Sprintf("insight-hrm-%s-%d", rest[0], year), raw)
}

type cleanupResponse struct {
	Removed int `json:"removed"`
}

func (s *Server) handleCleanup(ctx *fasthttp.RequestCtx, method string) {
	if method != fasthttp.MethodPost {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	removed, err := s.store.CleanupDuplicateMembers()
	if err != nil {
		s.storeErr(ctx, err)
		return
	}
	if removed > 0 {
		s.log.Info("duplicate members removed", zap.Int("count", removed))
	}
	writeJSON(ctx, fasthttp.StatusOK, cleanupResponse{Removed: removed})
}

func (s *Server) handleData(ctx *fasthttp.RequestCtx, method string) {
	if method != fasthttp.MethodDelete {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	if string(ctx.QueryArgs().Peek("confirm")) != "true" {
		writeError(ctx, fasthttp.StatusBadRequest, "pass confirm=true to wipe all data")
		return
	}
	if err := s.store.DeleteAll(); err != nil {
		s.storeErr(ctx, err)
		return
	}
	s.log.Warn("all data deleted")
	writeJSON(ctx, fasthttp.StatusOK, okResponse{OK: true})
}
