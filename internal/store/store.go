// Package store owns the collection of fiscal-year datasets and the
// global yearly-evaluation list. It is the only component that mutates
// persisted state: every mutation re-serializes the full collection to
// the backend before returning.
package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"insight-hrm/internal/model"
	"insight-hrm/internal/storage"
)

// Storage keys, one blob each. Their layouts are independent: year data
// is scoped per fiscal year, evaluations are one global list.
const (
	MainKey       = "insight-hrm-data"
	YearlyEvalKey = "insight-hrm-yearly-eval"
)

var (
	// ErrLastYear rejects deleting the only remaining fiscal year.
	ErrLastYear = errors.New("store: at least one fiscal year must remain")
	// ErrMaxPatterns rejects adding a sixth simulation pattern.
	ErrMaxPatterns = errors.New("store: raise pattern limit reached")
	// ErrLastPattern rejects deleting the only remaining pattern.
	ErrLastPattern = errors.New("store: at least one raise pattern must remain")
	// ErrInvalidGrade rejects grade letters outside S/A/B/C/D.
	ErrInvalidGrade = errors.New("store: invalid evaluation grade")
	// ErrInvalidRank rejects ranks outside the five defined grades.
	ErrInvalidRank = errors.New("store: invalid rank")
)

type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	log     *zap.Logger

	years   []model.YearData
	evals   []model.MemberYearlyEvaluation
	current int

	lastID int64 // generated ids are prefix+millis; keep them strictly increasing
}

// Open loads persisted state from the backend. Unreadable or missing
// data is absorbed: the store starts from a single empty default year
// and never surfaces a load error.
func Open(backend storage.Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{backend: backend, log: log}

	if raw, err := backend.Load(MainKey); err == nil {
		if err := json.Unmarshal(raw, &s.years); err != nil {
			s.log.Warn("stored year data unreadable, starting fresh", zap.Error(err))
			s.years = nil
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("loading year data failed, starting fresh", zap.Error(err))
	}
	if len(s.years) == 0 {
		s.years = []model.YearData{{Year: model.DefaultYear, Members: []model.Member{}, Teams: []model.Team{}}}
	}

	if raw, err := backend.Load(YearlyEvalKey); err == nil {
		if err := json.Unmarshal(raw, &s.evals); err != nil {
			s.log.Warn("stored evaluations unreadable, starting fresh", zap.Error(err))
			s.evals = nil
		}
	}

	s.current = s.years[len(s.years)-1].Year
	return s
}

func (s *Store) persistMain() error {
	b, err := json.Marshal(s.years)
	if err != nil {
		return errors.Wrap(err, "encoding year data")
	}
	return errors.Wrap(s.backend.Store(MainKey, b), "persisting year data")
}

func (s *Store) persistEvals() error {
	b, err := json.Marshal(s.evals)
	if err != nil {
		return errors.Wrap(err, "encoding evaluations")
	}
	return errors.Wrap(s.backend.Store(YearlyEvalKey, b), "persisting evaluations")
}

// yearData returns the dataset for year, or nil.
func (s *Store) yearData(year int) *model.YearData {
	for i := range s.years {
		if s.years[i].Year == year {
			return &s.years[i]
		}
	}
	return nil
}

func (s *Store) currentData() *model.YearData {
	return s.yearData(s.current)
}

func (s *Store) nextID(prefix string) string {
	now := time.Now().UnixMilli()
	if now <= s.lastID {
		now = s.lastID + 1
	}
	s.lastID = now
	return fmt.Sprintf("%s-%d", prefix, now)
}

// CurrentYear returns the active year pointer.
func (s *Store) CurrentYear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetCurrentYear switches the active year. Existence is not validated;
// reads of an absent year fall back to empty data.
func (s *Store) SetCurrentYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = year
}

// Years lists stored fiscal years ascending.
func (s *Store) Years() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.years))
	for i, d := range s.years {
		out[i] = d.Year
	}
	sort.Ints(out)
	return out
}

// AddYear appends an empty dataset and switches to it. No-op (besides
// the switch) when the year already exists.
func (s *Store) AddYear(year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.yearData(year) == nil {
		s.years = append(s.years, model.YearData{Year: year, Members: []model.Member{}, Teams: []model.Team{}})
		if err := s.persistMain(); err != nil {
			return err
		}
	}
	s.current = year
	return nil
}

// CopyYearData deep-copies members, teams and budget from one year into
// another, overwriting the target if it exists, then switches to it.
// No-op when the source year does not exist.
func (s *Store) CopyYearData(fromYear, toYear int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.yearData(fromYear)
	if src == nil {
		return nil
	}

	copied := model.CloneYearData(*src)
	copied.Year = toYear
	if copied.Budget != nil {
		copied.Budget.Year = toYear
	}

	if dst := s.yearData(toYear); dst != nil {
		*dst = copied
	} else {
		s.years = append(s.years, copied)
	}
	if err := s.persistMain(); err != nil {
		return err
	}
	s.current = toYear
	return nil
}

// DeleteYear removes a dataset. The store itself refuses to delete the
// last remaining year rather than trusting callers with the invariant.
func (s *Store) DeleteYear(year int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.years {
		if s.years[i].Year == year {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	if len(s.years) == 1 {
		return ErrLastYear
	}
	s.years = append(s.years[:idx], s.years[idx+1:]...)
	if err := s.persistMain(); err != nil {
		return err
	}
	if s.current == year {
		s.current = s.years[len(s.years)-1].Year
	}
	return nil
}

// Snapshot returns deep copies of the full year collection and the
// evaluation list.
func (s *Store) Snapshot() ([]model.YearData, []model.MemberYearlyEvaluation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	years := make([]model.YearData, len(s.years))
	for i, d := range s.years {
		years[i] = model.CloneYearData(d)
	}
	evals := make([]model.MemberYearlyEvaluation, len(s.evals))
	for i, e := range s.evals {
		evals[i] = model.CloneEvaluation(e)
	}
	return years, evals
}

// RestoreMain replaces the whole year collection, typically from a
// backup file, and re-points the current year at the newest dataset.
func (s *Store) RestoreMain(years []model.YearData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(years) == 0 {
		years = []model.YearData{{Year: model.DefaultYear, Members: []model.Member{}, Teams: []model.Team{}}}
	}
	s.years = make([]model.YearData, len(years))
	for i, d := range years {
		s.years[i] = model.CloneYearData(d)
	}
	if err := s.persistMain(); err != nil {
		return err
	}
	s.current = s.years[len(s.years)-1].Year
	return nil
}

// RestoreEvaluations replaces the global evaluation list.
func (s *Store) RestoreEvaluations(evals []model.MemberYearlyEvaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evals = make([]model.MemberYearlyEvaluation, len(evals))
	for i, e := range evals {
		s.evals[i] = model.CloneEvaluation(e)
	}
	return s.persistEvals()
}

// DeleteAll drops every stored record and resets to one empty default
// year. There is no recovery path afterwards.
func (s *Store) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(MainKey); err != nil {
		return err
	}
	if err := s.backend.Delete(YearlyEvalKey); err != nil {
		return err
	}
	s.years = []model.YearData{{Year: model.DefaultYear, Members: []model.Member{}, Teams: []model.Team{}}}
	s.evals = nil
	s.current = model.DefaultYear
	return nil
}
