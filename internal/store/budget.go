package store

import (
	"github.com/google/uuid"

	"insight-hrm/internal/model"
)

// Budget returns a copy of the active year's budget, or nil when the
// year has none yet.
func (s *Store) Budget() *model.BudgetData {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil {
		return nil
	}
	return model.CloneBudget(d.Budget)
}

// BudgetForYear returns a copy of the given year's budget, or nil.
func (s *Store) BudgetForYear(year int) *model.BudgetData {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.yearData(year)
	if d == nil {
		return nil
	}
	return model.CloneBudget(d.Budget)
}

// seedBudget builds the lazily-created default budget for a year:
// standard unit prices plus one empty salary row per current member.
func seedBudget(d *model.YearData) *model.BudgetData {
	b := &model.BudgetData{
		Year:           d.Year,
		RankUnitPrices: append([]model.RankUnitPrice(nil), model.DefaultRankUnitPrices...),
		MemberSalaries: make([]model.MemberSalary, 0, len(d.Members)),
		NewHires:       []model.NewHire{},
	}
	for _, m := range d.Members {
		b.MemberSalaries = append(b.MemberSalaries, model.MemberSalary{
			MemberID:        m.ID,
			MonthlySalaries: map[int]*float64{},
		})
	}
	return b
}

// ensureBudget lazily creates the year's budget.
func (s *Store) ensureBudget(d *model.YearData) *model.BudgetData {
	if d.Budget == nil {
		d.Budget = seedBudget(d)
	}
	return d.Budget
}

// InitializeBudget seeds the active year's budget with default unit
// prices and one empty salary row per member. Idempotent: no-op when a
// budget already exists.
func (s *Store) InitializeBudget() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil || d.Budget != nil {
		return nil
	}
	d.Budget = seedBudget(d)
	return s.persistMain()
}

// UpdateRankUnitPrices replaces the active year's rank price table.
func (s *Store) UpdateRankUnitPrices(prices []model.RankUnitPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUnitPricesLocked(s.current, prices)
}

// UpdateRankUnitPricesByYear is the cross-year variant; it does not
// depend on the current-year pointer.
func (s *Store) UpdateRankUnitPricesByYear(year int, prices []model.RankUnitPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUnitPricesLocked(year, prices)
}

func (s *Store) updateUnitPricesLocked(year int, prices []model.RankUnitPrice) error {
	d := s.yearData(year)
	if d == nil {
		return nil
	}
	b := s.ensureBudget(d)
	b.RankUnitPrices = append([]model.RankUnitPrice(nil), prices...)
	return s.persistMain()
}

// UpdateMemberSalary upserts a salary row by member id. Explicit-null
// months are normalized to absent so persisted data carries one
// canonical representation of "use the standard price".
func (s *Store) UpdateMemberSalary(sal model.MemberSalary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil {
		return nil
	}
	b := s.ensureBudget(d)

	normalized := model.CloneMemberSalary(sal)
	months := make(map[int]*float64)
	for month, v := range normalized.MonthlySalaries {
		if v == nil || month < 1 || month > 12 {
			continue
		}
		months[month] = v
	}
	normalized.MonthlySalaries = months

	for i := range b.MemberSalaries {
		if b.MemberSalaries[i].MemberID == normalized.MemberID {
			b.MemberSalaries[i] = normalized
			return s.persistMain()
		}
	}
	b.MemberSalaries = append(b.MemberSalaries, normalized)
	return s.persistMain()
}

// AddNewHire generates an id and appends the planned hire.
func (s *Store) AddNewHire(h model.NewHire) (model.NewHire, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !model.ValidRank(h.Rank) {
		return model.NewHire{}, ErrInvalidRank
	}
	d := s.currentData()
	if d == nil {
		return model.NewHire{}, nil
	}
	b := s.ensureBudget(d)
	h.ID = uuid.NewString()
	b.NewHires = append(b.NewHires, h)
	if err := s.persistMain(); err != nil {
		return model.NewHire{}, err
	}
	return h, nil
}

// UpdateNewHire replaces a planned hire by id. No-op when absent.
func (s *Store) UpdateNewHire(h model.NewHire) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !model.ValidRank(h.Rank) {
		return ErrInvalidRank
	}
	d := s.currentData()
	if d == nil || d.Budget == nil {
		return nil
	}
	for i := range d.Budget.NewHires {
		if d.Budget.NewHires[i].ID == h.ID {
			d.Budget.NewHires[i] = h
			return s.persistMain()
		}
	}
	return nil
}

// DeleteNewHire removes a planned hire by id.
func (s *Store) DeleteNewHire(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil || d.Budget == nil {
		return nil
	}
	for i := range d.Budget.NewHires {
		if d.Budget.NewHires[i].ID == id {
			d.Budget.NewHires = append(d.Budget.NewHires[:i], d.Budget.NewHires[i+1:]...)
			return s.persistMain()
		}
	}
	return nil
}

// AddRaisePattern appends a simulation pattern, up to the comparison
// limit of five.
func (s *Store) AddRaisePattern(p model.RaisePattern) (model.RaisePattern, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil {
		return model.RaisePattern{}, nil
	}
	b := s.ensureBudget(d)
	if len(b.SimulationPatterns) >= model.MaxRaisePatterns {
		return model.RaisePattern{}, ErrMaxPatterns
	}
	p.ID = uuid.NewString()
	if p.Rates == nil {
		p.Rates = map[string]float64{}
	}
	b.SimulationPatterns = append(b.SimulationPatterns, p)
	if err := s.persistMain(); err != nil {
		return model.RaisePattern{}, err
	}
	return p, nil
}

// UpdateRaisePattern replaces a pattern by id. No-op when absent.
func (s *Store) UpdateRaisePattern(p model.RaisePattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil || d.Budget == nil {
		return nil
	}
	for i := range d.Budget.SimulationPatterns {
		if d.Budget.SimulationPatterns[i].ID == p.ID {
			d.Budget.SimulationPatterns[i] = p
			return s.persistMain()
		}
	}
	return nil
}

// DeleteRaisePattern removes a pattern by id; the last remaining
// pattern cannot be deleted.
func (s *Store) DeleteRaisePattern(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil || d.Budget == nil {
		return nil
	}
	b := d.Budget
	idx := -1
	for i := range b.SimulationPatterns {
		if b.SimulationPatterns[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	if len(b.SimulationPatterns) == 1 {
		return ErrLastPattern
	}
	b.SimulationPatterns = append(b.SimulationPatterns[:idx], b.SimulationPatterns[idx+1:]...)
	return s.persistMain()
}
