package store

import (
	"insight-hrm/internal/model"
)

// Evaluations returns copies of the global yearly-evaluation list.
func (s *Store) Evaluations() []model.MemberYearlyEvaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MemberYearlyEvaluation, len(s.evals))
	for i, e := range s.evals {
		out[i] = model.CloneEvaluation(e)
	}
	return out
}

// YearlyGrade returns the grade for a member and year, or nil.
func (s *Store) YearlyGrade(memberID string, year int) *string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.evals {
		if e.MemberID == memberID {
			if g, ok := e.Evaluations[year]; ok && g != nil {
				v := *g
				return &v
			}
			return nil
		}
	}
	return nil
}

// UpdateYearlyEvaluation upserts a member's grade for a fiscal year.
// A nil grade clears the entry. Transitions are unrestricted.
func (s *Store) UpdateYearlyEvaluation(memberID string, year int, grade *string) error {
	if grade != nil && !model.ValidYearlyGrade(*grade) {
		return ErrInvalidGrade
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.evals {
		if s.evals[i].MemberID == memberID {
			if s.evals[i].Evaluations == nil {
				s.evals[i].Evaluations = map[int]*string{}
			}
			s.evals[i].Evaluations[year] = cloneGrade(grade)
			return s.persistEvals()
		}
	}
	s.evals = append(s.evals, model.MemberYearlyEvaluation{
		MemberID:    memberID,
		Evaluations: map[int]*string{year: cloneGrade(grade)},
	})
	return s.persistEvals()
}

func cloneGrade(g *string) *string {
	if g == nil {
		return nil
	}
	v := *g
	return &v
}
