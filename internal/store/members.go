package store

import (
	"insight-hrm/internal/model"
)

// Member and team CRUD. Every mutator operates on the currently active
// year's dataset only; mutations against an absent year are silent
// no-ops, matching the read fallback.

// Members returns copies of the active year's members.
func (s *Store) Members() []model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.membersLocked(s.current)
}

// MembersForYear returns copies of the given year's members.
func (s *Store) MembersForYear(year int) []model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.membersLocked(year)
}

func (s *Store) membersLocked(year int) []model.Member {
	d := s.yearData(year)
	if d == nil {
		return nil
	}
	out := make([]model.Member, len(d.Members))
	for i, m := range d.Members {
		out[i] = model.CloneMember(m)
	}
	return out
}

// Teams returns copies of the active year's teams.
func (s *Store) Teams() []model.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teamsLocked(s.current)
}

// TeamsForYear returns copies of the given year's teams.
func (s *Store) TeamsForYear(year int) []model.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teamsLocked(year)
}

func (s *Store) teamsLocked(year int) []model.Team {
	d := s.yearData(year)
	if d == nil {
		return nil
	}
	out := make([]model.Team, len(d.Teams))
	for i, t := range d.Teams {
		out[i] = model.CloneTeam(t)
	}
	return out
}

// AddMember generates an id and appends the member to the active year.
func (s *Store) AddMember(m model.Member) (model.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !model.ValidRank(m.Rank) {
		return model.Member{}, ErrInvalidRank
	}
	d := s.currentData()
	if d == nil {
		return model.Member{}, nil
	}
	m.ID = s.nextID("member")
	d.Members = append(d.Members, model.CloneMember(m))
	if err := s.persistMain(); err != nil {
		return model.Member{}, err
	}
	return m, nil
}

// UpdateMember replaces the record with the same id. No-op when the id
// is absent.
func (s *Store) UpdateMember(m model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !model.ValidRank(m.Rank) {
		return ErrInvalidRank
	}
	d := s.currentData()
	if d == nil {
		return nil
	}
	for i := range d.Members {
		if d.Members[i].ID == m.ID {
			d.Members[i] = model.CloneMember(m)
			return s.persistMain()
		}
	}
	return nil
}

// DeleteMember removes the record by id.
func (s *Store) DeleteMember(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil {
		return nil
	}
	for i := range d.Members {
		if d.Members[i].ID == id {
			d.Members = append(d.Members[:i], d.Members[i+1:]...)
			return s.persistMain()
		}
	}
	return nil
}

// AddTeam generates an id and appends the team to the active year.
func (s *Store) AddTeam(t model.Team) (model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil {
		return model.Team{}, nil
	}
	t.ID = s.nextID("team")
	d.Teams = append(d.Teams, model.CloneTeam(t))
	if err := s.persistMain(); err != nil {
		return model.Team{}, err
	}
	return t, nil
}

// UpdateTeam replaces the record with the same id. No-op when absent.
func (s *Store) UpdateTeam(t model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil {
		return nil
	}
	for i := range d.Teams {
		if d.Teams[i].ID == t.ID {
			d.Teams[i] = model.CloneTeam(t)
			return s.persistMain()
		}
	}
	return nil
}

// DeleteTeam removes the team and sets teamId to null on every member
// that referenced it. Cascade-to-null, never cascade-delete.
func (s *Store) DeleteTeam(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.currentData()
	if d == nil {
		return nil
	}
	idx := -1
	for i := range d.Teams {
		if d.Teams[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	d.Teams = append(d.Teams[:idx], d.Teams[idx+1:]...)
	for i := range d.Members {
		if d.Members[i].TeamID != nil && *d.Members[i].TeamID == id {
			d.Members[i].TeamID = nil
		}
	}
	return s.persistMain()
}

// CleanupDuplicateMembers scans every year and removes members whose id
// already appeared earlier in that year's list order, returning the
// number removed. Historical double-inserts made this necessary; it
// runs once at startup and stays callable on demand.
func (s *Store) CleanupDuplicateMembers() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for yi := range s.years {
		seen := make(map[string]bool, len(s.years[yi].Members))
		kept := s.years[yi].Members[:0]
		for _, m := range s.years[yi].Members {
			if seen[m.ID] {
				removed++
				continue
			}
			seen[m.ID] = true
			kept = append(kept, m)
		}
		s.years[yi].Members = kept
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.persistMain()
}
