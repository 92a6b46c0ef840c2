package model

// EmployeeStatus values. An empty status on an old record reads as active.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPlanned  = "planned"
)

// Member is one employee record inside a single fiscal year's dataset.
// Fields past Skills were added over the application's life and are
// optional; older persisted records simply omit them.
type Member struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Rank       Rank       `json:"rank"`
	TeamID     *string    `json:"teamId"`
	Evaluation Evaluation `json:"evaluation"`
	Skills     Skills     `json:"skills"`

	EmployeeCode string  `json:"employeeCode,omitempty"`
	Account      string  `json:"account,omitempty"`
	NameJP       string  `json:"nameJp,omitempty"`
	NameEN       string  `json:"nameEn,omitempty"`
	Gender       *string `json:"gender,omitempty"` // "M" / "F"
	BirthYear    *int    `json:"birthYear,omitempty"`
	JoinDate     string  `json:"joinDate,omitempty"` // YYYY-MM-DD
	LeaveDate    string  `json:"leaveDate,omitempty"`
	Status       string  `json:"status,omitempty"`
	Email        string  `json:"email,omitempty"`
	Department   string  `json:"department,omitempty"`
}

// EffectiveStatus defaults the zero value to active.
func (m *Member) EffectiveStatus() string {
	if m.Status == "" {
		return StatusActive
	}
	return m.Status
}

// Evaluation is the legacy single free-form evaluation, largely
// superseded by MemberYearlyEvaluation.
type Evaluation struct {
	Grade   *string  `json:"grade"`
	Score   *float64 `json:"score"`
	Summary string   `json:"summary"`
	Comment string   `json:"comment"`
}

// Skills holds seven independent competency ratings, 1-3 or unset.
type Skills struct {
	Consulting     *int `json:"consulting"`
	Construction   *int `json:"construction"`
	IT             *int `json:"it"`
	Sales          *int `json:"sales"`
	Management     *int `json:"management"`
	Responsibility *int `json:"responsibility"`
	Independence   *int `json:"independence"`
}
