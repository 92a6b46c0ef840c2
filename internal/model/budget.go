package model

// BudgetData is the per-year compensation configuration. It is created
// lazily on first access to a year that lacks one.
type BudgetData struct {
	Year               int             `json:"year"`
	RankUnitPrices     []RankUnitPrice `json:"rankUnitPrices"`
	MemberSalaries     []MemberSalary  `json:"memberSalaries"`
	NewHires           []NewHire       `json:"newHires"`
	SimulationPatterns []RaisePattern  `json:"simulationPatterns,omitempty"`
}

// RankUnitPrice is the standard monthly price configured per rank,
// in 万円/month.
type RankUnitPrice struct {
	Rank      Rank    `json:"rank"`
	UnitPrice float64 `json:"unitPrice"`
}

// MemberSalary carries a member's optional annual salary and a sparse
// month→amount override map. A month with no entry (or a nil entry,
// accepted from older records) means "use the rank's standard unit
// price for that month". The store normalizes nil entries away on write.
type MemberSalary struct {
	MemberID        string           `json:"memberId"`
	AnnualSalary    *float64         `json:"annualSalary"`
	MonthlySalaries map[int]*float64 `json:"monthlySalaries"`
}

// NewHire is a planned hire for the budget year.
type NewHire struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Rank             Rank     `json:"rank"`
	EntryMonth       int      `json:"entryMonth"` // 1-12
	AnnualSalary     float64  `json:"annualSalary"`
	AgentFeeRate     float64  `json:"agentFeeRate"`     // percent
	AgentFeeOverride *float64 `json:"agentFeeOverride"` // wins over the rate when set
}

// RaisePattern is a named set of per-grade raise percentages used for
// what-if projection.
type RaisePattern struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Rates   map[string]float64 `json:"rates"` // grade -> percent
	Comment string             `json:"comment"`
}

// DefaultRankUnitPrices seeds a freshly initialized budget.
var DefaultRankUnitPrices = []RankUnitPrice{
	{Rank: RankConsultant, UnitPrice: 80},
	{Rank: RankSeniorConsultant, UnitPrice: 100},
	{Rank: RankManager, UnitPrice: 130},
	{Rank: RankSeniorManager, UnitPrice: 160},
	{Rank: RankDirector, UnitPrice: 200},
}

// DefaultAgentFeeRate is the recruiting fee rate applied when a new
// hire does not specify one.
const DefaultAgentFeeRate = 35

// DefaultRaiseRates applies for any grade a pattern leaves out.
// Grades absent here too (D) raise by zero.
var DefaultRaiseRates = map[string]float64{
	"S": 10,
	"A": 6,
	"B": 4,
	"C": 0,
}

// MaxRaisePatterns bounds side-by-side pattern comparison.
const MaxRaisePatterns = 5
