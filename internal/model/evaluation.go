package model

// Yearly evaluation grades. A member's grade for a year is one of these
// or unset.
var YearlyGrades = []string{"S", "A", "B", "C", "D"}

// ValidYearlyGrade reports whether g is a defined grade letter.
func ValidYearlyGrade(g string) bool {
	for _, v := range YearlyGrades {
		if v == g {
			return true
		}
	}
	return false
}

// MemberYearlyEvaluation maps fiscal years to grade letters for one
// member. The collection of these is global across all years, unlike
// YearData; a member's evaluations outlive roster differences between
// year datasets.
type MemberYearlyEvaluation struct {
	MemberID    string          `json:"memberId"`
	Evaluations map[int]*string `json:"evaluations"` // year -> grade or nil
}

// DefaultSimulationGrade is assumed for members with no grade recorded
// for the simulated year.
const DefaultSimulationGrade = "B"
