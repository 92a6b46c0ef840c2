package model

// YearData is the unit of persistence and scoping: one fiscal year with
// its own members, teams and optional budget. Nothing in a YearData is
// shared with any other year.
type YearData struct {
	Year    int         `json:"year"`
	Members []Member    `json:"members"`
	Teams   []Team      `json:"teams"`
	Budget  *BudgetData `json:"budget,omitempty"`
}

// DefaultYear is the year seeded when no persisted data can be read.
const DefaultYear = 2024
