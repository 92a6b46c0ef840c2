package model

// Team is a named grouping. LeaderID is a weak reference to a Member;
// deleting the leader does not cascade.
type Team struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	LeaderID *string `json:"leaderId"`
	Color    string  `json:"color"`
}

// TeamColors is the default palette cycled through when creating teams.
var TeamColors = []string{
	"#3B82F6",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#8B5CF6",
	"#EC4899",
	"#06B6D4",
	"#84CC16",
}
