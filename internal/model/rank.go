package model

// Rank is a seniority grade. Ordering is defined by RankOrder, never by
// declaration or alphabetic order.
type Rank string

const (
	RankConsultant       Rank = "CONS"
	RankSeniorConsultant Rank = "Scon"
	RankManager          Rank = "MGR"
	RankSeniorManager    Rank = "SMGR"
	RankDirector         Rank = "DIR"
)

// RankOrder maps each rank to its ordinal, lowest to highest.
var RankOrder = map[Rank]int{
	RankConsultant:       1,
	RankSeniorConsultant: 2,
	RankManager:          3,
	RankSeniorManager:    4,
	RankDirector:         5,
}

// RankLabels holds the human-readable labels used by the spreadsheet
// adapters. The coded form (CONS, Scon, ...) is what persists.
var RankLabels = map[Rank]string{
	RankConsultant:       "コンサルタント",
	RankSeniorConsultant: "シニアコンサルタント",
	RankManager:          "マネージャー",
	RankSeniorManager:    "シニアマネージャー",
	RankDirector:         "ダイレクター",
}

// Ranks lists all ranks from lowest to highest.
var Ranks = []Rank{
	RankConsultant,
	RankSeniorConsultant,
	RankManager,
	RankSeniorManager,
	RankDirector,
}

// ValidRank reports whether r is one of the five defined grades.
func ValidRank(r Rank) bool {
	_, ok := RankOrder[r]
	return ok
}

// RankFromLabel resolves either a coded rank identifier or a legacy
// human-readable label. ok is false when neither form matches.
func RankFromLabel(s string) (Rank, bool) {
	if ValidRank(Rank(s)) {
		return Rank(s), true
	}
	for r, label := range RankLabels {
		if label == s {
			return r, true
		}
	}
	return "", false
}
