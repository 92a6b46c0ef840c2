package sheet

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"insight-hrm/internal/model"
	"insight-hrm/internal/storage"
	"insight-hrm/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.Open(storage.NewMemoryBackend(), nil)
}

// buildRoster renders a one-sheet workbook with the given header and
// data rows.
func buildRoster(t *testing.T, rows [][]interface{}) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheetName, cell, v))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

var rosterHeader = []interface{}{
	HeaderCode, HeaderNameJP, HeaderRank, HeaderBirthYear, HeaderStatus,
}

func TestImportRosterInsertsAndUpdates(t *testing.T) {
	st := newTestStore(t)

	res, err := ImportRoster(st, buildRoster(t, [][]interface{}{
		rosterHeader,
		{"E001", "佐藤", "CONS", 1990, "在籍"},
		{"E002", "鈴木", "マネージャー", 1985, "退職"},
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Zero(t, res.Updated)
	assert.Empty(t, res.Errors)

	members := st.Members()
	require.Len(t, members, 2)
	assert.Equal(t, model.RankConsultant, members[0].Rank)
	assert.Equal(t, "E001", members[0].EmployeeCode)
	require.NotNil(t, members[0].BirthYear)
	assert.Equal(t, 1990, *members[0].BirthYear)
	// The label column maps onto the coded rank.
	assert.Equal(t, model.RankManager, members[1].Rank)
	assert.Equal(t, model.StatusInactive, members[1].Status)

	// Re-importing the same sheet updates in place, never duplicates.
	res, err = ImportRoster(st, buildRoster(t, [][]interface{}{
		rosterHeader,
		{"E001", "佐藤", "Scon", 1990, "在籍"},
		{"E002", "鈴木", "マネージャー", 1985, "退職"},
	}))
	require.NoError(t, err)
	assert.Zero(t, res.Inserted)
	assert.Equal(t, 2, res.Updated)

	members = st.Members()
	require.Len(t, members, 2)
	assert.Equal(t, model.RankSeniorConsultant, members[0].Rank)
}

func TestImportRosterMatchesByNameWithoutCode(t *testing.T) {
	st := newTestStore(t)
	_, err := st.AddMember(model.Member{Name: "佐藤", Rank: model.RankConsultant})
	require.NoError(t, err)

	res, err := ImportRoster(st, buildRoster(t, [][]interface{}{
		{HeaderNameJP, HeaderRank},
		{"佐藤", "MGR"},
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated)

	members := st.Members()
	require.Len(t, members, 1)
	assert.Equal(t, model.RankManager, members[0].Rank)
}

func TestImportRosterRowErrorsContinue(t *testing.T) {
	st := newTestStore(t)

	res, err := ImportRoster(st, buildRoster(t, [][]interface{}{
		rosterHeader,
		{"E001", "", "CONS", "", ""},          // empty name
		{"E002", "鈴木", "殿堂", "", ""},          // unknown rank
		{"E003", "田中", "CONS", "abc", ""},     // bad birth year
		{"E004", "高橋", "CONS", "", "休職"},      // unknown status
		{"E005", "伊藤", "CONS", 1992, "入社予定"}, // fine
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Len(t, res.Errors, 4)

	members := st.Members()
	require.Len(t, members, 1)
	assert.Equal(t, "伊藤", members[0].Name)
	assert.Equal(t, model.StatusPlanned, members[0].Status)
}

func TestImportRosterSkipsInBatchDuplicates(t *testing.T) {
	st := newTestStore(t)

	res, err := ImportRoster(st, buildRoster(t, [][]interface{}{
		rosterHeader,
		{"E001", "佐藤", "CONS", "", ""},
		{"E001", "佐藤(重複)", "CONS", "", ""},
		{"", "佐藤", "MGR", "", ""},
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 2, res.Skipped)

	members := st.Members()
	require.Len(t, members, 1)
	// The first row wins; the later rank never applies.
	assert.Equal(t, model.RankConsultant, members[0].Rank)
}

func TestImportRosterPreservesTeamAndSkills(t *testing.T) {
	st := newTestStore(t)
	team, err := st.AddTeam(model.Team{Name: "第一チーム"})
	require.NoError(t, err)
	lvl := 3
	_, err = st.AddMember(model.Member{
		Name:   "佐藤",
		Rank:   model.RankConsultant,
		TeamID: &team.ID,
		Skills: model.Skills{Consulting: &lvl},
	})
	require.NoError(t, err)

	_, err = ImportRoster(st, buildRoster(t, [][]interface{}{
		{HeaderNameJP, HeaderRank},
		{"佐藤", "Scon"},
	}))
	require.NoError(t, err)

	m := st.Members()[0]
	assert.Equal(t, model.RankSeniorConsultant, m.Rank)
	require.NotNil(t, m.TeamID)
	assert.Equal(t, team.ID, *m.TeamID)
	require.NotNil(t, m.Skills.Consulting)
	assert.Equal(t, 3, *m.Skills.Consulting)
}

func TestImportRosterMissingNameColumn(t *testing.T) {
	st := newTestStore(t)
	_, err := ImportRoster(st, buildRoster(t, [][]interface{}{
		{HeaderCode, HeaderRank},
		{"E001", "CONS"},
	}))
	assert.Error(t, err)
}

func TestExportRosterRoundTrip(t *testing.T) {
	src := newTestStore(t)
	team, err := src.AddTeam(model.Team{Name: "第一チーム"})
	require.NoError(t, err)
	_, err = src.AddMember(model.Member{
		Name: "佐藤", Rank: model.RankSeniorManager, TeamID: &team.ID,
		EmployeeCode: "E001", Status: model.StatusActive,
	})
	require.NoError(t, err)

	raw, err := ExportRoster(2024, src.Members(), src.Teams())
	require.NoError(t, err)

	dst := newTestStore(t)
	res, err := ImportRoster(dst, bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Empty(t, res.Errors)

	members := dst.Members()
	require.Len(t, members, 1)
	assert.Equal(t, "佐藤", members[0].Name)
	assert.Equal(t, model.RankSeniorManager, members[0].Rank)
	assert.Equal(t, "E001", members[0].EmployeeCode)
}

func TestSummarizeErrors(t *testing.T) {
	errs := []RowError{
		{Row: 2, Message: "名前が空です"},
		{Row: 3, Message: "不明なランク: 殿堂"},
		{Row: 4, Message: "名前が空です"},
	}
	got := SummarizeErrors(errs, 2)
	assert.Contains(t, got, "2行目")
	assert.Contains(t, got, "3行目")
	assert.NotContains(t, got, "4行目")
	assert.Contains(t, got, "ほか1件のエラー")
	assert.Empty(t, SummarizeErrors(nil, 2))
}
