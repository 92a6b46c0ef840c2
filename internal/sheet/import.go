// Package sheet maps roster, budget and simulation data to and from
// spreadsheet workbooks with fixed header tables.
package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"insight-hrm/internal/model"
	"insight-hrm/internal/store"
)

// Roster column headers. The import matches columns by header name, not
// position; the rank column accepts both the coded identifier and the
// legacy human-readable label.
const (
	HeaderCode       = "社員コード"
	HeaderAccount    = "アカウント"
	HeaderNameJP     = "氏名"
	HeaderNameEN     = "Fullname"
	HeaderRank       = "ランク"
	HeaderGender     = "性別"
	HeaderBirthYear  = "生年"
	HeaderJoinDate   = "入社日"
	HeaderLeaveDate  = "退社日"
	HeaderStatus     = "ステータス"
	HeaderEmail      = "メール"
	HeaderDepartment = "部署"
)

// headerAliases folds alternate spellings onto canonical headers.
var headerAliases = map[string]string{
	"Fullname_JP": HeaderNameJP,
	"名前":          HeaderNameJP,
	"Email":       HeaderEmail,
}

var statusLabels = map[string]string{
	"在籍":   model.StatusActive,
	"退職":   model.StatusInactive,
	"入社予定": model.StatusPlanned,
}

// RowError is one row-level import failure. Processing continues past
// these; only the row is skipped.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes one roster import batch.
type ImportResult struct {
	Inserted int        `json:"inserted"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// rosterRow is one parsed spreadsheet row.
type rosterRow struct {
	row        int
	code       string
	account    string
	nameJP     string
	nameEN     string
	rank       model.Rank
	gender     string
	birthYear  *int
	joinDate   string
	leaveDate  string
	status     string
	email      string
	department string
}

// ImportRoster reads the first sheet of an xlsx workbook and applies it
// to the active year's roster. Existing members are matched by employee
// code first, then exact name, and updated in place; unmatched rows are
// inserted; duplicates within the batch are skipped after the first.
func ImportRoster(st *store.Store, r io.Reader) (ImportResult, error) {
	var res ImportResult

	f, err := excelize.OpenReader(r)
	if err != nil {
		return res, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return res, errors.Wrapf(err, "reading sheet %s", sheetName)
	}
	if len(rows) == 0 {
		return res, errors.New("sheet: workbook has no header row")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if canonical, ok := headerAliases[h]; ok {
			h = canonical
		}
		cols[h] = i
	}
	if _, ok := cols[HeaderNameJP]; !ok {
		return res, errors.Errorf("sheet: missing required column %s", HeaderNameJP)
	}

	parsed := make([]rosterRow, 0, len(rows)-1)
	seenCode := map[string]bool{}
	seenName := map[string]bool{}

	for i, raw := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header
		cell := func(header string) string {
			idx, ok := cols[header]
			if !ok || idx >= len(raw) {
				return ""
			}
			return strings.TrimSpace(raw[idx])
		}

		name := cell(HeaderNameJP)
		if name == "" {
			if isEmptyRow(raw) {
				continue
			}
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: "名前が空です"})
			continue
		}

		rank, ok := model.RankFromLabel(cell(HeaderRank))
		if !ok {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("不明なランク: %s", cell(HeaderRank))})
			continue
		}

		row := rosterRow{
			row:        rowNum,
			code:       cell(HeaderCode),
			account:    cell(HeaderAccount),
			nameJP:     name,
			nameEN:     cell(HeaderNameEN),
			rank:       rank,
			gender:     cell(HeaderGender),
			joinDate:   cell(HeaderJoinDate),
			leaveDate:  cell(HeaderLeaveDate),
			email:      cell(HeaderEmail),
			department: cell(HeaderDepartment),
		}
		if y := cell(HeaderBirthYear); y != "" {
			if n, err := strconv.Atoi(y); err == nil {
				row.birthYear = &n
			} else {
				res.Errors = append(res.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("生年が数値ではありません: %s", y)})
				continue
			}
		}
		if s := cell(HeaderStatus); s != "" {
			if mapped, ok := statusLabels[s]; ok {
				row.status = mapped
			} else if s == model.StatusActive || s == model.StatusInactive || s == model.StatusPlanned {
				row.status = s
			} else {
				res.Errors = append(res.Errors, RowError{Row: rowNum, Message: fmt.Sprintf("不明なステータス: %s", s)})
				continue
			}
		}

		// In-batch duplicates: same code or same name, first row wins.
		if row.code != "" && seenCode[row.code] {
			res.Skipped++
			continue
		}
		if seenName[row.nameJP] {
			res.Skipped++
			continue
		}
		if row.code != "" {
			seenCode[row.code] = true
		}
		seenName[row.nameJP] = true
		parsed = append(parsed, row)
	}

	existing := st.Members()
	for _, row := range parsed {
		if m := matchMember(existing, row); m != nil {
			applyRow(m, row)
			if err := st.UpdateMember(*m); err != nil {
				return res, err
			}
			res.Updated++
			continue
		}
		m := model.Member{
			Rank:   row.rank,
			Status: model.StatusActive,
		}
		applyRow(&m, row)
		added, err := st.AddMember(m)
		if err != nil {
			return res, err
		}
		existing = append(existing, added)
		res.Inserted++
	}
	return res, nil
}

// matchMember finds an existing record for the row: employee code
// first, exact display-name match as the fallback.
func matchMember(members []model.Member, row rosterRow) *model.Member {
	if row.code != "" {
		for i := range members {
			if members[i].EmployeeCode == row.code {
				return &members[i]
			}
		}
	}
	for i := range members {
		if members[i].Name == row.nameJP {
			return &members[i]
		}
	}
	return nil
}

// applyRow writes the row's fields onto a member, leaving roster-only
// state (team, evaluation, skills) untouched.
func applyRow(m *model.Member, row rosterRow) {
	m.Name = row.nameJP
	m.NameJP = row.nameJP
	m.Rank = row.rank
	if row.code != "" {
		m.EmployeeCode = row.code
	}
	if row.account != "" {
		m.Account = row.account
	}
	if row.nameEN != "" {
		m.NameEN = row.nameEN
	}
	if row.gender == "M" || row.gender == "F" {
		g := row.gender
		m.Gender = &g
	}
	if row.birthYear != nil {
		m.BirthYear = row.birthYear
	}
	if row.joinDate != "" {
		m.JoinDate = row.joinDate
	}
	if row.leaveDate != "" {
		m.LeaveDate = row.leaveDate
	}
	if row.status != "" {
		m.Status = row.status
	}
	if row.email != "" {
		m.Email = row.email
	}
	if row.department != "" {
		m.Department = row.department
	}
}

func isEmptyRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// SummarizeErrors renders up to max row errors, eliding the rest with a
// count, for user-visible notifications.
func SummarizeErrors(errs []RowError, max int) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range errs {
		if i >= max {
			fmt.Fprintf(&b, "ほか%d件のエラー", len(errs)-max)
			break
		}
		fmt.Fprintf(&b, "%d行目: %s\n", e.Row, e.Message)
	}
	return strings.TrimRight(b.String(), "\n")
}
