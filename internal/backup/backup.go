// Package backup reads and writes the portable backup document: a
// single JSON file carrying both storage sections plus a signature that
// import validates by exact match.
package backup

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"insight-hrm/internal/model"
)

// AppName discriminates backup files. Import rejects anything else
// outright; there is no partial merge.
const AppName = "InsightHRM"

// Version of the backup layout.
const Version = "1.0.0"

// File is the backup document.
type File struct {
	Version    string `json:"version"`
	ExportDate string `json:"exportDate"`
	AppName    string `json:"appName"`
	Data       Data   `json:"data"`
}

// Data carries the two storage sections. A nil section means the
// backup did not include it and the stored blob is left untouched.
type Data struct {
	Main              []model.YearData               `json:"main"`
	YearlyEvaluations []model.MemberYearlyEvaluation `json:"yearlyEvaluations"`
}

// ErrBadSignature marks a file whose appName does not match.
var ErrBadSignature = errors.New("backup: invalid backup file")

// Export builds the backup document for the given snapshot.
func Export(years []model.YearData, evals []model.MemberYearlyEvaluation) ([]byte, error) {
	f := File{
		Version:    Version,
		ExportDate: time.Now().UTC().Format(time.RFC3339),
		AppName:    AppName,
		Data: Data{
			Main:              years,
			YearlyEvaluations: evals,
		},
	}
	b, err := json.MarshalIndent(f, "", "  ")
	return b, errors.Wrap(err, "encoding backup")
}

// Parse validates and decodes a backup document. The whole file is
// rejected on a signature mismatch.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "decoding backup")
	}
	if f.AppName != AppName {
		return nil, ErrBadSignature
	}
	return &f, nil
}
