package entities

import "fmt"

// ImportKind names the sheet layouts the importer understands.
type ImportKind string

const (
	ImportParticipants ImportKind = "participants"
	ImportVSLAs        ImportKind = "vslas"
)

// Valid reports whether k is a known import kind.
func (k ImportKind) Valid() bool {
	return k == ImportParticipants || k == ImportVSLAs
}

// RowError describes why a spreadsheet row was skipped. Row is the 1-based
// spreadsheet line, so the header is row 1.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Message)
}

// ImportDefaults fill references missing from a sheet.
type ImportDefaults struct {
	OrganizationID string
	ProjectID      string
	ClusterID      string
}

// ImportResult summarizes a best-effort import.
type ImportResult struct {
	Kind     ImportKind `json:"kind"`
	Total    int        `json:"total"`
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

// ImportOptions select the sheet to read and the references applied to rows
// that do not carry their own.
type ImportOptions struct {
	Sheet    string
	Defaults ImportDefaults
}
