package importer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"impacttrack/internal/entities"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// Limits bound an upload before and after it is decoded.
type Limits struct {
	MaxRows      int
	MaxFileBytes int64
}

// Read decodes a workbook, failing with ErrImportTooLarge when the file or its
// data rows exceed the limits and with ErrImportEmpty when there are no data rows.
func (l Limits) Read(r io.Reader, sheet string) ([][]string, error) {
	if l.MaxFileBytes > 0 {
		buf, err := io.ReadAll(io.LimitReader(r, l.MaxFileBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		if int64(len(buf)) > l.MaxFileBytes {
			return nil, fmt.Errorf("%w: file exceeds %d bytes", entities.ErrImportTooLarge, l.MaxFileBytes)
		}
		r = bytes.NewReader(buf)
	}

	rows, err := ReadWorkbook(r, sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, entities.ErrImportEmpty
	}
	if l.MaxRows > 0 && len(rows)-1 > l.MaxRows {
		return nil, fmt.Errorf("%w: %d data rows, limit is %d", entities.ErrImportTooLarge, len(rows)-1, l.MaxRows)
	}
	return rows, nil
}

// ReadWorkbook returns the rows of the named sheet, or of the first sheet
// holding any data when sheet is empty. Trailing blank rows are dropped.
func ReadWorkbook(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: not a readable workbook: %v", entities.ErrInvalidArgument, err)
	}
	defer func() { _ = f.Close() }()

	if sheet != "" {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			return nil, fmt.Errorf("%w: sheet %q not found", entities.ErrInvalidArgument, sheet)
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		return trimRows(rows), nil
	}

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		if rows = trimRows(rows); len(rows) > 0 {
			return rows, nil
		}
	}
	return nil, nil
}

func trimRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && blank(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Template returns an empty workbook carrying the canonical header of kind.
func Template(kind entities.ImportKind) ([]byte, error) {
	cols, err := Columns(kind)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := writeSheet(&buf, string(kind), headers(cols), nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteParticipants exports participants with the canonical import header, so
// an export can be edited and imported again.
func WriteParticipants(w io.Writer, items []entities.Participant) error {
	cols, err := Columns(entities.ImportParticipants)
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(items))
	for _, p := range items {
		values := map[string]any{
			"first_name": p.FirstName, "last_name": p.LastName, "gender": string(p.Gender), "age": p.Age,
			"date_of_birth": formatDate(p.DateOfBirth), "contact": p.Contact, "country": p.Country,
			"district": p.District, "sub_county": p.SubCounty, "parish": p.Parish, "village": p.Village,
			"setting": string(p.Setting), "is_pwd": yesNo(p.IsPWD), "disability_type": p.DisabilityType,
			"is_refugee": yesNo(p.IsRefugee), "is_mother": yesNo(p.IsMother),
			"employment_status": string(p.EmploymentStatus), "occupation": p.Occupation,
			"monthly_income": p.MonthlyIncome, "designation": p.Designation,
			"organization_id": p.OrganizationID, "project_id": p.ProjectID,
		}
		rows = append(rows, ordered(cols, values))
	}
	return writeSheet(w, string(entities.ImportParticipants), headers(cols), rows)
}

// WriteVSLAs exports savings groups with the canonical import header.
func WriteVSLAs(w io.Writer, items []entities.VSLA) error {
	cols, err := Columns(entities.ImportVSLAs)
	if err != nil {
		return err
	}
	rows := make([][]any, 0, len(items))
	for _, v := range items {
		values := map[string]any{
			"name": v.Name, "code": v.Code, "organization_id": v.OrganizationID, "project_id": v.ProjectID,
			"country": v.Country, "district": v.District, "sub_county": v.SubCounty, "parish": v.Parish,
			"village": v.Village, "meeting_frequency": string(v.MeetingFrequency), "status": string(v.Status),
			"total_members": v.TotalMembers, "female_members": v.FemaleMembers, "male_members": v.MaleMembers,
			"total_savings": v.TotalSavings, "total_loans": v.TotalLoans, "formed_on": formatDate(v.FormedOn),
		}
		rows = append(rows, ordered(cols, values))
	}
	return writeSheet(w, string(entities.ImportVSLAs), headers(cols), rows)
}

func ordered(cols []Column, values map[string]any) []any {
	row := make([]any, len(cols))
	for i, c := range cols {
		row[i] = values[c.Field]
	}
	return row
}

func writeSheet(w io.Writer, name string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &rows[i]); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
