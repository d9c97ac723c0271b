package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"impacttrack/internal/entities"

	"github.com/xuri/excelize/v2"
)

var now = time.Now

var dateLayouts = []string{
	dateLayout, "2006/01/02", "02/01/2006", "2/1/2006", "02-01-2006", "01-02-06", "02-Jan-2006", "2 January 2006", "Jan 2, 2006",
}

// row gives field-addressed access to one sheet line and records the first
// problem found.
type row struct {
	cells []string
	cols  ColumnMap
	line  int
	err   *entities.RowError
}

func (r *row) str(field string) string {
	i, ok := r.cols[field]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r *row) fail(field, format string, args ...any) {
	if r.err == nil {
		r.err = &entities.RowError{Row: r.line, Field: field, Message: fmt.Sprintf(format, args...)}
	}
}

func (r *row) required(field string) string {
	v := r.str(field)
	if v == "" {
		r.fail(field, "is required")
	}
	return v
}

func (r *row) number(field string) float64 {
	v := r.str(field)
	if v == "" {
		return 0
	}
	f, err := parseNumber(v)
	if err != nil {
		r.fail(field, "%q is not a number", v)
		return 0
	}
	if f < 0 {
		r.fail(field, "must not be negative")
	}
	return f
}

func (r *row) whole(field string) int {
	f := r.number(field)
	if f != float64(int(f)) {
		r.fail(field, "must be a whole number")
	}
	return int(f)
}

func (r *row) flag(field string) bool {
	v := r.str(field)
	b, ok := parseBool(v)
	if !ok {
		r.fail(field, "%q is not yes/no", v)
	}
	return b
}

func (r *row) date(field string) *time.Time {
	v := r.str(field)
	if v == "" {
		return nil
	}
	t, ok := parseDate(v)
	if !ok {
		r.fail(field, "%q is not a date", v)
		return nil
	}
	return &t
}

func (r *row) ref(field, fallback string) string {
	if v := r.str(field); v != "" {
		return v
	}
	if fallback == "" {
		r.fail(field, "is required")
	}
	return fallback
}

func parseNumber(s string) (float64, error) {
	s = strings.NewReplacer(",", "", " ", "", "_", "").Replace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "n", "false", "0", "-":
		return false, true
	case "yes", "y", "true", "1", "x":
		return true, true
	}
	return false, false
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if serial, err := parseNumber(s); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AgeAt returns the completed years between dob and at.
func AgeAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Batch is the outcome of parsing one sheet. Lines holds the spreadsheet line
// of each item so later failures can be reported against the same row.
type Batch[T any] struct {
	Items  []T
	Lines  []int
	Errors []entities.RowError
}

func (b *Batch[T]) keep(r *row, item T) {
	if r.err != nil {
		b.Errors = append(b.Errors, *r.err)
		return
	}
	b.Items = append(b.Items, item)
	b.Lines = append(b.Lines, r.line)
}

// eachRow walks the data rows (header excluded), skipping blank ones.
func eachRow(rows [][]string, cols ColumnMap, fn func(r *row)) {
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		fn(&row{cells: rows[i], cols: cols, line: i + 1})
	}
}

// ParseParticipants converts sheet rows into participants. Rows with problems
// are skipped and reported with their spreadsheet line number.
func ParseParticipants(rows [][]string, defaults entities.ImportDefaults) Batch[entities.Participant] {
	var b Batch[entities.Participant]
	if len(rows) == 0 {
		return b
	}
	cols, err := MapHeader(entities.ImportParticipants, rows[0])
	if err != nil {
		b.Errors = []entities.RowError{{Row: 1, Message: err.Error()}}
		return b
	}

	eachRow(rows, cols, func(r *row) {
		p := entities.Participant{
			FirstName:      r.required("first_name"),
			LastName:       r.str("last_name"),
			Contact:        r.str("contact"),
			Country:        r.str("country"),
			District:       r.str("district"),
			SubCounty:      r.str("sub_county"),
			Parish:         r.str("parish"),
			Village:        r.str("village"),
			DisabilityType: r.str("disability_type"),
			Occupation:     r.str("occupation"),
			Designation:    r.str("designation"),
			DateOfBirth:    r.date("date_of_birth"),
			Age:            r.whole("age"),
			IsPWD:          r.flag("is_pwd"),
			IsRefugee:      r.flag("is_refugee"),
			IsMother:       r.flag("is_mother"),
			MonthlyIncome:  r.number("monthly_income"),
			OrganizationID: r.ref("organization_id", defaults.OrganizationID),
			ProjectID:      r.ref("project_id", defaults.ProjectID),
			ClusterID:      optional(defaults.ClusterID),
		}

		if raw := r.required("gender"); raw != "" {
			g, ok := entities.ParseGender(raw)
			if !ok {
				r.fail("gender", "%q is not male/female/other", raw)
			}
			p.Gender = g
		}
		if raw := r.str("setting"); raw != "" {
			s, ok := entities.ParseSetting(raw)
			if !ok {
				r.fail("setting", "%q is not urban/rural", raw)
			}
			p.Setting = s
		}
		if raw := r.str("employment_status"); raw != "" {
			e, ok := entities.ParseEmploymentStatus(raw)
			if !ok {
				r.fail("employment_status", "%q is not a known employment status", raw)
			}
			p.EmploymentStatus = e
		}
		if p.Age == 0 && p.DateOfBirth != nil {
			p.Age = AgeAt(*p.DateOfBirth, now())
		}
		if p.Age < 0 || p.Age > 120 {
			r.fail("age", "must be between 0 and 120")
		}

		b.keep(r, p)
	})
	return b
}

// ParseVSLAs converts sheet rows into savings groups. Rows with problems are
// skipped and reported with their spreadsheet line number.
func ParseVSLAs(rows [][]string, defaults entities.ImportDefaults) Batch[entities.VSLA] {
	var b Batch[entities.VSLA]
	if len(rows) == 0 {
		return b
	}
	cols, err := MapHeader(entities.ImportVSLAs, rows[0])
	if err != nil {
		b.Errors = []entities.RowError{{Row: 1, Message: err.Error()}}
		return b
	}

	eachRow(rows, cols, func(r *row) {
		v := entities.VSLA{
			Name:           r.required("name"),
			Code:           r.required("code"),
			Country:        r.str("country"),
			District:       r.str("district"),
			SubCounty:      r.str("sub_county"),
			Parish:         r.str("parish"),
			Village:        r.str("village"),
			TotalMembers:   r.whole("total_members"),
			FemaleMembers:  r.whole("female_members"),
			MaleMembers:    r.whole("male_members"),
			TotalSavings:   r.number("total_savings"),
			TotalLoans:     r.number("total_loans"),
			FormedOn:       r.date("formed_on"),
			OrganizationID: r.ref("organization_id", defaults.OrganizationID),
			ProjectID:      r.ref("project_id", defaults.ProjectID),
			ClusterID:      optional(defaults.ClusterID),
			Status:         entities.VSLAActive,
		}

		if raw := r.required("meeting_frequency"); raw != "" {
			f, ok := entities.ParseMeetingFrequency(raw)
			if !ok {
				r.fail("meeting_frequency", "%q is not weekly/biweekly/monthly", raw)
			}
			v.MeetingFrequency = f
		}
		if raw := r.str("status"); raw != "" {
			s := entities.VSLAStatus(strings.ToLower(raw))
			if !s.Valid() {
				r.fail("status", "%q is not active/inactive/dissolved", raw)
			}
			v.Status = s
		}
		if v.FemaleMembers+v.MaleMembers > v.TotalMembers {
			r.fail("total_members", "female (%d) and male (%d) members exceed total (%d)", v.FemaleMembers, v.MaleMembers, v.TotalMembers)
		}

		b.keep(r, v)
	})
	return b
}
