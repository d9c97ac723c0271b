// Package analytics shapes already-fetched rows into dashboard figures.
package analytics

import (
	"math"
	"time"

	"impacttrack/internal/entities"
)

// Age band labels, youngest first.
const (
	BandUnder15 = "under 15"
	Band15To24  = "15-24"
	Band25To35  = "25-35"
	Band36To59  = "36-59"
	Band60Plus  = "60+"
	Unknown     = "unknown"

	LabelPWD    = "pwd"
	LabelNonPWD = "non_pwd"
)

var (
	genderOrder     = []string{string(entities.GenderFemale), string(entities.GenderMale), string(entities.GenderOther)}
	ageBandOrder    = []string{BandUnder15, Band15To24, Band25To35, Band36To59, Band60Plus}
	settingOrder    = []string{string(entities.SettingUrban), string(entities.SettingRural)}
	disabilityOrder = []string{LabelPWD, LabelNonPWD}
	employmentOrder = []string{
		string(entities.EmploymentEmployed), string(entities.EmploymentSelfEmployed),
		string(entities.EmploymentUnemployed), string(entities.EmploymentStudent),
	}
)

// AgeBand buckets an age. Ages of zero or below are unrecorded.
func AgeBand(age int) string {
	switch {
	case age <= 0:
		return Unknown
	case age < 15:
		return BandUnder15
	case age <= 24:
		return Band15To24
	case age <= 35:
		return Band25To35
	case age <= 59:
		return Band36To59
	default:
		return Band60Plus
	}
}

// Percent returns part/whole*100 rounded to two decimals, or 0 when whole is 0.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return round2(part / whole * 100)
}

// Growth is the percentage change from previous to current. A zero baseline
// reports 100 when anything appeared and 0 otherwise.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return round2((current - previous) / previous * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// tally counts labels and keeps first-seen order for labels outside the canonical list.
type tally struct {
	counts map[string]int
	extra  []string
	order  []string
}

func newTally(order []string) *tally {
	return &tally{counts: make(map[string]int, len(order)+1), order: order}
}

func (t *tally) inc(label string) {
	t.add(label, 1)
}

func (t *tally) add(label string, n int) {
	if label == "" {
		label = Unknown
	}
	if _, seen := t.counts[label]; !seen && !contains(t.order, label) {
		t.extra = append(t.extra, label)
	}
	t.counts[label] += n
}

// breakdown lists every canonical label, then any other label that occurred.
func (t *tally) breakdown(denominator int) []entities.Breakdown {
	res := make([]entities.Breakdown, 0, len(t.order)+len(t.extra))
	for _, label := range append(append([]string{}, t.order...), t.extra...) {
		n := t.counts[label]
		res = append(res, entities.Breakdown{
			Label:      label,
			Count:      n,
			Percentage: Percent(float64(n), float64(denominator)),
		})
	}
	return res
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func known(valid bool, label string) string {
	if !valid {
		return Unknown
	}
	return label
}

// AttendanceBreakdown summarises a register in one pass. Demographic splits
// cover attendees only, each as a share of attendees.
func AttendanceBreakdown(records []entities.AttendanceRecord) entities.AttendanceAnalytics {
	var (
		gender     = newTally(genderOrder)
		ageBand    = newTally(ageBandOrder)
		setting    = newTally(settingOrder)
		disability = newTally(disabilityOrder)
		employment = newTally(employmentOrder)
		attended   int
	)

	for _, r := range records {
		if !r.Attended {
			continue
		}
		attended++
		gender.inc(known(r.Gender.Valid(), string(r.Gender)))
		ageBand.inc(AgeBand(r.Age))
		setting.inc(known(r.Setting.Valid(), string(r.Setting)))
		employment.inc(known(r.EmploymentStatus.Valid(), string(r.EmploymentStatus)))
		if r.IsPWD {
			disability.inc(LabelPWD)
		} else {
			disability.inc(LabelNonPWD)
		}
	}

	total := len(records)
	return entities.AttendanceAnalytics{
		Total:          total,
		Attended:       attended,
		Absent:         total - attended,
		AttendanceRate: Percent(float64(attended), float64(total)),
		ByGender:       gender.breakdown(attended),
		ByAgeBand:      ageBand.breakdown(attended),
		BySetting:      setting.breakdown(attended),
		ByDisability:   disability.breakdown(attended),
		ByEmployment:   employment.breakdown(attended),
	}
}

// KPI metric keys in display order.
const (
	KPIParticipants        = "participants"
	KPIActivities          = "activities"
	KPICompletedActivities = "completed_activities"
	KPIOrganizations       = "organizations"
	KPIVSLAs               = "vslas"
	KPIVSLAMembers         = "vsla_members"
	KPITotalSavings        = "total_savings"
	KPITotalLoans          = "total_loans"
)

// BuildKPIOverview pairs each headline figure with its month-over-month growth.
func BuildKPIOverview(current, previous entities.KPICounts) entities.KPIOverview {
	pairs := []struct {
		key       string
		cur, prev float64
	}{
		{KPIParticipants, float64(current.Participants), float64(previous.Participants)},
		{KPIActivities, float64(current.Activities), float64(previous.Activities)},
		{KPICompletedActivities, float64(current.CompletedActivities), float64(previous.CompletedActivities)},
		{KPIOrganizations, float64(current.Organizations), float64(previous.Organizations)},
		{KPIVSLAs, float64(current.VSLAs), float64(previous.VSLAs)},
		{KPIVSLAMembers, float64(current.VSLAMembers), float64(previous.VSLAMembers)},
		{KPITotalSavings, current.TotalSavings, previous.TotalSavings},
		{KPITotalLoans, current.TotalLoans, previous.TotalLoans},
	}

	metrics := make([]entities.KPIMetric, 0, len(pairs))
	for _, p := range pairs {
		metrics = append(metrics, entities.KPIMetric{
			Key:      p.key,
			Current:  p.cur,
			Previous: p.prev,
			Growth:   Growth(p.cur, p.prev),
		})
	}
	return entities.KPIOverview{Metrics: metrics}
}

// MonthWindows returns the calendar month containing now and the month before it.
func MonthWindows(now time.Time) (current, previous entities.Window) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	current = entities.Window{From: start, To: start.AddDate(0, 1, 0)}
	previous = entities.Window{From: start.AddDate(0, -1, 0), To: start}
	return current, previous
}

// TrailingMonths returns the window covering the last n calendar months up to
// and including the month containing now.
func TrailingMonths(now time.Time, n int) entities.Window {
	if n < 1 {
		n = 1
	}
	cur, _ := MonthWindows(now)
	return entities.Window{From: cur.From.AddDate(0, -(n - 1), 0), To: cur.To}
}

// DemographicsFromCounts turns group-by rows into chart series, each bucket
// as a share of total.
func DemographicsFromCounts(rows entities.DemographicRows, total int64) entities.Demographics {
	return entities.Demographics{
		Total:        total,
		ByGender:     fromRows(rows.Gender, total, genderOrder),
		ByAgeBand:    fromRows(rows.AgeBand, total, ageBandOrder),
		BySetting:    fromRows(rows.Setting, total, settingOrder),
		ByDisability: fromRows(rows.Disability, total, disabilityOrder),
		ByEmployment: fromRows(rows.Employment, total, employmentOrder),
		ByDistrict:   fromRows(rows.District, total, nil),
	}
}

// StatusBreakdown shapes activity status counts, listing every status.
func StatusBreakdown(rows []entities.CountRow) []entities.Breakdown {
	var total int64
	for _, r := range rows {
		total += r.Count
	}
	order := []string{
		string(entities.ActivityPlanned), string(entities.ActivityOngoing), string(entities.ActivityCompleted),
		string(entities.ActivityCancelled), string(entities.ActivityPostponed),
	}
	return fromRows(rows, total, order)
}

func fromRows(rows []entities.CountRow, total int64, order []string) []entities.Breakdown {
	t := newTally(order)
	for _, r := range rows {
		t.add(r.Key, int(r.Count))
	}
	return t.breakdown(int(total))
}
