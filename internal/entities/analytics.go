package entities

import "time"

// KPICounts are the raw aggregates for one reporting window.
type KPICounts struct {
	Participants        int64   `json:"participants"`
	Activities          int64   `json:"activities"`
	CompletedActivities int64   `json:"completed_activities"`
	Organizations       int64   `json:"organizations"`
	VSLAs               int64   `json:"vslas"`
	VSLAMembers         int64   `json:"vsla_members"`
	TotalSavings        float64 `json:"total_savings"`
	TotalLoans          float64 `json:"total_loans"`
}

// KPIMetric is one headline number with month-over-month growth.
type KPIMetric struct {
	Key      string  `json:"key"`
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Growth   float64 `json:"growth"`
}

// KPIOverview is the dashboard header comparing this month with last month.
type KPIOverview struct {
	Current  Window      `json:"current"`
	Previous Window      `json:"previous"`
	Metrics  []KPIMetric `json:"metrics"`
}

// CountRow is a single group-by result.
type CountRow struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// DashboardFilter scopes dashboard aggregates.
type DashboardFilter struct {
	OrganizationID string
	ProjectID      string
	ClusterID      string
}

// Demographics is the participant profile split by dimension.
type Demographics struct {
	Total        int64       `json:"total"`
	ByGender     []Breakdown `json:"by_gender"`
	ByAgeBand    []Breakdown `json:"by_age_band"`
	BySetting    []Breakdown `json:"by_setting"`
	ByDisability []Breakdown `json:"by_disability"`
	ByEmployment []Breakdown `json:"by_employment"`
	ByDistrict   []Breakdown `json:"by_district"`
}

// DemographicRows are the raw group-by results behind Demographics.
type DemographicRows struct {
	Gender     []CountRow
	AgeBand    []CountRow
	Setting    []CountRow
	Disability []CountRow
	Employment []CountRow
	District   []CountRow
}

// TrendPoint is one month of activity and registration counts.
type TrendPoint struct {
	Month        time.Time `json:"month"`
	Activities   int64     `json:"activities"`
	Participants int64     `json:"participants"`
}

// Dashboard bundles the chart-ready series for the overview page.
type Dashboard struct {
	Demographics   Demographics `json:"demographics"`
	ActivityStatus []Breakdown  `json:"activity_status"`
	MonthlyTrend   []TrendPoint `json:"monthly_trend"`
	VSLA           VSLATotals   `json:"vsla"`
}
