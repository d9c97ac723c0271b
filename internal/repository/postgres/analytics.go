package postgres

import (
	"context"
	"fmt"
	"strings"

	"impacttrack/internal/entities"
)

const (
	kpiCountsQuery = `
SELECT
  (SELECT COUNT(*) FROM participants WHERE created_at >= $1 AND created_at < $2),
  (SELECT COUNT(*) FROM activities WHERE start_date >= $1 AND start_date < $2),
  (SELECT COUNT(*) FROM activities WHERE status = 'completed' AND start_date >= $1 AND start_date < $2),
  (SELECT COUNT(*) FROM organizations WHERE created_at >= $1 AND created_at < $2),
  (SELECT COUNT(*) FROM vslas WHERE created_at >= $1 AND created_at < $2),
  (SELECT COALESCE(SUM(total_members),0) FROM vslas WHERE created_at >= $1 AND created_at < $2),
  (SELECT COALESCE(SUM(total_savings),0)::float8 FROM vslas WHERE created_at >= $1 AND created_at < $2),
  (SELECT COALESCE(SUM(total_loans),0)::float8 FROM vslas WHERE created_at >= $1 AND created_at < $2)`

	// Must stay in step with analytics.AgeBand.
	ageBandExpr = `CASE
  WHEN age <= 0 THEN 'unknown'
  WHEN age < 15 THEN 'under 15'
  WHEN age <= 24 THEN '15-24'
  WHEN age <= 35 THEN '25-35'
  WHEN age <= 59 THEN '36-59'
  ELSE '60+' END`
	disabilityExpr = `CASE WHEN is_pwd THEN 'pwd' ELSE 'non_pwd' END`

	trendQuery = `
WITH months AS (
  SELECT generate_series(date_trunc('month', $1::timestamptz), date_trunc('month', $2::timestamptz - interval '1 microsecond'), interval '1 month') AS month
)
SELECT m.month,
  (SELECT COUNT(*) FROM activities a WHERE a.start_date >= m.month AND a.start_date < m.month + interval '1 month' %s),
  (SELECT COUNT(*) FROM participants p WHERE p.created_at >= m.month AND p.created_at < m.month + interval '1 month' %s)
FROM months m
ORDER BY m.month`
)

// dashboardWhere builds the scope conditions; seed pre-populates arguments
// already bound by the surrounding query.
func dashboardWhere(filter entities.DashboardFilter, alias string, seed ...any) *where {
	w := &where{args: seed}
	w.addIf(filter.OrganizationID != "", alias+"organization_id = ?", filter.OrganizationID)
	w.addIf(filter.ProjectID != "", alias+"project_id = ?", filter.ProjectID)
	w.addIf(filter.ClusterID != "", alias+"cluster_id = ?", filter.ClusterID)
	return w
}

// KPICounts returns the headline aggregates for records created or started inside the window.
func (p *Postgres) KPICounts(ctx context.Context, window entities.Window) (entities.KPICounts, error) {
	var k entities.KPICounts
	err := p.db.QueryRow(ctx, kpiCountsQuery, window.From, window.To).Scan(
		&k.Participants, &k.Activities, &k.CompletedActivities, &k.Organizations,
		&k.VSLAs, &k.VSLAMembers, &k.TotalSavings, &k.TotalLoans)
	if err != nil {
		return entities.KPICounts{}, fmt.Errorf("kpi counts: %w", err)
	}
	return k, nil
}

// ParticipantDemographics groups the filtered participants by each demographic dimension.
func (p *Postgres) ParticipantDemographics(ctx context.Context, filter entities.DashboardFilter) (entities.DemographicRows, int64, error) {
	w := dashboardWhere(filter, "")

	var total int64
	if err := p.db.QueryRow(ctx, "SELECT COUNT(*) FROM participants"+w.String(), w.args...).Scan(&total); err != nil {
		return entities.DemographicRows{}, 0, fmt.Errorf("count participants: %w", err)
	}

	var (
		res entities.DemographicRows
		err error
	)
	dims := []struct {
		expr string
		dst  *[]entities.CountRow
	}{
		{"gender", &res.Gender},
		{ageBandExpr, &res.AgeBand},
		{"setting", &res.Setting},
		{disabilityExpr, &res.Disability},
		{"employment_status", &res.Employment},
		{"district", &res.District},
	}
	for _, d := range dims {
		if *d.dst, err = p.groupCount(ctx, "participants", d.expr, w); err != nil {
			return entities.DemographicRows{}, 0, err
		}
	}
	return res, total, nil
}

// ActivityStatusCounts groups the filtered activities by status.
func (p *Postgres) ActivityStatusCounts(ctx context.Context, filter entities.DashboardFilter) ([]entities.CountRow, error) {
	return p.groupCount(ctx, "activities", "status", dashboardWhere(filter, ""))
}

// MonthlyTrend returns one point per calendar month overlapping the window,
// including months with no records.
func (p *Postgres) MonthlyTrend(ctx context.Context, filter entities.DashboardFilter, since entities.Window) ([]entities.TrendPoint, error) {
	aw := dashboardWhere(filter, "a.", since.From, since.To)
	pw := dashboardWhere(filter, "p.", append([]any{}, aw.args...)...)

	rows, err := p.db.Query(ctx, fmt.Sprintf(trendQuery, andConds(aw.conds), andConds(pw.conds)), pw.args...)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	defer rows.Close()

	res := make([]entities.TrendPoint, 0)
	for rows.Next() {
		var t entities.TrendPoint
		if err := rows.Scan(&t.Month, &t.Activities, &t.Participants); err != nil {
			return nil, fmt.Errorf("scan trend: %w", err)
		}
		t.Month = t.Month.UTC()
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trend: %w", err)
	}
	return res, nil
}

func (p *Postgres) groupCount(ctx context.Context, table, expr string, w *where) ([]entities.CountRow, error) {
	query := "SELECT COALESCE(NULLIF(" + expr + ", ''), 'unknown') AS k, COUNT(*) FROM " + table + w.String() + " GROUP BY k ORDER BY COUNT(*) DESC, k"
	rows, err := p.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("group %s by %s: %w", table, expr, err)
	}
	defer rows.Close()

	res := make([]entities.CountRow, 0)
	for rows.Next() {
		var r entities.CountRow
		if err := rows.Scan(&r.Key, &r.Count); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

func andConds(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " AND " + strings.Join(conds, " AND ")
}
