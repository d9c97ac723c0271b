package domain

import (
	"context"
	"time"

	"impacttrack/internal/analytics"
	"impacttrack/internal/entities"

	"golang.org/x/sync/errgroup"
)

// KPIOverview compares the calendar month containing now with the month before.
func (u *Usecase) KPIOverview(ctx context.Context, now time.Time) (entities.KPIOverview, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	current, previous := analytics.MonthWindows(now)

	var cur, prev entities.KPICounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = u.repo.KPICounts(gctx, current)
		return err
	})
	g.Go(func() error {
		var err error
		prev, err = u.repo.KPICounts(gctx, previous)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Errorw("kpi overview failed", "error", err)
		return entities.KPIOverview{}, err
	}

	res := analytics.BuildKPIOverview(cur, prev)
	res.Current, res.Previous = current, previous
	return res, nil
}

// Dashboard gathers the chart series for the overview page concurrently.
func (u *Usecase) Dashboard(ctx context.Context, filter entities.DashboardFilter, now time.Time) (entities.Dashboard, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	err := firstErr(
		checkOptionalID("organization_id", &filter.OrganizationID),
		checkOptionalID("project_id", &filter.ProjectID),
		checkOptionalID("cluster_id", &filter.ClusterID),
	)
	if err != nil {
		return entities.Dashboard{}, err
	}

	var (
		res      entities.Dashboard
		demoRows entities.DemographicRows
		total    int64
		statuses []entities.CountRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		demoRows, total, err = u.repo.ParticipantDemographics(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = u.repo.ActivityStatusCounts(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		res.MonthlyTrend, err = u.repo.MonthlyTrend(gctx, filter, analytics.TrailingMonths(now, trendMonths))
		return err
	})
	g.Go(func() error {
		var err error
		res.VSLA, err = u.repo.VSLATotals(gctx, entities.VSLAFilter{
			OrganizationID: filter.OrganizationID,
			ProjectID:      filter.ProjectID,
			ClusterID:      filter.ClusterID,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Errorw("dashboard failed", "error", err)
		return entities.Dashboard{}, err
	}

	res.Demographics = analytics.DemographicsFromCounts(demoRows, total)
	res.ActivityStatus = analytics.StatusBreakdown(statuses)
	if res.MonthlyTrend == nil {
		res.MonthlyTrend = make([]entities.TrendPoint, 0)
	}
	return res, nil
}
