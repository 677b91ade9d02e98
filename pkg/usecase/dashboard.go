package usecase

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/analytics"
	"github.com/secmon-lab/opsboard/pkg/domain/interfaces"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
)

// EmptyDashboardMessage replaces charts when no incident matches the filter
const EmptyDashboardMessage = "No data available for the selected filters."

// MaxTopIncidents bounds the number of incidents returned by TopIncidents
const MaxTopIncidents = 100

// DashboardUseCase computes dashboards from the stored incident snapshot
type DashboardUseCase struct {
	repo     interfaces.Repository
	settings Settings

	records    *ttlcache.Cache[string, []*model.Incident]
	dashboards *ttlcache.Cache[string, *model.Dashboard]
}

func NewDashboardUseCase(repo interfaces.Repository, settings Settings) *DashboardUseCase {
	settings = settings.withDefaults()
	return &DashboardUseCase{
		repo:     repo,
		settings: settings,
		records: ttlcache.New(
			ttlcache.WithTTL[string, []*model.Incident](settings.CacheTTL),
			ttlcache.WithCapacity[string, []*model.Incident](4),
		),
		dashboards: ttlcache.New(
			ttlcache.WithTTL[string, *model.Dashboard](settings.CacheTTL),
			ttlcache.WithCapacity[string, *model.Dashboard](DefaultCacheCapacity),
		),
	}
}

// Invalidate drops every cached record set and dashboard
func (uc *DashboardUseCase) Invalidate() {
	uc.records.DeleteAll()
	uc.dashboards.DeleteAll()
}

// snapshot returns the current snapshot ID and its records, reading the repository once per snapshot
func (uc *DashboardUseCase) snapshot(ctx context.Context) (string, []*model.Incident, error) {
	meta, err := uc.repo.Incident().GetMetadata(ctx)
	if err != nil {
		return "", nil, goerr.Wrap(err, "failed to get dataset metadata")
	}

	if item := uc.records.Get(meta.SnapshotID); item != nil {
		return meta.SnapshotID, item.Value(), nil
	}

	records, err := uc.repo.Incident().List(ctx)
	if err != nil {
		return "", nil, goerr.Wrap(err, "failed to list incidents", goerr.V(SnapshotIDKey, meta.SnapshotID))
	}
	uc.records.Set(meta.SnapshotID, records, ttlcache.DefaultTTL)

	logging.From(ctx).Debug("Incident snapshot cached",
		"snapshot_id", meta.SnapshotID,
		"count", len(records))

	return meta.SnapshotID, records, nil
}

// Options returns the selectable filter values of the current snapshot
func (uc *DashboardUseCase) Options(ctx context.Context) (*model.DatasetOptions, error) {
	_, records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	opts := analytics.Options(records)
	return &opts, nil
}

// DefaultFilter selects the whole date range and every value
func (uc *DashboardUseCase) DefaultFilter(ctx context.Context) (*model.Filter, error) {
	opts, err := uc.Options(ctx)
	if err != nil {
		return nil, err
	}
	f := analytics.FullFilter(*opts)
	return &f, nil
}

// Complete fills dates and selections left unset in partial from the dataset options.
// A nil selection is unset; a non-nil empty selection stays empty and matches nothing.
func (uc *DashboardUseCase) Complete(ctx context.Context, partial model.Filter) (*model.Filter, error) {
	full, err := uc.DefaultFilter(ctx)
	if err != nil {
		return nil, err
	}

	f := partial
	if f.Start.IsZero() {
		f.Start = full.Start
	}
	if f.End.IsZero() {
		f.End = full.End
	}
	for _, d := range types.FilterDimensions() {
		if f.Selection(d) == nil {
			f.SetSelection(d, full.Selection(d))
		}
	}
	f.SLA = f.SLA.Normalize()

	return &f, nil
}

// Build computes the dashboard for filter. Results are cached per snapshot and filter.
func (uc *DashboardUseCase) Build(ctx context.Context, filter model.Filter) (*model.Dashboard, error) {
	if err := filter.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidFilter, err.Error(), goerr.V(FilterKey, filter.Key()))
	}

	snapshotID, records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := snapshotID + "#" + filter.Key()
	if item := uc.dashboards.Get(cacheKey); item != nil {
		return item.Value(), nil
	}

	filtered := analytics.Filter(records, filter)
	dashboard := &model.Dashboard{
		Filter:      filter,
		SnapshotID:  snapshotID,
		GeneratedAt: time.Now().UTC(),
	}

	if len(filtered) == 0 {
		dashboard.Empty = true
		dashboard.Message = EmptyDashboardMessage
		dashboard.Insights = analytics.GenerateInsights(filtered)
	} else {
		dashboard.KPIs = analytics.ComputeKPIs(filtered).Rounded()
		dashboard.Breakdowns = analytics.ComputeBreakdowns(filtered)
		dashboard.Charts = analytics.BuildCharts(dashboard.Breakdowns)
		dashboard.Insights = analytics.GenerateInsights(filtered)
		dashboard.TopIncidents = analytics.TopByImpact(filtered, uc.settings.TopIncidents)
	}

	uc.dashboards.Set(cacheKey, dashboard, ttlcache.DefaultTTL)
	return dashboard, nil
}

// TopIncidents returns the n filtered incidents with the highest financial impact
func (uc *DashboardUseCase) TopIncidents(ctx context.Context, filter model.Filter, n int) ([]*model.Incident, error) {
	if n <= 0 || n > MaxTopIncidents {
		return nil, goerr.Wrap(ErrInvalidLimit, "limit out of range", goerr.V("limit", n), goerr.V("max", MaxTopIncidents))
	}
	if err := filter.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidFilter, err.Error(), goerr.V(FilterKey, filter.Key()))
	}

	_, records, err := uc.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.TopByImpact(analytics.Filter(records, filter), n), nil
}
