package analytics

import (
	"sort"

	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

// ComputeKPIs returns the scalar summaries of records. An empty set yields zero KPIs.
func ComputeKPIs(records []*model.Incident) model.KPIs {
	if len(records) == 0 {
		return model.KPIs{}
	}

	var breached, repeated int
	var hours, impact float64
	for _, rec := range records {
		if rec.SLABreached {
			breached++
		}
		if rec.Repeated {
			repeated++
		}
		hours += rec.ResolutionHours
		impact += rec.FinancialImpact
	}

	n := float64(len(records))
	return model.KPIs{
		TotalIncidents:       len(records),
		SLABreachRate:        float64(breached) / n * 100,
		AvgResolutionHours:   hours / n,
		TotalFinancialImpact: impact,
		RepeatRate:           float64(repeated) / n * 100,
	}
}

type group struct {
	key   string
	count int
	sum   float64
}

// groupBy does one pass over records, keeping groups in first-appearance order
func groupBy(records []*model.Incident, keyOf func(*model.Incident) string, measure model.Measure) []*group {
	index := make(map[string]*group)
	var order []*group

	for _, rec := range records {
		key := keyOf(rec)
		g, ok := index[key]
		if !ok {
			g = &group{key: key}
			index[key] = g
			order = append(order, g)
		}
		g.count++
		if measure != nil {
			g.sum += measure(rec)
		}
	}

	return order
}

func dimensionKey(dim types.Dimension) func(*model.Incident) string {
	return func(x *model.Incident) string { return x.Dimension(dim) }
}

func sortByValueDesc(rows []model.GroupRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})
}

// CountBy counts incidents per value of dim, largest first
func CountBy(records []*model.Incident, dim types.Dimension) []model.GroupRow {
	groups := groupBy(records, dimensionKey(dim), nil)
	rows := make([]model.GroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.GroupRow{Key: g.key, Count: g.count, Value: float64(g.count)})
	}
	sortByValueDesc(rows)
	return rows
}

// SumBy totals measure per value of dim, largest first
func SumBy(records []*model.Incident, dim types.Dimension, measure model.Measure) []model.GroupRow {
	groups := groupBy(records, dimensionKey(dim), measure)
	rows := make([]model.GroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.GroupRow{Key: g.key, Count: g.count, Value: g.sum})
	}
	sortByValueDesc(rows)
	return rows
}

// MeanBy averages measure per value of dim, largest first
func MeanBy(records []*model.Incident, dim types.Dimension, measure model.Measure) []model.GroupRow {
	groups := groupBy(records, dimensionKey(dim), measure)
	rows := make([]model.GroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.GroupRow{Key: g.key, Count: g.count, Value: g.sum / float64(g.count)})
	}
	sortByValueDesc(rows)
	return rows
}

// BreachRateBy returns the SLA breach rate (0-1) within each value of dim.
// Values without any breached incident are omitted. Rows are sorted by key.
func BreachRateBy(records []*model.Incident, dim types.Dimension) []model.GroupRow {
	groups := groupBy(records, dimensionKey(dim), func(x *model.Incident) float64 {
		if x.SLABreached {
			return 1
		}
		return 0
	})

	rows := make([]model.GroupRow, 0, len(groups))
	for _, g := range groups {
		if g.sum == 0 {
			continue
		}
		rows = append(rows, model.GroupRow{
			Key:   g.key,
			Count: int(g.sum),
			Value: g.sum / float64(g.count),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// Timeline counts incidents per calendar day in ascending date order
func Timeline(records []*model.Incident) []model.GroupRow {
	groups := groupBy(records, func(x *model.Incident) string {
		return x.Day().Format(model.DateLayout)
	}, nil)

	rows := make([]model.GroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, model.GroupRow{Key: g.key, Count: g.count, Value: float64(g.count)})
	}
	// DateLayout sorts lexically in date order
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// TopByImpact returns up to n incidents with the highest financial impact
func TopByImpact(records []*model.Incident, n int) []*model.Incident {
	if n <= 0 || len(records) == 0 {
		return []*model.Incident{}
	}

	sorted := make([]*model.Incident, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FinancialImpact > sorted[j].FinancialImpact
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// ComputeBreakdowns builds every group-by summary shown on the dashboard
func ComputeBreakdowns(records []*model.Incident) model.Breakdowns {
	return model.Breakdowns{
		ByCategory:            CountBy(records, types.DimensionCategory),
		BySeverity:            CountBy(records, types.DimensionSeverity),
		BySubsystem:           CountBy(records, types.DimensionSubsystem),
		ByRegion:              CountBy(records, types.DimensionRegion),
		ByChannel:             CountBy(records, types.DimensionChannel),
		ByRootCause:           CountBy(records, types.DimensionRootCause),
		ResolutionBySubsystem: MeanBy(records, types.DimensionSubsystem, model.MeasureResolutionHours),
		ImpactByCategory:      SumBy(records, types.DimensionCategory, model.MeasureFinancialImpact),
		ImpactBySubsystem:     SumBy(records, types.DimensionSubsystem, model.MeasureFinancialImpact),
		SLABreachByRootCause:  BreachRateBy(records, types.DimensionRootCause),
		Timeline:              Timeline(records),
	}
}

// Options collects the distinct values of every dimension and the date bounds of records
func Options(records []*model.Incident) model.DatasetOptions {
	var opts model.DatasetOptions
	distinct := make(map[types.Dimension]stringSet)
	for _, d := range types.AllDimensions() {
		distinct[d] = make(stringSet)
	}

	for i, rec := range records {
		day := rec.Day()
		if i == 0 || day.Before(opts.MinDate) {
			opts.MinDate = day
		}
		if i == 0 || day.After(opts.MaxDate) {
			opts.MaxDate = day
		}
		for d, set := range distinct {
			set[rec.Dimension(d)] = struct{}{}
		}
	}

	opts.Regions = distinct[types.DimensionRegion].sorted()
	opts.Channels = distinct[types.DimensionChannel].sorted()
	opts.Severities = distinct[types.DimensionSeverity].sorted()
	opts.Categories = distinct[types.DimensionCategory].sorted()
	opts.Subsystems = distinct[types.DimensionSubsystem].sorted()
	opts.RootCauses = distinct[types.DimensionRootCause].sorted()
	return opts
}

func (s stringSet) sorted() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// FullFilter returns a filter selecting every option over the whole date range
func FullFilter(opts model.DatasetOptions) model.Filter {
	return model.Filter{
		Start:      opts.MinDate,
		End:        opts.MaxDate,
		Regions:    opts.Regions,
		Channels:   opts.Channels,
		Severities: opts.Severities,
		Categories: opts.Categories,
		Subsystems: opts.Subsystems,
		SLA:        types.SLAAll,
	}
}

