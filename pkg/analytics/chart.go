package analytics

import "github.com/secmon-lab/opsboard/pkg/domain/model"

// Chart identifiers
const (
	ChartIncidentsOverTime     = "incidents_over_time"
	ChartByCategory            = "by_category"
	ChartBySeverity            = "by_severity"
	ChartByRootCause           = "by_root_cause"
	ChartSLABreachByRootCause  = "sla_breach_by_root_cause"
	ChartBySubsystem           = "by_subsystem"
	ChartResolutionBySubsystem = "resolution_by_subsystem"
	ChartByRegion              = "by_region"
	ChartByChannel             = "by_channel"
	ChartImpactByCategory      = "impact_by_category"
	ChartImpactBySubsystem     = "impact_by_subsystem"
)

type chartSpec struct {
	id        string
	chartType string
	title     string
	xAxis     string
	yAxis     string
	format    string
	rows      []model.GroupRow
	scale     float64
}

// BuildCharts lays out the dashboard charts from precomputed breakdowns
func BuildCharts(b model.Breakdowns) []model.ChartConfig {
	specs := []chartSpec{
		{ChartIncidentsOverTime, model.ChartTypeLine, "Incidents Over Time", "Date", "Incidents", model.ValueFormatCount, b.Timeline, 1},
		{ChartByCategory, model.ChartTypeBar, "Incidents by Category", "Category", "Incidents", model.ValueFormatCount, b.ByCategory, 1},
		{ChartBySeverity, model.ChartTypeBar, "Incidents by Severity", "Severity Level", "Incidents", model.ValueFormatCount, b.BySeverity, 1},
		{ChartByRootCause, model.ChartTypeBar, "Incidents by Root Cause", "Root Cause", "Incidents", model.ValueFormatCount, b.ByRootCause, 1},
		{ChartSLABreachByRootCause, model.ChartTypeBar, "SLA Breach Rate by Root Cause", "Root Cause", "Breach Rate (%)", model.ValueFormatPercent, b.SLABreachByRootCause, 100},
		{ChartBySubsystem, model.ChartTypeBar, "Incidents by Subsystem", "Subsystem", "Incidents", model.ValueFormatCount, b.BySubsystem, 1},
		{ChartResolutionBySubsystem, model.ChartTypeBar, "Avg Resolution Time by Subsystem", "Subsystem", "Hours", model.ValueFormatHours, b.ResolutionBySubsystem, 1},
		{ChartByRegion, model.ChartTypeBar, "Incidents by Region", "Region", "Incidents", model.ValueFormatCount, b.ByRegion, 1},
		{ChartByChannel, model.ChartTypeBar, "Incidents by Channel", "Channel", "Incidents", model.ValueFormatCount, b.ByChannel, 1},
		{ChartImpactByCategory, model.ChartTypeBar, "Financial Impact by Category", "Category", "Impact (USD)", model.ValueFormatUSD, b.ImpactByCategory, 1},
		{ChartImpactBySubsystem, model.ChartTypeBar, "Financial Impact by Subsystem", "Subsystem", "Impact (USD)", model.ValueFormatUSD, b.ImpactBySubsystem, 1},
	}

	charts := make([]model.ChartConfig, 0, len(specs))
	for _, s := range specs {
		points := make([]model.ChartPoint, 0, len(s.rows))
		for _, row := range s.rows {
			points = append(points, model.ChartPoint{
				Label: row.Key,
				Value: model.RoundTo2(row.Value * s.scale),
			})
		}

		charts = append(charts, model.ChartConfig{
			ID:          s.id,
			ChartType:   s.chartType,
			Title:       s.title,
			XAxis:       s.xAxis,
			YAxis:       s.yAxis,
			Series:      []model.ChartSeries{{Name: s.yAxis, Data: points}},
			ValueFormat: s.format,
		})
	}

	return charts
}
