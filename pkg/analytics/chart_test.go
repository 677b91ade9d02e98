package analytics_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/analytics"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
)

func TestBuildCharts(t *testing.T) {
	records := []*model.Incident{
		newIncident(withRootCause("Vendor"), withBreached(true), withDate("2024-01-02")),
		newIncident(withRootCause("Vendor"), withBreached(false), withDate("2024-01-01")),
		newIncident(withRootCause("Capacity"), withBreached(false), withDate("2024-01-02")),
	}

	charts := analytics.BuildCharts(analytics.ComputeBreakdowns(records))
	gt.A(t, charts).Length(11)

	byID := map[string]model.ChartConfig{}
	for _, c := range charts {
		byID[c.ID] = c
	}

	timeline := byID[analytics.ChartIncidentsOverTime]
	gt.V(t, timeline.ChartType).Equal(model.ChartTypeLine)
	gt.V(t, timeline.Series[0].Data).Equal([]model.ChartPoint{
		{Label: "2024-01-01", Value: 1},
		{Label: "2024-01-02", Value: 2},
	})

	breach := byID[analytics.ChartSLABreachByRootCause]
	gt.V(t, breach.ValueFormat).Equal(model.ValueFormatPercent)
	gt.V(t, breach.Series[0].Data).Equal([]model.ChartPoint{{Label: "Vendor", Value: 50}})
}
