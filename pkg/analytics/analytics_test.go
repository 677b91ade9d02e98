package analytics_test

import (
	"time"

	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

func day(s string) time.Time {
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

type incidentOpt func(*model.Incident)

func withCategory(v string) incidentOpt { return func(x *model.Incident) { x.Category = v } }
func withSubsystem(v string) incidentOpt { return func(x *model.Incident) { x.Subsystem = v } }
func withRegion(v string) incidentOpt { return func(x *model.Incident) { x.Region = v } }
func withRootCause(v string) incidentOpt { return func(x *model.Incident) { x.RootCause = v } }
func withDate(v string) incidentOpt { return func(x *model.Incident) { x.Date = day(v) } }
func withImpact(v float64) incidentOpt { return func(x *model.Incident) { x.FinancialImpact = v } }
func withHours(v float64) incidentOpt { return func(x *model.Incident) { x.ResolutionHours = v } }
func withBreached(v bool) incidentOpt { return func(x *model.Incident) { x.SLABreached = v } }
func withRepeated(v bool) incidentOpt { return func(x *model.Incident) { x.Repeated = v } }
func withID(v string) incidentOpt { return func(x *model.Incident) { x.ID = model.IncidentID(v) } }

func newIncident(opts ...incidentOpt) *model.Incident {
	x := &model.Incident{
		ID:              "INC-0",
		Date:            day("2024-01-15"),
		Region:          "EMEA",
		Channel:         "Online",
		Severity:        "High",
		Category:        "Payments",
		Subsystem:       "Core Banking",
		RootCause:       "Software Bug",
		ResolutionHours: 4,
		FinancialImpact: 1000,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

func selectionOf(records []*model.Incident, d types.Dimension) []string {
	seen := map[string]bool{}
	var values []string
	for _, r := range records {
		v := r.Dimension(d)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	return values
}

func fullFilter(records []*model.Incident) model.Filter {
	f := model.Filter{
		Start: day("2000-01-01"),
		End:   day("2100-01-01"),
		SLA:   types.SLAAll,
	}
	for _, d := range types.FilterDimensions() {
		f.SetSelection(d, selectionOf(records, d))
	}
	return f
}
