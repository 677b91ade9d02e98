package model

import (
	"math"
	"time"

	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

// KPIs are the scalar summaries of a filtered incident set. Rates are percentages.
type KPIs struct {
	TotalIncidents       int     `json:"total_incidents"`
	SLABreachRate        float64 `json:"sla_breach_rate"`
	AvgResolutionHours   float64 `json:"avg_resolution_hours"`
	TotalFinancialImpact float64 `json:"total_financial_impact"`
	RepeatRate           float64 `json:"repeat_rate"`
}

// Rounded returns a copy with every float rounded to two decimals
func (k KPIs) Rounded() KPIs {
	return KPIs{
		TotalIncidents:       k.TotalIncidents,
		SLABreachRate:        RoundTo2(k.SLABreachRate),
		AvgResolutionHours:   RoundTo2(k.AvgResolutionHours),
		TotalFinancialImpact: RoundTo2(k.TotalFinancialImpact),
		RepeatRate:           RoundTo2(k.RepeatRate),
	}
}

// RoundTo2 rounds to 2 decimal places
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GroupRow is one line of a group-by summary
type GroupRow struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// Breakdowns are the group-by summaries backing the dashboard charts
type Breakdowns struct {
	ByCategory            []GroupRow `json:"by_category"`
	BySeverity            []GroupRow `json:"by_severity"`
	BySubsystem           []GroupRow `json:"by_subsystem"`
	ByRegion              []GroupRow `json:"by_region"`
	ByChannel             []GroupRow `json:"by_channel"`
	ByRootCause           []GroupRow `json:"by_root_cause"`
	ResolutionBySubsystem []GroupRow `json:"resolution_by_subsystem"`
	ImpactByCategory      []GroupRow `json:"impact_by_category"`
	ImpactBySubsystem     []GroupRow `json:"impact_by_subsystem"`
	SLABreachByRootCause  []GroupRow `json:"sla_breach_by_root_cause"`
	Timeline              []GroupRow `json:"timeline"`
}

// Insight is one templated observation about the filtered set
type Insight struct {
	Kind    types.InsightKind `json:"kind"`
	Subject string            `json:"subject,omitempty"`
	Value   float64           `json:"value,omitempty"`
	Text    string            `json:"text"`
}

// Dashboard is the render-ready result for one filter
type Dashboard struct {
	Filter       Filter        `json:"filter"`
	KPIs         KPIs          `json:"kpis"`
	Breakdowns   Breakdowns    `json:"breakdowns"`
	Charts       []ChartConfig `json:"charts,omitempty"`
	Insights     []Insight     `json:"insights"`
	TopIncidents []*Incident   `json:"top_incidents,omitempty"`
	Empty        bool          `json:"empty"`
	Message      string        `json:"message,omitempty"`
	SnapshotID   string        `json:"snapshot_id"`
	GeneratedAt  time.Time     `json:"generated_at"`
}
