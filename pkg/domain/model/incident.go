package model

import (
	"time"

	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

// IncidentID represents the identifier of an operational incident
type IncidentID string

// Incident is one row of the incident dataset. Records are loaded once and never mutated.
type Incident struct {
	ID              IncidentID `json:"incident_id"`
	Date            time.Time  `json:"date"`
	Region          string     `json:"region"`
	Channel         string     `json:"channel"`
	Severity        string     `json:"severity_level"`
	Category        string     `json:"category"`
	Subsystem       string     `json:"subsystem"`
	RootCause       string     `json:"root_cause"`
	SLABreached     bool       `json:"sla_breached"`
	ResolutionHours float64    `json:"time_to_resolve_hours"`
	FinancialImpact float64    `json:"financial_impact_usd"`
	Repeated        bool       `json:"is_repeated_incident"`
}

// Dimension returns the categorical value of the incident for d
func (x *Incident) Dimension(d types.Dimension) string {
	switch d {
	case types.DimensionRegion:
		return x.Region
	case types.DimensionChannel:
		return x.Channel
	case types.DimensionSeverity:
		return x.Severity
	case types.DimensionCategory:
		return x.Category
	case types.DimensionSubsystem:
		return x.Subsystem
	case types.DimensionRootCause:
		return x.RootCause
	default:
		return ""
	}
}

// Day returns the calendar day of the incident in UTC
func (x *Incident) Day() time.Time {
	return TruncateDay(x.Date)
}

// TruncateDay drops the time-of-day part of t in UTC
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Measure selects a numeric column of an incident
type Measure func(*Incident) float64

// Numeric columns used by group-by summaries
var (
	MeasureResolutionHours Measure = func(x *Incident) float64 { return x.ResolutionHours }
	MeasureFinancialImpact Measure = func(x *Incident) float64 { return x.FinancialImpact }
)
