package types

// InsightKind identifies one of the fixed dashboard insights
type InsightKind string

const (
	InsightNoData            InsightKind = "no_data"
	InsightTopCategoryVolume InsightKind = "top_category_volume"
	InsightSlowestSubsystem  InsightKind = "slowest_subsystem"
	InsightBreachRootCause   InsightKind = "breach_root_cause"
	InsightTopCategoryImpact InsightKind = "top_category_impact"
)

// String returns the string representation of the insight kind
func (k InsightKind) String() string {
	return string(k)
}
