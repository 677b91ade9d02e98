package types

import "fmt"

// Dimension is a categorical column of an incident record
type Dimension string

const (
	DimensionRegion    Dimension = "region"
	DimensionChannel   Dimension = "channel"
	DimensionSeverity  Dimension = "severity_level"
	DimensionCategory  Dimension = "category"
	DimensionSubsystem Dimension = "subsystem"
	DimensionRootCause Dimension = "root_cause"
)

// AllDimensions returns every categorical dimension in display order
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionRegion,
		DimensionChannel,
		DimensionSeverity,
		DimensionCategory,
		DimensionSubsystem,
		DimensionRootCause,
	}
}

// FilterDimensions returns the dimensions that can be narrowed by a dashboard filter
func FilterDimensions() []Dimension {
	return []Dimension{
		DimensionRegion,
		DimensionChannel,
		DimensionSeverity,
		DimensionCategory,
		DimensionSubsystem,
	}
}

// IsValid checks if the dimension is known
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionRegion,
		DimensionChannel,
		DimensionSeverity,
		DimensionCategory,
		DimensionSubsystem,
		DimensionRootCause:
		return true
	default:
		return false
	}
}

// Label returns a human readable name
func (d Dimension) Label() string {
	switch d {
	case DimensionRegion:
		return "Region"
	case DimensionChannel:
		return "Channel"
	case DimensionSeverity:
		return "Severity Level"
	case DimensionCategory:
		return "Category"
	case DimensionSubsystem:
		return "Subsystem"
	case DimensionRootCause:
		return "Root Cause"
	default:
		return string(d)
	}
}

// String returns the string representation of the dimension
func (d Dimension) String() string {
	return string(d)
}

// ParseDimension parses a string into a Dimension
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if !d.IsValid() {
		return "", fmt.Errorf("invalid dimension: %s", s)
	}
	return d, nil
}
