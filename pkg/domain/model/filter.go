package model

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

// DateLayout is the calendar-day format used by filters and the dataset
const DateLayout = "2006-01-02"

// Filter is the set of dashboard predicates. A nil or empty selection matches nothing.
type Filter struct {
	Start      time.Time          `json:"start"`
	End        time.Time          `json:"end"`
	Regions    []string           `json:"regions"`
	Channels   []string           `json:"channels"`
	Severities []string           `json:"severities"`
	Categories []string           `json:"categories"`
	Subsystems []string           `json:"subsystems"`
	SLA        types.SLASelection `json:"sla"`
}

// Selection returns the selected values of a filterable dimension
func (f *Filter) Selection(d types.Dimension) []string {
	switch d {
	case types.DimensionRegion:
		return f.Regions
	case types.DimensionChannel:
		return f.Channels
	case types.DimensionSeverity:
		return f.Severities
	case types.DimensionCategory:
		return f.Categories
	case types.DimensionSubsystem:
		return f.Subsystems
	default:
		return nil
	}
}

// SetSelection replaces the selected values of a filterable dimension
func (f *Filter) SetSelection(d types.Dimension, values []string) {
	switch d {
	case types.DimensionRegion:
		f.Regions = values
	case types.DimensionChannel:
		f.Channels = values
	case types.DimensionSeverity:
		f.Severities = values
	case types.DimensionCategory:
		f.Categories = values
	case types.DimensionSubsystem:
		f.Subsystems = values
	}
}

// Validate checks the filter can be applied
func (f *Filter) Validate() error {
	if !f.SLA.Normalize().IsValid() {
		return goerr.New("invalid SLA selection", goerr.V("sla", f.SLA))
	}
	return nil
}

// Key returns a canonical representation of the filter, stable under selection reordering.
// Values are length-prefixed so that separators inside a value cannot make two filters collide.
func (f *Filter) Key() string {
	var b strings.Builder
	b.WriteString(f.Start.UTC().Format(DateLayout))
	b.WriteByte('|')
	b.WriteString(f.End.UTC().Format(DateLayout))
	for _, d := range types.FilterDimensions() {
		values := append([]string(nil), f.Selection(d)...)
		sort.Strings(values)
		b.WriteByte('|')
		b.WriteString(string(d))
		b.WriteByte('#')
		b.WriteString(strconv.Itoa(len(values)))
		for _, v := range values {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(len(v)))
			b.WriteByte(':')
			b.WriteString(v)
		}
	}
	b.WriteString("|sla=")
	b.WriteString(f.SLA.Normalize().String())
	return b.String()
}
