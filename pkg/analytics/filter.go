// Package analytics holds the pure filter and aggregation stages of the incident dashboard.
// Nothing in this package performs I/O or keeps state between calls.
package analytics

import (
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

type stringSet map[string]struct{}

func newStringSet(values []string) stringSet {
	s := make(stringSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s stringSet) has(v string) bool {
	_, ok := s[v]
	return ok
}

// Filter returns the records matching every predicate of f, in input order.
// The date range is inclusive on both ends and compared by calendar day. An empty
// selection for a dimension matches no record.
func Filter(records []*model.Incident, f model.Filter) []*model.Incident {
	start := model.TruncateDay(f.Start)
	end := model.TruncateDay(f.End)
	if len(records) == 0 || start.After(end) {
		return []*model.Incident{}
	}

	dims := types.FilterDimensions()
	sets := make([]stringSet, len(dims))
	for i, d := range dims {
		sets[i] = newStringSet(f.Selection(d))
	}
	sla := f.SLA.Normalize()

	result := make([]*model.Incident, 0, len(records))
	for _, rec := range records {
		day := rec.Day()
		if day.Before(start) || day.After(end) {
			continue
		}
		if !sla.Matches(rec.SLABreached) {
			continue
		}

		matched := true
		for i, d := range dims {
			if !sets[i].has(rec.Dimension(d)) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, rec)
		}
	}

	return result
}
