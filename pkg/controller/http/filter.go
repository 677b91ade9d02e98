package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

// Query parameters accepted by every dashboard endpoint
const (
	paramStart     = "start"
	paramEnd       = "end"
	paramRegion    = "region"
	paramChannel   = "channel"
	paramSeverity  = "severity"
	paramCategory  = "category"
	paramSubsystem = "subsystem"
	paramSLA       = "sla"
	paramLimit     = "limit"
)

var selectionParams = map[types.Dimension]string{
	types.DimensionRegion:    paramRegion,
	types.DimensionChannel:   paramChannel,
	types.DimensionSeverity:  paramSeverity,
	types.DimensionCategory:  paramCategory,
	types.DimensionSubsystem: paramSubsystem,
}

// parseFilter reads a partial filter from query parameters.
// An absent parameter leaves the selection unset. A parameter given only as
// an empty value ("region=") selects nothing.
func parseFilter(q url.Values) (model.Filter, error) {
	var f model.Filter

	start, err := parseDateParam(q, paramStart)
	if err != nil {
		return f, err
	}
	end, err := parseDateParam(q, paramEnd)
	if err != nil {
		return f, err
	}
	f.Start, f.End = start, end

	for _, d := range types.FilterDimensions() {
		values, ok := q[selectionParams[d]]
		if !ok {
			continue
		}
		selected := make([]string, 0, len(values))
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				selected = append(selected, v)
			}
		}
		f.SetSelection(d, selected)
	}

	sla, err := types.ParseSLASelection(q.Get(paramSLA))
	if err != nil {
		return f, goerr.Wrap(errBadRequest, err.Error(), goerr.V("param", paramSLA))
	}
	f.SLA = sla

	return f, nil
}

func parseDateParam(q url.Values, name string) (time.Time, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, goerr.Wrap(errBadRequest, "invalid date", goerr.V("param", name), goerr.V("value", raw))
	}
	return t, nil
}

func parseLimit(q url.Values, defaultValue, maxValue int) (int, error) {
	raw := q.Get(paramLimit)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > maxValue {
		return 0, goerr.Wrap(errBadRequest, "limit must be between 1 and "+strconv.Itoa(maxValue), goerr.V("value", raw))
	}
	return n, nil
}

// filterQuery encodes a complete filter back into query parameters for page links
func filterQuery(f model.Filter) url.Values {
	q := url.Values{}
	if !f.Start.IsZero() {
		q.Set(paramStart, f.Start.Format(model.DateLayout))
	}
	if !f.End.IsZero() {
		q.Set(paramEnd, f.End.Format(model.DateLayout))
	}
	for _, d := range types.FilterDimensions() {
		values := f.Selection(d)
		if values == nil {
			continue
		}
		if len(values) == 0 {
			q.Set(selectionParams[d], "")
			continue
		}
		for _, v := range values {
			q.Add(selectionParams[d], v)
		}
	}
	q.Set(paramSLA, f.SLA.Normalize().String())
	return q
}

// requestFilter parses and completes the filter of r
func (s *Server) requestFilter(r *http.Request) (*model.Filter, error) {
	partial, err := parseFilter(r.URL.Query())
	if err != nil {
		return nil, err
	}
	return s.uc.Dashboard.Complete(r.Context(), partial)
}
