// Package dataset reads the incident dataset from CSV sources.
package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
)

// Column names of the incident CSV
const (
	ColumnIncidentID      = "incident_id"
	ColumnDate            = "date"
	ColumnRegion          = "region"
	ColumnChannel         = "channel"
	ColumnSeverity        = "severity_level"
	ColumnCategory        = "category"
	ColumnSubsystem       = "subsystem"
	ColumnRootCause       = "root_cause"
	ColumnSLABreached     = "sla_breached"
	ColumnResolutionHours = "time_to_resolve_hours"
	ColumnFinancialImpact = "financial_impact_usd"
	ColumnRepeated        = "is_repeated_incident"
)

// RequiredColumns lists every column the parser needs
func RequiredColumns() []string {
	return []string{
		ColumnIncidentID, ColumnDate, ColumnRegion, ColumnChannel,
		ColumnSeverity, ColumnCategory, ColumnSubsystem, ColumnRootCause,
		ColumnSLABreached, ColumnResolutionHours, ColumnFinancialImpact, ColumnRepeated,
	}
}

var dateLayouts = []string{
	model.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// RowError describes why a row was skipped
type RowError struct {
	Line   int
	Column string
	Value  string
}

// ParseResult holds the parsed incidents and the rows that were dropped
type ParseResult struct {
	Incidents []*model.Incident
	Skipped   int
	Errors    []RowError
}

// maxRowErrors caps the number of row errors kept for reporting
const maxRowErrors = 100

// Parse reads incidents from CSV. Header names are matched case-insensitively in
// snake_case and may appear in any order. Malformed rows are skipped and counted.
func Parse(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, goerr.Wrap(ErrEmptyInput, "failed to read CSV header")
		}
		return nil, goerr.Wrap(err, "failed to read CSV header")
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := toSnakeCase(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns() {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, goerr.Wrap(ErrMissingColumn, "CSV header lacks required columns",
			goerr.V("missing", missing),
			goerr.V("header", headers))
	}

	result := &ParseResult{Incidents: []*model.Incident{}}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.skip(RowError{Line: parseErr.StartLine})
				continue
			}
			return nil, goerr.Wrap(err, "failed to read CSV row")
		}
		line, _ := reader.FieldPos(0)

		incident, rowErr := parseRow(row, index)
		if rowErr != nil {
			rowErr.Line = line
			result.skip(*rowErr)
			continue
		}
		result.Incidents = append(result.Incidents, incident)
	}

	return result, nil
}

func (x *ParseResult) skip(e RowError) {
	x.Skipped++
	if len(x.Errors) < maxRowErrors {
		x.Errors = append(x.Errors, e)
	}
}

func parseRow(row []string, index map[string]int) (*model.Incident, *RowError) {
	get := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	x := &model.Incident{
		ID:        model.IncidentID(get(ColumnIncidentID)),
		Region:    get(ColumnRegion),
		Channel:   get(ColumnChannel),
		Severity:  get(ColumnSeverity),
		Category:  get(ColumnCategory),
		Subsystem: get(ColumnSubsystem),
		RootCause: get(ColumnRootCause),
	}

	var ok bool
	if x.Date, ok = parseDate(get(ColumnDate)); !ok {
		return nil, &RowError{Column: ColumnDate, Value: get(ColumnDate)}
	}
	if x.SLABreached, ok = ParseFlag(get(ColumnSLABreached)); !ok {
		return nil, &RowError{Column: ColumnSLABreached, Value: get(ColumnSLABreached)}
	}
	if x.Repeated, ok = ParseFlag(get(ColumnRepeated)); !ok {
		return nil, &RowError{Column: ColumnRepeated, Value: get(ColumnRepeated)}
	}
	if x.ResolutionHours, ok = parseNumber(get(ColumnResolutionHours)); !ok {
		return nil, &RowError{Column: ColumnResolutionHours, Value: get(ColumnResolutionHours)}
	}
	if x.FinancialImpact, ok = parseNumber(get(ColumnFinancialImpact)); !ok {
		return nil, &RowError{Column: ColumnFinancialImpact, Value: get(ColumnFinancialImpact)}
	}

	return x, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFlag reads a boolean column. Accepts Yes/No, True/False and 1/0 in any case.
func ParseFlag(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "1.0":
		return true, true
	case "no", "n", "false", "0", "0.0":
		return false, true
	default:
		return false, false
	}
}

// toSnakeCase converts "Column Name" to "column_name"
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
