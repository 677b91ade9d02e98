package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Filter holds CLI flags narrowing the incident set of a report
type Filter struct {
	start      string
	end        string
	regions    []string
	channels   []string
	severities []string
	categories []string
	subsystems []string
	sla        string
}

func (x *Filter) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "start", Usage: "First day (YYYY-MM-DD), defaults to the earliest incident", Category: "Filter", Destination: &x.start},
		&cli.StringFlag{Name: "end", Usage: "Last day (YYYY-MM-DD), defaults to the latest incident", Category: "Filter", Destination: &x.end},
		&cli.StringSliceFlag{Name: "region", Usage: "Region to include. Repeatable, defaults to all", Category: "Filter", Destination: &x.regions},
		&cli.StringSliceFlag{Name: "channel", Usage: "Channel to include. Repeatable, defaults to all", Category: "Filter", Destination: &x.channels},
		&cli.StringSliceFlag{Name: "severity", Usage: "Severity level to include. Repeatable, defaults to all", Category: "Filter", Destination: &x.severities},
		&cli.StringSliceFlag{Name: "category", Usage: "Category to include. Repeatable, defaults to all", Category: "Filter", Destination: &x.categories},
		&cli.StringSliceFlag{Name: "subsystem", Usage: "Subsystem to include. Repeatable, defaults to all", Category: "Filter", Destination: &x.subsystems},
		&cli.StringFlag{Name: "sla", Usage: "SLA breached (All, Yes, No)", Category: "Filter", Value: "All", Destination: &x.sla},
	}
}

func parseDay(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrInvalidConfig, "invalid date", goerr.V(FieldKey, name), goerr.V(ValueKey, value))
	}
	return t, nil
}

// Filter returns the partial filter given by flags. Unset selections are nil.
func (x *Filter) Filter() (model.Filter, error) {
	var f model.Filter
	var err error

	if f.Start, err = parseDay("start", x.start); err != nil {
		return f, err
	}
	if f.End, err = parseDay("end", x.end); err != nil {
		return f, err
	}

	f.Regions = x.regions
	f.Channels = x.channels
	f.Severities = x.severities
	f.Categories = x.categories
	f.Subsystems = x.subsystems

	sla, err := types.ParseSLASelection(x.sla)
	if err != nil {
		return f, goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(FieldKey, "sla"))
	}
	f.SLA = sla

	return f, nil
}
