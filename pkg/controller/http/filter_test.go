package http_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/opsboard/pkg/controller/http"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

func TestParseFilter(t *testing.T) {
	t.Run("absent parameters stay unset", func(t *testing.T) {
		f, err := httpctrl.ParseFilter(url.Values{})
		gt.NoError(t, err).Required()
		gt.B(t, f.Start.IsZero()).True()
		gt.B(t, f.End.IsZero()).True()
		gt.B(t, f.Regions == nil).True()
		gt.V(t, f.SLA).Equal(types.SLAAll)
	})

	t.Run("repeated parameters", func(t *testing.T) {
		q := url.Values{
			"start":    {"2024-01-01"},
			"end":      {"2024-01-31"},
			"region":   {"EMEA", "APAC"},
			"severity": {"High"},
			"sla":      {"yes"},
		}
		f, err := httpctrl.ParseFilter(q)
		gt.NoError(t, err).Required()
		gt.V(t, f.Start).Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		gt.V(t, f.End).Equal(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
		gt.V(t, f.Regions).Equal([]string{"EMEA", "APAC"})
		gt.V(t, f.Severities).Equal([]string{"High"})
		gt.B(t, f.Channels == nil).True()
		gt.V(t, f.SLA).Equal(types.SLAYes)
	})

	t.Run("empty value selects nothing", func(t *testing.T) {
		f, err := httpctrl.ParseFilter(url.Values{"category": {""}})
		gt.NoError(t, err).Required()
		gt.B(t, f.Categories != nil).True()
		gt.A(t, f.Categories).Length(0)
	})

	testCases := []struct {
		name  string
		query url.Values
	}{
		{"bad start", url.Values{"start": {"01/02/2024"}}},
		{"bad end", url.Values{"end": {"2024-13-01"}}},
		{"bad sla", url.Values{"sla": {"maybe"}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := httpctrl.ParseFilter(tc.query)
			gt.Error(t, err)
		})
	}
}

func TestParseProfile(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := httpctrl.ParseProfile(url.Values{})
		gt.NoError(t, err).Required()
		gt.V(t, p.Tenure).Equal(12)
		gt.V(t, p.Contract).Equal(types.ContractMonthToMonth)
	})

	t.Run("overrides", func(t *testing.T) {
		p, err := httpctrl.ParseProfile(url.Values{
			"tenure":          {"48"},
			"monthly_charges": {"45.5"},
			"contract":        {"Two year"},
			"partner":         {"Yes"},
		})
		gt.NoError(t, err).Required()
		gt.V(t, p.Tenure).Equal(48)
		gt.V(t, p.MonthlyCharges).Equal(45.5)
		gt.V(t, p.Contract).Equal(types.ContractTwoYear)
		gt.V(t, p.Partner).Equal(types.Yes)
	})

	t.Run("non numeric tenure", func(t *testing.T) {
		_, err := httpctrl.ParseProfile(url.Values{"tenure": {"ten"}})
		gt.Error(t, err)
	})
}
