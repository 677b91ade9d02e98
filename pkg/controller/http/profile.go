package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

// parseProfile reads the churn form. Missing fields keep their form defaults.
func parseProfile(q url.Values) (model.CustomerProfile, error) {
	p := model.DefaultCustomerProfile()

	if v := strings.TrimSpace(q.Get("tenure")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, goerr.Wrap(errBadRequest, "tenure must be an integer", goerr.V("value", v))
		}
		p.Tenure = n
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"monthly_charges", &p.MonthlyCharges},
		{"total_charges", &p.TotalCharges},
	}
	for _, f := range floats {
		v := strings.TrimSpace(q.Get(f.name))
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, goerr.Wrap(errBadRequest, f.name+" must be a number", goerr.V("value", v))
		}
		*f.dst = n
	}

	if v := q.Get("senior_citizen"); v != "" {
		p.SeniorCitizen = types.YesNo(v)
	}
	if v := q.Get("partner"); v != "" {
		p.Partner = types.YesNo(v)
	}
	if v := q.Get("dependents"); v != "" {
		p.Dependents = types.YesNo(v)
	}
	if v := q.Get("contract"); v != "" {
		p.Contract = types.Contract(v)
	}
	if v := q.Get("device_protection"); v != "" {
		p.DeviceProtection = types.DeviceProtection(v)
	}
	if v := q.Get("internet_service"); v != "" {
		p.InternetService = types.InternetService(v)
	}

	return p, nil
}
