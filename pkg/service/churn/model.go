// Package churn scores customers with a logistic-regression churn model.
package churn

import (
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
)

// Feature names of the nine prediction inputs
const (
	FeatureSeniorCitizen    = "SeniorCitizen"
	FeatureTenure           = "tenure"
	FeatureMonthlyCharges   = "MonthlyCharges"
	FeatureTotalCharges     = "TotalCharges"
	FeaturePartner          = "Partner"
	FeatureDependents       = "Dependents"
	FeatureContract         = "Contract"
	FeatureDeviceProtection = "DeviceProtection"
	FeatureInternetService  = "InternetService"
)

// DefaultThreshold is the probability at which a customer is predicted to churn
const DefaultThreshold = 0.5

// NumericTerm is a standardized numeric feature
type NumericTerm struct {
	Feature string  `json:"feature" toml:"feature"`
	Mean    float64 `json:"mean" toml:"mean"`
	Scale   float64 `json:"scale" toml:"scale"`
	Coef    float64 `json:"coef" toml:"coef"`
}

// CategoricalTerm is one one-hot encoded category level
type CategoricalTerm struct {
	Feature string  `json:"feature" toml:"feature"`
	Value   string  `json:"value" toml:"value"`
	Coef    float64 `json:"coef" toml:"coef"`
}

// Model is a fitted logistic-regression pipeline
type Model struct {
	Name        string            `json:"name" toml:"name"`
	Intercept   float64           `json:"intercept" toml:"intercept"`
	Threshold   float64           `json:"threshold" toml:"threshold"`
	Numeric     []NumericTerm     `json:"numeric" toml:"numeric"`
	Categorical []CategoricalTerm `json:"categorical" toml:"categorical"`
}

var knownNumeric = map[string]bool{
	FeatureSeniorCitizen:  true,
	FeatureTenure:         true,
	FeatureMonthlyCharges: true,
	FeatureTotalCharges:   true,
}

var knownCategorical = map[string]bool{
	FeaturePartner:          true,
	FeatureDependents:       true,
	FeatureContract:         true,
	FeatureDeviceProtection: true,
	FeatureInternetService:  true,
}

// Validate checks every term refers to a known input
func (m *Model) Validate() error {
	if len(m.Numeric) == 0 && len(m.Categorical) == 0 {
		return goerr.Wrap(ErrInvalidModel, "model has no terms")
	}
	if m.Threshold < 0 || m.Threshold >= 1 {
		return goerr.Wrap(ErrInvalidModel, "threshold must be in [0, 1)", goerr.V("threshold", m.Threshold))
	}
	for _, t := range m.Numeric {
		if !knownNumeric[t.Feature] {
			return goerr.Wrap(ErrInvalidModel, "unknown numeric feature", goerr.V("feature", t.Feature))
		}
		if t.Scale < 0 {
			return goerr.Wrap(ErrInvalidModel, "negative scale", goerr.V("feature", t.Feature))
		}
	}
	for _, t := range m.Categorical {
		if !knownCategorical[t.Feature] {
			return goerr.Wrap(ErrInvalidModel, "unknown categorical feature", goerr.V("feature", t.Feature))
		}
	}
	return nil
}

func (m *Model) threshold() float64 {
	if m.Threshold == 0 {
		return DefaultThreshold
	}
	return m.Threshold
}

func numericValue(p *model.CustomerProfile, feature string) float64 {
	switch feature {
	case FeatureSeniorCitizen:
		if p.SeniorCitizen.Bool() {
			return 1
		}
		return 0
	case FeatureTenure:
		return float64(p.Tenure)
	case FeatureMonthlyCharges:
		return p.MonthlyCharges
	case FeatureTotalCharges:
		return p.TotalCharges
	default:
		return 0
	}
}

func categoricalValue(p *model.CustomerProfile, feature string) string {
	switch feature {
	case FeaturePartner:
		return string(p.Partner)
	case FeatureDependents:
		return string(p.Dependents)
	case FeatureContract:
		return string(p.Contract)
	case FeatureDeviceProtection:
		return string(p.DeviceProtection)
	case FeatureInternetService:
		return string(p.InternetService)
	default:
		return ""
	}
}

// Probability returns the churn probability of the profile
func (m *Model) Probability(p *model.CustomerProfile) float64 {
	z := m.Intercept
	for _, t := range m.Numeric {
		scale := t.Scale
		if scale == 0 {
			scale = 1
		}
		z += t.Coef * (numericValue(p, t.Feature) - t.Mean) / scale
	}
	for _, t := range m.Categorical {
		if categoricalValue(p, t.Feature) == t.Value {
			z += t.Coef
		}
	}
	return 1 / (1 + math.Exp(-z))
}

// Predict returns whether the profile is predicted to churn and its probability
func (m *Model) Predict(p *model.CustomerProfile) (bool, float64) {
	prob := m.Probability(p)
	return prob >= m.threshold(), prob
}

// FeatureInfluence returns up to n coefficients ordered by absolute value
func (m *Model) FeatureInfluence(n int) []model.FeatureInfluence {
	all := make([]model.FeatureInfluence, 0, len(m.Numeric)+len(m.Categorical))
	for _, t := range m.Numeric {
		all = append(all, model.FeatureInfluence{Feature: "num__" + t.Feature, Coefficient: t.Coef})
	}
	for _, t := range m.Categorical {
		all = append(all, model.FeatureInfluence{Feature: "cat__" + t.Feature + "_" + t.Value, Coefficient: t.Coef})
	}

	sort.SliceStable(all, func(i, j int) bool {
		return math.Abs(all[i].Coefficient) > math.Abs(all[j].Coefficient)
	})
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all
}
