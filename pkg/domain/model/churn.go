package model

import "github.com/secmon-lab/opsboard/pkg/domain/types"

// CustomerProfile holds the nine inputs of a churn prediction
type CustomerProfile struct {
	Tenure           int                    `json:"tenure" validate:"gte=0,lte=72"`
	MonthlyCharges   float64                `json:"monthly_charges" validate:"gte=0,lte=150"`
	TotalCharges     float64                `json:"total_charges" validate:"gte=0,lte=10000"`
	SeniorCitizen    types.YesNo            `json:"senior_citizen" validate:"oneof=Yes No"`
	Partner          types.YesNo            `json:"partner" validate:"oneof=Yes No"`
	Dependents       types.YesNo            `json:"dependents" validate:"oneof=Yes No"`
	Contract         types.Contract         `json:"contract" validate:"oneof='Month-to-month' 'One year' 'Two year'"`
	DeviceProtection types.DeviceProtection `json:"device_protection" validate:"oneof=Yes No 'No internet service'"`
	InternetService  types.InternetService  `json:"internet_service" validate:"oneof='Fiber optic' DSL No"`
}

// DefaultCustomerProfile mirrors the initial values of the prediction form
func DefaultCustomerProfile() CustomerProfile {
	return CustomerProfile{
		Tenure:           12,
		MonthlyCharges:   70,
		TotalCharges:     1000,
		SeniorCitizen:    types.No,
		Partner:          types.No,
		Dependents:       types.No,
		Contract:         types.ContractMonthToMonth,
		DeviceProtection: types.DeviceProtectionNo,
		InternetService:  types.InternetFiberOptic,
	}
}

// FeatureInfluence is one model coefficient, named after its encoded feature
type FeatureInfluence struct {
	Feature     string  `json:"feature"`
	Coefficient float64 `json:"coefficient"`
}

// ChurnPrediction is the scored outcome for one customer profile
type ChurnPrediction struct {
	Churn           bool               `json:"churn"`
	Probability     float64            `json:"probability"`
	Segment         types.RiskSegment  `json:"segment"`
	Label           string             `json:"label"`
	Headline        string             `json:"headline"`
	Recommendations []string           `json:"recommendations"`
	TopFeatures     []FeatureInfluence `json:"top_features,omitempty"`
	GaugeColor      string             `json:"gauge_color"`
	ModelName       string             `json:"model_name"`
}
