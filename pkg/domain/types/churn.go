package types

import "fmt"

// YesNo is a binary customer attribute
type YesNo string

const (
	No  YesNo = "No"
	Yes YesNo = "Yes"
)

// Bool returns true for Yes
func (v YesNo) Bool() bool {
	return v == Yes
}

// IsValid checks if the value is valid
func (v YesNo) IsValid() bool {
	return v == Yes || v == No
}

// Contract is the customer's contract type
type Contract string

const (
	ContractMonthToMonth Contract = "Month-to-month"
	ContractOneYear      Contract = "One year"
	ContractTwoYear      Contract = "Two year"
)

// AllContracts returns all valid contract types
func AllContracts() []Contract {
	return []Contract{ContractMonthToMonth, ContractOneYear, ContractTwoYear}
}

// DeviceProtection is the customer's device protection option
type DeviceProtection string

const (
	DeviceProtectionNo         DeviceProtection = "No"
	DeviceProtectionYes        DeviceProtection = "Yes"
	DeviceProtectionNoInternet DeviceProtection = "No internet service"
)

// AllDeviceProtections returns all valid device protection options
func AllDeviceProtections() []DeviceProtection {
	return []DeviceProtection{DeviceProtectionNo, DeviceProtectionYes, DeviceProtectionNoInternet}
}

// InternetService is the customer's internet service
type InternetService string

const (
	InternetFiberOptic InternetService = "Fiber optic"
	InternetDSL        InternetService = "DSL"
	InternetNone       InternetService = "No"
)

// AllInternetServices returns all valid internet services
func AllInternetServices() []InternetService {
	return []InternetService{InternetFiberOptic, InternetDSL, InternetNone}
}

// RiskSegment is the churn risk band a prediction falls into
type RiskSegment string

const (
	RiskSegmentHigh   RiskSegment = "high"
	RiskSegmentMedium RiskSegment = "medium"
	RiskSegmentLow    RiskSegment = "low"
)

// IsValid checks if the segment is valid
func (s RiskSegment) IsValid() bool {
	switch s {
	case RiskSegmentHigh, RiskSegmentMedium, RiskSegmentLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the segment
func (s RiskSegment) String() string {
	return string(s)
}

// ParseRiskSegment parses a string into a RiskSegment
func ParseRiskSegment(s string) (RiskSegment, error) {
	seg := RiskSegment(s)
	if !seg.IsValid() {
		return "", fmt.Errorf("invalid risk segment: %s", s)
	}
	return seg, nil
}
