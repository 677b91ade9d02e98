package churn

import "github.com/secmon-lab/opsboard/pkg/domain/types"

// Gauge colours of the probability bar
const (
	GaugeColorHigh = "crimson"
	GaugeColorLow  = "seagreen"
)

// Prediction labels
const (
	LabelHighRisk = "High Risk of Churn"
	LabelLowRisk  = "Low Risk of Churn"
)

// Segmenter maps a churn probability to a risk segment
type Segmenter struct {
	High   float64 // probability above this is high risk
	Medium float64 // probability above this (up to High) is medium risk
}

// DefaultSegmenter returns the 0.7 / 0.4 banding
func DefaultSegmenter() Segmenter {
	return Segmenter{High: 0.7, Medium: 0.4}
}

// Segment returns the risk segment of p
func (s Segmenter) Segment(p float64) types.RiskSegment {
	switch {
	case p > s.High:
		return types.RiskSegmentHigh
	case p > s.Medium:
		return types.RiskSegmentMedium
	default:
		return types.RiskSegmentLow
	}
}

// Commentary is the fixed business guidance of a segment
type Commentary struct {
	Headline        string
	Recommendations []string
}

var commentaries = map[types.RiskSegment]Commentary{
	types.RiskSegmentHigh: {
		Headline: "Customer at High Risk",
		Recommendations: []string{
			"Likely has month-to-month contract or high monthly charges.",
			"Recommend retention offers or personalized loyalty discounts.",
			"Focus on customer experience improvements and proactive support.",
		},
	},
	types.RiskSegmentMedium: {
		Headline: "Medium Risk Segment",
		Recommendations: []string{
			"Moderate risk based on tenure and service bundle.",
			"Increase engagement with bundled packages or streaming offers.",
			"Automatic payments and contract renewals help stabilize churn.",
		},
	},
	types.RiskSegmentLow: {
		Headline: "Loyal Customer Segment",
		Recommendations: []string{
			"Long-term and low-maintenance customers.",
			"Maintain loyalty with referral rewards or family plans.",
			"Use satisfaction surveys to further strengthen retention.",
		},
	},
}

// CommentaryFor returns a copy of the guidance for segment
func CommentaryFor(segment types.RiskSegment) Commentary {
	c := commentaries[segment]
	return Commentary{
		Headline:        c.Headline,
		Recommendations: append([]string(nil), c.Recommendations...),
	}
}

// GaugeColor returns the bar colour for probability p
func GaugeColor(p float64) string {
	if p > 0.5 {
		return GaugeColorHigh
	}
	return GaugeColorLow
}
