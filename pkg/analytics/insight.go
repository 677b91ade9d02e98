package analytics

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

// NoDataMessage is shown instead of insights when nothing matches the filters
const NoDataMessage = "No incidents match the selected filters."

// GenerateInsights derives the templated observations of the filtered set
func GenerateInsights(records []*model.Incident) []model.Insight {
	if len(records) == 0 {
		return []model.Insight{{Kind: types.InsightNoData, Text: NoDataMessage}}
	}

	var insights []model.Insight

	if top := CountBy(records, types.DimensionCategory); len(top) > 0 {
		insights = append(insights, model.Insight{
			Kind:    types.InsightTopCategoryVolume,
			Subject: top[0].Key,
			Value:   top[0].Value,
			Text:    fmt.Sprintf("%s has the highest incident volume.", top[0].Key),
		})
	}

	if slow := MeanBy(records, types.DimensionSubsystem, model.MeasureResolutionHours); len(slow) > 0 {
		insights = append(insights, model.Insight{
			Kind:    types.InsightSlowestSubsystem,
			Subject: slow[0].Key,
			Value:   slow[0].Value,
			Text:    fmt.Sprintf("%s has the longest average resolution time at %.1f hours.", slow[0].Key, slow[0].Value),
		})
	}

	var breached []*model.Incident
	for _, rec := range records {
		if rec.SLABreached {
			breached = append(breached, rec)
		}
	}
	if causes := CountBy(breached, types.DimensionRootCause); len(causes) > 0 {
		share := causes[0].Value / float64(len(breached)) * 100
		insights = append(insights, model.Insight{
			Kind:    types.InsightBreachRootCause,
			Subject: causes[0].Key,
			Value:   share,
			Text:    fmt.Sprintf("%s accounts for ~%.1f%% of SLA-breached incidents.", causes[0].Key, share),
		})
	}

	if impact := SumBy(records, types.DimensionCategory, model.MeasureFinancialImpact); len(impact) > 0 {
		insights = append(insights, model.Insight{
			Kind:    types.InsightTopCategoryImpact,
			Subject: impact[0].Key,
			Value:   impact[0].Value,
			Text:    fmt.Sprintf("%s drives the highest financial impact (~%s).", impact[0].Key, FormatUSD(impact[0].Value)),
		})
	}

	return insights
}

// FormatUSD formats v as whole dollars with thousands separators
func FormatUSD(v float64) string {
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatUSDCents formats v as dollars with two decimals and thousands separators
func FormatUSDCents(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatPercent formats a percentage with two decimals
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatCount formats an integer with thousands separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
