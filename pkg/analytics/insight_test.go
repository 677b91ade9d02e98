package analytics_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/analytics"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

func TestGenerateInsights(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		insights := analytics.GenerateInsights(nil)
		gt.A(t, insights).Length(1)
		gt.V(t, insights[0].Kind).Equal(types.InsightNoData)
		gt.V(t, insights[0].Text).Equal(analytics.NoDataMessage)
	})

	t.Run("all insights in fixed order", func(t *testing.T) {
		records := []*model.Incident{
			newIncident(withCategory("Cards"), withSubsystem("ATM"), withHours(3), withImpact(500), withRootCause("Vendor"), withBreached(true)),
			newIncident(withCategory("Cards"), withSubsystem("ATM"), withHours(5), withImpact(500), withRootCause("Vendor"), withBreached(true)),
			newIncident(withCategory("Lending"), withSubsystem("Core Banking"), withHours(12.3), withImpact(12345), withRootCause("Human Error"), withBreached(true)),
			newIncident(withCategory("Cards"), withSubsystem("ATM"), withHours(1), withImpact(0), withRootCause("Human Error"), withBreached(false)),
		}

		insights := analytics.GenerateInsights(records)
		gt.A(t, insights).Length(4)

		gt.V(t, insights[0].Kind).Equal(types.InsightTopCategoryVolume)
		gt.V(t, insights[0].Text).Equal("Cards has the highest incident volume.")

		gt.V(t, insights[1].Kind).Equal(types.InsightSlowestSubsystem)
		gt.V(t, insights[1].Text).Equal("Core Banking has the longest average resolution time at 12.3 hours.")

		gt.V(t, insights[2].Kind).Equal(types.InsightBreachRootCause)
		gt.V(t, insights[2].Text).Equal("Vendor accounts for ~66.7% of SLA-breached incidents.")

		gt.V(t, insights[3].Kind).Equal(types.InsightTopCategoryImpact)
		gt.V(t, insights[3].Text).Equal("Lending drives the highest financial impact (~$12,345).")
	})

	t.Run("no breach insight without breached incidents", func(t *testing.T) {
		records := []*model.Incident{newIncident(), newIncident()}
		insights := analytics.GenerateInsights(records)
		gt.A(t, insights).Length(3)
		for _, in := range insights {
			gt.V(t, in.Kind).NotEqual(types.InsightBreachRootCause)
		}
	})
}

func TestFormat(t *testing.T) {
	gt.V(t, analytics.FormatUSD(1234567.6)).Equal("$1,234,568")
	gt.V(t, analytics.FormatCount(12000)).Equal("12,000")
	gt.V(t, analytics.FormatPercent(33.333)).Equal("33.33%")
}
