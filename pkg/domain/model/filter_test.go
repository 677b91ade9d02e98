package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
)

func TestFilterKey(t *testing.T) {
	base := model.Filter{
		Start:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Regions: []string{"EMEA", "APAC"},
	}

	t.Run("stable under selection order", func(t *testing.T) {
		reordered := base
		reordered.Regions = []string{"APAC", "EMEA"}
		gt.V(t, reordered.Key()).Equal(base.Key())
	})

	t.Run("does not reorder caller slices", func(t *testing.T) {
		_ = base.Key()
		gt.V(t, base.Regions[0]).Equal("EMEA")
	})

	t.Run("empty SLA equals All", func(t *testing.T) {
		all := base
		all.SLA = types.SLAAll
		gt.V(t, all.Key()).Equal(base.Key())
	})

	t.Run("separators inside values do not collide", func(t *testing.T) {
		joined := base
		joined.Categories = []string{"AML,Fraud"}
		split := base
		split.Categories = []string{"Fraud", "AML"}
		gt.String(t, joined.Key()).NotEqual(split.Key())

		piped := base
		piped.Categories = []string{"AML|subsystem=Core"}
		gt.String(t, piped.Key()).NotEqual(split.Key())

		shifted := base
		shifted.Categories = []string{"A:1:B"}
		pair := base
		pair.Categories = []string{"A", "B"}
		gt.String(t, shifted.Key()).NotEqual(pair.Key())
	})

	t.Run("differs by selection", func(t *testing.T) {
		other := base
		other.Regions = []string{"EMEA"}
		gt.String(t, other.Key()).NotEqual(base.Key())
	})
}

func TestFilterValidate(t *testing.T) {
	gt.NoError(t, (&model.Filter{}).Validate())
	gt.NoError(t, (&model.Filter{SLA: types.SLAYes}).Validate())
	gt.Error(t, (&model.Filter{SLA: "Sometimes"}).Validate())
}

func TestFilterSelection(t *testing.T) {
	var f model.Filter
	for _, d := range types.FilterDimensions() {
		f.SetSelection(d, []string{d.String()})
	}
	gt.A(t, f.Regions).Length(1)
	gt.V(t, f.Subsystems[0]).Equal(types.DimensionSubsystem.String())
	gt.B(t, f.Selection(types.DimensionRootCause) == nil).True()
}

func TestKPIsRounded(t *testing.T) {
	k := model.KPIs{TotalIncidents: 3, SLABreachRate: 33.33333, AvgResolutionHours: 2.005, RepeatRate: 66.666}
	r := k.Rounded()
	gt.V(t, r.TotalIncidents).Equal(3)
	gt.V(t, r.SLABreachRate).Equal(33.33)
	gt.V(t, r.RepeatRate).Equal(66.67)
}

func TestIncidentDay(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	x := &model.Incident{Date: time.Date(2024, 3, 2, 5, 0, 0, 0, jst)}
	gt.V(t, x.Day()).Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	gt.V(t, x.Dimension(types.DimensionRegion)).Equal("")
}
