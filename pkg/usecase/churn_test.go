package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
	"github.com/secmon-lab/opsboard/pkg/repository/memory"
	"github.com/secmon-lab/opsboard/pkg/service/churn"
	"github.com/secmon-lab/opsboard/pkg/usecase"
)

func contractModel() *churn.Model {
	return &churn.Model{
		Name:      "contract-only",
		Intercept: 0,
		Categorical: []churn.CategoricalTerm{
			{Feature: churn.FeatureContract, Value: "Month-to-month", Coef: 2},
			{Feature: churn.FeatureContract, Value: "Two year", Coef: -2},
		},
	}
}

func TestChurnUseCase_Predict(t *testing.T) {
	ctx := context.Background()

	t.Run("model not loaded", func(t *testing.T) {
		uc := usecase.New(memory.New())
		gt.B(t, uc.Churn.Available()).False()

		profile := model.DefaultCustomerProfile()
		_, err := uc.Churn.Predict(ctx, &profile)
		gt.Error(t, err).Is(usecase.ErrModelNotLoaded)
	})

	t.Run("month-to-month churns", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithChurnService(churn.New(contractModel())))
		gt.B(t, uc.Churn.Available()).True()
		gt.V(t, uc.Churn.ModelName()).Equal("contract-only")

		profile := model.DefaultCustomerProfile()
		got, err := uc.Churn.Predict(ctx, &profile)
		gt.NoError(t, err).Required()
		gt.B(t, got.Churn).True()
		gt.V(t, got.Segment).Equal(types.RiskSegmentHigh)
		gt.V(t, got.GaugeColor).Equal("crimson")
	})

	t.Run("two year contract stays", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithChurnService(churn.New(contractModel())))

		profile := model.DefaultCustomerProfile()
		profile.Contract = types.ContractTwoYear
		got, err := uc.Churn.Predict(ctx, &profile)
		gt.NoError(t, err).Required()
		gt.B(t, got.Churn).False()
		gt.V(t, got.Segment).Equal(types.RiskSegmentLow)
	})

	t.Run("invalid profile", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithChurnService(churn.New(contractModel())))

		profile := model.DefaultCustomerProfile()
		profile.Tenure = 100
		_, err := uc.Churn.Predict(ctx, &profile)
		gt.Error(t, err).Is(churn.ErrInvalidProfile)
	})
}
