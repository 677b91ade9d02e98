package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/service/churn"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
)

type ChurnUseCase struct {
	svc *churn.Service
}

func NewChurnUseCase(svc *churn.Service) *ChurnUseCase {
	return &ChurnUseCase{svc: svc}
}

// Available reports whether a churn model is loaded
func (uc *ChurnUseCase) Available() bool {
	return uc.svc != nil
}

// ModelName returns the loaded model name, or empty when none is loaded
func (uc *ChurnUseCase) ModelName() string {
	if uc.svc == nil {
		return ""
	}
	return uc.svc.ModelName()
}

// Predict validates the profile and scores it with the loaded model
func (uc *ChurnUseCase) Predict(ctx context.Context, profile *model.CustomerProfile) (*model.ChurnPrediction, error) {
	if uc.svc == nil {
		return nil, goerr.Wrap(ErrModelNotLoaded, "cannot predict churn")
	}

	prediction, err := uc.svc.Predict(profile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to predict churn")
	}

	logging.From(ctx).Debug("Churn predicted",
		"model", prediction.ModelName,
		"probability", prediction.Probability,
		"segment", prediction.Segment)

	return prediction, nil
}
