package churn

import (
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
)

// DefaultTopFeatures is the number of coefficients reported with a prediction
const DefaultTopFeatures = 8

// Service scores customer profiles
type Service struct {
	model       *Model
	segmenter   Segmenter
	topFeatures int
	validate    *validator.Validate
}

// Option configures a Service
type Option func(*Service)

// WithSegmenter overrides the risk bands
func WithSegmenter(s Segmenter) Option {
	return func(svc *Service) {
		svc.segmenter = s
	}
}

// WithTopFeatures sets how many coefficients are reported
func WithTopFeatures(n int) Option {
	return func(svc *Service) {
		svc.topFeatures = n
	}
}

// New creates a Service for a loaded model
func New(m *Model, opts ...Option) *Service {
	svc := &Service{
		model:       m,
		segmenter:   DefaultSegmenter(),
		topFeatures: DefaultTopFeatures,
		validate:    validator.New(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ModelName returns the name of the underlying model
func (s *Service) ModelName() string {
	return s.model.Name
}

// Validate checks the profile is within the form ranges
func (s *Service) Validate(profile *model.CustomerProfile) error {
	if err := s.validate.Struct(profile); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field())
			}
		}
		return goerr.Wrap(ErrInvalidProfile, err.Error(), goerr.V("fields", fields))
	}
	return nil
}

// Predict validates and scores the profile
func (s *Service) Predict(profile *model.CustomerProfile) (*model.ChurnPrediction, error) {
	if err := s.Validate(profile); err != nil {
		return nil, err
	}

	churn, prob := s.model.Predict(profile)
	segment := s.segmenter.Segment(prob)
	commentary := CommentaryFor(segment)

	label := LabelLowRisk
	if churn {
		label = LabelHighRisk
	}

	return &model.ChurnPrediction{
		Churn:           churn,
		Probability:     prob,
		Segment:         segment,
		Label:           label,
		Headline:        commentary.Headline,
		Recommendations: commentary.Recommendations,
		TopFeatures:     s.model.FeatureInfluence(s.topFeatures),
		GaugeColor:      GaugeColor(prob),
		ModelName:       s.model.Name,
	}, nil
}
