package usecase

import (
	"time"

	"github.com/secmon-lab/opsboard/pkg/domain/interfaces"
	"github.com/secmon-lab/opsboard/pkg/service/churn"
	"github.com/secmon-lab/opsboard/pkg/service/dataset"
	"github.com/secmon-lab/opsboard/pkg/service/slack"
)

// Default dashboard settings
const (
	DefaultTitle         = "Operations Risk & Incident Dashboard"
	DefaultTopIncidents  = 10
	DefaultCacheTTL      = 10 * time.Minute
	DefaultCacheCapacity = 256
)

// Settings are presentation parameters of the dashboard
type Settings struct {
	Title        string
	Description  string
	TopIncidents int
	CacheTTL     time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.Title == "" {
		s.Title = DefaultTitle
	}
	if s.TopIncidents <= 0 {
		s.TopIncidents = DefaultTopIncidents
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = DefaultCacheTTL
	}
	return s
}

type UseCases struct {
	repo     interfaces.Repository
	loader   *dataset.Loader
	churnSvc *churn.Service
	slackSvc slack.Service
	settings Settings

	Dataset   *DatasetUseCase
	Dashboard *DashboardUseCase
	Churn     *ChurnUseCase
	Digest    *DigestUseCase
}

type Option func(*UseCases)

// WithLoader sets the CSV sources refreshed into the repository
func WithLoader(loader *dataset.Loader) Option {
	return func(uc *UseCases) {
		uc.loader = loader
	}
}

// WithChurnService enables churn prediction
func WithChurnService(svc *churn.Service) Option {
	return func(uc *UseCases) {
		uc.churnSvc = svc
	}
}

// WithSlackService enables digest posting
func WithSlackService(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slackSvc = svc
	}
}

// WithSettings overrides dashboard settings
func WithSettings(s Settings) Option {
	return func(uc *UseCases) {
		uc.settings = s
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}
	uc.settings = uc.settings.withDefaults()

	uc.Dashboard = NewDashboardUseCase(repo, uc.settings)
	uc.Dataset = NewDatasetUseCase(repo, uc.loader, uc.Dashboard)
	uc.Churn = NewChurnUseCase(uc.churnSvc)
	uc.Digest = NewDigestUseCase(uc.Dashboard, uc.slackSvc, uc.settings)

	return uc
}

// Settings returns the effective dashboard settings
func (uc *UseCases) Settings() Settings {
	return uc.settings
}
