package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/service/churn"
	"github.com/secmon-lab/opsboard/pkg/usecase"
	"github.com/secmon-lab/opsboard/pkg/utils/errutil"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/secmon-lab/opsboard/pkg/utils/safe"
)

var errBadRequest = errors.New("bad request")

type Server struct {
	router         *chi.Mux
	uc             *usecase.UseCases
	pages          *pageRenderer
	digestChannel  string
	maxRequestBody int64
}

type Options func(*Server)

// WithDigestChannel sets the channel used when a digest request names none
func WithDigestChannel(channel string) Options {
	return func(s *Server) {
		s.digestChannel = channel
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	pages, err := newPageRenderer()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse page templates")
	}

	s := &Server{
		router:         r,
		uc:             uc,
		pages:          pages,
		maxRequestBody: 1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/kpis", s.handleKPIs)
		r.Get("/insights", s.handleInsights)
		r.Get("/incidents/top", s.handleTopIncidents)
		r.Get("/dataset", s.handleDatasetStatus)
		r.Post("/churn/predict", s.handleChurnPredict)

		// Digest endpoint is only exposed when Slack is configured
		if uc.Digest.Available() {
			r.Post("/digest", s.handleDigest)
		}
	})

	r.Get("/", s.handleDashboardPage)
	r.Get("/churn", s.handleChurnPage)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// statusOf maps sentinel errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, usecase.ErrInvalidFilter),
		errors.Is(err, usecase.ErrInvalidLimit),
		errors.Is(err, churn.ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrModelNotLoaded),
		errors.Is(err, usecase.ErrSlackNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
