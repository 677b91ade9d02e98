package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/usecase"
	"github.com/secmon-lab/opsboard/pkg/utils/async"
	"github.com/secmon-lab/opsboard/pkg/utils/logging"
	"github.com/secmon-lab/opsboard/pkg/utils/safe"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte("ok"))
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.uc.Dashboard.Options(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, opts)
}

// dashboard parses the request filter and builds its dashboard
func (s *Server) dashboard(r *http.Request) (*model.Dashboard, error) {
	f, err := s.requestFilter(r)
	if err != nil {
		return nil, err
	}
	return s.uc.Dashboard.Build(r.Context(), *f)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d.KPIs)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Insights []model.Insight `json:"insights"`
	}

	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, response{Insights: d.Insights})
}

func (s *Server) handleTopIncidents(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Incidents []*model.Incident `json:"incidents"`
	}

	limit, err := parseLimit(r.URL.Query(), usecase.DefaultTopIncidents, usecase.MaxTopIncidents)
	if err != nil {
		writeError(w, r, err)
		return
	}
	f, err := s.requestFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	incidents, err := s.uc.Dashboard.TopIncidents(r.Context(), *f, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, response{Incidents: incidents})
}

func (s *Server) handleDatasetStatus(w http.ResponseWriter, r *http.Request) {
	meta, err := s.uc.Dataset.Status(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, meta)
}

func (s *Server) handleChurnPredict(w http.ResponseWriter, r *http.Request) {
	profile := model.DefaultCustomerProfile()
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&profile); err != nil {
		writeError(w, r, goerr.Wrap(errBadRequest, "invalid request body: "+err.Error()))
		return
	}

	prediction, err := s.uc.Churn.Predict(r.Context(), &profile)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, prediction)
}

// digestRequest is the body of POST /api/digest; the filter comes from the query string
type digestRequest struct {
	Channel string `json:"channel"`
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status  string `json:"status"`
		Channel string `json:"channel"`
	}

	var req digestRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxRequestBody)).Decode(&req); err != nil {
			writeError(w, r, goerr.Wrap(errBadRequest, "invalid request body: "+err.Error()))
			return
		}
	}
	channel := strings.TrimSpace(req.Channel)
	if channel == "" {
		channel = s.digestChannel
	}
	if channel == "" {
		writeError(w, r, goerr.Wrap(errBadRequest, "channel is required"))
		return
	}

	f, err := s.requestFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := f.Validate(); err != nil {
		writeError(w, r, goerr.Wrap(usecase.ErrInvalidFilter, err.Error()))
		return
	}

	filter := *f
	async.Dispatch(r.Context(), "post digest", func(ctx context.Context) error {
		result, err := s.uc.Digest.Post(ctx, channel, filter)
		if err != nil {
			return err
		}
		logging.From(ctx).Debug("Digest request completed", "channel_id", result.ChannelID)
		return nil
	})

	writeJSON(w, r, http.StatusAccepted, response{Status: "accepted", Channel: channel})
}
