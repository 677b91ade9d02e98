package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/opsboard/pkg/analytics"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/secmon-lab/opsboard/pkg/domain/types"
	"github.com/secmon-lab/opsboard/pkg/utils/errutil"
	"github.com/secmon-lab/opsboard/pkg/utils/safe"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	funcs := template.FuncMap{
		"usd":     analytics.FormatUSDCents,
		"percent": analytics.FormatPercent,
		"count":   analytics.FormatCount,
		"hours":   func(v float64) string { return humanize.FormatFloat("#,###.##", v) + " h" },
		"date":    func(t time.Time) string { return t.Format(model.DateLayout) },
		"yesno":   types.YesNoLabel,
		"selected": func(values []string, v string) bool {
			return slices.Contains(values, v)
		},
		"percentOf": func(p float64) string { return strconv.FormatFloat(p*100, 'f', 1, 64) + "%" },
	}

	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse templates")
	}
	return &pageRenderer{tmpl: tmpl}, nil
}

func (p *pageRenderer) render(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to render page", goerr.V("template", name)), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, buf.Bytes())
}

type filterField struct {
	Name     string
	Label    string
	Options  []string
	Selected []string
}

type dashboardPage struct {
	Title       string
	Description string
	Options     *model.DatasetOptions
	Fields      []filterField
	SLAOptions  []types.SLASelection
	Dashboard   *model.Dashboard
	Status      *model.DatasetMetadata
	DigestURL   string
	Error       string
}

func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	settings := s.uc.Settings()
	page := dashboardPage{
		Title:       settings.Title,
		Description: settings.Description,
		SLAOptions:  types.AllSLASelections(),
	}

	opts, err := s.uc.Dashboard.Options(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	page.Options = opts

	status, err := s.uc.Dataset.Status(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	page.Status = status

	f, err := s.requestFilter(r)
	if err != nil {
		if statusOf(err) != http.StatusBadRequest {
			writeError(w, r, err)
			return
		}
		page.Error = err.Error()
		s.pages.render(w, r, "dashboard.html", http.StatusBadRequest, page)
		return
	}

	d, err := s.uc.Dashboard.Build(r.Context(), *f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page.Dashboard = d

	choices := map[types.Dimension][]string{
		types.DimensionRegion:    opts.Regions,
		types.DimensionChannel:   opts.Channels,
		types.DimensionSeverity:  opts.Severities,
		types.DimensionCategory:  opts.Categories,
		types.DimensionSubsystem: opts.Subsystems,
	}
	for _, dim := range types.FilterDimensions() {
		page.Fields = append(page.Fields, filterField{
			Name:     selectionParams[dim],
			Label:    dim.Label(),
			Options:  choices[dim],
			Selected: f.Selection(dim),
		})
	}
	if s.uc.Digest.Available() {
		page.DigestURL = "/api/digest?" + filterQuery(*f).Encode()
	}

	s.pages.render(w, r, "dashboard.html", http.StatusOK, page)
}

type churnPage struct {
	Title             string
	ModelName         string
	Available         bool
	Profile           model.CustomerProfile
	Contracts         []types.Contract
	DeviceProtections []types.DeviceProtection
	InternetServices  []types.InternetService
	Prediction        *model.ChurnPrediction
	Error             string
}

// handleChurnPage renders the prediction form. A submitted form (any query
// parameter present) is scored and the result shown with the form.
func (s *Server) handleChurnPage(w http.ResponseWriter, r *http.Request) {
	page := churnPage{
		Title:             s.uc.Settings().Title,
		ModelName:         s.uc.Churn.ModelName(),
		Available:         s.uc.Churn.Available(),
		Profile:           model.DefaultCustomerProfile(),
		Contracts:         types.AllContracts(),
		DeviceProtections: types.AllDeviceProtections(),
		InternetServices:  types.AllInternetServices(),
	}

	q := r.URL.Query()
	if len(q) == 0 || !page.Available {
		s.pages.render(w, r, "churn.html", http.StatusOK, page)
		return
	}

	profile, err := parseProfile(q)
	if err != nil {
		page.Error = err.Error()
		s.pages.render(w, r, "churn.html", http.StatusBadRequest, page)
		return
	}
	page.Profile = profile

	prediction, err := s.uc.Churn.Predict(r.Context(), &profile)
	if err != nil {
		if statusOf(err) != http.StatusBadRequest {
			writeError(w, r, err)
			return
		}
		page.Error = err.Error()
		s.pages.render(w, r, "churn.html", http.StatusBadRequest, page)
		return
	}
	page.Prediction = prediction

	s.pages.render(w, r, "churn.html", http.StatusOK, page)
}
