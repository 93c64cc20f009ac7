package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/theirongolddev/fundboard/internal/chart"
	"github.com/theirongolddev/fundboard/internal/export"
	"github.com/theirongolddev/fundboard/internal/forecast"
	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

// notLoaded is served with 200 when the session's dataset failed to load.
type notLoaded struct {
	Loaded  bool   `json:"loaded"`
	Warning string `json:"warning"`
}

// SessionStatus is served at /v1/session.
type SessionStatus struct {
	SessionID  string `json:"session_id"`
	Loaded     bool   `json:"loaded"`
	Pending    bool   `json:"pending,omitempty"`
	Path       string `json:"path"`
	Rows       int    `json:"rows"`
	BadDates   int    `json:"bad_dates"`
	BadAmounts int    `json:"bad_amounts"`
	LoadTimeMS int64  `json:"load_time_ms"`
	Message    string `json:"message,omitempty"`
	Warning    string `json:"warning,omitempty"`
}

// RecordsResponse is served at /v1/records.
type RecordsResponse struct {
	Loaded   bool         `json:"loaded"`
	Criteria string       `json:"criteria"`
	Total    int          `json:"total"`
	Returned int          `json:"returned"`
	Records  []export.Row `json:"records"`
}

// SummaryResponse is served at /v1/summary.
type SummaryResponse struct {
	Loaded   bool               `json:"loaded"`
	Criteria string             `json:"criteria"`
	Summary  model.SummaryStats `json:"summary"`
}

// ChartResponse is served at /v1/charts/{kind}.
type ChartResponse struct {
	Loaded   bool   `json:"loaded"`
	Kind     string `json:"kind"`
	Criteria string `json:"criteria"`
	Data     any    `json:"data"`
}

// ForecastResponse is served at /v1/forecast.
type ForecastResponse struct {
	Loaded  bool             `json:"loaded"`
	Horizon int              `json:"horizon"`
	Warning string           `json:"warning,omitempty"`
	Result  *forecast.Result `json:"result,omitempty"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// handleSession reports the session's load state. It never triggers a load:
// a session whose data has not been requested yet is reported as pending.
func (s *Service) handleSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	res, ok := s.sessions.Peek(id)
	if !ok {
		render.JSON(w, r, SessionStatus{SessionID: id, Pending: true, Path: s.sessions.Path()})
		return
	}
	st := SessionStatus{
		SessionID:  id,
		Loaded:     !res.Failed(),
		Path:       res.Path,
		Rows:       res.Rows,
		BadDates:   res.BadDates,
		BadAmounts: res.BadAmounts,
		LoadTimeMS: res.LoadTime.Milliseconds(),
	}
	if res.Failed() {
		st.Warning = res.Warning()
	} else {
		st.Message = res.Success()
	}
	render.JSON(w, r, st)
}

func (s *Service) handleEndSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.End(sessionID(r))
	http.SetCookie(w, &http.Cookie{
		Name:    SessionCookie,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
	w.WriteHeader(http.StatusNoContent)
}

// loaded returns the session's dataset, or writes the soft-fail body and
// reports false.
func (s *Service) loaded(w http.ResponseWriter, r *http.Request) (*pipeline.LoadResult, bool) {
	res := s.sessions.Get(sessionID(r))
	if res.Failed() {
		render.JSON(w, r, notLoaded{Loaded: false, Warning: res.Warning()})
		return nil, false
	}
	return res, true
}

func (s *Service) handleOptions(w http.ResponseWriter, r *http.Request) {
	res, ok := s.loaded(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, struct {
		Loaded bool `json:"loaded"`
		pipeline.FilterOptions
	}{true, pipeline.Options(res.Dataset)})
}

func (s *Service) handleRecords(w http.ResponseWriter, r *http.Request) {
	q, c, p := s.parseQuery(r)
	if p != nil {
		writeProblem(w, r, p)
		return
	}
	res, ok := s.loaded(w, r)
	if !ok {
		return
	}

	filtered := pipeline.Filter(res.Dataset, c)
	out := RecordsResponse{
		Loaded:   true,
		Criteria: c.String(),
		Total:    filtered.Len(),
		Records:  []export.Row{},
	}
	filtered.Each(func(i int, rec model.Record) bool {
		if q.Limit > 0 && i >= q.Limit {
			return false
		}
		out.Records = append(out.Records, export.NewRow(rec))
		return true
	})
	out.Returned = len(out.Records)
	render.JSON(w, r, out)
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	_, c, p := s.parseQuery(r)
	if p != nil {
		writeProblem(w, r, p)
		return
	}
	res, ok := s.loaded(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, SummaryResponse{
		Loaded:   true,
		Criteria: c.String(),
		Summary:  pipeline.Summarize(pipeline.Filter(res.Dataset, c)),
	})
}

func (s *Service) handleChart(w http.ResponseWriter, r *http.Request) {
	kind, err := chart.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeProblem(w, r, newProblem(r, http.StatusNotFound, err.Error()))
		return
	}
	if kind == chart.KindForecast {
		s.handleForecast(w, r)
		return
	}

	q, c, p := s.parseQuery(r)
	if p != nil {
		writeProblem(w, r, p)
		return
	}
	res, ok := s.loaded(w, r)
	if !ok {
		return
	}

	limit := q.Limit
	if limit == 0 {
		limit = chart.TopN
	}
	filtered := pipeline.Filter(res.Dataset, c)
	out := ChartResponse{Loaded: true, Kind: string(kind), Criteria: c.String()}
	switch kind {
	case chart.KindIndustries:
		out.Data = pipeline.AggregateIndustries(filtered)
	case chart.KindCities:
		out.Data = pipeline.AggregateCities(filtered, limit)
	case chart.KindYears:
		out.Data = pipeline.AggregateYears(filtered)
	case chart.KindInvestors:
		out.Data = pipeline.AggregateInvestors(filtered, limit)
	case chart.KindDaily:
		out.Data = pipeline.AggregateDaily(filtered)
	}
	render.JSON(w, r, out)
}

// handleForecast projects the unfiltered daily series; filter parameters
// are validated but do not narrow the fit.
func (s *Service) handleForecast(w http.ResponseWriter, r *http.Request) {
	q, _, p := s.parseQuery(r)
	if p != nil {
		writeProblem(w, r, p)
		return
	}
	res, ok := s.loaded(w, r)
	if !ok {
		return
	}

	horizon := q.Horizon
	if horizon == 0 {
		horizon = s.cfg.Horizon
	}
	out := ForecastResponse{Loaded: true, Horizon: horizon}
	fc, err := forecast.LinearTrend{}.Forecast(pipeline.AggregateDaily(res.Dataset), horizon)
	switch {
	case errors.Is(err, forecast.ErrInsufficientData):
		out.Warning = "Not enough data for market prediction."
	case errors.Is(err, forecast.ErrHorizonTooLarge):
		writeProblem(w, r, newProblem(r, http.StatusBadRequest, err.Error()))
		return
	case err != nil:
		s.log.Error("forecast failed", "err", err)
		writeProblem(w, r, newProblem(r, http.StatusInternalServerError, "forecast failed"))
		return
	default:
		out.Result = &fc
	}
	render.JSON(w, r, out)
}
