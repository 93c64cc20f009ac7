package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fundboard/internal/forecast"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

const fixture = `Sr No,Date dd/mm/yyyy,Startup Name,Industry Vertical,SubVertical,City  Location,Investors Name,InvestmentnType,Amount in USD,Remarks
1,01/08/2017,Zomato,Consumer Internet,Food Delivery,Bengaluru,Info Edge,Private Equity,"1,000,000",
2,05/03/2018,Ola,Transportation,Cab Aggregator,Bengaluru,SoftBank,Private Equity,"2,500,000",
3,17/11/2017,Paytm,Finance,Payments,Noida,SoftBank,Private Equity,"1,400,000,000",
4,not-a-date,Swiggy,Consumer Internet,Food Delivery,Bengaluru,Accel,Seed Funding,undisclosed,
`

type testServer struct {
	svc   *Service
	srv   *httptest.Server
	loads *atomic.Int32
}

func newTestServer(t *testing.T, path string) *testServer {
	t.Helper()
	loads := &atomic.Int32{}
	svc := New(Config{
		DataFile: path,
		Loader: func(p string) *pipeline.LoadResult {
			loads.Add(1)
			return pipeline.Load(p)
		},
	})
	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(srv.Close)
	return &testServer{svc: svc, srv: srv, loads: loads}
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "startup_funding.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))
	return path
}

func (ts *testServer) get(t *testing.T, path, sessionID string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.srv.URL+path, nil)
	require.NoError(t, err)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	resp := ts.get(t, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok\n", string(body))
}

func TestSession_MintsCookie(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	resp := ts.get(t, "/v1/session", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, cookie.Value, resp.Header.Get(SessionHeader))

	var st SessionStatus
	decode(t, resp, &st)
	assert.Equal(t, cookie.Value, st.SessionID)
	assert.True(t, st.Pending)
}

func TestSession_StatusDoesNotLoad(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))

	var st SessionStatus
	decode(t, ts.get(t, "/v1/session", "alpha"), &st)
	assert.True(t, st.Pending)
	assert.False(t, st.Loaded)
	assert.Zero(t, ts.loads.Load())
	assert.Zero(t, ts.svc.sessions.Len())

	ts.get(t, "/v1/summary", "alpha")
	st = SessionStatus{}
	decode(t, ts.get(t, "/v1/session", "alpha"), &st)
	assert.False(t, st.Pending)
	assert.True(t, st.Loaded)
	assert.Equal(t, 4, st.Rows)
	assert.Equal(t, 1, st.BadDates)
	assert.Equal(t, "Loaded 4 startups!", st.Message)
	assert.Equal(t, int32(1), ts.loads.Load())
}

func TestSession_LiveSessionsAreCapped(t *testing.T) {
	loads := &atomic.Int32{}
	svc := New(Config{
		DataFile:    writeFixture(t),
		MaxSessions: 2,
		Loader: func(p string) *pipeline.LoadResult {
			loads.Add(1)
			return pipeline.Load(p)
		},
	})
	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(srv.Close)
	ts := &testServer{svc: svc, srv: srv, loads: loads}

	// no header or cookie: every request mints a new session
	for i := 0; i < 5; i++ {
		ts.get(t, "/v1/summary", "")
	}
	assert.Equal(t, int32(5), loads.Load())
	assert.Equal(t, 2, svc.sessions.Len())
}

func TestSession_LoadsOncePerSession(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	for i := 0; i < 3; i++ {
		ts.get(t, "/v1/summary", "alpha")
	}
	assert.Equal(t, int32(1), ts.loads.Load())

	ts.get(t, "/v1/summary", "beta")
	assert.Equal(t, int32(2), ts.loads.Load())
	assert.Equal(t, 2, ts.svc.sessions.Len())
}

func TestEndSession(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	ts.get(t, "/v1/summary", "alpha")
	require.Equal(t, 1, ts.svc.sessions.Len())

	req, err := http.NewRequest(http.MethodDelete, ts.srv.URL+"/v1/session", nil)
	require.NoError(t, err)
	req.Header.Set(SessionHeader, "alpha")
	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, ts.svc.sessions.Len())
}

func TestRecords_Filtered(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	resp := ts.get(t, "/v1/records?industry=Consumer+Internet&city=Bengaluru", "s1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out RecordsResponse
	decode(t, resp, &out)
	assert.True(t, out.Loaded)
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "Zomato", out.Records[0].StartupName)
	assert.Equal(t, "2017-08-01", out.Records[0].Date)
	assert.Equal(t, "Swiggy", out.Records[1].StartupName)
	assert.Empty(t, out.Records[1].Date)
	assert.Nil(t, out.Records[1].AmountUSD)
}

func TestRecords_Limit(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	resp := ts.get(t, "/v1/records?limit=1", "s1")
	var out RecordsResponse
	decode(t, resp, &out)
	assert.Equal(t, 4, out.Total)
	assert.Equal(t, 1, out.Returned)
}

func TestRecords_EmptyResult(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	resp := ts.get(t, "/v1/records?city=Pune", "s1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out RecordsResponse
	decode(t, resp, &out)
	assert.Equal(t, 0, out.Total)
	assert.NotNil(t, out.Records)
}

func TestQueryValidation(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	tests := []struct {
		query string
		field string
	}{
		{"year=17", "year"},
		{"year=twenty", "year"},
		{"limit=-1", "limit"},
		{"limit=abc", "limit"},
		{"horizon=99999", "horizon"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := ts.get(t, "/v1/records?"+tt.query, "s1")
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var p Problem
			decode(t, resp, &p)
			assert.Equal(t, http.StatusBadRequest, p.Status)
			assert.Contains(t, p.Fields, tt.field)
			assert.Equal(t, "/v1/records", p.Instance)
		})
	}
}

func TestYearAllIsAccepted(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	resp := ts.get(t, "/v1/summary?year=All", "s1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out SummaryResponse
	decode(t, resp, &out)
	assert.Equal(t, "all", out.Criteria)
	assert.Equal(t, 4, out.Summary.Records)
}

func TestFailedLoadIsSoft(t *testing.T) {
	ts := newTestServer(t, filepath.Join(t.TempDir(), "missing.csv"))
	for _, path := range []string{"/v1/records", "/v1/summary", "/v1/options", "/v1/charts/industries", "/v1/forecast"} {
		t.Run(path, func(t *testing.T) {
			resp := ts.get(t, path, "s1")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var out notLoaded
			decode(t, resp, &out)
			assert.False(t, out.Loaded)
			assert.True(t, strings.HasPrefix(out.Warning, "Error loading CSV:"), out.Warning)
		})
	}
}

func TestOptions(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	resp := ts.get(t, "/v1/options", "s1")
	var out pipeline.FilterOptions
	decode(t, resp, &out)
	assert.Equal(t, []string{"All", "2017", "2018"}, out.Years)
	assert.Equal(t, []string{"All", "Bengaluru", "Noida"}, out.Cities)
}

func TestCharts(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))

	resp := ts.get(t, "/v1/charts/cities?limit=1", "s1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Kind string `json:"kind"`
		Data []struct {
			City  string `json:"city"`
			Deals int    `json:"deals"`
		} `json:"data"`
	}
	decode(t, resp, &out)
	assert.Equal(t, "cities", out.Kind)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Noida", out.Data[0].City)

	resp = ts.get(t, "/v1/charts/bubbles", "s1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestForecast(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	resp := ts.get(t, "/v1/forecast?horizon=30", "s1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out ForecastResponse
	decode(t, resp, &out)
	assert.True(t, out.Loaded)
	assert.Equal(t, 30, out.Horizon)
	require.NotNil(t, out.Result)
	assert.Len(t, out.Result.Projection, 30)
	for _, p := range out.Result.Projection {
		assert.LessOrEqual(t, p.Lower, p.Value)
		assert.LessOrEqual(t, p.Value, p.Upper)
	}
}

func TestForecast_ConfiguredHorizonIsCapped(t *testing.T) {
	svc := New(Config{DataFile: writeFixture(t), Horizon: 1 << 40})
	assert.Equal(t, forecast.MaxHorizon, svc.cfg.Horizon)

	srv := httptest.NewServer(svc.Handler())
	t.Cleanup(srv.Close)
	ts := &testServer{svc: svc, srv: srv, loads: &atomic.Int32{}}

	resp := ts.get(t, "/v1/forecast", "s1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out ForecastResponse
	decode(t, resp, &out)
	assert.Equal(t, forecast.MaxHorizon, out.Horizon)

	resp = ts.get(t, fmt.Sprintf("/v1/forecast?horizon=%d", forecast.MaxHorizon+1), "s1")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, writeFixture(t))
	ts.get(t, "/v1/summary", "s1")

	resp := ts.get(t, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `fundboard_http_requests_total{code="200",method="GET",route="/v1/summary"} 1`)
	assert.Contains(t, text, `fundboard_dataset_loads_total{result="ok"} 1`)
	assert.Contains(t, text, "fundboard_sessions_active 1")
}
