package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/theirongolddev/fundboard/internal/pipeline"
	"github.com/theirongolddev/fundboard/internal/session"
)

type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	loads    *prometheus.CounterVec
	evicted  prometheus.Counter
}

func newMetrics(cache *session.Cache) *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fundboard",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fundboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fundboard",
			Name:      "dataset_loads_total",
			Help:      "Dataset loads by outcome.",
		}, []string{"result"}),
		evicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fundboard",
			Name:      "sessions_evicted_total",
			Help:      "Sessions removed by the idle sweep.",
		}),
	}
	sessions := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "fundboard",
		Name:      "sessions_active",
		Help:      "Sessions holding a loaded dataset.",
	}, func() float64 { return float64(cache.Len()) })

	m.registry.MustRegister(m.requests, m.duration, m.loads, m.evicted, sessions)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// countingLoader wraps load so every dataset load is counted by outcome.
func (s *Service) countingLoader(load session.LoaderFunc) session.LoaderFunc {
	if load == nil {
		load = pipeline.Load
	}
	return func(path string) *pipeline.LoadResult {
		res := load(path)
		result := "ok"
		if res.Failed() {
			result = "error"
		}
		// metrics is set after the cache is built; loads only happen on requests.
		if s.metrics != nil {
			s.metrics.loads.WithLabelValues(result).Inc()
		}
		return res
	}
}
