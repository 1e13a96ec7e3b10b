package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Journal metrics
	reportsTotal   *prometheus.CounterVec
	reportDuration prometheus.Histogram
	tradesAnalyzed prometheus.Gauge
	tradesImported prometheus.Counter
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradejournal_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradejournal_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradejournal_reports_total",
				Help: "Total number of analytics reports built",
			},
			[]string{"status"},
		),

		reportDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tradejournal_report_duration_seconds",
				Help:    "Time spent building an analytics report",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
		),

		tradesAnalyzed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tradejournal_trades_analyzed",
				Help: "Number of trades in the most recent report",
			},
		),

		tradesImported: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tradejournal_trades_imported_total",
				Help: "Total number of trades imported into the journal",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.reportsTotal)
	reg.MustRegister(r.reportDuration)
	reg.MustRegister(r.tradesAnalyzed)
	reg.MustRegister(r.tradesImported)

	return r
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	r.httpRequestsTotal.WithLabelValues(method, path, statusToString(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordReport records a report build and the number of trades it covered.
func (r *Registry) RecordReport(err error, trades int, duration float64) {
	if err != nil {
		r.reportsTotal.WithLabelValues("error").Inc()
		return
	}
	r.reportsTotal.WithLabelValues("ok").Inc()
	r.reportDuration.Observe(duration)
	r.tradesAnalyzed.Set(float64(trades))
}

// RecordImport adds imported trades to the import counter.
func (r *Registry) RecordImport(count int) {
	r.tradesImported.Add(float64(count))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
