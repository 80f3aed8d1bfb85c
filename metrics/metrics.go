package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teller_upstream_requests_total",
		Help: "Outbound Teller API calls by HTTP status code.",
	}, []string{"status"})

	upstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "teller_upstream_request_duration_seconds",
		Help:    "Outbound Teller API call latency.",
		Buckets: prometheus.DefBuckets,
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teller_http_requests_total",
		Help: "Handled HTTP requests by endpoint and status code.",
	}, []string{"endpoint", "status"})

	serviceInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "teller_service_info",
		Help: "Constant gauge labeled with the service name.",
	}, []string{"service"})
)

// ObserveUpstreamCall records one outbound Teller API call.
func ObserveUpstreamCall(status int, duration time.Duration) {
	upstreamCalls.WithLabelValues(strconv.Itoa(status)).Inc()
	upstreamDuration.Observe(duration.Seconds())
}

// ObserveRequest records one handled HTTP request.
func ObserveRequest(endpoint string, status int) {
	httpRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// MetricsServer exposes Prometheus metrics on a dedicated listener.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server bound to addr. The name ends up as the
// service label on teller_service_info.
func New(name, addr string) (*MetricsServer, error) {
	serviceInfo.WithLabelValues(name).Set(1)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}, nil
}

// ListenAndServe blocks serving the metrics endpoint.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
