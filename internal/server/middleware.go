package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs each request with method, path, status and duration.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, req)

			logger.Info("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// httpMetrics holds the Prometheus metrics for the dev server.
type httpMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

func newHTTPMetrics(namespace string, registry prometheus.Registerer) *httpMetrics {
	factory := promauto.With(registry)

	return &httpMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		}, []string{"method", "status_class"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of requests currently being served",
		}),
	}
}

// Metrics creates middleware that records Prometheus metrics for each
// request. Labels use the method and status class rather than the path
// to keep cardinality bounded on apps with parameterized routes.
func Metrics(namespace string, registry prometheus.Registerer) func(http.Handler) http.Handler {
	if namespace == "" {
		namespace = "loom"
	}
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	m := newHTTPMetrics(namespace, registry)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, req)

			m.requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(req.Method, statusClass(rec.status)).Inc()
		})
	}
}

// statusClass collapses a status code into its class ("2xx", "4xx", ...).
func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Tracing creates middleware that wraps each request in an OpenTelemetry
// span. The tracer comes from the global provider; configure it in main()
// before starting the server.
func Tracing(serviceName string) func(http.Handler) http.Handler {
	if serviceName == "" {
		serviceName = "loom"
	}
	tracer := otel.Tracer(serviceName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			spanName := fmt.Sprintf("%s %s", req.Method, spanRoute(req.URL.Path))

			ctx, span := tracer.Start(
				req.Context(),
				spanName,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", req.Method),
					attribute.String("http.target", req.URL.Path),
					attribute.String("http.host", req.Host),
				),
			)
			defer span.End()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, req.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", rec.status))
			if rec.status >= 500 {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
		})
	}
}

// spanRoute trims asset paths to their first segment so span names stay
// low-cardinality for static file trees.
func spanRoute(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	if len(parts) == 2 {
		return "/" + parts[0] + "/*"
	}
	return "/" + parts[0]
}
