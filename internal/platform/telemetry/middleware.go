package telemetry

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-lab/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-lab/telemetry"

	// TraceIDHeader carries the active trace id back to the client.
	TraceIDHeader = "X-Trace-ID"

	// probePrefix marks the operational endpoints that are not traced.
	probePrefix = "/-/"
)

// httpMetrics are the OTel HTTP server instruments. Prometheus counts
// record mutations separately in platform/metrics.
type httpMetrics struct {
	duration metric.Float64Histogram
	requests metric.Int64Counter
	inflight metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	duration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	requests, err := meter.Int64Counter("http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"))
	if err != nil {
		return nil, err
	}

	inflight, err := meter.Int64UpDownCounter("http.server.active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"))
	if err != nil {
		return nil, err
	}

	return &httpMetrics{duration: duration, requests: requests, inflight: inflight}, nil
}

// Middleware records the HTTP instruments and tags the request with its
// trace id: the X-Trace-ID response header and the trace_id log field. It
// must run after TracingMiddleware so a span exists.
func Middleware() gin.HandlerFunc {
	m, err := newHTTPMetrics(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		// Route is empty for unmatched paths, which keeps cardinality bounded.
		route := attribute.String("http.route", c.FullPath())
		method := attribute.String("http.method", c.Request.Method)

		if m != nil {
			m.inflight.Add(ctx, 1, metric.WithAttributes(method, route))
			defer m.inflight.Add(ctx, -1, metric.WithAttributes(method, route))
		}

		// Set before c.Next so the header survives handlers that write the body.
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.HasTraceID() {
			traceID := sc.TraceID().String()
			c.Header(TraceIDHeader, traceID)
			c.Request = c.Request.WithContext(logging.WithTraceID(ctx, traceID))
		}

		c.Next()

		if m != nil {
			attrs := metric.WithAttributes(method, route, attribute.Int("http.status_code", c.Writer.Status()))
			m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
			m.requests.Add(ctx, 1, attrs)
		}
	}
}

// TracingMiddleware starts a server span per request with otelgin. Probe
// and metrics endpoints under /-/ are skipped.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName,
		otelgin.WithFilter(func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, probePrefix)
		}),
	)
}
