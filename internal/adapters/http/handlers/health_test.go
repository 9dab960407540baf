package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-lab/internal/mocks"
	"github.com/jsamuelsen/quote-lab/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// serveProbe routes a GET through the /-/ group so route registration is
// covered along with the handler.
func serveProbe(t *testing.T, h *HealthHandler, path string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	h.RegisterHealthRoutesOnEngine(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("0.4.0", "9f1c2ab", "2026-10-01T08:00:00Z")

	assert.Equal(t, BuildInfo{
		Version:   "0.4.0",
		Commit:    "9f1c2ab",
		BuildTime: "2026-10-01T08:00:00Z",
		GoVersion: runtime.Version(),
	}, bi)
}

func TestHealthHandler_Liveness(t *testing.T) {
	// Liveness must not touch the registry; the mock fails on any call.
	w := serveProbe(t, NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, nil), "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		result     *ports.HealthResult
		wantStatus int
		wantChecks map[string]string
	}{
		{
			name: "store reachable",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{"sqlite": {Status: ports.HealthStatusHealthy}},
			},
			wantStatus: http.StatusOK,
			wantChecks: map[string]string{"sqlite": "healthy"},
		},
		{
			name: "store locked",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"sqlite": {Status: ports.HealthStatusUnhealthy, Message: "database is locked"},
				},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantChecks: map[string]string{"sqlite": "unhealthy"},
		},
		{
			name:       "nothing registered",
			result:     &ports.HealthResult{Status: ports.HealthStatusHealthy},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.result)

			w := serveProbe(t, NewHealthHandler(registry, BuildInfo{}, nil), "/-/ready")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

			var body struct {
				Status string `json:"status"`
				Checks map[string]struct {
					Status string `json:"status"`
				} `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, string(tt.result.Status), body.Status)
			assert.Len(t, body.Checks, len(tt.wantChecks))

			for name, status := range tt.wantChecks {
				assert.Equal(t, status, body.Checks[name].Status)
			}
		})
	}
}

func TestHealthHandler_ReadinessWithRealRegistry(t *testing.T) {
	checker := mocks.NewMockHealthChecker(t)
	checker.EXPECT().Name().Return("gorm-mysql")
	checker.EXPECT().Check(mock.Anything).Return(errors.New("dial tcp db:3306: connect: connection refused"))

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(checker))

	w := serveProbe(t, NewHealthHandler(registry, BuildInfo{}, nil), "/-/ready")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestHealthHandler_Build(t *testing.T) {
	info := BuildInfo{Version: "0.4.0", Commit: "9f1c2ab", BuildTime: "2026-10-01T08:00:00Z", GoVersion: "go1.25.7"}

	w := serveProbe(t, NewHealthHandler(mocks.NewMockHealthRegistry(t), info, nil), "/-/build")

	assert.Equal(t, http.StatusOK, w.Code)

	var got BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, info, got)
}

func TestHealthHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "quote_lab_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	w := serveProbe(t, NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, reg), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "quote_lab_test_total 1")
}

func TestHealthHandler_DefaultGatherer(t *testing.T) {
	h := NewHealthHandler(mocks.NewMockHealthRegistry(t), BuildInfo{}, nil)

	assert.Equal(t, prometheus.DefaultGatherer, h.gatherer)
}
