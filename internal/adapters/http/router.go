package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-lab/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-lab/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-lab/internal/platform/telemetry"
)

// APIPrefix is the mount point of the resource API.
const APIPrefix = "/api"

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the tracing instrumentation.
	ServiceName string

	// Gate authenticates every API route except the login gate.
	Gate *middleware.AuthGate

	HealthHandler *handlers.HealthHandler
	AuthHandler   *handlers.AuthHandler
	AuthorHandler *handlers.AuthorHandler
	QuoteHandler  *handlers.QuoteHandler

	// Timeout bounds each API request. Zero uses DefaultRequestTimeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing, trace header and metrics
//  5. Logging - request logging (skips /-/ endpoints)
//  6. Timeout - request deadline on /api
//  7. Auth gate - every /api route except /api/auth
//
// Route groups:
//   - /-/ (internal): probes, build info and metrics, no auth
//   - /api/auth/ (public): login and logout
//   - /api/ (protected): API root, authors and quotes
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(noRoute)
	engine.NoMethod(noMethod)

	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	// Probes get no timeout and no auth.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group(APIPrefix, middleware.Timeout(timeout))
	setupAPIRoutes(api, cfg)
}

// setupAPIRoutes registers the login gate and the protected resources.
func setupAPIRoutes(api *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthHandler != nil {
		cfg.AuthHandler.RegisterAuthRoutes(api)
	}

	protected := api.Group("", cfg.Gate.RequireAuth())
	protected.GET("/", handlers.NewRootHandler(APIPrefix).Index)

	if cfg.AuthorHandler != nil {
		cfg.AuthorHandler.RegisterAuthorRoutes(protected)

		// The nested quotes POST route makes gin redirect POST on an author
		// detail path to the slashless path instead of answering 405.
		protected.POST("/authors/:id/", noMethod)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(protected)
	}
}
