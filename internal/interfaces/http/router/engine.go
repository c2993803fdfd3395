package router

import (
	"github.com/aquaflow/backend/internal/infrastructure/config"
	"github.com/aquaflow/backend/internal/infrastructure/logger"
	"github.com/aquaflow/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const defaultMaxBodySize = 1 << 20

// EngineConfig carries what the middleware stack needs
type EngineConfig struct {
	HTTP      config.HTTPConfig
	Logger    *zap.Logger
	Tracing   middleware.TracingConfig
	Profiling middleware.ProfilingConfig
	// Meter is nil when metrics export is off
	Meter metric.Meter
	Actor middleware.ActorConfig
}

// NewEngine builds the gin engine with the middleware stack and every route.
//
// Order: request id, access log, panic recovery, security headers, CORS,
// body limit, tracing, metrics, then on /api only the actor, span
// attributes and profiling labels.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	httpMetrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	maxBody := cfg.HTTP.MaxBodySize
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(maxBody),
		middleware.TracingWithConfig(cfg.Tracing),
		httpMetrics,
	)

	engine.GET("/health", h.System.Health)

	if cfg.Actor.Logger == nil {
		cfg.Actor.Logger = log
	}
	r := NewRouter(engine, WithAPIVersion("v1"))
	r.Use(
		middleware.Actor(cfg.Actor),
		middleware.SpanAttributes(),
		middleware.ProfilingWithConfig(cfg.Profiling),
	)
	r.Register(APIGroups(h)...)
	r.Setup()

	return engine, nil
}
