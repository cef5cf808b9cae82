package router

import (
	"github.com/easybill/backend/internal/infrastructure/config"
	"github.com/easybill/backend/internal/infrastructure/logger"
	"github.com/easybill/backend/internal/interfaces/http/dto"
	"github.com/easybill/backend/internal/interfaces/http/handler"
	"github.com/easybill/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/easybill/backend/docs"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Bill      *handler.BillHandler
	Statement *handler.StatementHandler
	Health    *handler.HealthHandler
}

// EngineOptions carries everything needed to assemble the gin engine
type EngineOptions struct {
	Config    *config.Config
	Logger    *zap.Logger
	Validator middleware.TokenValidator
	Handlers  Handlers
	// Registry receives the HTTP metrics and backs the /metrics endpoint.
	// prometheus.DefaultRegisterer is used when nil.
	Registry *prometheus.Registry
}

// Engine is the assembled HTTP engine plus the background resources it owns
type Engine struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops the rate limiter cleanup goroutines
func (e *Engine) Close() {
	for _, l := range e.limiters {
		l.Stop()
	}
}

// NewEngine builds the gin engine with the middleware stack and every route.
//
// Middleware order: request id, panic recovery, request logger, security
// headers, CORS, body limit, rate limit, tracing, metrics. Routes under /api
// other than /api/auth and /api/health sit behind the bearer auth gate.
func NewEngine(opts EngineOptions) *Engine {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	e := &Engine{Engine: engine}

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureWithConfig(middleware.SecurityConfigFor(cfg.App.Env)))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())

	if cfg.Metrics.Enabled {
		metricsCfg := middleware.DefaultHTTPMetricsConfig()
		var gatherer prometheus.Gatherer
		if opts.Registry != nil {
			metricsCfg.Registerer = opts.Registry
			gatherer = opts.Registry
		}
		engine.Use(middleware.HTTPMetrics(metricsCfg))
		engine.GET(cfg.Metrics.Path, middleware.MetricsHandler(gatherer))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(dto.GetHTTPStatus(dto.ErrCodeNotFound), dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found"))
	})

	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		Validator: opts.Validator,
		Logger:    log,
	})

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfigFrom(cfg.Swagger), jwtAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	h := opts.Handlers
	engine.GET("/health", h.Health.Health)

	// Public routes
	public := NewRouter(engine)

	authRoutes := NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		e.limiters = append(e.limiters, authLimiter)
		authRoutes.Use(middleware.RateLimit(authLimiter))
	}
	authRoutes.POST("/register", h.Auth.Register)
	authRoutes.POST("/login", h.Auth.Login)

	systemRoutes := NewDomainGroup("system", "")
	systemRoutes.GET("/health", h.Health.Health)

	public.Register(authRoutes).Register(systemRoutes)
	public.Setup()

	// Authenticated routes
	api := NewRouter(engine)
	api.Use(
		jwtAuth,
		middleware.TracingAttributeInjector(),
		middleware.ProfilingWithConfig(middleware.ProfilingConfig{Enabled: cfg.Telemetry.ProfilingEnabled}),
	)

	customerRoutes := NewDomainGroup("customers", "/customers")
	customerRoutes.GET("", h.Customer.List)
	customerRoutes.POST("", h.Customer.Create)
	customerRoutes.GET("/:id", h.Customer.GetByID)
	customerRoutes.PUT("/:id", h.Customer.Update)
	customerRoutes.DELETE("/:id", h.Customer.Delete)
	customerRoutes.GET("/:id/statement", h.Customer.Statement)

	billRoutes := NewDomainGroup("bills", "/bills")
	billRoutes.GET("", h.Bill.List)
	billRoutes.POST("", h.Bill.Create)
	billRoutes.GET("/:id", h.Bill.GetByID)
	billRoutes.PUT("/:id", h.Bill.Update)
	billRoutes.DELETE("/:id", h.Bill.Delete)
	billRoutes.PATCH("/:id/payment", h.Bill.SetPaymentStatus)
	billRoutes.GET("/:id/pdf", h.Bill.Document)

	statementRoutes := NewDomainGroup("statements", "/statements")
	statementRoutes.GET("/monthly", h.Statement.MonthlySummaries)

	api.Register(customerRoutes).
		Register(billRoutes).
		Register(statementRoutes)
	api.Setup()

	return e
}
