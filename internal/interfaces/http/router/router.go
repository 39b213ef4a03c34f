package router

import (
	"github.com/erp/papelera/internal/infrastructure/config"
	"github.com/erp/papelera/internal/infrastructure/logger"
	"github.com/erp/papelera/internal/interfaces/http/handler"
	"github.com/erp/papelera/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	// registers the OpenAPI document served under /swagger
	_ "github.com/erp/papelera/docs"
)

// RouteRegistrar mounts a set of routes under the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds what the router needs besides the registrars
type Config struct {
	ServiceName    string
	HTTP           config.HTTPConfig
	SwaggerEnabled bool
	TracingEnabled bool
	Tokens         middleware.TokenValidator
	System         *handler.SystemHandler
	Logger         *zap.Logger
}

// Router builds the gin engine
type Router struct {
	cfg        Config
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(cfg Config, opts ...RouterOption) *Router {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r := &Router{cfg: cfg, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be mounted by Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup builds the engine: global middleware, health, docs, then the
// authenticated API group.
func (r *Router) Setup() (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(r.cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = r.cfg.HTTP.CORSAllowOrigins
	if len(r.cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = r.cfg.HTTP.CORSAllowMethods
	}
	if len(r.cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = r.cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: r.cfg.ServiceName,
			Enabled:     r.cfg.TracingEnabled,
		}),
		logger.GinMiddleware(r.cfg.Logger),
		logger.Recovery(r.cfg.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(r.cfg.HTTP.MaxBodySize),
	)

	if r.cfg.System != nil {
		engine.GET("/health", r.cfg.System.Health)
		engine.NoRoute(r.cfg.System.NoRoute)
	}
	if r.cfg.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := engine.Group("/api/" + r.apiVersion)
	api.Use(
		middleware.JWTAuth(middleware.AuthConfig{Validator: r.cfg.Tokens, Logger: r.cfg.Logger}),
		middleware.SpanAttributes(),
	)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return engine, nil
}
