package http

import (
	"log/slog"
	"time"

	"github.com/geocoder89/userhub/internal/cache"
	"github.com/geocoder89/userhub/internal/http/handlers"
	"github.com/geocoder89/userhub/internal/http/middlewares"
	"github.com/geocoder89/userhub/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterConfig struct {
	Env                string
	ServiceName        string
	CORSAllowedOrigins []string
	MaxBodyBytes       int64
	ListCacheTTL       time.Duration
	WriteRateLimit     int // writes per client per minute, 0 disables
}

type Deps struct {
	Log      *slog.Logger
	Users    handlers.UsersService
	Registry *prometheus.Registry
	Prom     *observability.Prom
	Ready    func() bool
}

func NewRouter(cfg RouterConfig, deps Deps) (*gin.Engine, error) {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(deps.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	health := handlers.NewHealthHandler(deps.Ready)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	usersHandler := handlers.NewUsersHandler(
		deps.Users,
		handlers.WithListCache(cache.New[handlers.UsersListResponse](cfg.ListCacheTTL)),
		handlers.WithMetrics(deps.Prom),
	)

	limiter := middlewares.NewRateLimiter(cfg.WriteRateLimit, time.Minute)

	users := r.Group("/users")
	users.Use(
		limiter.Middleware(),
		middlewares.RequireJSON(),
		middlewares.MaxBodyBytes(cfg.MaxBodyBytes),
	)

	users.POST("", usersHandler.CreateUser)
	users.GET("", usersHandler.ListUsers)
	users.GET("/export", usersHandler.ExportUsers)
	users.GET("/:id", usersHandler.GetUserByID)
	users.PATCH("/:id", usersHandler.UpdateUser)
	users.DELETE("/:id", usersHandler.DeleteUser)

	return r, nil
}
