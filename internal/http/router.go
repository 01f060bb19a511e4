package http

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/portfolio/internal/config"
	"github.com/geocoder89/portfolio/internal/http/handlers"
	"github.com/geocoder89/portfolio/internal/http/middlewares"
	"github.com/geocoder89/portfolio/internal/http/views"
	"github.com/geocoder89/portfolio/internal/observability"
	"github.com/geocoder89/portfolio/internal/session"
	"github.com/geocoder89/portfolio/internal/uploads"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "portfolio"

// Deps are the wired stores and services the routes need.
type Deps struct {
	Content  handlers.ContentReader
	Writer   handlers.ContentWriter
	Users    handlers.UserReader
	Sessions *session.Manager
	Uploads  *uploads.Store

	// optional
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	Checks   map[string]handlers.Pinger

	// makes /readyz report 503 once graceful shutdown starts
	ShuttingDown func() bool
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) (*gin.Engine, error) {
	if cfg.Env != "dev" && cfg.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	renderer, err := views.New()

	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer

	secure := cfg.IsProd()
	guard := middlewares.NewSessionGuard(deps.Sessions, secure)

	// middleware

	if cfg.OtelEnabled {
		r.Use(otelgin.Middleware(serviceName))
	}
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(guard.LoadSession())

	// static files
	r.StaticFS("/static/assets", views.Assets())
	r.Static("/static/uploads/certs", deps.Uploads.CertificationDir())

	// ops
	health := handlers.NewHealthHandler(deps.Checks, deps.ShuttingDown)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// public pages
	pages := handlers.NewPagesHandler(deps.Content, deps.Uploads, log, secure)

	r.GET("/", pages.Index)
	r.GET("/about", pages.About)
	r.GET("/educational-qualification", pages.Education)
	r.GET("/professional-experience", pages.Experience)
	r.GET("/certifications", pages.Certifications)
	r.GET("/technical-skills", pages.Skills)
	r.GET("/projects", pages.Projects)
	r.GET("/download_resume", pages.DownloadResume)

	api := r.Group("/api/content")
	api.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	{
		contentAPI := handlers.NewContentAPIHandler(deps.Content, log)
		api.GET("/:section", contentAPI.GetSection)
		api.OPTIONS("/:section", func(ctx *gin.Context) { ctx.Status(http.StatusNoContent) })
	}

	// admin
	var loginObserver handlers.LoginObserver
	var uploadObserver handlers.UploadObserver
	if deps.Prom != nil {
		loginObserver = deps.Prom
		uploadObserver = deps.Prom
	}

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Sessions, deps.Uploads, loginObserver, log, handlers.AuthHandlerConfig{
		SecureCookies: secure,
		SessionTTL:    cfg.SessionTTL,
	})
	adminHandler := handlers.NewAdminHandler(deps.Writer, deps.Uploads, uploadObserver, log)

	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
	sameOrigin := middlewares.RequireSameOrigin(middlewares.OriginPolicy{TrustForwardedProto: cfg.TrustForwardedProto})

	admin := r.Group("/admin")
	{
		admin.GET("/login", authHandler.LoginPage)
		admin.POST("/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
		admin.GET("/logout", sameOrigin, authHandler.Logout)
		admin.GET("/dashboard", guard.RequireAdminPage("/admin/login"), authHandler.Dashboard)

		writes := admin.Group("")
		writes.Use(guard.RequireAdminJSON(), sameOrigin)
		{
			writes.POST("/add_experience", adminHandler.AddExperience)
			writes.POST("/add_project", adminHandler.AddProject)

			uploadsGroup := writes.Group("")
			uploadsGroup.Use(middlewares.MaxBodyBytes(cfg.MaxUploadBytes))
			uploadsGroup.POST("/add_certification", adminHandler.AddCertification)
			uploadsGroup.POST("/upload_resume", adminHandler.UploadResume)
		}
	}

	return r, nil
}
