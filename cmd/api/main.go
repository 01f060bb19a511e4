package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/geocoder89/portfolio/internal/auth"
	"github.com/geocoder89/portfolio/internal/config"
	"github.com/geocoder89/portfolio/internal/content"
	"github.com/geocoder89/portfolio/internal/db"
	httpx "github.com/geocoder89/portfolio/internal/http"
	"github.com/geocoder89/portfolio/internal/http/handlers"
	"github.com/geocoder89/portfolio/internal/observability"
	"github.com/geocoder89/portfolio/internal/redisclient"
	"github.com/geocoder89/portfolio/internal/repo/memory"
	"github.com/geocoder89/portfolio/internal/repo/postgres"
	"github.com/geocoder89/portfolio/internal/session"
	"github.com/geocoder89/portfolio/internal/uploads"
	"github.com/prometheus/client_golang/prometheus"
)

// contentStore is what both drivers provide to the router.
type contentStore interface {
	content.Source
	handlers.ContentWriter
}

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.OtelEnabled {
		shutdownTracer, err := observability.InitTracer(context.Background(), observability.TracerConfig{
			ServiceName: "portfolio",
			Env:         cfg.Env,
			Endpoint:    cfg.OtelEndpoint,
			SampleRatio: cfg.OtelSampleRatio,
		})

		if err != nil {
			log.Warn("tracing disabled", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdownTracer(ctx)
			}()
		}
	}

	prom := observability.NewProm(prometheus.DefaultRegisterer)
	checks := map[string]handlers.Pinger{}

	var (
		store   contentStore
		primary content.Source
		users   handlers.UserReader
	)

	switch cfg.DBDriver {
	case config.DriverMemory:
		memUsers := memory.NewUsersRepo()
		store, users = memory.NewContentRepo(), memUsers
		primary = store

		ctx, cancel := config.WithTimeout(5 * time.Second)
		res, err := db.EnsureAdminUser(ctx, memUsers, cfg.AdminUser, cfg.AdminPassword, false)
		cancel()

		if err != nil {
			log.Warn("no admin account seeded", "err", err)
		} else {
			log.Info("admin account", "username", cfg.AdminUser, "result", res)
		}

	default:
		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			log.Error("invalid database url", "err", err)
			os.Exit(1)
		}

		defer pool.Close()

		ctx, cancel := config.WithTimeout(30 * time.Second)

		// the site serves fallback content while Postgres is down, so this only warns
		if err := db.Ping(ctx, pool); err != nil {
			log.Warn("database unreachable at startup", "err", err)
		} else if cfg.DBAutoMigrate {
			if err := db.Migrate(ctx, pool, log); err != nil {
				cancel()
				log.Error("migrations failed", "err", err)
				os.Exit(1)
			}
		}

		cancel()

		store = postgres.NewContentRepo(pool, prom)
		primary = content.NewBreakerSource(store, content.BreakerConfig{})
		users = postgres.NewUsersRepo(pool, prom)
		checks["db"] = func(ctx context.Context) error { return db.Ping(ctx, pool) }
	}

	var sessionStore session.Store = session.NewMemoryStore()

	if cfg.RedisAddr != "" {
		rc := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		defer rc.Close()

		ctx, cancel := config.WithTimeout(2 * time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn("redis unreachable at startup", "addr", cfg.RedisAddr, "err", err)
		}
		cancel()

		sessionStore = session.NewRedisStore(rc.Raw())
		checks["redis"] = rc.Ping
	}

	if cfg.SessionSecret == "dev-secret-key" && cfg.IsProd() {
		log.Warn("SESSION_SECRET is the development default")
	}

	uploadStore := uploads.NewStore(cfg.StaticDir)

	if err := uploadStore.EnsureDirs(); err != nil {
		log.Warn("upload directories not ready", "err", err)
	}

	resolver := content.NewResolver(primary, content.NewDocumentSource(cfg.DataFile), log, content.WithObserver(prom))

	var shuttingDown atomic.Bool

	// set up routers with the log
	router, err := httpx.NewRouter(log, cfg, httpx.Deps{
		Content:  resolver,
		Writer:   store,
		Users:    users,
		Sessions: session.NewManager(sessionStore, auth.NewManager(cfg.SessionSecret, cfg.SessionTTL)),
		Uploads:  uploadStore,
		Prom:     prom,
		Gatherer: prometheus.DefaultGatherer,
		Checks:   checks,

		ShuttingDown: shuttingDown.Load,
	})

	if err != nil {
		log.Error("router setup failed", "err", err)
		os.Exit(1)
	}

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DBDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")
	shuttingDown.Store(true)

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
