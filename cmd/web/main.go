// Package main provides the entry point for the MoodMunch web frontend
// service. It terminates the browser session cookie and talks to the recipe
// backend with the session's bearer token.
package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/moodmunch/web/internal/infrastructure/api"
	"github.com/moodmunch/web/internal/infrastructure/config"
	"github.com/moodmunch/web/internal/infrastructure/http/webserver"
	"github.com/moodmunch/web/internal/session"
	"github.com/moodmunch/web/pkg/healthcheck"
	"github.com/moodmunch/web/pkg/logger"
)

func main() {
	fmt.Println("MoodMunch Web Frontend")
	fmt.Println()

	app := fx.New(
		fx.NopLogger,

		fx.Provide(func() (*config.Config, error) {
			return config.Load("")
		}),

		fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
			return logger.New(logger.Config{
				Level:       cfg.App.LogLevel,
				Format:      cfg.App.LogFormat,
				Development: cfg.App.Debug,
			})
		}),

		fx.Provide(api.NewClient),

		fx.Provide(newSessionStore),

		fx.Provide(func(cfg *config.Config, store session.Store, log *zap.Logger) *session.Manager {
			return session.NewManager(store, cfg.Session.MaxAge, cfg.Session.SweepInterval, log)
		}),

		fx.Provide(func(cfg *config.Config, log *zap.Logger) *healthcheck.HealthCheck {
			return healthcheck.New(cfg.App.Version, log)
		}),

		fx.Provide(webserver.NewWebServer),

		fx.Invoke(registerHealthChecks),
		fx.Invoke(registerLifecycleHooks),
	)

	app.Run()
}

// newSessionStore selects the durable session store: Redis when enabled,
// otherwise JSON files under the configured state directory.
func newSessionStore(cfg *config.Config, log *zap.Logger) (session.Store, error) {
	if cfg.Redis.Enabled {
		store := session.NewRedisStore(cfg, log)
		return store, nil
	}
	return session.NewFileStore(cfg.Session.StateDir, log)
}

// registerHealthChecks wires dependency probes into the /health aggregate.
// The backend check degrades rather than fails: the session surface still
// works offline, only generation does not.
func registerHealthChecks(
	hc *healthcheck.HealthCheck,
	apiClient *api.Client,
	store session.Store,
	log *zap.Logger,
) {
	hc.Register("backend", healthcheck.CheckerFunc(func(ctx context.Context) healthcheck.Check {
		return healthcheck.Run("backend", func() (healthcheck.Status, string) {
			if _, err := apiClient.Health(ctx); err != nil {
				return healthcheck.StatusDegraded, err.Error()
			}
			return healthcheck.StatusHealthy, ""
		})
	}))

	if redisStore, ok := store.(*session.RedisStore); ok {
		hc.Register("redis", healthcheck.CheckerFunc(func(ctx context.Context) healthcheck.Check {
			return healthcheck.Run("redis", func() (healthcheck.Status, string) {
				if err := redisStore.Ping(ctx); err != nil {
					return healthcheck.StatusUnhealthy, err.Error()
				}
				return healthcheck.StatusHealthy, ""
			})
		}))
	}
}

func registerLifecycleHooks(
	lc fx.Lifecycle,
	server *webserver.WebServer,
	store session.Store,
	cfg *config.Config,
	log *zap.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting MoodMunch web frontend",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("backend", cfg.Backend.BaseURL),
			)
			go func() {
				if err := server.Start(); err != nil {
					log.Error("web server exited", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("shutdown failed", zap.Error(err))
			}
			if redisStore, ok := store.(*session.RedisStore); ok {
				if err := redisStore.Close(); err != nil {
					log.Warn("failed to close redis connection", zap.Error(err))
				}
			}
			log.Info("MoodMunch web frontend stopped")
			return nil
		},
	})
}
