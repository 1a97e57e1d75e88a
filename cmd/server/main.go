// @title                      Shift Board API
// @version                    1.0
// @description                Workforce scheduling: work items, assignments, interest and attendance.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/asservice/shiftboard/internal/api"
	"github.com/asservice/shiftboard/internal/api/handler"
	"github.com/asservice/shiftboard/internal/core/ports"
	"github.com/asservice/shiftboard/internal/core/service"
	"github.com/asservice/shiftboard/internal/core/store"
	"github.com/asservice/shiftboard/internal/infrastructure/config"
	"github.com/asservice/shiftboard/internal/infrastructure/db/memory"
	"github.com/asservice/shiftboard/internal/infrastructure/db/mongo"
	"github.com/asservice/shiftboard/internal/infrastructure/db/redis"
	"github.com/asservice/shiftboard/internal/infrastructure/queue"
	"github.com/asservice/shiftboard/internal/infrastructure/textgen"
	"github.com/asservice/shiftboard/pkg/logger"
)

var version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{Service: "shiftboard"})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "shiftboard",
	})
	log.Info().Str("version", version).Str("backend", cfg.Store.Backend).Msg("starting")

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server exited")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.close()

	st, err := store.Load(ctx, backend.kv, store.Options{
		KeyPrefix:       cfg.Store.KeyPrefix,
		DefaultJoinCode: cfg.Schedule.DefaultJoinCode,
		UnassignPolicy:  store.UnassignPolicy(cfg.Schedule.UnassignPolicy),
	})
	if err != nil {
		return err
	}

	gen, err := textgen.New(textgen.Config{
		BaseURL:       cfg.Ollama.URL,
		Model:         cfg.Ollama.Model,
		Timeout:       cfg.Ollama.Timeout,
		RatePerMinute: cfg.Ollama.RatePerMinute,
	}, nil, logger.For("textgen"))
	if err != nil {
		return err
	}

	authService, err := service.NewAuthService(st, service.AuthOptions{
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      cfg.Auth.TokenTTL,
		AdminPassword: cfg.Auth.AdminPassword,
		UniqueEmails:  cfg.Auth.UniqueEmails,
	}, logger.For("auth"))
	if err != nil {
		return err
	}

	scheduleService := service.NewScheduleService(st, gen, service.ScheduleOptions{
		UniqueEmails:   cfg.Auth.UniqueEmails,
		ReminderWindow: cfg.Schedule.ReminderWindow,
		Guard:          backend.guard,
	}, logger.For("schedule"))

	workerCtx, stopWorkers := context.WithCancel(ctx)
	dispatcher := queue.NewDispatcher(cfg.Schedule.FollowUpWorkers, scheduleService, logger.For("followups"))
	dispatcher.Start(workerCtx)
	scheduleService.UseFollowUpQueue(dispatcher)

	e := api.NewRouter(api.Dependencies{
		AuthService:     authService,
		ScheduleService: scheduleService,
		HealthChecks:    backend.checks,
		JWTSecret:       cfg.Auth.JWTSecret,
		Logger:          logger.For("http"),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("shutting down")
	case err := <-serveErr:
		stopWorkers()
		dispatcher.Wait()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	err = server.Shutdown(shutdownCtx)

	stopWorkers()
	dispatcher.Wait()
	return err
}

// backend bundles the key-value store chosen by STORE_BACKEND with its
// health checks and the optional reminder guard.
type backend struct {
	kv     ports.KVStore
	guard  ports.ReminderGuard
	checks map[string]handler.DependencyCheck
	close  func()
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		conn, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return &backend{
			kv:     conn.KVStore(),
			checks: map[string]handler.DependencyCheck{"mongodb": conn.Ping},
			close:  func() { _ = conn.Close(context.Background()) },
		}, nil

	case config.BackendMemory:
		return &backend{kv: memory.NewKVStore(), close: func() {}}, nil

	default:
		conn, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return &backend{
			kv:     conn.KVStore(),
			guard:  conn.ReminderGuard(),
			checks: map[string]handler.DependencyCheck{"redis": conn.Ping},
			close:  func() { _ = conn.Close() },
		}, nil
	}
}
