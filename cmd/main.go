// Package main wires the HTTP server for the ImpactTrack service.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"impacttrack/config"
	"impacttrack/internal/auth"
	"impacttrack/internal/importer"
	"impacttrack/internal/observability"
	"impacttrack/internal/repository"
	"impacttrack/internal/transport/http/middleware"
	"impacttrack/internal/transport/http/server/handlers-fiber"
	"impacttrack/internal/usecase"
	"impacttrack/internal/usecase/domain"
	"impacttrack/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		panic(err)
	}
	if cfg.Auth.Disabled {
		log.Warnw("token verification is disabled, every request runs as super_admin")
	}

	repo, err := repository.New(ctx, "postgres", log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	uc := usecase.New(log, ctx, repo, cfg.Postgres.QueryTimeout,
		domain.WithImportLimits(importer.Limits{MaxRows: cfg.Import.MaxRows, MaxFileBytes: cfg.Import.MaxFileBytes}))

	serv := newServer(cfg, log, uc)

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := serv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout, "error", err)
	}
}

func newServer(cfg *config.Config, log *zap.SugaredLogger, uc usecase.InterfaceUsecase) *fiber.App {
	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ErrorHandler: handlers_fiber.ErrorHandler(log),
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(observability.HTTPMetrics())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	if cfg.Metrics.Enabled {
		serv.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := serv.Group("/api/v1", auth.Authenticate(auth.Config{
		Secret:   cfg.Auth.Secret,
		Issuer:   cfg.Auth.Issuer,
		Disabled: cfg.Auth.Disabled,
	}))
	handlers_fiber.NewHandler(log, uc).Register(api)
	return serv
}
