package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/facturio/facturio/internal/app"
	"github.com/facturio/facturio/internal/fec"
	"github.com/facturio/facturio/internal/integration"
	"github.com/facturio/facturio/internal/invoicing"
	"github.com/facturio/facturio/internal/masterdata/companies"
	"github.com/facturio/facturio/internal/platform/cache"
	"github.com/facturio/facturio/internal/platform/db"
	"github.com/facturio/facturio/internal/shared"
	"github.com/facturio/facturio/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	auditLogger := shared.NewAuditLogger(pool)

	companiesRepo := companies.NewRepository(pool)
	companiesService := companies.NewService(companiesRepo)
	companiesHandler := companies.NewHandler(logger, companiesService)

	invoicingRepo := invoicing.NewRepository(pool)
	invoicingService := invoicing.NewService(invoicingRepo, auditLogger)
	invoicingHandler := invoicing.NewHandler(logger, invoicingService)

	fecService := fec.NewService(
		integration.NewDocumentSource(invoicingService),
		integration.NewCompanyDirectory(companiesService),
		auditLogger,
		fec.Encoding(cfg.FECEncoding),
	)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()
	exportQueue := jobs.NewEnqueuer(asynqClient)
	exportStore := cache.NewExportStore(redisClient, cfg.ExportCacheTTL)

	fecHandler := fec.NewHandler(logger, fecService, exportQueue, exportStore)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CompaniesHandler: companiesHandler,
		InvoicingHandler: invoicingHandler,
		FECHandler:       fecHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
