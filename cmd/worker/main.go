package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

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
		slog.Default().Info("test mode detected, skipping worker startup")
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
		// The worker only exists to run redis-backed queues.
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	auditLogger := shared.NewAuditLogger(pool)

	companiesService := companies.NewService(companies.NewRepository(pool))
	invoicingService := invoicing.NewService(invoicing.NewRepository(pool), auditLogger)
	fecService := fec.NewService(
		integration.NewDocumentSource(invoicingService),
		integration.NewCompanyDirectory(companiesService),
		auditLogger,
		fec.Encoding(cfg.FECEncoding),
	)
	exportStore := cache.NewExportStore(redisClient, cfg.ExportCacheTTL)
	exportJob := jobs.NewFECExportJob(fecService, exportStore, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeFECExport, Handler: exportJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker")
	if err := worker.Run(ctx); err != nil {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
