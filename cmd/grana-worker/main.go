package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"grana/internal/amqp"
	"grana/internal/cli"
	"grana/internal/export"
	"grana/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos := cli.InitStorage(logger, cfg)
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err, "url", cfg.AMQPURL)
		os.Exit(1)
	}
	defer client.Close()

	var exporter worker.EventExporter
	if cfg.SheetsExportEnabled() {
		sheets, err := export.NewSheetsExporter(ctx,
			cfg.GoogleSpreadsheetID, cfg.GoogleSheetName,
			cfg.GoogleCredentialsFile, cfg.GoogleCredentialsJSON)
		if err != nil {
			logger.Error("Failed to initialize sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = sheets
		logger.Info("Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	}

	w := worker.NewEventWorker(repos.Events, exporter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return client.ConsumeLedgerEvents(gctx, w.HandleEvent)
	})

	logger.Info("Worker started", "queue", cfg.AMQPQueue, "backend", cfg.DataBackend)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
