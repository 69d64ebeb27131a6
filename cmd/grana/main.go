package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"grana/internal/amqp"
	"grana/internal/cli"
	grahttp "grana/internal/http"
	"grana/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos := cli.InitStorage(logger, cfg)
	defer func() {
		if err := repos.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	// Event publishing is optional: without a broker the API still serves,
	// it just skips the audit pipeline.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err, "url", cfg.AMQPURL)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	categories := services.NewCategoryService(repos.Categories)
	ledger := services.NewLedgerService(repos.Transactions, repos.Categories, publisher)
	dashboard := services.NewDashboardService(repos.Transactions)

	srv := grahttp.NewServer(":"+cfg.Port, categories, ledger, dashboard)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", "addr", srv.Addr, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server exited with error", "error", err)
		return
	}
	logger.Info("Server stopped")
}
