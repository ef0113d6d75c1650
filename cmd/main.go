package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wojciech-zurek/the-secret-project/config"
	"github.com/wojciech-zurek/the-secret-project/internal/core"
	"github.com/wojciech-zurek/the-secret-project/internal/csv"
	"github.com/wojciech-zurek/the-secret-project/internal/http"
	"github.com/wojciech-zurek/the-secret-project/internal/metrics"
	"github.com/wojciech-zurek/the-secret-project/internal/port"
	"github.com/wojciech-zurek/the-secret-project/internal/runner"
	"github.com/wojciech-zurek/the-secret-project/internal/sqlite"
)

func main() {
	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout carries the output CSV.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <transactions.csv>\n", os.Args[0])
		os.Exit(2)
	}
	inputPath := os.Args[1]

	runID := uuid.New()
	logger.InfoContext(ctx, "Starting run",
		"run_id", runID,
		"input", inputPath,
		"strategy", cfg.Strategy,
		"workers", cfg.Workers,
		"audit", cfg.Audit,
	)

	var (
		auditSink   core.AuditSink
		memorySink  *core.MemoryAuditSink
		auditClient *sqlite.Client
		auditStore  *sqlite.AuditStore
	)
	switch cfg.Audit {
	case config.AuditMemory:
		memorySink = core.NewMemoryAuditSink()
		auditSink = memorySink
	case config.AuditSQLite:
		auditClient, err = sqlite.NewClient(cfg.Database)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create audit db client", "error", err)
			os.Exit(1)
		}
		defer auditClient.Close()

		auditStore = sqlite.NewAuditStore(auditClient.DB(), runID)
		if err = auditStore.Init(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to init audit schema", "error", err)
			os.Exit(1)
		}
		auditSink = auditStore
	}

	var processorOptions []core.ProcessorOption
	if auditSink != nil {
		processorOptions = append(processorOptions, core.WithAuditSink(auditSink))
	}

	newProcessor := func() port.Processor {
		if cfg.Strategy == config.StrategyBasic {
			return core.NewBasicProcessor(
				core.NewAccountStore(),
				core.NewTransactionStore(),
				core.NewDisputeStore(),
				processorOptions...,
			)
		}

		return core.NewWrappedProcessor(processorOptions...)
	}

	registry := prometheus.NewRegistry()
	tally := &runner.Tally{}
	runnerOptions := []runner.Option{
		runner.WithObserver(metrics.New(registry)),
		runner.WithObserver(tally),
	}

	var host runner.Runner
	if cfg.Workers > 1 {
		host = runner.NewSharded(cfg.Workers, newProcessor, runnerOptions...)
	} else {
		host = runner.NewSequential(newProcessor(), runnerOptions...)
	}

	cache := &http.SnapshotCache{}
	var adminServer *http.Server
	if cfg.Admin.Enabled() {
		adminServer = http.NewServer(cache, registry, logger, cfg.Admin)
		if err = adminServer.Start(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to start admin server", "error", err)
			os.Exit(1)
		}
	}

	input, err := os.Open(inputPath)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open input", "error", err)
		os.Exit(1)
	}
	defer input.Close()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	shutdown := make(chan struct{})
	go func() {
		<-stop
		logger.InfoContext(ctx, "Shutdown requested")
		cancelRun()
		close(shutdown)
	}()

	if err = host.Run(runCtx, csv.NewReader(input)); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.InfoContext(ctx, "Run aborted")
		} else {
			logger.ErrorContext(ctx, "Run failed", "error", err)
		}

		flushAudit(ctx, logger, auditStore)
		os.Exit(1)
	}

	snapshots := host.Snapshots()
	cache.Publish(snapshots)

	if err = csv.NewWriter(os.Stdout).WriteAccounts(snapshots); err != nil {
		logger.ErrorContext(ctx, "Failed to write accounts", "error", err)
		os.Exit(1)
	}

	if memorySink != nil {
		for _, entry := range memorySink.Entries() {
			logger.InfoContext(ctx, "Rejected record",
				"kind", entry.Record.Kind,
				"client", entry.Record.Client,
				"tx", entry.Record.Tx,
				"reason", entry.Reason,
			)
		}
	}
	flushAudit(ctx, logger, auditStore)

	logger.InfoContext(ctx, "Run complete",
		"run_id", runID,
		"accepted", tally.Accepted(),
		"rejected", tally.Rejected(),
		"accounts", len(snapshots),
	)

	if adminServer != nil {
		logger.InfoContext(ctx, "Admin server keeps serving until shutdown")
		<-shutdown

		if err = adminServer.Stop(ctx); err != nil {
			logger.ErrorContext(ctx, "Error stopping admin server", "error", err)
		}

		logger.InfoContext(ctx, "Application shutdown complete")
	}
}

func flushAudit(ctx context.Context, logger core.Logger, auditStore *sqlite.AuditStore) {
	if auditStore == nil {
		return
	}

	if err := auditStore.Flush(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to flush audit records", "error", err)
	}
}
