package main

import (
	"context"
	"errors"
	"os"
	"time"

	"spendboard/internal/amqp"
	"spendboard/internal/cli"
	"spendboard/internal/log"
	"spendboard/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the snapshot worker")
		os.Exit(1)
	}

	st, cleanup := cli.OpenStore(logger, cfg)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		cleanup()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snap := worker.NewSnapshotWorker(st, cfg.ExportPath, cfg.TopN, logger)

	// Write a snapshot immediately so the file matches the store even if
	// messages were missed while the worker was down.
	if err := snap.StartupSnapshot(ctx); err != nil {
		logger.Error("Failed startup snapshot", log.FieldError, err)
		// Continue; the next message will retry the rebuild.
	}

	go func() {
		handler := func(msg *amqp.ExpenseRecordedMessage) error {
			return snap.HandleExpenseRecorded(ctx, msg)
		}
		if err := amqpClient.ConsumeExpenseRecorded(ctx, handler); err != nil {
			if !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", log.FieldError, err)
			}
			cancel()
		}
	}()

	logger.Info("Starting spendboard-worker",
		log.FieldBackend, cfg.StoreBackend,
		log.FieldExportPath, cfg.ExportPath,
		log.FieldQueue, cfg.AMQPQueue)

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		cancel()
		if err := amqpClient.Close(); err != nil {
			logger.Error("AMQP close error", log.FieldError, err)
		}
		cleanup()
	})

	select {
	case <-done:
	case <-ctx.Done():
		// Consumption failed on its own; give in-flight work a moment.
		time.Sleep(time.Second)
	}
	logger.Info("Worker stopped")
}
