package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"spendboard/internal/amqp"
	"spendboard/internal/cli"
	apphttp "spendboard/internal/http"
	"spendboard/internal/ledger"
	"spendboard/internal/log"
	"spendboard/internal/services"
	"spendboard/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	st, cleanup := cli.OpenStore(logger, cfg)

	led := ledger.New(st, logger)
	if err := led.Initialize(context.Background()); err != nil {
		var corrupt *store.CorruptError
		if errors.As(err, &corrupt) {
			logger.Error("Record store is corrupt, refusing to start",
				log.FieldPath, corrupt.Path,
				"line", corrupt.Line,
				"reason", corrupt.Reason)
		} else {
			logger.Error("Failed to load record store", log.FieldError, err)
		}
		cleanup()
		os.Exit(1)
	}

	// Events are optional; without an AMQP URL the board runs standalone.
	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			cleanup()
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("AMQP events enabled", log.FieldExchange, cfg.AMQPExchange, log.FieldQueue, cfg.AMQPQueue)
	} else {
		logger.Info("AMQP events disabled - no AMQP_URL provided")
	}

	board := services.NewBoard(led, events)
	srv := apphttp.NewServer(":"+cfg.Port, board, cfg.TopN, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	_, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cleanup()
	})

	logger.Info("Starting spendboard server",
		"port", cfg.Port,
		log.FieldBackend, cfg.StoreBackend,
		log.FieldRecords, led.Size())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-done
	logger.Info("Server stopped gracefully")
}
