package main

import (
	"context"
	"os"
	"time"

	"spendboard/internal/cli"
	"spendboard/internal/core"
	"spendboard/internal/demo"
	"spendboard/internal/ledger"
	"spendboard/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	st, cleanup := cli.OpenStore(logger, cfg)
	defer cleanup()

	ctx := context.Background()

	led := ledger.New(st, logger)
	if err := led.Initialize(ctx); err != nil {
		logger.Error("Failed to load record store", log.FieldError, err)
		os.Exit(1)
	}

	now := time.Now()
	anchor := core.NewDate(now.Year(), int(now.Month()), now.Day())
	records := demo.Generate(cfg.DemoCount, cfg.DemoSeed, anchor)

	logger.Info("Seeding demo expenses",
		"count", len(records),
		"seed", cfg.DemoSeed,
		log.FieldBackend, cfg.StoreBackend)

	var totalCents int64
	for _, rec := range records {
		if _, err := led.Add(ctx, rec); err != nil {
			logger.Error("Failed to append demo expense",
				log.FieldPayer, rec.Payer,
				log.FieldError, err)
			os.Exit(1)
		}
		totalCents += rec.Amount.Cents
	}

	logger.Info("Demo seed complete",
		"records", len(records),
		"total", core.Money{Cents: totalCents}.Format(),
		"ledger_size", led.Size())
}
