package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("unexpected default port: %q", cfg.Port)
	}
	if cfg.StoreBackend != "csv" || cfg.CSVPath == "" {
		t.Fatalf("csv should be the default backend: %+v", cfg)
	}
	if cfg.TopN != 10 {
		t.Fatalf("unexpected default top-n: %d", cfg.TopN)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("LEADERBOARD_TOP_N", "3")
	cfg := Load()
	if cfg.Port != "9000" || cfg.StoreBackend != "memory" || cfg.TopN != 3 {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Load()
	cfg.Port = "not-a-port"
	cfg.StoreBackend = "excel"
	cfg.TopN = 0
	cfg.AMQPURL = "http://broker"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	for _, want := range []string{"invalid port", "invalid store backend", "leaderboard size", "AMQP URL scheme"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error missing %q: %v", want, err)
		}
	}
}

func TestValidateBackendPaths(t *testing.T) {
	cfg := Load()
	cfg.StoreBackend = "csv"
	cfg.CSVPath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("empty CSV path must fail for csv backend")
	}

	cfg = Load()
	cfg.StoreBackend = "sqlite"
	cfg.SQLiteDBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("empty db path must fail for sqlite backend")
	}
}
