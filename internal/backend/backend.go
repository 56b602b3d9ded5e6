// Package backend selects and constructs the configured record store.
package backend

import (
	"fmt"

	"spendboard/internal/log"
	"spendboard/internal/store"
	"spendboard/internal/store/csvfile"
	"spendboard/internal/store/memory"
	"spendboard/internal/store/sqlite"
)

type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs to open its store.
type Config struct {
	Type         Type
	CSVPath      string
	SQLiteDBPath string
}

// CleanupFunc releases backend resources; may be nil.
type CleanupFunc func() error

// Open constructs the configured record store.
func Open(cfg Config, logger *log.Logger) (store.RecordStore, CleanupFunc, error) {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentStore})
	} else {
		logger = logger.WithComponent(log.ComponentStore)
	}
	if !cfg.Type.IsValid() {
		return nil, nil, fmt.Errorf("invalid store backend: %q", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite record store", log.FieldPath, cfg.SQLiteDBPath)
		return st, st.Close, nil
	case MemoryBackend:
		logger.Info("Initialized memory record store")
		return memory.New(), nil, nil
	default:
		st := csvfile.New(cfg.CSVPath)
		logger.Info("Initialized csv record store", log.FieldPath, cfg.CSVPath)
		return st, nil, nil
	}
}
