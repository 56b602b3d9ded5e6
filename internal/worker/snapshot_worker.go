// Package worker rebuilds the spreadsheet snapshot whenever an expense is
// recorded. The snapshot is always derived from the full store contents, so
// a rebuild after a missed message still produces the correct file.
package worker

import (
	"context"
	"fmt"
	"sync"

	"spendboard/internal/amqp"
	"spendboard/internal/export"
	"spendboard/internal/log"
	"spendboard/internal/store"
)

// SnapshotWorker consumes expense-recorded messages and rewrites the XLSX
// snapshot from the durable store.
type SnapshotWorker struct {
	mu         sync.Mutex
	store      store.RecordStore
	logger     *log.Logger
	exportPath string
	topN       int
}

func NewSnapshotWorker(st store.RecordStore, exportPath string, topN int, logger *log.Logger) *SnapshotWorker {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentWorker})
	} else {
		logger = logger.WithComponent(log.ComponentWorker)
	}
	return &SnapshotWorker{
		store:      st,
		logger:     logger,
		exportPath: exportPath,
		topN:       topN,
	}
}

// HandleExpenseRecorded processes a single expense-recorded message. The
// message only triggers the rebuild; the snapshot content comes from the
// store, never from the message payload.
func (w *SnapshotWorker) HandleExpenseRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	w.logger.InfoContext(ctx, "Processing expense-recorded message",
		log.FieldMessageID, msg.MessageID,
		log.FieldRowRef, msg.RowRef,
		log.FieldPayer, msg.Payer)

	if err := w.RebuildSnapshot(ctx); err != nil {
		return fmt.Errorf("rebuild snapshot for message %s: %w", msg.MessageID, err)
	}
	return nil
}

// RebuildSnapshot reloads the full record set and rewrites the XLSX file.
// Rebuilds are serialized so concurrent messages cannot interleave writes
// to the same file.
func (w *SnapshotWorker) RebuildSnapshot(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	records, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	if err := export.WriteFile(w.exportPath, records, w.topN); err != nil {
		return fmt.Errorf("write snapshot %s: %w", w.exportPath, err)
	}

	w.logger.InfoContext(ctx, "Snapshot rebuilt",
		log.FieldExportPath, w.exportPath,
		log.FieldRecords, len(records))
	return nil
}

// StartupSnapshot writes an initial snapshot at worker boot so the file
// reflects the store even if messages were missed while the worker was down.
func (w *SnapshotWorker) StartupSnapshot(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Writing startup snapshot", log.FieldExportPath, w.exportPath)
	if err := w.RebuildSnapshot(ctx); err != nil {
		return fmt.Errorf("startup snapshot: %w", err)
	}
	return nil
}
