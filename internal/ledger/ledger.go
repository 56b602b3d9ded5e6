// Package ledger bridges the durable record store and the in-memory working
// set the engine reads. The Ledger is the sole mutator of that set; the
// aggregation and ranking functions only ever see copies.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"spendboard/internal/core"
	"spendboard/internal/log"
	"spendboard/internal/store"
)

// PersistError reports a durable append that failed after validation
// passed. The in-memory collection has been rolled back: the record is not
// visible anywhere.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist expense record: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

type Ledger struct {
	mu      sync.Mutex
	store   store.RecordStore
	logger  *log.Logger
	records []core.ExpenseRecord
	loaded  bool
}

func New(st store.RecordStore, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentLedger})
	} else {
		logger = logger.WithComponent(log.ComponentLedger)
	}
	return &Ledger{store: st, logger: logger}
}

// Initialize loads the baseline collection from the store. It is
// idempotent: once the ledger is loaded, or once records have been added,
// calling it again leaves the in-memory set untouched.
func (l *Ledger) Initialize(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded || len(l.records) > 0 {
		return nil
	}
	records, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load record store: %w", err)
	}
	l.records = records
	l.loaded = true

	l.logger.InfoContext(ctx, "Ledger initialized",
		log.FieldOperation, log.OpLoad,
		log.FieldRecords, len(records))
	return nil
}

// Add validates the record, extends the in-memory collection, then appends
// to the durable store. A store failure rolls the collection back and
// surfaces as *PersistError; validation failures surface as the core
// sentinel errors before anything is touched.
func (l *Ledger) Add(ctx context.Context, rec core.ExpenseRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, rec)
	ref, err := l.store.Append(ctx, rec)
	if err != nil {
		l.records = l.records[:len(l.records)-1]
		l.logger.ErrorContext(ctx, "Durable append failed, rolled back",
			log.FieldOperation, log.OpAppend,
			log.FieldPayer, rec.Payer,
			log.FieldAmountCents, rec.Amount.Cents,
			log.FieldError, err)
		return "", &PersistError{Err: err}
	}

	l.logger.InfoContext(ctx, "Expense recorded",
		log.FieldOperation, log.OpAppend,
		log.FieldPayer, rec.Payer,
		log.FieldAmountCents, rec.Amount.Cents,
		log.FieldRowRef, ref)
	return ref, nil
}

// All returns a copy of the current in-memory collection in entry order.
func (l *Ledger) All() []core.ExpenseRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.ExpenseRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Size reports the number of records currently held.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
