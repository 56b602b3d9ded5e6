// Package store defines the durable record-store contract shared by the
// csvfile, sqlite and memory implementations.
package store

import (
	"context"
	"fmt"

	"spendboard/internal/core"
)

// RecordStore is the append-only persistence port for expense records.
type RecordStore interface {
	// Load reads every previously persisted record in persisted order.
	// A store that has never been written to yields an empty slice and no
	// error. Unreadable or schema-mismatched data fails the whole load with
	// a *CorruptError; rows are never silently dropped.
	Load(ctx context.Context) ([]core.ExpenseRecord, error)

	// Append durably writes exactly one record, positioned after all
	// previously appended records, and returns an opaque row reference.
	// Append cost does not grow with store size.
	Append(ctx context.Context, r core.ExpenseRecord) (rowRef string, err error)
}

// CorruptError reports persisted data that cannot be parsed back into the
// record schema. Line is 1-based where the implementation has line
// semantics, 0 otherwise.
type CorruptError struct {
	Path   string
	Line   int
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("corrupt record store %s: line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("corrupt record store %s: %s", e.Path, e.Reason)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}
