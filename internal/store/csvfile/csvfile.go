// Package csvfile is the default record store: a single CSV file with a
// header row, one expense per line, appended in entry order. This is the
// same tabular contract the UI layer's file upload and download speak.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"spendboard/internal/core"
	"spendboard/internal/log"
	"spendboard/internal/store"
)

// header is the fixed column set. Optional fields serialize as the empty
// string so every row has exactly six columns.
var header = []string{"name", "amount", "date", "payment_method", "category", "card_type"}

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load full-scans the file and returns records in file order. A missing
// file is an empty store, not an error.
func (s *Store) Load(ctx context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	first, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, &store.CorruptError{Path: s.path, Line: 1, Reason: "unreadable header", Err: err}
	}
	for i, col := range header {
		if first[i] != col {
			return nil, &store.CorruptError{
				Path:   s.path,
				Line:   1,
				Reason: fmt.Sprintf("header column %d is %q, want %q", i+1, first[i], col),
			}
		}
	}

	var records []core.ExpenseRecord
	for line := 2; ; line++ {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &store.CorruptError{Path: s.path, Line: line, Reason: "malformed row", Err: err}
		}
		rec, err := parseRow(fields)
		if err != nil {
			return nil, &store.CorruptError{Path: s.path, Line: line, Reason: err.Error(), Err: err}
		}
		records = append(records, rec)
	}

	slog.DebugContext(ctx, "Record store loaded",
		log.FieldComponent, log.ComponentStore,
		log.FieldPath, s.path,
		log.FieldRecords, len(records))
	return records, nil
}

// Append writes one row, creating the file with its header on first use.
// The write is O(1) in existing store size: the only look at prior data is
// a stat to learn whether the header is needed.
func (s *Store) Append(ctx context.Context, rec core.ExpenseRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var offset int64
	exists := true
	info, err := os.Stat(s.path)
	switch {
	case os.IsNotExist(err):
		exists = false
		if dir := filepath.Dir(s.path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("create store directory: %w", err)
			}
		}
	case err != nil:
		return "", fmt.Errorf("stat record store: %w", err)
	default:
		offset = info.Size()
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open record store for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write(header); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(formatRow(rec)); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("sync record store: %w", err)
	}

	ref := fmt.Sprintf("csv:%d", offset)
	slog.DebugContext(ctx, "Record appended",
		log.FieldComponent, log.ComponentStore,
		log.FieldPath, s.path,
		log.FieldRowRef, ref,
		log.FieldPayer, rec.Payer,
		log.FieldAmountCents, rec.Amount.Cents)
	return ref, nil
}

func formatRow(rec core.ExpenseRecord) []string {
	return []string{
		rec.Payer,
		rec.Amount.Format(),
		rec.Date.String(),
		string(rec.Method),
		rec.Category,
		rec.CardType,
	}
}

func parseRow(fields []string) (core.ExpenseRecord, error) {
	cents, err := core.ParseDecimalToCents(fields[1])
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("amount %q: %w", fields[1], err)
	}
	date, err := core.ParseDate(fields[2])
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	method, err := core.ParsePaymentMethod(fields[3])
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	rec := core.ExpenseRecord{
		Payer:    fields[0],
		Amount:   core.Money{Cents: cents},
		Date:     date,
		Method:   method,
		Category: fields[4],
		CardType: fields[5],
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	return rec, nil
}
