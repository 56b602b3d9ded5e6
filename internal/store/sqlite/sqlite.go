// Package sqlite is an alternate record store backed by a local SQLite
// database. It honors the same append-only contract as the CSV store:
// inserts and ordered full scans only, no update or delete paths.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendboard/internal/core"
	"spendboard/internal/log"
	"spendboard/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db   *sql.DB
	path string
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Append(ctx context.Context, rec core.ExpenseRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO expense_records (payer, amount_cents, spent_on, payment_method, category, card_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Payer, rec.Amount.Cents, rec.Date.String(), string(rec.Method), rec.Category, rec.CardType)
	if err != nil {
		return "", fmt.Errorf("insert expense record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("read inserted id: %w", err)
	}

	ref := fmt.Sprintf("sqlite:%d", id)
	slog.DebugContext(ctx, "Record appended",
		log.FieldComponent, log.ComponentStore,
		log.FieldPath, s.path,
		log.FieldRowRef, ref,
		log.FieldPayer, rec.Payer,
		log.FieldAmountCents, rec.Amount.Cents)
	return ref, nil
}

func (s *Store) Load(ctx context.Context) ([]core.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payer, amount_cents, spent_on, payment_method, category, card_type
		 FROM expense_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("scan expense records: %w", err)
	}
	defer rows.Close()

	var records []core.ExpenseRecord
	for rows.Next() {
		var (
			id       int64
			payer    string
			cents    int64
			spentOn  string
			method   string
			category string
			cardType string
		)
		if err := rows.Scan(&id, &payer, &cents, &spentOn, &method, &category, &cardType); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec, err := rowToRecord(payer, cents, spentOn, method, category, cardType)
		if err != nil {
			return nil, &store.CorruptError{
				Path:   s.path,
				Line:   int(id),
				Reason: err.Error(),
				Err:    err,
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense records: %w", err)
	}
	return records, nil
}

func rowToRecord(payer string, cents int64, spentOn, method, category, cardType string) (core.ExpenseRecord, error) {
	date, err := core.ParseDate(spentOn)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	pm, err := core.ParsePaymentMethod(method)
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	rec := core.ExpenseRecord{
		Payer:    payer,
		Amount:   core.Money{Cents: cents},
		Date:     date,
		Method:   pm,
		Category: category,
		CardType: cardType,
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}
	return rec, nil
}
