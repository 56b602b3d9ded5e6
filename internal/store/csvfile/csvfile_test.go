package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spendboard/internal/core"
	"spendboard/internal/store"
)

func testRecord(payer string, cents int64) core.ExpenseRecord {
	return core.ExpenseRecord{
		Payer:    payer,
		Amount:   core.Money{Cents: cents},
		Date:     core.NewDate(2025, 4, 12),
		Method:   core.Card,
		Category: "Food",
		CardType: "Chase",
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "expenses.csv"))
	recs, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty store, got %d records", len(recs))
	}
}

func TestAppendCreatesHeaderAndRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	s := New(path)

	ref, err := s.Append(context.Background(), testRecord("Sam", 10050))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "csv:0" {
		t.Fatalf("first ref should be csv:0, got %q", ref)
	}
	if _, err := s.Append(context.Background(), core.ExpenseRecord{
		Payer: "Ana", Amount: core.Money{Cents: 250}, Date: core.NewDate(2025, 4, 13), Method: core.Cash,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "name,amount,date,payment_method,category,card_type" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[2] != "Ana,2.50,2025-04-13,Cash,," {
		t.Fatalf("absent optionals must serialize as empty columns: %q", lines[2])
	}

	// A fresh Store simulates a process restart.
	recs, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Payer != "Sam" || recs[0].Amount.Cents != 10050 || recs[0].CardType != "Chase" {
		t.Fatalf("first record mangled: %+v", recs[0])
	}
	if recs[1].Payer != "Ana" || recs[1].Category != "" || recs[1].CardType != "" {
		t.Fatalf("second record mangled: %+v", recs[1])
	}
}

func TestAppendPreservesOrderAcrossReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	payers := []string{"a", "b", "c", "d"}
	for _, p := range payers {
		if _, err := New(path).Append(context.Background(), core.ExpenseRecord{
			Payer: p, Amount: core.Money{Cents: 100}, Date: core.NewDate(2025, 1, 2), Method: core.Cash,
		}); err != nil {
			t.Fatalf("append %s: %v", p, err)
		}
	}
	recs, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for i, p := range payers {
		if recs[i].Payer != p {
			t.Fatalf("position %d: expected %q, got %q", i, p, recs[i].Payer)
		}
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "expenses.csv"))
	_, err := s.Append(context.Background(), core.ExpenseRecord{
		Payer: "Sam", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 1, 1),
		Method: core.Cash, CardType: "Visa",
	})
	if !errors.Is(err, core.ErrOrphanCardType) {
		t.Fatalf("expected ErrOrphanCardType, got %v", err)
	}
}

func TestLoadSurfacesCorruption(t *testing.T) {
	cases := []struct {
		name    string
		content string
		line    int
	}{
		{
			"wrong header",
			"who,amount,date,payment_method,category,card_type\n",
			1,
		},
		{
			"bad amount",
			"name,amount,date,payment_method,category,card_type\nSam,not-a-number,2025-01-02,Cash,,\n",
			2,
		},
		{
			"bad date",
			"name,amount,date,payment_method,category,card_type\nSam,1.00,01/02/2025,Cash,,\n",
			2,
		},
		{
			"unknown method",
			"name,amount,date,payment_method,category,card_type\nSam,1.00,2025-01-02,Cheque,,\n",
			2,
		},
		{
			"short row",
			"name,amount,date,payment_method,category,card_type\nSam,1.00,2025-01-02\nSam,1.00,2025-01-03,Cash,,\n",
			2,
		},
		{
			"orphan card type",
			"name,amount,date,payment_method,category,card_type\nSam,1.00,2025-01-02,Cash,,Visa\n",
			2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "expenses.csv")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}
			_, err := New(path).Load(context.Background())
			var corrupt *store.CorruptError
			if !errors.As(err, &corrupt) {
				t.Fatalf("expected CorruptError, got %v", err)
			}
			if corrupt.Line != tc.line {
				t.Fatalf("expected line %d, got %d (%v)", tc.line, corrupt.Line, corrupt)
			}
		})
	}
}
