package memory

import (
	"context"
	"errors"
	"testing"

	"spendboard/internal/core"
)

func TestAppendAndLoad(t *testing.T) {
	s := New()
	ref, err := s.Append(context.Background(), core.ExpenseRecord{
		Payer: "Sam", Amount: core.Money{Cents: 123}, Date: core.NewDate(2025, 1, 1), Method: core.Cash,
	})
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}
	recs, err := s.Load(context.Background())
	if err != nil || len(recs) != 1 || recs[0].Payer != "Sam" {
		t.Fatalf("unexpected load: %v err=%v", recs, err)
	}
}

func TestAppendValidatesAndFails(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), core.ExpenseRecord{}); err == nil {
		t.Fatalf("expected validation error")
	}

	boom := errors.New("disk full")
	s.FailAppend = boom
	_, err := s.Append(context.Background(), core.ExpenseRecord{
		Payer: "Sam", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 1, 1), Method: core.Cash,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	if s.Size() != 0 {
		t.Fatalf("failed append must not store anything")
	}
}

func TestLoadReturnsCopy(t *testing.T) {
	s := NewSeeded([]core.ExpenseRecord{
		{Payer: "Sam", Amount: core.Money{Cents: 1}, Date: core.NewDate(2025, 1, 1), Method: core.Cash},
	})
	recs, _ := s.Load(context.Background())
	recs[0].Payer = "mutated"
	again, _ := s.Load(context.Background())
	if again[0].Payer != "Sam" {
		t.Fatalf("load must not expose internal state")
	}
}
