package demo

import (
	"reflect"
	"testing"

	"spendboard/internal/core"
)

func TestGenerateIsDeterministic(t *testing.T) {
	anchor := core.NewDate(2025, 6, 30)
	a := Generate(50, DefaultSeed, anchor)
	b := Generate(50, DefaultSeed, anchor)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed must reproduce the same records")
	}
	c := Generate(50, DefaultSeed+1, anchor)
	if reflect.DeepEqual(a, c) {
		t.Fatalf("different seeds should diverge")
	}
}

func TestGeneratedRecordsAreValid(t *testing.T) {
	anchor := core.NewDate(2025, 6, 30)
	for i, rec := range Generate(200, DefaultSeed, anchor) {
		if err := rec.Validate(); err != nil {
			t.Fatalf("record %d invalid: %v (%+v)", i, err, rec)
		}
		if rec.Amount.Cents < 500 || rec.Amount.Cents > 20000 {
			t.Fatalf("record %d amount out of range: %d", i, rec.Amount.Cents)
		}
		if rec.Method == core.Card && rec.CardType == "" {
			t.Fatalf("record %d: card payment without card type", i)
		}
		if rec.Method == core.Cash && rec.CardType != "" {
			t.Fatalf("record %d: cash payment with card type", i)
		}
		if rec.Date.After(anchor.Time) {
			t.Fatalf("record %d dated after anchor: %s", i, rec.Date)
		}
	}
}
