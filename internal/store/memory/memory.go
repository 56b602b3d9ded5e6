// Package memory is a record store kept entirely in process memory. It backs
// tests and ephemeral runs; nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"sync"

	"spendboard/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.ExpenseRecord

	// FailAppend, when set, makes every Append return this error without
	// storing anything. Tests use it to exercise persist-failure rollback.
	FailAppend error

	// FailLoad, when set, makes every Load return this error.
	FailLoad error
}

func New() *Store {
	return &Store{}
}

// NewSeeded starts the store pre-populated, as if the records had been
// appended before the process started.
func NewSeeded(records []core.ExpenseRecord) *Store {
	s := New()
	s.items = append(s.items, records...)
	return s
}

func (s *Store) Load(_ context.Context) ([]core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLoad != nil {
		return nil, s.FailLoad
	}
	out := make([]core.ExpenseRecord, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Append(_ context.Context, r core.ExpenseRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppend != nil {
		return "", s.FailAppend
	}
	s.items = append(s.items, r)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Size reports how many records the store holds.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
