package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendboard/internal/core"
	"spendboard/internal/ledger"
	"spendboard/internal/store/memory"
)

type capturingPublisher struct {
	refs []string
	err  error
}

func (p *capturingPublisher) PublishExpenseRecorded(_ context.Context, rowRef string, _ core.ExpenseRecord) error {
	if p.err != nil {
		return p.err
	}
	p.refs = append(p.refs, rowRef)
	return nil
}

func seededBoard(t *testing.T, pub EventPublisher) *Board {
	t.Helper()
	l := ledger.New(memory.New(), nil)
	require.NoError(t, l.Initialize(context.Background()))
	b := NewBoard(l, pub)
	for _, rec := range []core.ExpenseRecord{
		{Payer: "Sam", Amount: core.Money{Cents: 10000}, Date: core.NewDate(2025, 6, 1), Method: core.Card, Category: "Food", CardType: "Chase"},
		{Payer: "Sam", Amount: core.Money{Cents: 5000}, Date: core.NewDate(2025, 6, 2), Method: core.Cash, Category: "Food"},
		{Payer: "Ana", Amount: core.Money{Cents: 20000}, Date: core.NewDate(2025, 6, 3), Method: core.Card, Category: "Shopping", CardType: "Visa"},
	} {
		_, err := b.SubmitExpense(context.Background(), rec)
		require.NoError(t, err)
	}
	return b
}

func TestSubmitExpensePublishesAfterAppend(t *testing.T) {
	pub := &capturingPublisher{}
	b := seededBoard(t, pub)
	assert.Len(t, pub.refs, 3)
	assert.Equal(t, 3, b.Summary().Count)
}

func TestSubmitExpensePublishFailureDoesNotFailSubmit(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker down")}
	b := seededBoard(t, pub)
	// All three submissions succeeded despite the broker being down.
	assert.Equal(t, 3, b.Summary().Count)
	assert.Empty(t, pub.refs)
}

func TestSubmitExpenseValidationSkipsPublish(t *testing.T) {
	pub := &capturingPublisher{}
	l := ledger.New(memory.New(), nil)
	b := NewBoard(l, pub)
	_, err := b.SubmitExpense(context.Background(), core.ExpenseRecord{Payer: ""})
	assert.ErrorIs(t, err, core.ErrEmptyPayer)
	assert.Empty(t, pub.refs)
}

func TestLeaderboard(t *testing.T) {
	b := seededBoard(t, nil)
	entries := b.Leaderboard(core.ByPayer, core.SortByTotal, 2)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ana", entries[0].Row.Key)
	assert.Equal(t, int64(20000), entries[0].Row.Total.Cents)
	assert.Equal(t, "Sam", entries[1].Row.Key)
	assert.Equal(t, int64(15000), entries[1].Row.Total.Cents)
}

func TestSummaryAndHighlights(t *testing.T) {
	b := seededBoard(t, nil)
	s := b.Summary()
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, int64(35000), s.Total.Cents)

	h, ok := b.Highlights()
	require.True(t, ok)
	assert.Equal(t, "Ana", h.TopSpender)
	assert.Equal(t, "Sam", h.MostFrequent)
}

func TestDashboardCoversEveryDimension(t *testing.T) {
	b := seededBoard(t, nil)
	d, err := b.Dashboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Summary.Count)
	for _, dim := range core.Dimensions() {
		require.Contains(t, d.Leaderboards, dim)
		assert.NotEmpty(t, d.Leaderboards[dim], "dimension %s", dim)
	}
	// Card-type board only sees the two Card records.
	cardBoard := d.Leaderboards[core.ByCardType]
	require.Len(t, cardBoard, 2)
	assert.Equal(t, "Visa", cardBoard[0].Row.Key)
}

func TestEmptyBoard(t *testing.T) {
	b := NewBoard(ledger.New(memory.New(), nil), nil)
	assert.Empty(t, b.Leaderboard(core.ByPayer, core.SortByTotal, 10))
	assert.Zero(t, b.Summary().Count)
	_, ok := b.Highlights()
	assert.False(t, ok)
}
