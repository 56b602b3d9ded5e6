// Package services orchestrates the submit path (ledger append plus
// best-effort event publish) and the read path (leaderboards, summary,
// dashboard) that the presentation layer calls into.
package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"spendboard/internal/core"
	"spendboard/internal/ledger"
	"spendboard/internal/log"
)

// EventPublisher announces durably appended records. A nil publisher
// disables events entirely.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, rowRef string, rec core.ExpenseRecord) error
}

type Board struct {
	ledger *ledger.Ledger
	events EventPublisher
}

func NewBoard(l *ledger.Ledger, events EventPublisher) *Board {
	return &Board{ledger: l, events: events}
}

// SubmitExpense records one expense. The record is durable before this
// returns; the event publish afterwards is best-effort and never fails the
// submission.
func (b *Board) SubmitExpense(ctx context.Context, rec core.ExpenseRecord) (string, error) {
	ref, err := b.ledger.Add(ctx, rec)
	if err != nil {
		return "", err
	}

	if b.events != nil {
		if err := b.events.PublishExpenseRecorded(ctx, ref, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to publish expense recorded event",
				log.FieldComponent, log.ComponentBoard,
				log.FieldOperation, log.OpPublish,
				log.FieldRowRef, ref,
				log.FieldError, err)
		}
	}

	return ref, nil
}

// Leaderboard recomputes one dimension's leaderboard from the full
// collection. Nothing is cached between calls.
func (b *Board) Leaderboard(dim core.Dimension, key core.SortKey, topN int) []core.RankedEntry {
	return core.Rank(core.GroupBy(b.ledger.All(), dim), key, topN)
}

// Summary recomputes the whole-collection overview.
func (b *Board) Summary() core.Summary {
	return core.Summarize(b.ledger.All())
}

// Highlights recomputes the headline block; ok is false when the
// collection is empty.
func (b *Board) Highlights() (core.Highlights, bool) {
	return core.Highlight(b.ledger.All())
}

// Records returns the current collection in entry order.
func (b *Board) Records() []core.ExpenseRecord {
	return b.ledger.All()
}

// Dashboard bundles the summary with every dimension's leaderboard.
type Dashboard struct {
	Summary      core.Summary
	Leaderboards map[core.Dimension][]core.RankedEntry
}

// Dashboard computes all leaderboards over one snapshot of the collection.
// The groupings run concurrently; GroupBy and Rank are pure and never
// touch shared state.
func (b *Board) Dashboard(ctx context.Context, topN int) (Dashboard, error) {
	records := b.ledger.All()

	boards := make([][]core.RankedEntry, len(core.Dimensions()))
	g, _ := errgroup.WithContext(ctx)
	for i, dim := range core.Dimensions() {
		i, dim := i, dim
		g.Go(func() error {
			boards[i] = core.Rank(core.GroupBy(records, dim), core.SortByTotal, topN)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Summary:      core.Summarize(records),
		Leaderboards: make(map[core.Dimension][]core.RankedEntry, len(boards)),
	}
	for i, dim := range core.Dimensions() {
		d.Leaderboards[dim] = boards[i]
	}
	return d, nil
}
