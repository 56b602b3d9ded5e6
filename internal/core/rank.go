package core

import "sort"

const (
	SortByTotal SortKey = "total"
	SortByCount SortKey = "count"

	// DefaultTopN is how many entries a leaderboard keeps when the caller
	// does not say otherwise.
	DefaultTopN = 10
)

type (
	// SortKey selects the leaderboard ordering metric.
	SortKey string

	// RankedEntry is one leaderboard position, rank starting at 1.
	RankedEntry struct {
		Rank int
		Row  AggregateRow
	}
)

// ParseSortKey parses a sort key as it appears in queries.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortByTotal, SortByCount:
		return SortKey(s), true
	default:
		return "", false
	}
}

// Rank orders rows descending by the sort key and keeps the first topN.
// Equal keys are broken by ascending group key so the output is
// reproducible for a given input set. topN <= 0 means DefaultTopN.
// The input slice is never mutated; an empty input yields an empty result.
func Rank(rows []AggregateRow, key SortKey, topN int) []RankedEntry {
	if topN <= 0 {
		topN = DefaultTopN
	}
	sorted := make([]AggregateRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := metric(sorted[i], key), metric(sorted[j], key)
		if a != b {
			return a > b
		}
		return sorted[i].Key < sorted[j].Key
	})
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	entries := make([]RankedEntry, len(sorted))
	for i, row := range sorted {
		entries[i] = RankedEntry{Rank: i + 1, Row: row}
	}
	return entries
}

func metric(row AggregateRow, key SortKey) int64 {
	if key == SortByCount {
		return int64(row.Count)
	}
	return row.Total.Cents
}
