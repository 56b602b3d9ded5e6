package core

import "math"

const (
	ByPayer         Dimension = "payer"
	ByCategory      Dimension = "category"
	ByPaymentMethod Dimension = "payment_method"
	ByCardType      Dimension = "card_type"
)

type (
	// Dimension is the record attribute used to partition a collection.
	Dimension string

	// AggregateRow is one partition of a grouping: the distinct dimension
	// value, the summed amount and the record count. Count is always > 0;
	// empty partitions are never materialized.
	AggregateRow struct {
		Key   string
		Total Money
		Count int
	}

	// Summary is the whole-collection overview.
	Summary struct {
		Count int
		Total Money
	}

	// Highlights is the headline block: who spent the most, who spends most
	// often, the heaviest category, and the overall average.
	Highlights struct {
		TopSpender      string
		TopSpenderTotal Money
		MostFrequent    string
		MostFrequentN   int
		TopCategory     string
		TopCategoryTot  Money
		Average         Money
	}
)

// Dimensions lists every groupable dimension in presentation order.
func Dimensions() []Dimension {
	return []Dimension{ByPayer, ByCategory, ByPaymentMethod, ByCardType}
}

// ParseDimension parses a dimension name as it appears in queries.
func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case ByPayer, ByCategory, ByPaymentMethod, ByCardType:
		return Dimension(s), true
	default:
		return "", false
	}
}

// Value extracts this dimension's value from a record. The second return is
// false when the record has no value for the dimension, in which case the
// record is excluded from that grouping. Card type only exists on Card
// payments.
func (d Dimension) Value(r ExpenseRecord) (string, bool) {
	switch d {
	case ByPayer:
		return r.Payer, r.Payer != ""
	case ByCategory:
		return r.Category, r.Category != ""
	case ByPaymentMethod:
		return string(r.Method), r.Method != ""
	case ByCardType:
		if r.Method != Card {
			return "", false
		}
		return r.CardType, r.CardType != ""
	default:
		return "", false
	}
}

// GroupBy partitions records by the dimension's value and folds each
// partition into sum and count. Records with no value for the dimension are
// skipped entirely. The emission order of rows is unspecified; Rank imposes
// order. The input is never mutated.
func GroupBy(records []ExpenseRecord, dim Dimension) []AggregateRow {
	groups := make(map[string]*AggregateRow)
	order := make([]string, 0)
	for _, r := range records {
		key, ok := dim.Value(r)
		if !ok {
			continue
		}
		row, exists := groups[key]
		if !exists {
			row = &AggregateRow{Key: key}
			groups[key] = row
			order = append(order, key)
		}
		row.Total.Cents += r.Amount.Cents
		row.Count++
	}
	rows := make([]AggregateRow, 0, len(order))
	for _, key := range order {
		rows = append(rows, *groups[key])
	}
	return rows
}

// Average is Total/Count rounded to whole cents, half away from zero.
// Internal accumulation is exact; rounding happens only here.
func (a AggregateRow) Average() Money {
	if a.Count == 0 {
		return Money{}
	}
	return Money{Cents: roundDiv(a.Total.Cents, int64(a.Count))}
}

// Summarize computes the whole-collection count and total.
func Summarize(records []ExpenseRecord) Summary {
	var s Summary
	for _, r := range records {
		s.Count++
		s.Total.Cents += r.Amount.Cents
	}
	return s
}

// Average is the mean record amount, rounded to whole cents.
func (s Summary) Average() Money {
	if s.Count == 0 {
		return Money{}
	}
	return Money{Cents: roundDiv(s.Total.Cents, int64(s.Count))}
}

// Highlight derives the headline block. The second return is false for an
// empty collection.
func Highlight(records []ExpenseRecord) (Highlights, bool) {
	if len(records) == 0 {
		return Highlights{}, false
	}
	var h Highlights
	if top := Rank(GroupBy(records, ByPayer), SortByTotal, 1); len(top) > 0 {
		h.TopSpender = top[0].Row.Key
		h.TopSpenderTotal = top[0].Row.Total
	}
	if freq := Rank(GroupBy(records, ByPayer), SortByCount, 1); len(freq) > 0 {
		h.MostFrequent = freq[0].Row.Key
		h.MostFrequentN = freq[0].Row.Count
	}
	if cat := Rank(GroupBy(records, ByCategory), SortByTotal, 1); len(cat) > 0 {
		h.TopCategory = cat[0].Row.Key
		h.TopCategoryTot = cat[0].Row.Total
	}
	h.Average = Summarize(records).Average()
	return h, true
}

func roundDiv(total, count int64) int64 {
	return int64(math.Round(float64(total) / float64(count)))
}
