// Package demo generates a deterministic synthetic expense set for seeding
// a fresh board, mirroring the shape of the analytics demo data: ten
// payers, five categories, five card types, amounts between 5.00 and
// 200.00 spread over the 90 days before the anchor date.
package demo

import (
	"math/rand"

	"spendboard/internal/core"
)

var (
	payers     = []string{"John", "Sarah", "Mike", "Emma", "David", "Lisa", "Alex", "Maria", "Tom", "Anna"}
	categories = []string{"Food", "Transport", "Entertainment", "Shopping", "Bills"}
	cardTypes  = []string{"Chase", "Capital One", "Bilt", "Discover", "Debit"}
)

// DefaultSeed reproduces the canonical demo dataset.
const DefaultSeed = 42

// Generate produces n records. The same seed and anchor always produce the
// same records. Card type is present exactly when the payment method is
// Card.
func Generate(n int, seed int64, anchor core.Date) []core.ExpenseRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]core.ExpenseRecord, 0, n)
	for i := 0; i < n; i++ {
		// 500..20000 cents
		cents := int64(500 + rng.Intn(19501))
		day := anchor.AddDate(0, 0, -rng.Intn(91))

		rec := core.ExpenseRecord{
			Payer:    payers[rng.Intn(len(payers))],
			Amount:   core.Money{Cents: cents},
			Date:     core.Date{Time: day},
			Category: categories[rng.Intn(len(categories))],
			Method:   core.Cash,
		}
		if rng.Intn(2) == 1 {
			rec.Method = core.Card
			rec.CardType = cardTypes[rng.Intn(len(cardTypes))]
		}
		records = append(records, rec)
	}
	return records
}
