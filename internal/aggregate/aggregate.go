// Package aggregate computes funding totals from the contribution ledger.
// Every function here is total: defined for empty lists and malformed
// amounts, order-independent, and free of side effects on its input.
package aggregate

import (
	"cleancity/internal/domain"
)

// TotalCollected sums the amounts pledged in the given contributions.
// Amounts that failed numeric coercion at the ingestion boundary are zero
// and simply do not move the total.
func TotalCollected(contributions []domain.Contribution) float64 {
	var total float64
	for _, c := range contributions {
		total += c.Amount.Float()
	}
	return total
}

// TotalPaidBy sums a single member's personal ledger. The input is expected
// to already be scoped to one contributor (the resolver's owned view); the
// fold itself is the same zero-fallback sum as TotalCollected.
func TotalPaidBy(contributions []domain.Contribution) float64 {
	return TotalCollected(contributions)
}

// Progress derives the funding completion percentage of an issue from the
// contributions scoped to it.
func Progress(issue domain.Issue, contributions []domain.Contribution) int {
	return domain.ProgressPercent(TotalCollected(contributions), issue.SuggestedAmount.Float())
}
