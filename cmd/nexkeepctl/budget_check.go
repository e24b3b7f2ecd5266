package main

import (
	"fmt"
	"sort"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// checkRunningBudget replays entries in log order (created_at, then ID) and
// compares every BudgetAfter with the replayed value.
func checkRunningBudget(initial, current decimal.Decimal, entries []domain.LedgerEntry) error {
	ordered := make([]domain.LedgerEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].TransactionID < ordered[j].TransactionID
	})

	running := initial
	for _, e := range ordered {
		running = running.Add(e.SignedAmount())
		if !running.Equal(e.BudgetAfter) {
			return fmt.Errorf("transaction %s: expected budget %s after it, log says %s",
				e.TransactionID, running.StringFixed(2), e.BudgetAfter.StringFixed(2))
		}
	}
	if !running.Equal(current) {
		return fmt.Errorf("replayed budget %s does not match current budget %s",
			running.StringFixed(2), current.StringFixed(2))
	}
	return nil
}
