// Package budget computes spending against budgets and builds alerts and
// utilization reports from an in-memory snapshot of transactions and budgets.
//
// Everything here is synchronous and read-only: callers load a consistent
// snapshot, then ask questions of it.
package budget

import (
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/domain"
)

var ErrBudgetNotFound = errors.New("budget not found")

// TransactionProvider gives read access to all known transactions.
type TransactionProvider interface {
	Transactions() []domain.Transaction
}

// BudgetProvider gives read access to all known budgets.
type BudgetProvider interface {
	Budgets() []domain.Budget
	BudgetByID(id uuid.UUID) (domain.Budget, bool)
}

// Snapshot is a fixed set of transactions and budgets. It implements both providers.
type Snapshot struct {
	transactions []domain.Transaction
	budgets      []domain.Budget
	byID         map[uuid.UUID]int
}

var (
	_ TransactionProvider = (*Snapshot)(nil)
	_ BudgetProvider      = (*Snapshot)(nil)
)

// NewSnapshot indexes the given slices. The slices are not copied.
func NewSnapshot(transactions []domain.Transaction, budgets []domain.Budget) *Snapshot {
	byID := make(map[uuid.UUID]int, len(budgets))
	for i, b := range budgets {
		byID[b.ID] = i
	}
	return &Snapshot{transactions: transactions, budgets: budgets, byID: byID}
}

func (s *Snapshot) Transactions() []domain.Transaction {
	return s.transactions
}

func (s *Snapshot) Budgets() []domain.Budget {
	return s.budgets
}

func (s *Snapshot) BudgetByID(id uuid.UUID) (domain.Budget, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.Budget{}, false
	}
	return s.budgets[i], true
}

// Filter returns the transactions matching pred.
func Filter(p TransactionProvider, pred func(domain.Transaction) bool) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range p.Transactions() {
		if pred(tx) {
			out = append(out, tx)
		}
	}
	return out
}
