package actions

import (
	"context"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/storage"
)

// CreateTransaction validates and stores a new transaction. Transaction rule
// failures reject it; budget projections are reported but never block.
type CreateTransaction struct {
	Transaction       domain.Transaction
	Engine            *rules.Engine
	AggregatorOptions []budget.AggregatorOption

	Evaluation       rules.EvaluationResult[domain.Transaction]
	BudgetEvaluation rules.EvaluationResult[domain.Transaction]
	IAction
}

func (t *CreateTransaction) Perform(ctx context.Context, w *storage.Writer) error {
	t.Evaluation = t.Engine.EvaluateTransaction(&t.Transaction)
	if err := t.Evaluation.Err(); err != nil {
		return err
	}

	snap, err := w.Snapshot(ctx)
	if err != nil {
		return err
	}
	agg := budget.NewAggregator(snap, snap, t.AggregatorOptions...)
	t.BudgetEvaluation = t.Engine.EvaluateTransactionAgainstBudgets(&t.Transaction, agg)

	if _, err = w.Transactions.Insert(ctx, storage.TransactionToCreate(t.Transaction)); err != nil {
		return err
	}

	return refreshSpent(ctx, w, t.AggregatorOptions, t.Transaction.CategoryID)
}
