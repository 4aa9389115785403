package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/storage"
)

// UpdateTransaction edits a stored transaction in place. Budget projections
// exclude the transaction's previous amount.
type UpdateTransaction struct {
	ID                uuid.UUID
	Update            domain.TransactionUpdate
	Engine            *rules.Engine
	AggregatorOptions []budget.AggregatorOption

	Transaction      domain.Transaction
	Evaluation       rules.EvaluationResult[domain.Transaction]
	BudgetEvaluation rules.EvaluationResult[domain.Transaction]
	IAction
}

func (u *UpdateTransaction) Perform(ctx context.Context, w *storage.Writer) error {
	row, err := w.Transactions.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	tx, err := storage.TransactionFromRecord(row)
	if err != nil {
		return err
	}
	previousCategory := tx.CategoryID

	if err = tx.Update(u.Update); err != nil {
		return err
	}
	u.Transaction = tx

	u.Evaluation = u.Engine.EvaluateTransaction(&u.Transaction)
	if err = u.Evaluation.Err(); err != nil {
		return err
	}

	snap, err := w.Snapshot(ctx)
	if err != nil {
		return err
	}
	agg := budget.NewAggregator(snap, snap, u.AggregatorOptions...)
	u.BudgetEvaluation = u.Engine.EvaluateTransactionAgainstBudgets(&u.Transaction, agg)

	if err = w.Transactions.Update(ctx, u.ID, storage.TransactionToUpdate(u.Transaction)); err != nil {
		return err
	}

	return refreshSpent(ctx, w, u.AggregatorOptions, previousCategory, u.Transaction.CategoryID)
}
