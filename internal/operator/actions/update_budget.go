package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/storage"
)

// UpdateBudget edits a stored budget and recomputes its spending, since a new
// category or window changes which transactions count.
type UpdateBudget struct {
	ID                uuid.UUID
	Update            domain.BudgetUpdate
	Engine            *rules.Engine
	AggregatorOptions []budget.AggregatorOption

	Budget     domain.Budget
	Evaluation rules.EvaluationResult[domain.Budget]
	IAction
}

func (u *UpdateBudget) Perform(ctx context.Context, w *storage.Writer) error {
	row, err := w.Budgets.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	b, err := storage.BudgetFromRecord(row)
	if err != nil {
		return err
	}

	b.CurrentSpent = money.Zero(b.Amount.Currency())
	if err = b.Update(u.Update); err != nil {
		return err
	}

	snap, err := w.Snapshot(ctx)
	if err != nil {
		return err
	}
	agg := budget.NewAggregator(snap, snap, u.AggregatorOptions...)
	if u.Budget, err = agg.RefreshSpent(b); err != nil {
		return err
	}

	u.Evaluation = u.Engine.EvaluateBudget(&u.Budget)
	if err = u.Evaluation.Err(); err != nil {
		return err
	}

	return w.Budgets.Update(ctx, u.ID, storage.BudgetToUpdate(u.Budget))
}
