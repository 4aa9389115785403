package actions

import (
	"context"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/storage"
)

// CreateBudget stores a new budget with CurrentSpent computed from the
// transactions already on file.
type CreateBudget struct {
	Budget            domain.Budget
	Engine            *rules.Engine
	AggregatorOptions []budget.AggregatorOption

	Evaluation rules.EvaluationResult[domain.Budget]
	IAction
}

func (c *CreateBudget) Perform(ctx context.Context, w *storage.Writer) error {
	snap, err := w.Snapshot(ctx)
	if err != nil {
		return err
	}
	agg := budget.NewAggregator(snap, snap, c.AggregatorOptions...)

	c.Budget, err = agg.RefreshSpent(c.Budget)
	if err != nil {
		return err
	}

	c.Evaluation = c.Engine.EvaluateBudget(&c.Budget)
	if err = c.Evaluation.Err(); err != nil {
		return err
	}

	_, err = w.Budgets.Insert(ctx, storage.BudgetToCreate(c.Budget))
	return err
}
