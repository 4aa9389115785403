package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/storage"
)

// CreateTransactions stores a batch in one unit of work. Each transaction is
// evaluated against budgets that already include the ones before it.
type CreateTransactions struct {
	Transactions      []domain.Transaction
	Engine            *rules.Engine
	AggregatorOptions []budget.AggregatorOption

	Created []*CreateTransaction
	IAction
}

func (c *CreateTransactions) Perform(ctx context.Context, w *storage.Writer) error {
	c.Created = make([]*CreateTransaction, 0, len(c.Transactions))
	for _, tx := range c.Transactions {
		create := &CreateTransaction{
			Transaction:       tx,
			Engine:            c.Engine,
			AggregatorOptions: c.AggregatorOptions,
		}
		if err := create.Perform(ctx, w); err != nil {
			return fmt.Errorf("occurrence on %s: %w", tx.Date.Format(time.DateOnly), err)
		}
		c.Created = append(c.Created, create)
	}
	return nil
}
