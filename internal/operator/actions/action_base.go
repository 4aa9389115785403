package actions

import (
	"context"
	"fmt"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/storage"
	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

type IAction interface {
	Perform(ctx context.Context, w *storage.Writer) error
}

// refreshSpent recomputes and persists CurrentSpent for every budget in the
// given categories, from a snapshot taken after the write.
func refreshSpent(ctx context.Context, w *storage.Writer, opts []budget.AggregatorOption, categories ...uuid.UUID) error {
	endTimer := logging.GetLogData(ctx).AddToExistingTiming("refreshSpent")
	defer endTimer()

	snap, err := w.Snapshot(ctx)
	if err != nil {
		return err
	}
	agg := budget.NewAggregator(snap, snap, opts...)

	wanted := make(map[uuid.UUID]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	for _, b := range snap.Budgets() {
		if _, ok := wanted[b.CategoryID]; !ok {
			continue
		}
		refreshed, err := agg.RefreshSpent(b)
		if err != nil {
			return err
		}
		if refreshed.CurrentSpent.Equal(b.CurrentSpent) {
			continue
		}
		err = w.Budgets.Update(ctx, b.ID, &sqlconfig.BudgetUpdate{
			CurrentSpent: omit.From(refreshed.CurrentSpent.Amount()),
		})
		if err != nil {
			return fmt.Errorf("refresh budget %s: %w", b.ID, err)
		}
	}
	return nil
}
