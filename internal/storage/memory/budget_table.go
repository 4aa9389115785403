package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

var _ sqlconfig.IBudgetTable = (*BudgetsTable)(nil)

type BudgetsTable struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]sqlconfig.Budget
	now  func() time.Time
}

func NewBudgetsTable() *BudgetsTable {
	return &BudgetsTable{
		rows: make(map[uuid.UUID]sqlconfig.Budget),
		now:  time.Now,
	}
}

// Checkpoint copies the current rows. The returned func puts them back.
func (t *BudgetsTable) Checkpoint() (restore func()) {
	t.mu.RLock()
	saved := make(map[uuid.UUID]sqlconfig.Budget, len(t.rows))
	for id, row := range t.rows {
		saved[id] = row
	}
	t.mu.RUnlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.rows = saved
	}
}

func (t *BudgetsTable) FindByID(_ context.Context, id uuid.UUID) (*sqlconfig.Budget, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: budget %s", sqlconfig.ErrNotFound, id)
	}
	return &row, nil
}

func (t *BudgetsTable) Insert(_ context.Context, create *sqlconfig.BudgetCreate) (uuid.UUID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.rows[create.ID]; exists {
		return uuid.Nil, fmt.Errorf("budget %s already exists", create.ID)
	}
	t.rows[create.ID] = sqlconfig.Budget{
		ID:           create.ID,
		Name:         create.Name,
		Amount:       create.Amount,
		Currency:     create.Currency,
		CategoryID:   create.CategoryID,
		StartDate:    create.StartDate,
		EndDate:      create.EndDate,
		CurrentSpent: create.CurrentSpent,
		IsActive:     create.IsActive,
		CreatedAt:    t.now(),
	}
	return create.ID, nil
}

func (t *BudgetsTable) Update(_ context.Context, id uuid.UUID, update *sqlconfig.BudgetUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return fmt.Errorf("%w: budget %s", sqlconfig.ErrNotFound, id)
	}
	row.Name = update.Name.GetOr(row.Name)
	row.Amount = update.Amount.GetOr(row.Amount)
	row.Currency = update.Currency.GetOr(row.Currency)
	row.CategoryID = update.CategoryID.GetOr(row.CategoryID)
	row.StartDate = update.StartDate.GetOr(row.StartDate)
	row.EndDate = update.EndDate.GetOr(row.EndDate)
	row.CurrentSpent = update.CurrentSpent.GetOr(row.CurrentSpent)
	row.IsActive = update.IsActive.GetOr(row.IsActive)
	t.rows[id] = row
	return nil
}

// List mirrors the postgres ordering: start date, name, then ID.
func (t *BudgetsTable) List(_ context.Context, filter *sqlconfig.BudgetFilter) ([]*sqlconfig.Budget, error) {
	t.mu.RLock()
	result := make([]*sqlconfig.Budget, 0, len(t.rows))
	for _, row := range t.rows {
		if filter != nil {
			if filter.CategoryID != nil && row.CategoryID != *filter.CategoryID {
				continue
			}
			if filter.ActiveOnly && !row.IsActive {
				continue
			}
		}
		row := row
		result = append(result, &row)
	}
	t.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID.String() < b.ID.String()
	})
	return result, nil
}
