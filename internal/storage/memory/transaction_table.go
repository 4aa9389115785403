// Package memory holds mutex-guarded in-process implementations of the
// sqlconfig table interfaces.
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

var _ sqlconfig.ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]sqlconfig.Transaction
	now  func() time.Time
}

func NewTransactionsTable() *TransactionsTable {
	return &TransactionsTable{
		rows: make(map[uuid.UUID]sqlconfig.Transaction),
		now:  time.Now,
	}
}

// Checkpoint copies the current rows. The returned func puts them back.
func (t *TransactionsTable) Checkpoint() (restore func()) {
	t.mu.RLock()
	saved := make(map[uuid.UUID]sqlconfig.Transaction, len(t.rows))
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

func (t *TransactionsTable) FindByID(_ context.Context, id uuid.UUID) (*sqlconfig.Transaction, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", sqlconfig.ErrNotFound, id)
	}
	return &row, nil
}

func (t *TransactionsTable) Insert(_ context.Context, create *sqlconfig.TransactionCreate) (uuid.UUID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.rows[create.ID]; exists {
		return uuid.Nil, fmt.Errorf("transaction %s already exists", create.ID)
	}
	t.rows[create.ID] = sqlconfig.Transaction{
		ID:              create.ID,
		Kind:            create.Kind,
		Description:     create.Description,
		Amount:          create.Amount,
		Currency:        create.Currency,
		TransactionDate: create.TransactionDate,
		CategoryID:      create.CategoryID,
		Notes:           create.Notes,
		Account:         create.Account,
		CreatedAt:       t.now(),
	}
	return create.ID, nil
}

func (t *TransactionsTable) Update(_ context.Context, id uuid.UUID, update *sqlconfig.TransactionUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return fmt.Errorf("%w: transaction %s", sqlconfig.ErrNotFound, id)
	}
	row.Kind = update.Kind.GetOr(row.Kind)
	row.Description = update.Description.GetOr(row.Description)
	row.Amount = update.Amount.GetOr(row.Amount)
	row.Currency = update.Currency.GetOr(row.Currency)
	row.TransactionDate = update.TransactionDate.GetOr(row.TransactionDate)
	row.CategoryID = update.CategoryID.GetOr(row.CategoryID)
	row.Notes = update.Notes.GetOr(row.Notes)
	row.Account = update.Account.GetOr(row.Account)
	t.rows[id] = row
	return nil
}

// List mirrors the postgres table: newest transaction date first, then ID,
// with one extra row past Limit.
func (t *TransactionsTable) List(_ context.Context, filter *sqlconfig.TransactionFilter) ([]*sqlconfig.Transaction, error) {
	t.mu.RLock()
	result := make([]*sqlconfig.Transaction, 0, len(t.rows))
	for _, row := range t.rows {
		if !matchesTransaction(row, filter) {
			continue
		}
		row := row
		result = append(result, &row)
	}
	t.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].TransactionDate.Equal(result[j].TransactionDate) {
			return result[i].TransactionDate.After(result[j].TransactionDate)
		}
		return result[i].ID.String() > result[j].ID.String()
	})

	if filter != nil {
		limit := filter.Limit
		if limit > 0 {
			limit++
		}
		result = paginate(result, filter.Offset, limit)
	}
	return result, nil
}

func matchesTransaction(row sqlconfig.Transaction, filter *sqlconfig.TransactionFilter) bool {
	if filter == nil {
		return true
	}
	if filter.CategoryID != nil && row.CategoryID != *filter.CategoryID {
		return false
	}
	if filter.Kind != nil && row.Kind != *filter.Kind {
		return false
	}
	if filter.StartDate != nil && row.TransactionDate.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && row.TransactionDate.After(*filter.EndDate) {
		return false
	}
	if filter.MaxCreationTime != nil && row.CreatedAt.After(*filter.MaxCreationTime) {
		return false
	}
	return true
}

func paginate[T any](rows []T, offset, limit int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return rows[:0]
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
