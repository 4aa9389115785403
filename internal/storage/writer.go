package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

var ErrWriterClosed = errors.New("writer already committed or rolled back")

// Writer is one unit of work. Writes made through its tables become visible
// to other readers on Commit and are discarded on Rollback.
type Writer struct {
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable

	commit   func() error
	rollback func() error
	closed   bool
}

// checkpointer is implemented by in-process tables that can undo writes.
type checkpointer interface {
	Checkpoint() (restore func())
}

// Write starts a unit of work. On postgres it is a database transaction; on
// the memory backend it holds the write lock and checkpoints both tables.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	if s.DB != nil {
		tx, err := bob.NewDB(s.DB).BeginTx(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("begin transaction: %w", err)
		}
		return &Writer{
			Transactions: sqlconfig.NewTransactionsTableOn(tx),
			Budgets:      sqlconfig.NewBudgetsTableOn(tx),
			commit:       func() error { return tx.Commit(context.Background()) },
			rollback:     func() error { return tx.Rollback(context.Background()) },
		}, nil
	}

	s.memoryWriteMu.Lock()
	var restores []func()
	for _, table := range []any{s.Transactions, s.Budgets} {
		if c, ok := table.(checkpointer); ok {
			restores = append(restores, c.Checkpoint())
		}
	}
	return &Writer{
		Transactions: s.Transactions,
		Budgets:      s.Budgets,
		commit: func() error {
			s.memoryWriteMu.Unlock()
			return nil
		},
		rollback: func() error {
			for _, restore := range restores {
				restore()
			}
			s.memoryWriteMu.Unlock()
			return nil
		},
	}, nil
}

// Snapshot loads the writer's view, including its own uncommitted rows.
// Tables are read one after the other since a database transaction holds a
// single connection.
func (w *Writer) Snapshot(ctx context.Context) (*budget.Snapshot, error) {
	txRows, err := w.Transactions.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	budgetRows, err := w.Budgets.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snapshotFromRows(txRows, budgetRows)
}

func (w *Writer) Commit() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	return w.commit()
}

func (w *Writer) Rollback() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	return w.rollback()
}
