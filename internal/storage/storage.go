package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/config"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/storage/memory"
	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

type Storage struct {
	DB           *sql.DB
	Transactions sqlconfig.ITransactionTable
	Budgets      sqlconfig.IBudgetTable

	// memoryWriteMu serializes Writers on the memory backend so a rollback
	// never discards another writer's rows.
	memoryWriteMu sync.Mutex
}

// NewStorage opens the backend named by env.StorageBackend. The postgres
// backend applies pending migrations before returning.
func NewStorage(env *config.Config) (*Storage, error) {
	if env.StorageBackend == config.StorageMemory {
		return NewMemoryStorage(), nil
	}

	db, err := sql.Open("postgres", env.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if _, err := sqlconfig.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresStorage(db), nil
}

func NewPostgresStorage(db *sql.DB) *Storage {
	return &Storage{
		DB:           db,
		Transactions: sqlconfig.NewTransactionsTable(db),
		Budgets:      sqlconfig.NewBudgetsTable(db),
	}
}

func NewMemoryStorage() *Storage {
	return &Storage{
		Transactions: memory.NewTransactionsTable(),
		Budgets:      memory.NewBudgetsTable(),
	}
}

func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Ping checks the database connection. The memory backend is always reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.PingContext(ctx)
}

// Snapshot loads every transaction and budget into an immutable view the
// aggregator and rule engine can read without touching storage again.
func (s *Storage) Snapshot(ctx context.Context) (*budget.Snapshot, error) {
	var (
		txRows     []*sqlconfig.Transaction
		budgetRows []*sqlconfig.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txRows, err = s.Transactions.List(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		budgetRows, err = s.Budgets.List(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snapshotFromRows(txRows, budgetRows)
}

func snapshotFromRows(txRows []*sqlconfig.Transaction, budgetRows []*sqlconfig.Budget) (*budget.Snapshot, error) {
	txs := make([]domain.Transaction, 0, len(txRows))
	for _, row := range txRows {
		tx, err := TransactionFromRecord(row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	budgets := make([]domain.Budget, 0, len(budgetRows))
	for _, row := range budgetRows {
		b, err := BudgetFromRecord(row)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budget.NewSnapshot(txs, budgets), nil
}
