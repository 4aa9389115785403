package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/service"
)

// mockTransactionService implements every transaction handler interface.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, create service.TransactionCreate) (*service.TransactionResult, error) {
	args := m.Called(ctx, create)
	res, _ := args.Get(0).(*service.TransactionResult)
	return res, args.Error(1)
}

func (m *mockTransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, update domain.TransactionUpdate) (*service.TransactionResult, error) {
	args := m.Called(ctx, id, update)
	res, _ := args.Get(0).(*service.TransactionResult)
	return res, args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*domain.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) EvaluateTransaction(ctx context.Context, tx domain.Transaction) (*service.TransactionResult, error) {
	args := m.Called(ctx, tx)
	res, _ := args.Get(0).(*service.TransactionResult)
	return res, args.Error(1)
}

func (m *mockTransactionService) CreateRecurringTransactions(ctx context.Context, r domain.RecurringTransaction, until time.Time) ([]service.TransactionResult, error) {
	args := m.Called(ctx, r, until)
	res, _ := args.Get(0).([]service.TransactionResult)
	return res, args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, filter *service.TransactionListFilter, cursor *service.TransactionCursor) ([]domain.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, filter, cursor)
	txs, _ := args.Get(0).([]domain.Transaction)
	next, _ := args.Get(1).(*service.TransactionCursor)
	return txs, next, args.Error(2)
}
