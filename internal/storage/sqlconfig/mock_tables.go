package sqlconfig

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"
)

// MockITransactionTable is a testify mock of ITransactionTable.
type MockITransactionTable struct {
	mock.Mock
}

var _ ITransactionTable = (*MockITransactionTable)(nil)

// NewMockITransactionTable registers AssertExpectations as a cleanup on t.
func NewMockITransactionTable(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockITransactionTable {
	m := &MockITransactionTable{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockITransactionTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*Transaction)
	return row, args.Error(1)
}

func (m *MockITransactionTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *MockITransactionTable) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockITransactionTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*Transaction)
	return rows, args.Error(1)
}

// MockIBudgetTable is a testify mock of IBudgetTable.
type MockIBudgetTable struct {
	mock.Mock
}

var _ IBudgetTable = (*MockIBudgetTable)(nil)

func NewMockIBudgetTable(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIBudgetTable {
	m := &MockIBudgetTable{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIBudgetTable) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*Budget)
	return row, args.Error(1)
}

func (m *MockIBudgetTable) Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	id, _ := args.Get(0).(uuid.UUID)
	return id, args.Error(1)
}

func (m *MockIBudgetTable) Update(ctx context.Context, id uuid.UUID, update *BudgetUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockIBudgetTable) List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*Budget)
	return rows, args.Error(1)
}
