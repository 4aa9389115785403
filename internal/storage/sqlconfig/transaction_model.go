package sqlconfig

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a lookup by primary key matches no row.
var ErrNotFound = errors.New("record not found")

// Transaction represents a transaction record.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	Kind            int16           `db:"kind"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	Currency        string          `db:"currency"`
	TransactionDate time.Time       `db:"transaction_date"`
	CategoryID      uuid.UUID       `db:"category_id"`
	Notes           string          `db:"notes"`
	Account         string          `db:"account"`
	CreatedAt       time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction. IDs are
// assigned by the domain layer.
type TransactionCreate struct {
	ID              uuid.UUID
	Kind            int16
	Description     string
	Amount          decimal.Decimal
	Currency        string
	TransactionDate time.Time
	CategoryID      uuid.UUID
	Notes           string
	Account         string
}

// TransactionUpdate holds the columns to change. Unset fields are left alone.
type TransactionUpdate struct {
	Kind            omit.Val[int16]
	Description     omit.Val[string]
	Amount          omit.Val[decimal.Decimal]
	Currency        omit.Val[string]
	TransactionDate omit.Val[time.Time]
	CategoryID      omit.Val[uuid.UUID]
	Notes           omit.Val[string]
	Account         omit.Val[string]
}

// TransactionFilter specifies filters for listing transactions.
// StartDate and EndDate are both inclusive. A positive Limit fetches one
// extra row so callers can tell whether another page exists.
type TransactionFilter struct {
	CategoryID      *uuid.UUID
	Kind            *int16
	StartDate       *time.Time
	EndDate         *time.Time
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the implementation (e.g. Bob) without changing callers.
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
}
