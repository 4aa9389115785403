package sqlconfig

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Budget represents a budget record.
type Budget struct {
	ID           uuid.UUID       `db:"id"`
	Name         string          `db:"name"`
	Amount       decimal.Decimal `db:"amount"`
	Currency     string          `db:"currency"`
	CategoryID   uuid.UUID       `db:"category_id"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      time.Time       `db:"end_date"`
	CurrentSpent decimal.Decimal `db:"current_spent"`
	IsActive     bool            `db:"is_active"`
	CreatedAt    time.Time       `db:"created_at"`
}

// BudgetCreate is the input for creating a new budget.
type BudgetCreate struct {
	ID           uuid.UUID
	Name         string
	Amount       decimal.Decimal
	Currency     string
	CategoryID   uuid.UUID
	StartDate    time.Time
	EndDate      time.Time
	CurrentSpent decimal.Decimal
	IsActive     bool
}

// BudgetUpdate holds the columns to change. Unset fields are left alone.
type BudgetUpdate struct {
	Name         omit.Val[string]
	Amount       omit.Val[decimal.Decimal]
	Currency     omit.Val[string]
	CategoryID   omit.Val[uuid.UUID]
	StartDate    omit.Val[time.Time]
	EndDate      omit.Val[time.Time]
	CurrentSpent omit.Val[decimal.Decimal]
	IsActive     omit.Val[bool]
}

// BudgetFilter specifies filters for listing budgets.
type BudgetFilter struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
}

// IBudgetTable defines the interface for budget storage operations.
type IBudgetTable interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Budget, error)
	Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, update *BudgetUpdate) error
	List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error)
}
