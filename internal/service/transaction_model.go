package service

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
	"github.com/carson-networks/budget-rules/internal/rules"
)

// TransactionCreate is the input for creating a transaction.
type TransactionCreate struct {
	Kind        domain.TransactionKind
	Description string
	Amount      money.Money
	Date        time.Time
	CategoryID  uuid.UUID
	Notes       string
	Account     string
}

// TransactionResult is a transaction together with its rule and budget evaluations.
type TransactionResult struct {
	Transaction      domain.Transaction
	Evaluation       rules.EvaluationResult[domain.Transaction]
	BudgetEvaluation rules.EvaluationResult[domain.Transaction]
}

// TransactionListFilter narrows a transaction listing. Dates are inclusive.
type TransactionListFilter struct {
	CategoryID *uuid.UUID
	Kind       *domain.TransactionKind
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}
