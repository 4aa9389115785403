package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-rules/internal/money"
)

var (
	ErrEmptyDescription = errors.New("description is required")
	ErrMissingDate      = errors.New("date is required")
	ErrMissingCategory  = errors.New("category is required")
	ErrInvalidKind      = errors.New("invalid transaction kind")
)

// TransactionKind determines how a transaction affects the balance.
type TransactionKind int8

const (
	Expense TransactionKind = iota
	Income
)

func (k TransactionKind) String() string {
	switch k {
	case Income:
		return "income"
	case Expense:
		return "expense"
	default:
		return "unknown"
	}
}

// ParseTransactionKind accepts "income" or "expense" in any case.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense":
		return Expense, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Transaction is a single income or expense.
type Transaction struct {
	ID          uuid.UUID
	Kind        TransactionKind
	Description string
	Amount      money.Money
	Date        time.Time
	CategoryID  uuid.UUID
	Notes       string
	Account     string
}

// TransactionUpdate holds the mutable fields of a transaction. Nil fields are left unchanged.
type TransactionUpdate struct {
	Kind        *TransactionKind
	Description *string
	Amount      *money.Money
	Date        *time.Time
	CategoryID  *uuid.UUID
	Notes       *string
	Account     *string
}

// NewTransaction validates the inputs and assigns a fresh ID.
func NewTransaction(kind TransactionKind, description string, amount money.Money, date time.Time, categoryID uuid.UUID) (Transaction, error) {
	tx := Transaction{
		ID:          uuid.Must(uuid.NewV4()),
		Kind:        kind,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Date:        date,
		CategoryID:  categoryID,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// WithID returns a copy carrying the given ID.
func (t Transaction) WithID(id uuid.UUID) Transaction {
	t.ID = id
	return t
}

func (t Transaction) Validate() error {
	if t.Kind != Income && t.Kind != Expense {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: transaction amount must be greater than zero", money.ErrInvalidAmount)
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if t.CategoryID == uuid.Nil {
		return ErrMissingCategory
	}
	return nil
}

// Update applies the changes and re-validates. The receiver is untouched on error.
func (t *Transaction) Update(u TransactionUpdate) error {
	next := *t
	if u.Kind != nil {
		next.Kind = *u.Kind
	}
	if u.Description != nil {
		next.Description = strings.TrimSpace(*u.Description)
	}
	if u.Amount != nil {
		next.Amount = *u.Amount
	}
	if u.Date != nil {
		next.Date = *u.Date
	}
	if u.CategoryID != nil {
		next.CategoryID = *u.CategoryID
	}
	if u.Notes != nil {
		next.Notes = *u.Notes
	}
	if u.Account != nil {
		next.Account = *u.Account
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*t = next
	return nil
}

func (t Transaction) IsExpense() bool {
	return t.Kind == Expense
}

func (t Transaction) IsIncome() bool {
	return t.Kind == Income
}

// BalanceImpact is +amount for income and -amount for expenses.
func (t Transaction) BalanceImpact() decimal.Decimal {
	switch t.Kind {
	case Income:
		return t.Amount.Amount()
	default:
		return t.Amount.Amount().Neg()
	}
}

// DisplayAmount renders "+$12.00" for income and "-$12.00" for expenses.
func (t Transaction) DisplayAmount() string {
	switch t.Kind {
	case Income:
		return "+" + t.Amount.Format()
	default:
		return "-" + t.Amount.Format()
	}
}
