package storage

import (
	"fmt"

	"github.com/aarondl/opt/omit"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

func TransactionFromRecord(row *sqlconfig.Transaction) (domain.Transaction, error) {
	amount, err := money.New(row.Amount, row.Currency)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", row.ID, err)
	}
	return domain.Transaction{
		ID:          row.ID,
		Kind:        domain.TransactionKind(row.Kind),
		Description: row.Description,
		Amount:      amount,
		Date:        row.TransactionDate,
		CategoryID:  row.CategoryID,
		Notes:       row.Notes,
		Account:     row.Account,
	}, nil
}

func TransactionToCreate(tx domain.Transaction) *sqlconfig.TransactionCreate {
	return &sqlconfig.TransactionCreate{
		ID:              tx.ID,
		Kind:            int16(tx.Kind),
		Description:     tx.Description,
		Amount:          tx.Amount.Amount(),
		Currency:        tx.Amount.Currency(),
		TransactionDate: tx.Date,
		CategoryID:      tx.CategoryID,
		Notes:           tx.Notes,
		Account:         tx.Account,
	}
}

// TransactionToUpdate writes every mutable column of tx.
func TransactionToUpdate(tx domain.Transaction) *sqlconfig.TransactionUpdate {
	return &sqlconfig.TransactionUpdate{
		Kind:            omit.From(int16(tx.Kind)),
		Description:     omit.From(tx.Description),
		Amount:          omit.From(tx.Amount.Amount()),
		Currency:        omit.From(tx.Amount.Currency()),
		TransactionDate: omit.From(tx.Date),
		CategoryID:      omit.From(tx.CategoryID),
		Notes:           omit.From(tx.Notes),
		Account:         omit.From(tx.Account),
	}
}

func BudgetFromRecord(row *sqlconfig.Budget) (domain.Budget, error) {
	amount, err := money.New(row.Amount, row.Currency)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("budget %s: %w", row.ID, err)
	}
	spent, err := money.New(row.CurrentSpent, row.Currency)
	if err != nil {
		return domain.Budget{}, fmt.Errorf("budget %s: %w", row.ID, err)
	}
	return domain.Budget{
		ID:           row.ID,
		Name:         row.Name,
		Amount:       amount,
		CategoryID:   row.CategoryID,
		StartDate:    row.StartDate,
		EndDate:      row.EndDate,
		CurrentSpent: spent,
		IsActive:     row.IsActive,
	}, nil
}

func BudgetToCreate(b domain.Budget) *sqlconfig.BudgetCreate {
	return &sqlconfig.BudgetCreate{
		ID:           b.ID,
		Name:         b.Name,
		Amount:       b.Amount.Amount(),
		Currency:     b.Amount.Currency(),
		CategoryID:   b.CategoryID,
		StartDate:    b.StartDate,
		EndDate:      b.EndDate,
		CurrentSpent: b.CurrentSpent.Amount(),
		IsActive:     b.IsActive,
	}
}

// BudgetToUpdate writes every mutable column of b.
func BudgetToUpdate(b domain.Budget) *sqlconfig.BudgetUpdate {
	return &sqlconfig.BudgetUpdate{
		Name:         omit.From(b.Name),
		Amount:       omit.From(b.Amount.Amount()),
		Currency:     omit.From(b.Amount.Currency()),
		CategoryID:   omit.From(b.CategoryID),
		StartDate:    omit.From(b.StartDate),
		EndDate:      omit.From(b.EndDate),
		CurrentSpent: omit.From(b.CurrentSpent.Amount()),
		IsActive:     omit.From(b.IsActive),
	}
}
