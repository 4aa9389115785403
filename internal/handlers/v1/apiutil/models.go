package apiutil

import (
	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/rules"
)

// RuleResult is one rule verdict.
type RuleResult struct {
	Rule     string `json:"rule" doc:"Rule name"`
	Success  bool   `json:"success" doc:"Whether the rule passed"`
	Severity string `json:"severity" enum:"info,warning,error,critical" doc:"Result severity"`
	Message  string `json:"message" doc:"Human-readable result"`
}

// Evaluation is the outcome of running a rule list against one entity.
type Evaluation struct {
	IsValid  bool         `json:"isValid" doc:"False if any blocking rule failed"`
	Errors   []string     `json:"errors" doc:"Messages of failed rules"`
	Warnings []string     `json:"warnings" doc:"Messages of passed rules flagged as warnings"`
	Results  []RuleResult `json:"results" doc:"Every rule result in evaluation order"`
}

func NewEvaluation[T any](e rules.EvaluationResult[T]) Evaluation {
	out := Evaluation{
		IsValid:  e.IsValid,
		Errors:   messages(e.Errors()),
		Warnings: messages(e.Warnings()),
		Results:  make([]RuleResult, len(e.Results)),
	}
	for i, r := range e.Results {
		out.Results[i] = RuleResult{
			Rule:     r.RuleName,
			Success:  r.Success,
			Severity: r.Severity.String(),
			Message:  r.Message,
		}
	}
	return out
}

func messages(results []rules.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Message
	}
	return out
}

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID          string `json:"id" doc:"Transaction UUID"`
	Kind        string `json:"kind" enum:"income,expense" doc:"Transaction kind"`
	Description string `json:"description" doc:"Transaction description"`
	Amount      string `json:"amount" doc:"Decimal amount, always positive"`
	Currency    string `json:"currency" doc:"ISO currency code"`
	Display     string `json:"display" doc:"Signed display amount, e.g. -$12.00"`
	Date        string `json:"date" doc:"Transaction date"`
	CategoryID  string `json:"categoryID" doc:"Category UUID"`
	Notes       string `json:"notes,omitempty" doc:"Free-form notes"`
	Account     string `json:"account,omitempty" doc:"Account label"`
}

func NewTransaction(tx domain.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Kind:        tx.Kind.String(),
		Description: tx.Description,
		Amount:      tx.Amount.Amount().StringFixed(2),
		Currency:    tx.Amount.Currency(),
		Display:     tx.DisplayAmount(),
		Date:        FormatDate(tx.Date),
		CategoryID:  tx.CategoryID.String(),
		Notes:       tx.Notes,
		Account:     tx.Account,
	}
}

// Budget is the API response model for a stored budget.
type Budget struct {
	ID             string `json:"id" doc:"Budget UUID"`
	Name           string `json:"name" doc:"Budget name"`
	Amount         string `json:"amount" doc:"Budgeted amount"`
	Currency       string `json:"currency" doc:"ISO currency code"`
	CategoryID     string `json:"categoryID" doc:"Category UUID"`
	StartDate      string `json:"startDate" doc:"First day of the window"`
	EndDate        string `json:"endDate" doc:"Last day of the window"`
	CurrentSpent   string `json:"currentSpent" doc:"Spending as of the last write to this category"`
	Remaining      string `json:"remaining" doc:"Amount minus currentSpent, negative when exceeded"`
	PercentageUsed string `json:"percentageUsed" doc:"currentSpent as a percentage of amount"`
	IsActive       bool   `json:"isActive" doc:"Inactive budgets are ignored by reports and projections"`
}

func NewBudget(b domain.Budget) Budget {
	return Budget{
		ID:             b.ID.String(),
		Name:           b.Name,
		Amount:         b.Amount.Amount().StringFixed(2),
		Currency:       b.Amount.Currency(),
		CategoryID:     b.CategoryID.String(),
		StartDate:      FormatDate(b.StartDate),
		EndDate:        FormatDate(b.EndDate),
		CurrentSpent:   b.CurrentSpent.Amount().StringFixed(2),
		Remaining:      b.Remaining().StringFixed(2),
		PercentageUsed: b.PercentageUsed().StringFixed(1),
		IsActive:       b.IsActive,
	}
}

// Summary is live spending against one budget.
type Summary struct {
	BudgetID         string `json:"budgetID" doc:"Budget UUID"`
	BudgetName       string `json:"budgetName" doc:"Budget name"`
	CategoryID       string `json:"categoryID" doc:"Category UUID"`
	Currency         string `json:"currency" doc:"ISO currency code"`
	BudgetAmount     string `json:"budgetAmount" doc:"Budgeted amount"`
	ActualSpending   string `json:"actualSpending" doc:"Sum of matching expenses"`
	Remaining        string `json:"remaining" doc:"Budget amount minus spending"`
	PercentageUsed   string `json:"percentageUsed" doc:"Spending as a percentage of the budget"`
	TransactionCount int    `json:"transactionCount" doc:"Number of matching expenses"`
	IsExceeded       bool   `json:"isExceeded" doc:"Spending is over the budget"`
	IsWarning        bool   `json:"isWarning" doc:"Spending is at or above the warning threshold"`
	StartDate        string `json:"startDate" doc:"First day of the window"`
	EndDate          string `json:"endDate" doc:"Last day of the window"`
}

func NewSummary(s budget.Summary) Summary {
	return Summary{
		BudgetID:         s.BudgetID.String(),
		BudgetName:       s.BudgetName,
		CategoryID:       s.CategoryID.String(),
		Currency:         s.Currency,
		BudgetAmount:     s.BudgetAmount.StringFixed(2),
		ActualSpending:   s.ActualSpending.StringFixed(2),
		Remaining:        s.Remaining.StringFixed(2),
		PercentageUsed:   s.PercentageUsed.StringFixed(1),
		TransactionCount: s.TransactionCount,
		IsExceeded:       s.IsExceeded,
		IsWarning:        s.IsWarning,
		StartDate:        FormatDate(s.StartDate),
		EndDate:          FormatDate(s.EndDate),
	}
}

// Alert flags a budget that is exceeded or near its limit.
type Alert struct {
	Severity string  `json:"severity" enum:"warning,exceeded" doc:"Alert severity"`
	Message  string  `json:"message" doc:"Human-readable alert"`
	Summary  Summary `json:"summary" doc:"Spending behind the alert"`
}

func NewAlerts(alerts []budget.Alert) []Alert {
	out := make([]Alert, len(alerts))
	for i, a := range alerts {
		out[i] = Alert{
			Severity: a.Severity.String(),
			Message:  a.Message,
			Summary:  NewSummary(a.Summary),
		}
	}
	return out
}
