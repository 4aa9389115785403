package budget

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Summary is spending against one budget. Amounts are raw decimals in the
// budget's currency; transactions are summed without conversion.
type Summary struct {
	BudgetID         uuid.UUID
	BudgetName       string
	CategoryID       uuid.UUID
	Currency         string
	BudgetAmount     decimal.Decimal
	ActualSpending   decimal.Decimal
	Remaining        decimal.Decimal
	PercentageUsed   decimal.Decimal
	TransactionCount int
	IsExceeded       bool
	IsWarning        bool
	StartDate        time.Time
	EndDate          time.Time
}

// OverAmount is how far spending exceeds the budget, or zero.
func (s Summary) OverAmount() decimal.Decimal {
	if !s.IsExceeded {
		return decimal.Zero
	}
	return s.ActualSpending.Sub(s.BudgetAmount)
}

// AlertSeverity orders alerts; higher is more severe.
type AlertSeverity int8

const (
	AlertWarning AlertSeverity = iota + 1
	AlertExceeded
)

func (s AlertSeverity) String() string {
	switch s {
	case AlertExceeded:
		return "exceeded"
	case AlertWarning:
		return "warning"
	default:
		return "none"
	}
}

// Alert flags a budget that is exceeded or close to its limit.
type Alert struct {
	Summary  Summary
	Severity AlertSeverity
	Message  string
}

// CategorySpending is the expense total for one category in a window.
type CategorySpending struct {
	CategoryID       uuid.UUID
	Total            decimal.Decimal
	TransactionCount int
	Average          decimal.Decimal
}

// UtilizationReport sums all active budgets.
//
// TotalSpent adds each budget's independently computed spending, so a
// transaction covered by two budgets of the same category counts twice.
type UtilizationReport struct {
	TotalBudgeted     decimal.Decimal
	TotalSpent        decimal.Decimal
	TotalRemaining    decimal.Decimal
	OverallPercentage decimal.Decimal
	BudgetCount       int
	ExceededCount     int
	WarningCount      int
	HealthyCount      int
}
