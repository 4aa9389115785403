package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
)

const (
	BudgetExceededRuleName = "BudgetExceeded"
	BudgetWarningRuleName  = "BudgetWarning"
	ValidDateRangeRuleName = "ValidDateRange"
	BudgetLimitRuleName    = "BudgetLimit"
)

// BudgetExceededRule fails, at Warning severity, when spending is over the amount.
// It reads CurrentSpent, so the budget should be refreshed first.
func BudgetExceededRule() *Template[domain.Budget] {
	return NewTemplate(BudgetExceededRuleName, "Budget spending must not exceed its amount", Warning,
		func(b *domain.Budget) Result {
			if b.IsExceeded() {
				return Fail(fmt.Sprintf("budget '%s' exceeded by %s", b.Name,
					money.FormatAmount(b.Remaining().Neg(), b.Amount.Currency())), Warning)
			}
			return Pass("budget within limit")
		})
}

// BudgetWarningRule flags budgets at or above threshold percent used.
func BudgetWarningRule(threshold decimal.Decimal) *Template[domain.Budget] {
	return NewTemplate(BudgetWarningRuleName, fmt.Sprintf("Budget approaching limit (%s%%)", threshold.String()), Warning,
		func(b *domain.Budget) Result {
			pct := b.PercentageUsed()
			if !b.IsExceeded() && pct.GreaterThanOrEqual(threshold) {
				return PassWithWarning(fmt.Sprintf("budget '%s' is at %s%% of its limit", b.Name, pct.StringFixed(1)))
			}
			return Pass("budget below warning threshold")
		})
}

// ValidDateRangeRule fails budgets whose end date is not after the start date.
func ValidDateRangeRule() *Template[domain.Budget] {
	return NewTemplate(ValidDateRangeRuleName, "Budget end date must be after start date", Error,
		func(b *domain.Budget) Result {
			if !b.EndDate.After(b.StartDate) {
				return Fail("end date must be after start date", Error)
			}
			return Pass("date range is valid")
		})
}

// BudgetLimitRule projects a transaction onto one budget. Projected spending is
// the budget's spending without the transaction's own prior value plus its
// new amount, so both new transactions and edits are handled.
func BudgetLimitRule(b domain.Budget, agg *budget.Aggregator) *Template[domain.Transaction] {
	return NewTemplate(BudgetLimitRuleName, fmt.Sprintf("Transaction must not push budget '%s' over its limit", b.Name), Warning,
		func(tx *domain.Transaction) Result {
			projected := agg.SpendingExcluding(b, tx.ID).Add(tx.Amount.Amount())
			pct, exceeded, warning := agg.Classify(projected, b.Amount.Amount())
			currency := b.Amount.Currency()
			switch {
			case exceeded:
				return Fail(fmt.Sprintf("budget '%s' would be exceeded: %s of %s",
					b.Name, money.FormatAmount(projected, currency), money.FormatAmount(b.Amount.Amount(), currency)), Warning)
			case warning:
				return PassWithWarning(fmt.Sprintf("budget '%s' would be at %s%% of its limit", b.Name, pct.StringFixed(1)))
			default:
				return Pass(fmt.Sprintf("budget '%s' stays within limit", b.Name))
			}
		})
}
