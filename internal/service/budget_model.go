package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
	"github.com/carson-networks/budget-rules/internal/rules"
)

// BudgetPeriod selects how a budget's window is derived.
type BudgetPeriod string

const (
	PeriodCustom  BudgetPeriod = "custom"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// ParseBudgetPeriod accepts the period names in any case. Empty means custom.
func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	p := BudgetPeriod(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return PeriodCustom, nil
	case PeriodCustom, PeriodMonthly, PeriodYearly:
		return p, nil
	default:
		return "", fmt.Errorf("invalid budget period %q", s)
	}
}

// BudgetCreate is the input for creating a budget. EndDate is only read for
// custom periods.
type BudgetCreate struct {
	Name       string
	Amount     money.Money
	CategoryID uuid.UUID
	Period     BudgetPeriod
	StartDate  time.Time
	EndDate    time.Time
}

func (c BudgetCreate) build() (domain.Budget, error) {
	switch c.Period {
	case PeriodMonthly:
		return domain.NewMonthlyBudget(c.Name, c.Amount, c.CategoryID, c.StartDate)
	case PeriodYearly:
		return domain.NewYearlyBudget(c.Name, c.Amount, c.CategoryID, c.StartDate)
	default:
		return domain.NewBudget(c.Name, c.Amount, c.CategoryID, c.StartDate, c.EndDate)
	}
}

// BudgetResult is a budget with CurrentSpent filled in, and its rule evaluation.
type BudgetResult struct {
	Budget     domain.Budget
	Evaluation rules.EvaluationResult[domain.Budget]
}
