package budget

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
)

// Aggregator computes actual spending for budgets from a transaction provider.
type Aggregator struct {
	transactions TransactionProvider
	budgets      BudgetProvider
	threshold    decimal.Decimal
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithWarningThreshold sets the percentage at which a budget is in warning.
func WithWarningThreshold(pct decimal.Decimal) AggregatorOption {
	return func(a *Aggregator) {
		a.threshold = pct
	}
}

func NewAggregator(transactions TransactionProvider, budgets BudgetProvider, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		transactions: transactions,
		budgets:      budgets,
		threshold:    domain.DefaultWarningThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WarningThreshold returns the configured warning percentage.
func (a *Aggregator) WarningThreshold() decimal.Decimal {
	return a.threshold
}

// Budgets exposes the budget provider the aggregator resolves IDs against.
func (a *Aggregator) Budgets() BudgetProvider {
	return a.budgets
}

// CalculateSpendingVsBudget sums the expenses in the budget's category whose
// date falls inside the budget window, boundaries included.
func (a *Aggregator) CalculateSpendingVsBudget(b domain.Budget) Summary {
	spent, count := a.sum(b, uuid.Nil)
	return a.summarize(b, spent, count)
}

// CalculateSpendingVsBudgetByID looks the budget up first.
func (a *Aggregator) CalculateSpendingVsBudgetByID(id uuid.UUID) (Summary, error) {
	b, ok := a.budgets.BudgetByID(id)
	if !ok {
		return Summary{}, fmt.Errorf("%w: %s", ErrBudgetNotFound, id)
	}
	return a.CalculateSpendingVsBudget(b), nil
}

// SpendingExcluding is the budget's current spending without the transaction
// identified by excludeID. Used to project an edit without counting the old value.
func (a *Aggregator) SpendingExcluding(b domain.Budget, excludeID uuid.UUID) decimal.Decimal {
	spent, _ := a.sum(b, excludeID)
	return spent
}

// RefreshSpent returns b with CurrentSpent recomputed from transactions.
func (a *Aggregator) RefreshSpent(b domain.Budget) (domain.Budget, error) {
	spent, _ := a.sum(b, uuid.Nil)
	m, err := money.New(spent, b.Amount.Currency())
	if err != nil {
		return domain.Budget{}, err
	}
	return b.WithCurrentSpent(m), nil
}

// Classify derives percentage, exceeded and warning flags for spent against amount.
// Exceeded takes precedence: the two flags are never both set.
func (a *Aggregator) Classify(spent, amount decimal.Decimal) (pct decimal.Decimal, exceeded, warning bool) {
	pct = domain.Percentage(spent, amount)
	exceeded = spent.GreaterThan(amount)
	warning = !exceeded && pct.GreaterThanOrEqual(a.threshold)
	return pct, exceeded, warning
}

func (a *Aggregator) sum(b domain.Budget, excludeID uuid.UUID) (decimal.Decimal, int) {
	spent := decimal.Zero
	count := 0
	for _, tx := range a.transactions.Transactions() {
		if !tx.IsExpense() || tx.CategoryID != b.CategoryID || !b.Covers(tx.Date) {
			continue
		}
		if excludeID != uuid.Nil && tx.ID == excludeID {
			continue
		}
		spent = spent.Add(tx.Amount.Amount())
		count++
	}
	return spent, count
}

func (a *Aggregator) summarize(b domain.Budget, spent decimal.Decimal, count int) Summary {
	amount := b.Amount.Amount()
	pct, exceeded, warning := a.Classify(spent, amount)
	return Summary{
		BudgetID:         b.ID,
		BudgetName:       b.Name,
		CategoryID:       b.CategoryID,
		Currency:         b.Amount.Currency(),
		BudgetAmount:     amount,
		ActualSpending:   spent,
		Remaining:        amount.Sub(spent),
		PercentageUsed:   pct,
		TransactionCount: count,
		IsExceeded:       exceeded,
		IsWarning:        warning,
		StartDate:        b.StartDate,
		EndDate:          b.EndDate,
	}
}
