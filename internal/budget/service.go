package budget

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
)

// Service answers budget questions over one snapshot: active summaries,
// alerts, category spending, utilization, and would-exceed projections.
type Service struct {
	aggregator   *Aggregator
	transactions TransactionProvider
	budgets      BudgetProvider
	now          func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(transactions TransactionProvider, budgets BudgetProvider, aggOpts []AggregatorOption, opts ...ServiceOption) *Service {
	s := &Service{
		aggregator:   NewAggregator(transactions, budgets, aggOpts...),
		transactions: transactions,
		budgets:      budgets,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Aggregator() *Aggregator {
	return s.aggregator
}

// BudgetSummary computes spending for a single budget by ID.
func (s *Service) BudgetSummary(id uuid.UUID) (Summary, error) {
	return s.aggregator.CalculateSpendingVsBudgetByID(id)
}

// ActiveBudgetsWithSpending summarizes every budget active right now.
func (s *Service) ActiveBudgetsWithSpending() []Summary {
	now := s.now()
	var out []Summary
	for _, b := range s.budgets.Budgets() {
		if !b.IsActiveAt(now) {
			continue
		}
		out = append(out, s.aggregator.CalculateSpendingVsBudget(b))
	}
	return out
}

// ExceededBudgets returns an alert per exceeded budget, largest overrun first.
func (s *Service) ExceededBudgets() []Alert {
	var alerts []Alert
	for _, sum := range s.ActiveBudgetsWithSpending() {
		if sum.IsExceeded {
			alerts = append(alerts, exceededAlert(sum))
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Summary.OverAmount().GreaterThan(alerts[j].Summary.OverAmount())
	})
	return alerts
}

// WarningBudgets returns an alert per budget in warning, highest spending first.
func (s *Service) WarningBudgets() []Alert {
	var alerts []Alert
	for _, sum := range s.ActiveBudgetsWithSpending() {
		if sum.IsWarning {
			alerts = append(alerts, warningAlert(sum))
		}
	}
	sortBySpending(alerts)
	return alerts
}

// AllBudgetAlerts returns exceeded alerts before warnings, each group by spending descending.
func (s *Service) AllBudgetAlerts() []Alert {
	var alerts []Alert
	for _, sum := range s.ActiveBudgetsWithSpending() {
		switch {
		case sum.IsExceeded:
			alerts = append(alerts, exceededAlert(sum))
		case sum.IsWarning:
			alerts = append(alerts, warningAlert(sum))
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity > alerts[j].Severity
		}
		return alerts[i].Summary.ActualSpending.GreaterThan(alerts[j].Summary.ActualSpending)
	})
	return alerts
}

// SpendingByCategory groups expenses dated within [start, end] by category,
// largest total first.
func (s *Service) SpendingByCategory(start, end time.Time) []CategorySpending {
	from, to := domain.Day(start), domain.Day(end)
	index := make(map[uuid.UUID]int)
	var out []CategorySpending
	for _, tx := range s.transactions.Transactions() {
		d := domain.Day(tx.Date)
		if !tx.IsExpense() || d.Before(from) || d.After(to) {
			continue
		}
		i, ok := index[tx.CategoryID]
		if !ok {
			i = len(out)
			index[tx.CategoryID] = i
			out = append(out, CategorySpending{CategoryID: tx.CategoryID, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(tx.Amount.Amount())
		out[i].TransactionCount++
	}
	for i := range out {
		out[i].Average = out[i].Total.Div(decimal.NewFromInt(int64(out[i].TransactionCount)))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// BudgetUtilizationReport totals all active budgets.
func (s *Service) BudgetUtilizationReport() UtilizationReport {
	r := UtilizationReport{
		TotalBudgeted:     decimal.Zero,
		TotalSpent:        decimal.Zero,
		TotalRemaining:    decimal.Zero,
		OverallPercentage: decimal.Zero,
	}
	for _, sum := range s.ActiveBudgetsWithSpending() {
		r.BudgetCount++
		r.TotalBudgeted = r.TotalBudgeted.Add(sum.BudgetAmount)
		r.TotalSpent = r.TotalSpent.Add(sum.ActualSpending)
		r.TotalRemaining = r.TotalRemaining.Add(sum.Remaining)
		switch {
		case sum.IsExceeded:
			r.ExceededCount++
		case sum.IsWarning:
			r.WarningCount++
		default:
			r.HealthyCount++
		}
	}
	r.OverallPercentage = domain.Percentage(r.TotalSpent, r.TotalBudgeted)
	return r
}

// WouldExceedBudget reports whether adding amount on date to categoryID would
// push the covering active budget over its limit. With no covering budget the
// answer is false. If several budgets cover the date, the first one wins.
//
// Coverage is judged at date, not at the service clock, so a budget whose
// window has not started yet still counts for a future date even though
// ActiveBudgetsWithSpending and the alerts leave it out until it starts.
func (s *Service) WouldExceedBudget(categoryID uuid.UUID, amount decimal.Decimal, date time.Time) bool {
	b, ok := s.CoveringBudget(categoryID, date)
	if !ok {
		return false
	}
	current := s.aggregator.CalculateSpendingVsBudget(b).ActualSpending
	return current.Add(amount).GreaterThan(b.Amount.Amount())
}

// CoveringBudget finds the enabled budget for categoryID whose window
// contains date. The window may lie entirely in the future.
func (s *Service) CoveringBudget(categoryID uuid.UUID, date time.Time) (domain.Budget, bool) {
	for _, b := range s.budgets.Budgets() {
		if b.CategoryID == categoryID && b.IsActiveAt(date) {
			return b, true
		}
	}
	return domain.Budget{}, false
}

func exceededAlert(sum Summary) Alert {
	return Alert{
		Summary:  sum,
		Severity: AlertExceeded,
		Message: fmt.Sprintf("Budget '%s' exceeded by %s (%s%% used)",
			sum.BudgetName,
			money.FormatAmount(sum.OverAmount(), sum.Currency),
			sum.PercentageUsed.StringFixed(1)),
	}
}

func warningAlert(sum Summary) Alert {
	return Alert{
		Summary:  sum,
		Severity: AlertWarning,
		Message: fmt.Sprintf("Budget '%s' is at %s%% (%s remaining)",
			sum.BudgetName,
			sum.PercentageUsed.StringFixed(1),
			money.FormatAmount(sum.Remaining, sum.Currency)),
	}
}

func sortBySpending(alerts []Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Summary.ActualSpending.GreaterThan(alerts[j].Summary.ActualSpending)
	})
}
