package rules

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
)

// Engine holds ordered transaction and budget rules and evaluates entities
// against them. Rule lists may be changed while evaluations run.
type Engine struct {
	mu               sync.RWMutex
	transactionRules []Rule[domain.Transaction]
	budgetRules      []Rule[domain.Budget]

	logger           *logrus.Logger
	now              func() time.Time
	futureDateLimit  int
	warningThreshold decimal.Decimal
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

func WithLogger(logger *logrus.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

func WithFutureDateLimit(days int) EngineOption {
	return func(e *Engine) {
		e.futureDateLimit = days
	}
}

func WithWarningThreshold(pct decimal.Decimal) EngineOption {
	return func(e *Engine) {
		e.warningThreshold = pct
	}
}

// NewEngine returns an engine seeded with the default rules.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		now:              time.Now,
		futureDateLimit:  DefaultFutureDateLimitDays,
		warningThreshold: domain.DefaultWarningThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.transactionRules = []Rule[domain.Transaction]{
		e.observed(PositiveAmountRule()),
		e.observed(FutureDateRule(e.futureDateLimit, e.now)),
		e.observed(DescriptionRequiredRule()),
	}
	e.budgetRules = []Rule[domain.Budget]{
		e.observedBudget(BudgetExceededRule()),
		e.observedBudget(BudgetWarningRule(e.warningThreshold)),
		e.observedBudget(ValidDateRangeRule()),
	}
	return e
}

// AddTransactionRule appends a rule to the end of the transaction list.
func (e *Engine) AddTransactionRule(r Rule[domain.Transaction]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transactionRules = append(e.transactionRules, r)
}

// AddBudgetRule appends a rule to the end of the budget list.
func (e *Engine) AddBudgetRule(r Rule[domain.Budget]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.budgetRules = append(e.budgetRules, r)
}

// RemoveTransactionRule drops every rule named exactly name. Unknown names are ignored.
func (e *Engine) RemoveTransactionRule(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	var removed bool
	e.transactionRules, removed = removeByName(e.transactionRules, name)
	return removed
}

// RemoveBudgetRule drops every rule named exactly name. Unknown names are ignored.
func (e *Engine) RemoveBudgetRule(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	var removed bool
	e.budgetRules, removed = removeByName(e.budgetRules, name)
	return removed
}

func (e *Engine) TransactionRule(name string) (Rule[domain.Transaction], bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return findByName(e.transactionRules, name)
}

func (e *Engine) BudgetRule(name string) (Rule[domain.Budget], bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return findByName(e.budgetRules, name)
}

// TransactionRules returns a copy of the transaction rule list.
func (e *Engine) TransactionRules() []Rule[domain.Transaction] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Rule[domain.Transaction](nil), e.transactionRules...)
}

// BudgetRules returns a copy of the budget rule list.
func (e *Engine) BudgetRules() []Rule[domain.Budget] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Rule[domain.Budget](nil), e.budgetRules...)
}

// EvaluateTransaction runs every enabled transaction rule. Any failure makes
// the transaction invalid; warnings never do.
func (e *Engine) EvaluateTransaction(tx *domain.Transaction) EvaluationResult[domain.Transaction] {
	results := evaluateAll(e.TransactionRules(), tx)
	return EvaluationResult[domain.Transaction]{Entity: tx, IsValid: !anyFailed(results), Results: results}
}

// EvaluateBudget runs every enabled budget rule. Only Error or Critical
// failures make the budget invalid.
func (e *Engine) EvaluateBudget(b *domain.Budget) EvaluationResult[domain.Budget] {
	results := evaluateAll(e.BudgetRules(), b)
	return EvaluationResult[domain.Budget]{Entity: b, IsValid: !anyBlocking(results), Results: results}
}

// EvaluateTransactionAgainstBudgets projects tx onto every active budget whose
// category and window contain it. Income never counts toward a budget.
func (e *Engine) EvaluateTransactionAgainstBudgets(tx *domain.Transaction, agg *budget.Aggregator) EvaluationResult[domain.Transaction] {
	if tx == nil {
		return EvaluationResult[domain.Transaction]{IsValid: false, Results: []Result{Fail("entity required", Error)}}
	}
	var results []Result
	if tx.IsExpense() {
		for _, b := range agg.Budgets().Budgets() {
			if !b.IsActiveAt(tx.Date) || b.CategoryID != tx.CategoryID {
				continue
			}
			rule := e.observed(BudgetLimitRule(b, agg))
			results = append(results, rule.Evaluate(tx))
		}
	}
	return EvaluationResult[domain.Transaction]{Entity: tx, IsValid: !anyFailed(results), Results: results}
}

func (e *Engine) observed(t *Template[domain.Transaction]) *Template[domain.Transaction] {
	return observe(e.logger, t, "RuleEngine.EvaluateTransaction.Result", func(tx *domain.Transaction) logrus.Fields {
		return logrus.Fields{"transactionID": tx.ID.String()}
	})
}

func (e *Engine) observedBudget(t *Template[domain.Budget]) *Template[domain.Budget] {
	return observe(e.logger, t, "RuleEngine.EvaluateBudget.Result", func(b *domain.Budget) logrus.Fields {
		return logrus.Fields{"budgetID": b.ID.String()}
	})
}

// observe installs a post-hook that logs each result at debug level.
func observe[T any](logger *logrus.Logger, t *Template[T], event string, fields func(*T) logrus.Fields) *Template[T] {
	if logger == nil {
		return t
	}
	t.After = func(entity *T, r Result) {
		logger.WithFields(fields(entity)).WithFields(logrus.Fields{
			"rule":     r.RuleName,
			"success":  r.Success,
			"severity": r.Severity.String(),
		}).Debug(event)
	}
	return t
}

func evaluateAll[T any](rules []Rule[T], entity *T) []Result {
	results := make([]Result, 0, len(rules))
	for _, r := range rules {
		if !r.Enabled() {
			continue
		}
		results = append(results, r.Evaluate(entity))
	}
	return results
}

func removeByName[T any](rules []Rule[T], name string) ([]Rule[T], bool) {
	kept := rules[:0:0]
	removed := false
	for _, r := range rules {
		if r.Name() == name {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}

func findByName[T any](rules []Rule[T], name string) (Rule[T], bool) {
	for _, r := range rules {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}
