package rules

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/money"
)

var (
	now    = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	foodID = uuid.Must(uuid.NewV4())
)

func usd(s string) money.Money {
	return money.MustNew(decimal.RequireFromString(s), "USD")
}

func newTestEngine(opts ...EngineOption) *Engine {
	return NewEngine(append([]EngineOption{WithClock(func() time.Time { return now })}, opts...)...)
}

func makeTx(t *testing.T, amount string, date time.Time) domain.Transaction {
	t.Helper()
	tx, err := domain.NewTransaction(domain.Expense, "Groceries", usd(amount), date, foodID)
	require.NoError(t, err)
	return tx
}

func makeBudget(t *testing.T, amount string) domain.Budget {
	t.Helper()
	b, err := domain.NewBudget("Food", usd(amount), foodID, now.AddDate(0, 0, -10), now.AddDate(0, 0, 20))
	require.NoError(t, err)
	return b
}

func ruleNames(results []Result) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.RuleName
	}
	return names
}

// -- Template lifecycle tests --

func TestTemplate_DisabledRuleAlwaysPasses(t *testing.T) {
	rule := PositiveAmountRule()
	rule.SetEnabled(false)

	bad := domain.Transaction{Amount: money.Zero("USD")}
	r := rule.Evaluate(&bad)

	assert.True(t, r.Success)
	assert.Equal(t, Info, r.Severity)
	assert.Equal(t, "rule is disabled", r.Message)
	assert.Equal(t, PositiveAmountRuleName, r.RuleName)
}

func TestTemplate_NilEntityFails(t *testing.T) {
	r := DescriptionRequiredRule().Evaluate(nil)
	assert.False(t, r.Success)
	assert.Equal(t, Error, r.Severity)
	assert.Equal(t, "entity required", r.Message)
}

func TestTemplate_BeforeShortCircuitsAndAfterObserves(t *testing.T) {
	checked := false
	var observed []Result
	rule := NewTemplate("Custom", "custom rule", Error, func(tx *domain.Transaction) Result {
		checked = true
		return Pass("checked")
	})
	rule.Before = func(tx *domain.Transaction) (Result, bool) {
		if tx.Notes == "skip" {
			return Fail("skipped", Critical), true
		}
		return Result{}, false
	}
	rule.After = func(_ *domain.Transaction, r Result) {
		observed = append(observed, r)
	}

	skipped := domain.Transaction{Notes: "skip"}
	r := rule.Evaluate(&skipped)
	assert.False(t, r.Success)
	assert.Equal(t, Critical, r.Severity)
	assert.False(t, checked)
	assert.Empty(t, observed)

	normal := domain.Transaction{}
	r = rule.Evaluate(&normal)
	assert.True(t, r.Success)
	assert.True(t, checked)
	require.Len(t, observed, 1)
	assert.Equal(t, "Custom", observed[0].RuleName)
}

// -- Transaction evaluation tests --

func TestEvaluateTransaction_ValidTransaction(t *testing.T) {
	tx := makeTx(t, "12.50", now)

	res := newTestEngine().EvaluateTransaction(&tx)

	assert.True(t, res.IsValid)
	assert.Len(t, res.Results, 3)
	assert.Empty(t, res.Errors())
	assert.Empty(t, res.Warnings())
	assert.Equal(t, []string{PositiveAmountRuleName, FutureDateRuleName, DescriptionRequiredRuleName}, ruleNames(res.Results))
}

func TestEvaluateTransaction_FutureDateIsWarningOnly(t *testing.T) {
	tx := makeTx(t, "12.50", now.AddDate(0, 0, 10))

	res := newTestEngine().EvaluateTransaction(&tx)

	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings(), 1)
	assert.Equal(t, FutureDateRuleName, res.Warnings()[0].RuleName)
	assert.Equal(t, Warning, res.Warnings()[0].Severity)
	assert.Contains(t, res.WarningMessage(), "more than 7 days in the future")
}

func TestEvaluateTransaction_AnyFailureInvalidates(t *testing.T) {
	tx := domain.Transaction{Amount: money.Zero("USD"), Date: now}

	res := newTestEngine().EvaluateTransaction(&tx)

	assert.False(t, res.IsValid)
	assert.Len(t, res.Errors(), 2)
	assert.Equal(t, "amount must be greater than zero; description is required", res.ErrorMessage())
}

func TestEvaluateTransaction_DisabledRuleIsSkipped(t *testing.T) {
	e := newTestEngine()
	rule, ok := e.TransactionRule(DescriptionRequiredRuleName)
	require.True(t, ok)
	rule.SetEnabled(false)

	tx := domain.Transaction{Amount: usd("5"), Date: now}
	res := e.EvaluateTransaction(&tx)

	assert.True(t, res.IsValid)
	assert.NotContains(t, ruleNames(res.Results), DescriptionRequiredRuleName)
}

// -- Registry tests --

func TestRemoveTransactionRule(t *testing.T) {
	e := newTestEngine()

	assert.True(t, e.RemoveTransactionRule(FutureDateRuleName))
	assert.False(t, e.RemoveTransactionRule("futuredate"), "names are case-sensitive")
	assert.False(t, e.RemoveTransactionRule("DoesNotExist"))

	tx := makeTx(t, "5", now.AddDate(1, 0, 0))
	res := e.EvaluateTransaction(&tx)
	assert.NotContains(t, ruleNames(res.Results), FutureDateRuleName)
	assert.Empty(t, res.Warnings())
	assert.Len(t, e.TransactionRules(), 2)
}

func TestAddTransactionRule_AppendsInOrder(t *testing.T) {
	e := newTestEngine()
	e.AddTransactionRule(NewTemplate("NoNotes", "notes must be empty", Error, func(tx *domain.Transaction) Result {
		if tx.Notes != "" {
			return Fail("notes not allowed", Error)
		}
		return Pass("ok")
	}))

	tx := makeTx(t, "5", now)
	tx.Notes = "hello"
	res := e.EvaluateTransaction(&tx)

	assert.False(t, res.IsValid)
	assert.Equal(t, "NoNotes", res.Results[len(res.Results)-1].RuleName)
}

func TestRemoveBudgetRule_AndLookup(t *testing.T) {
	e := newTestEngine()
	_, ok := e.BudgetRule(ValidDateRangeRuleName)
	assert.True(t, ok)

	assert.True(t, e.RemoveBudgetRule(ValidDateRangeRuleName))
	_, ok = e.BudgetRule(ValidDateRangeRuleName)
	assert.False(t, ok)
	assert.Len(t, e.BudgetRules(), 2)
}

// -- Budget evaluation tests --

func TestEvaluateBudget_WarningsDoNotInvalidate(t *testing.T) {
	b := makeBudget(t, "100").WithCurrentSpent(usd("85"))

	res := newTestEngine().EvaluateBudget(&b)

	assert.True(t, res.IsValid)
	require.Len(t, res.Warnings(), 1)
	assert.Equal(t, BudgetWarningRuleName, res.Warnings()[0].RuleName)
}

func TestEvaluateBudget_ExceededFailsAtWarningSeverity(t *testing.T) {
	b := makeBudget(t, "100").WithCurrentSpent(usd("150"))

	res := newTestEngine().EvaluateBudget(&b)

	assert.True(t, res.IsValid, "warning-severity failures do not invalidate budgets")
	require.Len(t, res.Errors(), 1)
	assert.Equal(t, BudgetExceededRuleName, res.Errors()[0].RuleName)
	assert.Equal(t, "budget 'Food' exceeded by $50.00", res.Errors()[0].Message)
	assert.Empty(t, res.Warnings(), "exceeded and warning are exclusive")
}

func TestEvaluateBudget_InvalidDateRangeInvalidates(t *testing.T) {
	b := makeBudget(t, "100")
	b.EndDate = b.StartDate

	res := newTestEngine().EvaluateBudget(&b)

	assert.False(t, res.IsValid)
	assert.Equal(t, "end date must be after start date", res.ErrorMessage())
}

func TestEvaluateBudget_CustomThreshold(t *testing.T) {
	b := makeBudget(t, "100").WithCurrentSpent(usd("55"))

	res := newTestEngine(WithWarningThreshold(decimal.NewFromInt(50))).EvaluateBudget(&b)

	assert.True(t, res.HasWarnings())
}

// -- Budget projection tests --

func newAgg(txs []domain.Transaction, budgets []domain.Budget) *budget.Aggregator {
	snap := budget.NewSnapshot(txs, budgets)
	return budget.NewAggregator(snap, snap)
}

func TestEvaluateTransactionAgainstBudgets_NewTransactionWouldExceed(t *testing.T) {
	b := makeBudget(t, "100")
	existing := makeTx(t, "80", now)
	agg := newAgg([]domain.Transaction{existing}, []domain.Budget{b})

	prospective := makeTx(t, "30", now)
	res := newTestEngine().EvaluateTransactionAgainstBudgets(&prospective, agg)

	assert.False(t, res.IsValid)
	require.Len(t, res.Errors(), 1)
	assert.Equal(t, BudgetLimitRuleName, res.Errors()[0].RuleName)
	assert.Equal(t, "budget 'Food' would be exceeded: $110.00 of $100.00", res.Errors()[0].Message)
}

func TestEvaluateTransactionAgainstBudgets_EditExcludesPriorValue(t *testing.T) {
	b := makeBudget(t, "100")
	other := makeTx(t, "50", now)
	edited := makeTx(t, "40", now)
	agg := newAgg([]domain.Transaction{other, edited}, []domain.Budget{b})

	newAmount := usd("45")
	require.NoError(t, edited.Update(domain.TransactionUpdate{Amount: &newAmount}))
	res := newTestEngine().EvaluateTransactionAgainstBudgets(&edited, agg)

	assert.True(t, res.IsValid, "50 + 45 stays within 100")
	require.Len(t, res.Warnings(), 1)
	assert.Contains(t, res.Warnings()[0].Message, "95.0%")
}

func TestEvaluateTransactionAgainstBudgets_IgnoresIncomeAndUncoveredBudgets(t *testing.T) {
	b := makeBudget(t, "100")
	inactive := makeBudget(t, "10")
	inactive.IsActive = false
	agg := newAgg(nil, []domain.Budget{b, inactive})
	e := newTestEngine()

	income, err := domain.NewTransaction(domain.Income, "Refund", usd("500"), now, foodID)
	require.NoError(t, err)
	res := e.EvaluateTransactionAgainstBudgets(&income, agg)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Results)

	outside := makeTx(t, "500", now.AddDate(0, 2, 0))
	res = e.EvaluateTransactionAgainstBudgets(&outside, agg)
	assert.Empty(t, res.Results)

	inside := makeTx(t, "5", now)
	res = e.EvaluateTransactionAgainstBudgets(&inside, agg)
	assert.Len(t, res.Results, 1, "inactive budget skipped")
}

func TestEvaluateTransactionAgainstBudgets_NilTransaction(t *testing.T) {
	res := newTestEngine().EvaluateTransactionAgainstBudgets(nil, newAgg(nil, nil))
	assert.False(t, res.IsValid)
}

// -- Logging hook tests --

func TestEngine_LogsResultsAtDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	e := newTestEngine(WithLogger(logger))

	tx := makeTx(t, "5", now)
	e.EvaluateTransaction(&tx)

	require.Len(t, hook.AllEntries(), 3)
	entry := hook.LastEntry()
	assert.Equal(t, "RuleEngine.EvaluateTransaction.Result", entry.Message)
	assert.Equal(t, DescriptionRequiredRuleName, entry.Data["rule"])
	assert.Equal(t, tx.ID.String(), entry.Data["transactionID"])
}

// -- Violation error tests --

func TestEvaluationResult_Err(t *testing.T) {
	e := newTestEngine()

	valid := makeTx(t, "5", now)
	assert.NoError(t, e.EvaluateTransaction(&valid).Err())

	invalid := domain.Transaction{Amount: money.Zero("USD"), Description: "x", Date: now}
	err := e.EvaluateTransaction(&invalid).Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRuleViolation)
	assert.EqualError(t, err, "rule violation: amount must be greater than zero")

	var violation *ViolationError
	require.ErrorAs(t, err, &violation)
	require.Len(t, violation.Failures, 1)
	assert.Equal(t, PositiveAmountRuleName, violation.Failures[0].RuleName)
}
