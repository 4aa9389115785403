package service

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
)

func spend(t *testing.T, svc *Service, amount string, category uuid.UUID) {
	t.Helper()
	create := groceries(amount)
	create.CategoryID = category
	_, err := svc.Transaction.CreateTransaction(context.Background(), create)
	require.NoError(t, err)
}

// -- ParseBudgetPeriod tests --

func TestParseBudgetPeriod(t *testing.T) {
	for in, want := range map[string]BudgetPeriod{
		"":        PeriodCustom,
		"custom":  PeriodCustom,
		"Monthly": PeriodMonthly,
		" yearly": PeriodYearly,
	} {
		got, err := ParseBudgetPeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBudgetPeriod("weekly")
	assert.Error(t, err)
}

// -- CreateBudget tests --

func TestCreateBudget_ComputesSpentFromExistingTransactions(t *testing.T) {
	svc, store := newWriteService(t, newTestEngine())
	spend(t, svc, "30", foodID)

	b := createFoodBudget(t, svc, "100")

	assert.True(t, b.CurrentSpent.Amount().Equal(decimal.NewFromInt(30)))
	row, err := store.Budgets.FindByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, row.CurrentSpent.Equal(decimal.NewFromInt(30)))
}

func TestCreateBudget_Monthly(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())

	res, err := svc.Budget.CreateBudget(context.Background(), BudgetCreate{
		Name:       "Rent",
		Amount:     usd("1500"),
		CategoryID: foodID,
		Period:     PeriodMonthly,
		StartDate:  testNow,
	})

	require.NoError(t, err)
	assert.Equal(t, testNow.AddDate(0, 1, -1), res.Budget.EndDate)
	assert.True(t, res.Evaluation.IsValid)
}

func TestCreateBudget_InvalidRangeIsDomainError(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())

	_, err := svc.Budget.CreateBudget(context.Background(), BudgetCreate{
		Name:       "Food",
		Amount:     usd("100"),
		CategoryID: foodID,
		StartDate:  testNow,
		EndDate:    testNow.AddDate(0, 0, -1),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

// -- UpdateBudget tests --

func TestUpdateBudget_CategoryChangeRecomputesSpent(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())
	rentID := uuid.Must(uuid.NewV4())
	spend(t, svc, "40", foodID)
	spend(t, svc, "900", rentID)
	b := createFoodBudget(t, svc, "1000")

	res, err := svc.Budget.UpdateBudget(context.Background(), b.ID, domain.BudgetUpdate{CategoryID: &rentID})

	require.NoError(t, err)
	assert.True(t, res.Budget.CurrentSpent.Amount().Equal(decimal.NewFromInt(900)))
	assert.True(t, res.Evaluation.HasWarnings())
}

func TestUpdateBudget_Deactivate(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())
	b := createFoodBudget(t, svc, "100")

	inactive := false
	_, err := svc.Budget.UpdateBudget(context.Background(), b.ID, domain.BudgetUpdate{IsActive: &inactive})
	require.NoError(t, err)

	active, err := svc.Budget.ListBudgets(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.Budget.ListBudgets(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
}

// -- Summary and evaluation tests --

func TestGetBudgetSummary_NotFound(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())

	_, err := svc.Budget.GetBudgetSummary(context.Background(), uuid.Must(uuid.NewV4()))

	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}

func TestEvaluateBudget_ExceededIsWarningNotInvalid(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())
	b := createFoodBudget(t, svc, "100")
	spend(t, svc, "120", foodID)

	res, err := svc.Budget.EvaluateBudget(context.Background(), b.ID)

	require.NoError(t, err)
	assert.True(t, res.Evaluation.IsValid)
	assert.Equal(t, "budget 'Food' exceeded by $20.00", res.Evaluation.ErrorMessage())
	assert.True(t, res.Budget.CurrentSpent.Amount().Equal(decimal.NewFromInt(120)))
}

func TestEvaluateBudget_NotFound(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())

	_, err := svc.Budget.EvaluateBudget(context.Background(), uuid.Must(uuid.NewV4()))

	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}

// -- Alerts and reports tests --

func TestBudgetAlerts(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())
	rentID := uuid.Must(uuid.NewV4())
	createFoodBudget(t, svc, "100")
	_, err := svc.Budget.CreateBudget(context.Background(), BudgetCreate{
		Name:       "Rent",
		Amount:     usd("1000"),
		CategoryID: rentID,
		Period:     PeriodMonthly,
		StartDate:  testNow.AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	spend(t, svc, "150", foodID)
	spend(t, svc, "850", rentID)

	exceeded, err := svc.Budget.ExceededBudgets(context.Background())
	require.NoError(t, err)
	require.Len(t, exceeded, 1)
	assert.Equal(t, "Food", exceeded[0].Summary.BudgetName)

	warnings, err := svc.Budget.WarningBudgets(context.Background())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Rent", warnings[0].Summary.BudgetName)

	all, err := svc.Budget.AllBudgetAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, budget.AlertExceeded, all[0].Severity)

	active, err := svc.Budget.ActiveBudgetsWithSpending(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestBudgetUtilizationReport(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())
	createFoodBudget(t, svc, "200")
	spend(t, svc, "50", foodID)

	report, err := svc.Budget.BudgetUtilizationReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, report.BudgetCount)
	assert.Equal(t, 1, report.HealthyCount)
	assert.True(t, report.TotalRemaining.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "25.0", report.OverallPercentage.StringFixed(1))
}

func TestSpendingByCategory(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())
	spend(t, svc, "10", foodID)
	spend(t, svc, "30", foodID)

	spending, err := svc.Budget.SpendingByCategory(context.Background(), testNow.AddDate(0, 0, -1), testNow)

	require.NoError(t, err)
	require.Len(t, spending, 1)
	assert.Equal(t, foodID, spending[0].CategoryID)
	assert.Equal(t, 2, spending[0].TransactionCount)
	assert.True(t, spending[0].Average.Equal(decimal.NewFromInt(20)))
}

func TestWouldExceedBudget(t *testing.T) {
	svc, _ := newWriteService(t, newTestEngine())
	createFoodBudget(t, svc, "100")
	spend(t, svc, "60", foodID)

	over, err := svc.Budget.WouldExceedBudget(context.Background(), foodID, decimal.NewFromInt(41), testNow)
	require.NoError(t, err)
	assert.True(t, over)

	over, err = svc.Budget.WouldExceedBudget(context.Background(), foodID, decimal.NewFromInt(40), testNow)
	require.NoError(t, err)
	assert.False(t, over, "reaching the limit exactly is not exceeding it")

	over, err = svc.Budget.WouldExceedBudget(context.Background(), uuid.Must(uuid.NewV4()), decimal.NewFromInt(1000), testNow)
	require.NoError(t, err)
	assert.False(t, over, "no covering budget")
}
