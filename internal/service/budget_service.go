package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/operator/actions"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/storage"
	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

// BudgetService handles budget writes and the spending questions asked of
// the current snapshot.
type BudgetService struct {
	storage  *storage.Storage
	operator Processor
	engine   *rules.Engine
	aggOpts  []budget.AggregatorOption
	now      func() time.Time
}

func NewBudgetService(store *storage.Storage, op Processor, engine *rules.Engine, aggOpts []budget.AggregatorOption, now func() time.Time) *BudgetService {
	return &BudgetService{
		storage:  store,
		operator: op,
		engine:   engine,
		aggOpts:  aggOpts,
		now:      now,
	}
}

func (s *BudgetService) CreateBudget(ctx context.Context, create BudgetCreate) (*BudgetResult, error) {
	b, err := create.build()
	if err != nil {
		return nil, err
	}

	action := &actions.CreateBudget{
		Budget:            b,
		Engine:            s.engine,
		AggregatorOptions: s.aggOpts,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	logging.GetLogData(ctx).AddData("budgetID", b.ID.String())
	return &BudgetResult{Budget: action.Budget, Evaluation: action.Evaluation}, nil
}

func (s *BudgetService) UpdateBudget(ctx context.Context, id uuid.UUID, update domain.BudgetUpdate) (*BudgetResult, error) {
	action := &actions.UpdateBudget{
		ID:                id,
		Update:            update,
		Engine:            s.engine,
		AggregatorOptions: s.aggOpts,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &BudgetResult{Budget: action.Budget, Evaluation: action.Evaluation}, nil
}

// ListBudgets returns stored budgets as last written. CurrentSpent is as of
// the last write that touched the budget's category.
func (s *BudgetService) ListBudgets(ctx context.Context, activeOnly bool) ([]domain.Budget, error) {
	rows, err := s.storage.Budgets.List(ctx, &sqlconfig.BudgetFilter{ActiveOnly: activeOnly})
	if err != nil {
		return nil, err
	}
	budgets := make([]domain.Budget, len(rows))
	for i, row := range rows {
		b, err := storage.BudgetFromRecord(row)
		if err != nil {
			return nil, err
		}
		budgets[i] = b
	}
	return budgets, nil
}

// GetBudgetSummary returns live spending for one budget. Unknown IDs are budget.ErrBudgetNotFound.
func (s *BudgetService) GetBudgetSummary(ctx context.Context, id uuid.UUID) (budget.Summary, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return budget.Summary{}, err
	}
	return svc.BudgetSummary(id)
}

// EvaluateBudget runs the budget rules against a stored budget with fresh spending.
func (s *BudgetService) EvaluateBudget(ctx context.Context, id uuid.UUID) (*BudgetResult, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := svc.Aggregator().Budgets().BudgetByID(id)
	if !ok {
		return nil, budget.ErrBudgetNotFound
	}
	b, err = svc.Aggregator().RefreshSpent(b)
	if err != nil {
		return nil, err
	}
	return &BudgetResult{Budget: b, Evaluation: s.engine.EvaluateBudget(&b)}, nil
}

func (s *BudgetService) ActiveBudgetsWithSpending(ctx context.Context) ([]budget.Summary, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return svc.ActiveBudgetsWithSpending(), nil
}

func (s *BudgetService) ExceededBudgets(ctx context.Context) ([]budget.Alert, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return svc.ExceededBudgets(), nil
}

func (s *BudgetService) WarningBudgets(ctx context.Context) ([]budget.Alert, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return svc.WarningBudgets(), nil
}

func (s *BudgetService) AllBudgetAlerts(ctx context.Context) ([]budget.Alert, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	alerts := svc.AllBudgetAlerts()
	logging.GetLogData(ctx).AddData("alertCount", len(alerts))
	return alerts, nil
}

func (s *BudgetService) BudgetUtilizationReport(ctx context.Context) (budget.UtilizationReport, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return budget.UtilizationReport{}, err
	}
	return svc.BudgetUtilizationReport(), nil
}

func (s *BudgetService) SpendingByCategory(ctx context.Context, start, end time.Time) ([]budget.CategorySpending, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return svc.SpendingByCategory(start, end), nil
}

func (s *BudgetService) WouldExceedBudget(ctx context.Context, categoryID uuid.UUID, amount decimal.Decimal, date time.Time) (bool, error) {
	svc, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	return svc.WouldExceedBudget(categoryID, amount, date), nil
}

func (s *BudgetService) load(ctx context.Context) (*budget.Service, error) {
	snap, err := loadSnapshot(ctx, s.storage)
	if err != nil {
		return nil, err
	}
	return budget.NewService(snap, snap, s.aggOpts, budget.WithClock(s.now)), nil
}
