package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/operator/actions"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/storage"
)

// Processor runs write actions. operator.OperatorDelegator is the production implementation.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Option configures the services built by NewService.
type Option func(*settings)

type settings struct {
	warningThreshold decimal.Decimal
	now              func() time.Time
}

func WithWarningThreshold(pct decimal.Decimal) Option {
	return func(s *settings) {
		s.warningThreshold = pct
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Budget      *BudgetService
	Rule        *RuleService
}

// NewService creates a new Service. Reads go straight to storage; writes go through op.
func NewService(store *storage.Storage, op Processor, engine *rules.Engine, opts ...Option) *Service {
	cfg := settings{
		warningThreshold: domain.DefaultWarningThreshold,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	aggOpts := []budget.AggregatorOption{budget.WithWarningThreshold(cfg.warningThreshold)}

	return &Service{
		Transaction: NewTransactionService(store, op, engine, aggOpts, cfg.now),
		Budget:      NewBudgetService(store, op, engine, aggOpts, cfg.now),
		Rule:        NewRuleService(engine),
	}
}

func loadSnapshot(ctx context.Context, store *storage.Storage) (*budget.Snapshot, error) {
	endTimer := logging.GetLogData(ctx).AddToExistingTiming("snapshotMs")
	defer endTimer()
	return store.Snapshot(ctx)
}
