package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/budget-rules/internal/budget"
	"github.com/carson-networks/budget-rules/internal/domain"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/operator/actions"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/storage"
	"github.com/carson-networks/budget-rules/internal/storage/sqlconfig"
)

const defaultLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator Processor
	engine   *rules.Engine
	aggOpts  []budget.AggregatorOption
	now      func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, op Processor, engine *rules.Engine, aggOpts []budget.AggregatorOption, now func() time.Time) *TransactionService {
	return &TransactionService{
		storage:  store,
		operator: op,
		engine:   engine,
		aggOpts:  aggOpts,
		now:      now,
	}
}

// CreateTransaction validates and stores a new transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, create TransactionCreate) (*TransactionResult, error) {
	tx, err := domain.NewTransaction(create.Kind, create.Description, create.Amount, create.Date, create.CategoryID)
	if err != nil {
		return nil, err
	}
	tx.Notes = create.Notes
	tx.Account = create.Account

	action := &actions.CreateTransaction{
		Transaction:       tx,
		Engine:            s.engine,
		AggregatorOptions: s.aggOpts,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	logging.GetLogData(ctx).AddData("transactionID", tx.ID.String())
	return &TransactionResult{
		Transaction:      action.Transaction,
		Evaluation:       action.Evaluation,
		BudgetEvaluation: action.BudgetEvaluation,
	}, nil
}

// UpdateTransaction edits a stored transaction in place.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id uuid.UUID, update domain.TransactionUpdate) (*TransactionResult, error) {
	action := &actions.UpdateTransaction{
		ID:                id,
		Update:            update,
		Engine:            s.engine,
		AggregatorOptions: s.aggOpts,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return &TransactionResult{
		Transaction:      action.Transaction,
		Evaluation:       action.Evaluation,
		BudgetEvaluation: action.BudgetEvaluation,
	}, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tx, err := storage.TransactionFromRecord(row)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// EvaluateTransaction runs the transaction rules and budget projections for
// tx without storing it. tx is not validated first, so every failing rule is reported.
func (s *TransactionService) EvaluateTransaction(ctx context.Context, tx domain.Transaction) (*TransactionResult, error) {
	snap, err := loadSnapshot(ctx, s.storage)
	if err != nil {
		return nil, err
	}
	agg := budget.NewAggregator(snap, snap, s.aggOpts...)

	return &TransactionResult{
		Transaction:      tx,
		Evaluation:       s.engine.EvaluateTransaction(&tx),
		BudgetEvaluation: s.engine.EvaluateTransactionAgainstBudgets(&tx, agg),
	}, nil
}

// CreateRecurringTransactions stores every occurrence of r up to until, at
// most domain.MaxOccurrences. Either all occurrences are stored or none are.
func (s *TransactionService) CreateRecurringTransactions(ctx context.Context, r domain.RecurringTransaction, until time.Time) ([]TransactionResult, error) {
	occurrences, err := r.Generate(until, domain.MaxOccurrences)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransactions{
		Transactions:      occurrences,
		Engine:            s.engine,
		AggregatorOptions: s.aggOpts,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	results := make([]TransactionResult, len(action.Created))
	for i, created := range action.Created {
		results[i] = TransactionResult{
			Transaction:      created.Transaction,
			Evaluation:       created.Evaluation,
			BudgetEvaluation: created.BudgetEvaluation,
		}
	}
	logging.GetLogData(ctx).AddData("recurringCreated", len(results))
	return results, nil
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, listFilter *TransactionListFilter, cursor *TransactionCursor) ([]domain.Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &sqlconfig.TransactionFilter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if listFilter != nil {
		filter.CategoryID = listFilter.CategoryID
		filter.StartDate = listFilter.StartDate
		filter.EndDate = listFilter.EndDate
		if listFilter.Kind != nil {
			kind := int16(*listFilter.Kind)
			filter.Kind = &kind
		}
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := s.now()
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]domain.Transaction, len(rows))
	for i, row := range rows {
		tx, err := storage.TransactionFromRecord(row)
		if err != nil {
			return nil, nil, err
		}
		convertedTransactions[i] = tx
	}

	return convertedTransactions, nextCursor, nil
}
