package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const budgetsTableName = "budgets"

var budgetColumns = []any{
	"id", "name", "amount", "currency", "category_id",
	"start_date", "end_date", "current_spent", "is_active", "created_at",
}

var _ IBudgetTable = (*BudgetsTable)(nil)

// BudgetsTable provides access to the budgets table.
type BudgetsTable struct {
	exec bob.Executor
}

func NewBudgetsTable(db *sql.DB) *BudgetsTable {
	return &BudgetsTable{exec: bob.NewDB(db)}
}

// NewBudgetsTableOn runs every query through exec, typically a bob.Tx.
func NewBudgetsTableOn(exec bob.Executor) *BudgetsTable {
	return &BudgetsTable{exec: exec}
}

func (t *BudgetsTable) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	q := psql.Select(
		sm.Columns(budgetColumns...),
		sm.From(budgetsTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Budget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: budget %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (t *BudgetsTable) Insert(ctx context.Context, create *BudgetCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(budgetsTableName,
			"id", "name", "amount", "currency", "category_id",
			"start_date", "end_date", "current_spent", "is_active"),
		im.Values(
			psql.Arg(create.ID),
			psql.Arg(create.Name),
			psql.Arg(create.Amount),
			psql.Arg(create.Currency),
			psql.Arg(create.CategoryID),
			psql.Arg(create.StartDate),
			psql.Arg(create.EndDate),
			psql.Arg(create.CurrentSpent),
			psql.Arg(create.IsActive),
		),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		return uuid.Nil, err
	}
	return create.ID, nil
}

func (t *BudgetsTable) Update(ctx context.Context, id uuid.UUID, update *BudgetUpdate) error {
	var setMods []bob.Mod[*dialect.UpdateQuery]
	if v, ok := update.Name.Get(); ok {
		setMods = append(setMods, um.SetCol("name").ToArg(v))
	}
	if v, ok := update.Amount.Get(); ok {
		setMods = append(setMods, um.SetCol("amount").ToArg(v))
	}
	if v, ok := update.Currency.Get(); ok {
		setMods = append(setMods, um.SetCol("currency").ToArg(v))
	}
	if v, ok := update.CategoryID.Get(); ok {
		setMods = append(setMods, um.SetCol("category_id").ToArg(v))
	}
	if v, ok := update.StartDate.Get(); ok {
		setMods = append(setMods, um.SetCol("start_date").ToArg(v))
	}
	if v, ok := update.EndDate.Get(); ok {
		setMods = append(setMods, um.SetCol("end_date").ToArg(v))
	}
	if v, ok := update.CurrentSpent.Get(); ok {
		setMods = append(setMods, um.SetCol("current_spent").ToArg(v))
	}
	if v, ok := update.IsActive.Get(); ok {
		setMods = append(setMods, um.SetCol("is_active").ToArg(v))
	}
	return execUpdate(ctx, t.exec, budgetsTableName, id, setMods)
}

// List returns budgets ordered by start date then name.
func (t *BudgetsTable) List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(budgetColumns...),
		sm.From(budgetsTableName),
	}
	if filter != nil {
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.ActiveOnly {
			queryMods = append(queryMods, sm.Where(psql.Quote("is_active").EQ(psql.Arg(true))))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("start_date")).Asc(),
		sm.OrderBy(psql.Quote("name")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Budget]())
}
