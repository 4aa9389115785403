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

const transactionsTableName = "transactions"

var transactionColumns = []any{
	"id", "kind", "description", "amount", "currency",
	"transaction_date", "category_id", "notes", "account", "created_at",
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(db *sql.DB) *TransactionsTable {
	return &TransactionsTable{exec: bob.NewDB(db)}
}

// NewTransactionsTableOn runs every query through exec, typically a bob.Tx.
func NewTransactionsTableOn(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new transaction and returns its ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into(transactionsTableName,
			"id", "kind", "description", "amount", "currency",
			"transaction_date", "category_id", "notes", "account"),
		im.Values(
			psql.Arg(create.ID),
			psql.Arg(create.Kind),
			psql.Arg(create.Description),
			psql.Arg(create.Amount),
			psql.Arg(create.Currency),
			psql.Arg(create.TransactionDate),
			psql.Arg(create.CategoryID),
			psql.Arg(create.Notes),
			psql.Arg(create.Account),
		),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		return uuid.Nil, err
	}
	return create.ID, nil
}

// Update writes the set fields of update. A missing row is ErrNotFound.
func (t *TransactionsTable) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error {
	var setMods []bob.Mod[*dialect.UpdateQuery]
	if v, ok := update.Kind.Get(); ok {
		setMods = append(setMods, um.SetCol("kind").ToArg(v))
	}
	if v, ok := update.Description.Get(); ok {
		setMods = append(setMods, um.SetCol("description").ToArg(v))
	}
	if v, ok := update.Amount.Get(); ok {
		setMods = append(setMods, um.SetCol("amount").ToArg(v))
	}
	if v, ok := update.Currency.Get(); ok {
		setMods = append(setMods, um.SetCol("currency").ToArg(v))
	}
	if v, ok := update.TransactionDate.Get(); ok {
		setMods = append(setMods, um.SetCol("transaction_date").ToArg(v))
	}
	if v, ok := update.CategoryID.Get(); ok {
		setMods = append(setMods, um.SetCol("category_id").ToArg(v))
	}
	if v, ok := update.Notes.Get(); ok {
		setMods = append(setMods, um.SetCol("notes").ToArg(v))
	}
	if v, ok := update.Account.Get(); ok {
		setMods = append(setMods, um.SetCol("account").ToArg(v))
	}
	return execUpdate(ctx, t.exec, transactionsTableName, id, setMods)
}

// List returns transactions matching the filter. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
	}
	if filter != nil {
		if filter.CategoryID != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category_id").EQ(psql.Arg(*filter.CategoryID))))
		}
		if filter.Kind != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("kind").EQ(psql.Arg(*filter.Kind))))
		}
		if filter.StartDate != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").GTE(psql.Arg(*filter.StartDate))))
		}
		if filter.EndDate != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("transaction_date").LTE(psql.Arg(*filter.EndDate))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

func execUpdate(ctx context.Context, exec bob.Executor, table string, id uuid.UUID, setMods []bob.Mod[*dialect.UpdateQuery]) error {
	if len(setMods) == 0 {
		return nil
	}
	queryMods := append([]bob.Mod[*dialect.UpdateQuery]{um.Table(table)}, setMods...)
	queryMods = append(queryMods, um.Where(psql.Quote("id").EQ(psql.Arg(id))))

	res, err := bob.Exec(ctx, exec, psql.Update(queryMods...))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, table, id)
	}
	return nil
}
