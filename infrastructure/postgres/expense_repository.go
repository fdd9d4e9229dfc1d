package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

var (
	expenseRule    = entity.KindExpense.MustRule()
	expenseColumns = []string{
		"id", "trip_id", "weighbridge_id", "category", "amount", "description",
		"created_at", "updated_at", "deleted_at",
	}
)

type expenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) outbound.ExpenseRepository {
	return &expenseRepository{db: db}
}

func scanExpenseRow(rs rowScanner) (*entity.Expense, error) {
	var e entity.Expense
	err := rs.Scan(
		&e.ID,
		&e.TripID,
		&e.WeighbridgeID,
		&e.Category,
		&e.Amount,
		&e.Description,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// expensePredicate composes the extra list filters by conjunction. Absent
// filters impose no constraint.
func expensePredicate(filter outbound.ExpenseFilter) []sq.Sqlizer {
	var conds []sq.Sqlizer
	if filter.TripID != "" {
		conds = append(conds, sq.Eq{"trip_id": filter.TripID})
	}
	if filter.Category != "" {
		conds = append(conds, sq.Eq{"category": filter.Category})
	}
	if filter.StartingDate != nil && filter.EndingDate != nil {
		conds = append(conds,
			sq.GtOrEq{"created_at": *filter.StartingDate},
			sq.LtOrEq{"created_at": *filter.EndingDate},
		)
	}
	return conds
}

func (r *expenseRepository) FindAll(ctx context.Context, filter outbound.ExpenseFilter, p pagination.Pagination) ([]*entity.Expense, int, error) {
	where := active(expenseRule, expensePredicate(filter)...)

	expenses := []*entity.Expense{}
	total, err := listAndCount(ctx, r.db, expenseRule.Table, expenseColumns, where, "created_at DESC", p, func(rows *sql.Rows) error {
		e, err := scanExpenseRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

func (r *expenseRepository) FindByID(ctx context.Context, id string) (*entity.Expense, error) {
	query, args, err := psql.Select(expenseColumns...).
		From(expenseRule.Table).
		Where(active(expenseRule, sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build expense query: %w", err)
	}

	e, err := scanExpenseRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID: %w", err)
	}
	return e, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	query, args, err := psql.Insert(expenseRule.Table).
		Columns("id", "trip_id", "weighbridge_id", "category", "amount", "description").
		Values(expense.ID, expense.TripID, expense.WeighbridgeID, expense.Category, expense.Amount, expense.Description).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build expense insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&expense.CreatedAt, &expense.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	query, args, err := psql.Update(expenseRule.Table).
		Set("trip_id", expense.TripID).
		Set("weighbridge_id", expense.WeighbridgeID).
		Set("category", expense.Category).
		Set("amount", expense.Amount).
		Set("description", expense.Description).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": expense.ID, expenseRule.DeletionColumn: nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build expense update: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&expense.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outbound.ErrNotFound
		}
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

func (r *expenseRepository) SoftDelete(ctx context.Context, id string) error {
	return softDeleteByID(ctx, r.db, entity.KindExpense, id)
}
