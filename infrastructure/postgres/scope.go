package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

// psql builds queries with Postgres placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// rowScanner is satisfied by both *sql.Row and *sql.Rows, so the per-kind
// scan helpers serve single-row fetches, lists and the audit reader alike.
type rowScanner interface {
	Scan(dest ...any) error
}

// active is the filtered surface: it conjoins the caller's predicates with
// "not soft-deleted". Every ordinary read goes through it; the audit reader
// is the only component allowed to build a predicate without it.
func active(rule entity.SoftDeleteRule, conds ...sq.Sqlizer) sq.And {
	pred := sq.And{sq.Eq{rule.DeletionColumn: nil}}
	return append(pred, conds...)
}

// contains is a case-insensitive substring match on one column.
func contains(column, q string) sq.Sqlizer {
	return sq.ILike{column: "%" + q + "%"}
}

// listAndCount runs the count and the page query inside a single read-only
// transaction so meta.total and data come from the same snapshot. The scan
// callback is invoked once per row of the requested page; when the
// pagination limit is non-positive no slicing is applied and every matching
// row is scanned.
func listAndCount(
	ctx context.Context,
	db *sql.DB,
	table string,
	columns []string,
	where sq.Sqlizer,
	orderBy string,
	p pagination.Pagination,
	scan func(*sql.Rows) error,
) (int, error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return 0, fmt.Errorf("failed to begin list transaction: %w", err)
	}
	defer tx.Rollback()

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int
	if err := tx.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	sel := psql.Select(columns...).From(table).Where(where).OrderBy(orderBy)
	if p.Sliced() {
		sel = sel.Limit(uint64(p.Limit)).Offset(uint64(p.Offset()))
	}
	querySQL, args, err := sel.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := tx.QueryContext(ctx, querySQL, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return 0, err
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate %s: %w", table, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit list transaction: %w", err)
	}
	return total, nil
}

// softDeleteByID converts a delete into a timestamped update. The predicate
// excludes already-deleted rows, so deleting one reports ErrNotFound and a
// deletion timestamp is written exactly once.
func softDeleteByID(ctx context.Context, db *sql.DB, kind entity.Kind, id string) error {
	rule, err := kind.Rule()
	if err != nil {
		return err
	}

	query, args, err := psql.Update(rule.Table).
		Set(rule.DeletionColumn, sq.Expr("CURRENT_TIMESTAMP")).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": id, rule.DeletionColumn: nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build soft delete query: %w", err)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to soft delete %s: %w", kind, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return outbound.ErrNotFound
	}
	return nil
}
