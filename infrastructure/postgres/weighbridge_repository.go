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
	weighbridgeRule    = entity.KindWeighbridge.MustRule()
	weighbridgeColumns = []string{"id", "name", "created_at", "updated_at", "deleted_at"}
)

type weighbridgeRepository struct {
	db *sql.DB
}

func NewWeighbridgeRepository(db *sql.DB) outbound.WeighbridgeRepository {
	return &weighbridgeRepository{db: db}
}

func scanWeighbridgeRow(rs rowScanner) (*entity.Weighbridge, error) {
	var w entity.Weighbridge
	err := rs.Scan(
		&w.ID,
		&w.Name,
		&w.CreatedAt,
		&w.UpdatedAt,
		&w.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *weighbridgeRepository) FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Weighbridge, int, error) {
	where := active(weighbridgeRule)
	if p.Query != "" {
		where = append(where, contains("name", p.Query))
	}

	weighbridges := []*entity.Weighbridge{}
	total, err := listAndCount(ctx, r.db, weighbridgeRule.Table, weighbridgeColumns, where, "updated_at DESC", p, func(rows *sql.Rows) error {
		w, err := scanWeighbridgeRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan weighbridge: %w", err)
		}
		weighbridges = append(weighbridges, w)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return weighbridges, total, nil
}

func (r *weighbridgeRepository) FindByID(ctx context.Context, id string) (*entity.Weighbridge, error) {
	query, args, err := psql.Select(weighbridgeColumns...).
		From(weighbridgeRule.Table).
		Where(active(weighbridgeRule, sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build weighbridge query: %w", err)
	}

	w, err := scanWeighbridgeRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find weighbridge by ID: %w", err)
	}
	return w, nil
}

func (r *weighbridgeRepository) Create(ctx context.Context, weighbridge *entity.Weighbridge) error {
	query, args, err := psql.Insert(weighbridgeRule.Table).
		Columns("id", "name").
		Values(weighbridge.ID, weighbridge.Name).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build weighbridge insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&weighbridge.CreatedAt, &weighbridge.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create weighbridge: %w", err)
	}
	return nil
}

func (r *weighbridgeRepository) Update(ctx context.Context, weighbridge *entity.Weighbridge) error {
	query, args, err := psql.Update(weighbridgeRule.Table).
		Set("name", weighbridge.Name).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": weighbridge.ID, weighbridgeRule.DeletionColumn: nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build weighbridge update: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&weighbridge.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outbound.ErrNotFound
		}
		return fmt.Errorf("failed to update weighbridge: %w", err)
	}
	return nil
}

func (r *weighbridgeRepository) SoftDelete(ctx context.Context, id string) error {
	return softDeleteByID(ctx, r.db, entity.KindWeighbridge, id)
}
