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
	vehicleRule    = entity.KindVehicle.MustRule()
	vehicleColumns = []string{
		"id", "brand", "model", "type", "status",
		"tractor_plate_number", "trailer_plate_number",
		"created_at", "updated_at", "deleted_at",
	}
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) outbound.VehicleRepository {
	return &vehicleRepository{db: db}
}

func scanVehicleRow(rs rowScanner) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := rs.Scan(
		&v.ID,
		&v.Brand,
		&v.Model,
		&v.Type,
		&v.Status,
		&v.TractorPlateNumber,
		&v.TrailerPlateNumber,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Vehicle, int, error) {
	where := active(vehicleRule)
	if p.Query != "" {
		where = append(where, sq.Or{
			contains("brand", p.Query),
			contains("model", p.Query),
		})
	}

	vehicles := []*entity.Vehicle{}
	total, err := listAndCount(ctx, r.db, vehicleRule.Table, vehicleColumns, where, "updated_at DESC", p, func(rows *sql.Rows) error {
		v, err := scanVehicleRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

func (r *vehicleRepository) FindByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	query, args, err := psql.Select(vehicleColumns...).
		From(vehicleRule.Table).
		Where(active(vehicleRule, sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build vehicle query: %w", err)
	}

	v, err := scanVehicleRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return v, nil
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query, args, err := psql.Insert(vehicleRule.Table).
		Columns("id", "brand", "model", "type", "status", "tractor_plate_number", "trailer_plate_number").
		Values(vehicle.ID, vehicle.Brand, vehicle.Model, vehicle.Type, vehicle.Status, vehicle.TractorPlateNumber, vehicle.TrailerPlateNumber).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build vehicle insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query, args, err := psql.Update(vehicleRule.Table).
		Set("brand", vehicle.Brand).
		Set("model", vehicle.Model).
		Set("type", vehicle.Type).
		Set("status", vehicle.Status).
		Set("tractor_plate_number", vehicle.TractorPlateNumber).
		Set("trailer_plate_number", vehicle.TrailerPlateNumber).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": vehicle.ID, vehicleRule.DeletionColumn: nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build vehicle update: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&vehicle.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outbound.ErrNotFound
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) SoftDelete(ctx context.Context, id string) error {
	return softDeleteByID(ctx, r.db, entity.KindVehicle, id)
}
