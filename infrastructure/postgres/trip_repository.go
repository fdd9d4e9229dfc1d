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
	tripRule    = entity.KindTrip.MustRule()
	tripColumns = []string{
		"id", "vehicle_id", "driver_id", "client_id",
		"departure", "arrival", "start_time", "end_time", "trip_type",
		"created_at", "updated_at", "deleted_at",
	}
)

type tripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) outbound.TripRepository {
	return &tripRepository{db: db}
}

func scanTripRow(rs rowScanner) (*entity.Trip, error) {
	var t entity.Trip
	err := rs.Scan(
		&t.ID,
		&t.VehicleID,
		&t.DriverID,
		&t.ClientID,
		&t.Departure,
		&t.Arrival,
		&t.StartTime,
		&t.EndTime,
		&t.TripType,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tripRepository) FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Trip, int, error) {
	where := active(tripRule)
	if p.Query != "" {
		where = append(where, sq.Or{
			contains("departure", p.Query),
			contains("arrival", p.Query),
		})
	}

	trips := []*entity.Trip{}
	total, err := listAndCount(ctx, r.db, tripRule.Table, tripColumns, where, "created_at DESC", p, func(rows *sql.Rows) error {
		t, err := scanTripRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

func (r *tripRepository) FindByID(ctx context.Context, id string) (*entity.Trip, error) {
	query, args, err := psql.Select(tripColumns...).
		From(tripRule.Table).
		Where(active(tripRule, sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build trip query: %w", err)
	}

	t, err := scanTripRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trip by ID: %w", err)
	}
	return t, nil
}

func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	query, args, err := psql.Insert(tripRule.Table).
		Columns("id", "vehicle_id", "driver_id", "client_id", "departure", "arrival", "start_time", "end_time", "trip_type").
		Values(trip.ID, trip.VehicleID, trip.DriverID, trip.ClientID, trip.Departure, trip.Arrival, trip.StartTime, trip.EndTime, trip.TripType).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build trip insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&trip.CreatedAt, &trip.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *tripRepository) Update(ctx context.Context, trip *entity.Trip) error {
	query, args, err := psql.Update(tripRule.Table).
		Set("vehicle_id", trip.VehicleID).
		Set("driver_id", trip.DriverID).
		Set("client_id", trip.ClientID).
		Set("departure", trip.Departure).
		Set("arrival", trip.Arrival).
		Set("start_time", trip.StartTime).
		Set("end_time", trip.EndTime).
		Set("trip_type", trip.TripType).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": trip.ID, tripRule.DeletionColumn: nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build trip update: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&trip.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outbound.ErrNotFound
		}
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

func (r *tripRepository) SoftDelete(ctx context.Context, id string) error {
	return softDeleteByID(ctx, r.db, entity.KindTrip, id)
}
