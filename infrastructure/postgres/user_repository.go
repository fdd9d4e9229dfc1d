package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

var (
	userRule    = entity.KindUser.MustRule()
	userColumns = []string{
		"id", "name", "email", "password", "role", "matricule",
		"created_at", "updated_at", "deleted_at",
	}
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) outbound.UserRepository {
	return &userRepository{db: db}
}

func scanUserRow(rs rowScanner) (*entity.User, error) {
	var u entity.User
	err := rs.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.Matricule,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindAll(ctx context.Context, filter outbound.UserFilter, p pagination.Pagination) ([]*entity.User, int, error) {
	where := active(userRule)
	if p.Query != "" {
		where = append(where, sq.Or{
			contains("name", p.Query),
			contains("email", p.Query),
			contains("matricule", p.Query),
		})
	}
	if filter.Role != "" {
		where = append(where, sq.Eq{"role": filter.Role})
	}

	users := []*entity.User{}
	total, err := listAndCount(ctx, r.db, userRule.Table, userColumns, where, "updated_at DESC", p, func(rows *sql.Rows) error {
		u, err := scanUserRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, cond sq.Sqlizer) (*entity.User, error) {
	query, args, err := psql.Select(userColumns...).
		From(userRule.Table).
		Where(active(userRule, cond)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user query: %w", err)
	}

	u, err := scanUserRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query, args, err := psql.Insert(userRule.Table).
		Columns("id", "name", "email", "password", "role", "matricule").
		Values(user.ID, user.Name, user.Email, user.Password, user.Role, user.Matricule).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return outbound.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	query, args, err := psql.Update(userRule.Table).
		Set("name", user.Name).
		Set("email", user.Email).
		Set("role", user.Role).
		Set("matricule", user.Matricule).
		Set("password", user.Password).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": user.ID, userRule.DeletionColumn: nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user update: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outbound.ErrNotFound
		}
		if isUniqueViolation(err) {
			return outbound.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// isUniqueViolation detects the partial unique index on active emails.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *userRepository) SoftDelete(ctx context.Context, id string) error {
	return softDeleteByID(ctx, r.db, entity.KindUser, id)
}

// SoftDeleteMany marks every still-active user in ids as deleted and
// returns how many rows were touched. Ids that are unknown or already
// deleted are skipped, not errors.
func (r *userRepository) SoftDeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := psql.Update(userRule.Table).
		Set(userRule.DeletionColumn, sq.Expr("CURRENT_TIMESTAMP")).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": ids, userRule.DeletionColumn: nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build batch soft delete: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to soft delete users: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(affected), nil
}

// ExistsByEmail checks uniqueness among active users only: a soft-deleted
// user does not block re-use of their email.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := psql.Select("1").
		From(userRule.Table).
		Where(active(userRule, sq.Eq{"email": email})).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check if email exists: %w", err)
	}
	return exists, nil
}

// FindDriversWithTrips lists active drivers together with their trips whose
// start and end both fall inside [start, end], most active drivers first.
// Both queries run inside one read-only transaction for a consistent view.
func (r *userRepository) FindDriversWithTrips(ctx context.Context, start, end time.Time) ([]*entity.DriverTrips, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin drivers transaction: %w", err)
	}
	defer tx.Rollback()

	driverSQL, driverArgs, err := psql.Select("id", "name", "email", "matricule").
		From(userRule.Table).
		Where(active(userRule, sq.Eq{"role": entity.RoleDriver})).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build drivers query: %w", err)
	}

	rows, err := tx.QueryContext(ctx, driverSQL, driverArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}

	byID := map[string]*entity.DriverTrips{}
	drivers := []*entity.DriverTrips{}
	for rows.Next() {
		d := &entity.DriverTrips{Trips: []*entity.Trip{}}
		if err := rows.Scan(&d.ID, &d.Name, &d.Email, &d.Matricule); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		byID[d.ID] = d
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate drivers: %w", err)
	}
	rows.Close()

	tripSQL, tripArgs, err := psql.Select(tripColumns...).
		From(tripRule.Table).
		Where(active(tripRule,
			sq.GtOrEq{"start_time": start},
			sq.LtOrEq{"end_time": end},
		)).
		OrderBy("start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build driver trips query: %w", err)
	}

	tripRows, err := tx.QueryContext(ctx, tripSQL, tripArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query driver trips: %w", err)
	}
	defer tripRows.Close()

	for tripRows.Next() {
		t, err := scanTripRow(tripRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		if d, ok := byID[t.DriverID]; ok {
			d.Trips = append(d.Trips, t)
		}
	}
	if err := tripRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate driver trips: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit drivers transaction: %w", err)
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		return len(drivers[i].Trips) > len(drivers[j].Trips)
	})
	return drivers, nil
}
