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
	clientRule    = entity.KindClient.MustRule()
	clientColumns = []string{"id", "name", "contact", "address", "created_at", "updated_at", "deleted_at"}
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) outbound.ClientRepository {
	return &clientRepository{db: db}
}

func scanClientRow(rs rowScanner) (*entity.Client, error) {
	var c entity.Client
	err := rs.Scan(
		&c.ID,
		&c.Name,
		&c.Contact,
		&c.Address,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clientRepository) FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Client, int, error) {
	where := active(clientRule)
	if p.Query != "" {
		where = append(where, contains("name", p.Query))
	}

	clients := []*entity.Client{}
	total, err := listAndCount(ctx, r.db, clientRule.Table, clientColumns, where, "updated_at DESC", p, func(rows *sql.Rows) error {
		c, err := scanClientRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	query, args, err := psql.Select(clientColumns...).
		From(clientRule.Table).
		Where(active(clientRule, sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build client query: %w", err)
	}

	c, err := scanClientRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID: %w", err)
	}
	return c, nil
}

func (r *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	query, args, err := psql.Insert(clientRule.Table).
		Columns("id", "name", "contact", "address").
		Values(client.ID, client.Name, client.Contact, client.Address).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build client insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&client.CreatedAt, &client.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	query, args, err := psql.Update(clientRule.Table).
		Set("name", client.Name).
		Set("contact", client.Contact).
		Set("address", client.Address).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": client.ID, clientRule.DeletionColumn: nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build client update: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&client.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outbound.ErrNotFound
		}
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

func (r *clientRepository) SoftDelete(ctx context.Context, id string) error {
	return softDeleteByID(ctx, r.db, entity.KindClient, id)
}
