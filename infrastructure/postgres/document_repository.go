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
	documentRule    = entity.KindDocument.MustRule()
	documentColumns = []string{
		"id", "vehicle_id", "document_type", "expiry_date", "status",
		"created_at", "updated_at", "deleted_at",
	}
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) outbound.DocumentRepository {
	return &documentRepository{db: db}
}

func scanDocumentRow(rs rowScanner) (*entity.Document, error) {
	var d entity.Document
	err := rs.Scan(
		&d.ID,
		&d.VehicleID,
		&d.DocumentType,
		&d.ExpiryDate,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepository) FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Document, int, error) {
	// Documents carry no free-text field; q imposes no constraint.
	where := active(documentRule)

	documents := []*entity.Document{}
	total, err := listAndCount(ctx, r.db, documentRule.Table, documentColumns, where, "created_at DESC", p, func(rows *sql.Rows) error {
		d, err := scanDocumentRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, d)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return documents, total, nil
}

func (r *documentRepository) FindByID(ctx context.Context, id string) (*entity.Document, error) {
	query, args, err := psql.Select(documentColumns...).
		From(documentRule.Table).
		Where(active(documentRule, sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build document query: %w", err)
	}

	d, err := scanDocumentRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document by ID: %w", err)
	}
	return d, nil
}

func (r *documentRepository) Create(ctx context.Context, document *entity.Document) error {
	query, args, err := psql.Insert(documentRule.Table).
		Columns("id", "vehicle_id", "document_type", "expiry_date", "status").
		Values(document.ID, document.VehicleID, document.DocumentType, document.ExpiryDate, document.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build document insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&document.CreatedAt, &document.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) Update(ctx context.Context, document *entity.Document) error {
	query, args, err := psql.Update(documentRule.Table).
		Set("vehicle_id", document.VehicleID).
		Set("document_type", document.DocumentType).
		Set("expiry_date", document.ExpiryDate).
		Set("status", document.Status).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": document.ID, documentRule.DeletionColumn: nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build document update: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&document.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outbound.ErrNotFound
		}
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (r *documentRepository) SoftDelete(ctx context.Context, id string) error {
	return softDeleteByID(ctx, r.db, entity.KindDocument, id)
}
