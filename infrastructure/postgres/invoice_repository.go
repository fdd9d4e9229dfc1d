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
	invoiceRule    = entity.KindInvoice.MustRule()
	invoiceColumns = []string{
		"id", "client_id", "trip_id", "total_amount", "invoice_date", "volume_m3",
		"created_at", "updated_at", "deleted_at",
	}
)

type invoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) outbound.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func scanInvoiceRow(rs rowScanner) (*entity.Invoice, error) {
	var i entity.Invoice
	err := rs.Scan(
		&i.ID,
		&i.ClientID,
		&i.TripID,
		&i.TotalAmount,
		&i.InvoiceDate,
		&i.VolumeM3,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *invoiceRepository) FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Invoice, int, error) {
	where := active(invoiceRule)

	invoices := []*entity.Invoice{}
	total, err := listAndCount(ctx, r.db, invoiceRule.Table, invoiceColumns, where, "created_at DESC", p, func(rows *sql.Rows) error {
		i, err := scanInvoiceRow(rows)
		if err != nil {
			return fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, i)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) FindByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query, args, err := psql.Select(invoiceColumns...).
		From(invoiceRule.Table).
		Where(active(invoiceRule, sq.Eq{"id": id})).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build invoice query: %w", err)
	}

	i, err := scanInvoiceRow(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, outbound.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID: %w", err)
	}
	return i, nil
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	query, args, err := psql.Insert(invoiceRule.Table).
		Columns("id", "client_id", "trip_id", "total_amount", "invoice_date", "volume_m3").
		Values(invoice.ID, invoice.ClientID, invoice.TripID, invoice.TotalAmount, invoice.InvoiceDate, invoice.VolumeM3).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build invoice insert: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&invoice.CreatedAt, &invoice.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	query, args, err := psql.Update(invoiceRule.Table).
		Set("client_id", invoice.ClientID).
		Set("trip_id", invoice.TripID).
		Set("total_amount", invoice.TotalAmount).
		Set("invoice_date", invoice.InvoiceDate).
		Set("volume_m3", invoice.VolumeM3).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": invoice.ID, invoiceRule.DeletionColumn: nil}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build invoice update: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&invoice.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return outbound.ErrNotFound
		}
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) SoftDelete(ctx context.Context, id string) error {
	return softDeleteByID(ctx, r.db, entity.KindInvoice, id)
}
