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

// auditReader is the raw surface: the one component that reads rows whose
// deletion timestamp is set. Instead of looking repositories up by string
// name, it switches over the closed Kind enum, so an unknown kind can only
// arrive here if a caller skipped ParseKind, and then it still fails loudly.
type auditReader struct {
	db *sql.DB
}

func NewAuditReader(db *sql.DB) outbound.AuditReader {
	return &auditReader{db: db}
}

// auditScanner returns the column set and typed row scanner for a kind.
func auditScanner(kind entity.Kind) ([]string, func(rowScanner) (any, error), error) {
	switch kind {
	case entity.KindClient:
		return clientColumns, func(rs rowScanner) (any, error) { return scanClientRow(rs) }, nil
	case entity.KindDocument:
		return documentColumns, func(rs rowScanner) (any, error) { return scanDocumentRow(rs) }, nil
	case entity.KindExpense:
		return expenseColumns, func(rs rowScanner) (any, error) { return scanExpenseRow(rs) }, nil
	case entity.KindTrip:
		return tripColumns, func(rs rowScanner) (any, error) { return scanTripRow(rs) }, nil
	case entity.KindUser:
		return userColumns, func(rs rowScanner) (any, error) { return scanUserRow(rs) }, nil
	case entity.KindVehicle:
		return vehicleColumns, func(rs rowScanner) (any, error) { return scanVehicleRow(rs) }, nil
	case entity.KindInvoice:
		return invoiceColumns, func(rs rowScanner) (any, error) { return scanInvoiceRow(rs) }, nil
	case entity.KindWeighbridge:
		return weighbridgeColumns, func(rs rowScanner) (any, error) { return scanWeighbridgeRow(rs) }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", entity.ErrUnknownKind, string(kind))
	}
}

// FindDeleted lists rows of the kind soft-deleted inside the closed
// [window.Start, window.End] range, newest deletion first. Rows are
// returned with their full stored content, deletion timestamp included.
func (r *auditReader) FindDeleted(ctx context.Context, kind entity.Kind, window outbound.DeletionWindow, p pagination.Pagination) ([]any, int, error) {
	rule, err := kind.Rule()
	if err != nil {
		return nil, 0, err
	}
	columns, scan, err := auditScanner(kind)
	if err != nil {
		return nil, 0, err
	}

	where := sq.And{
		sq.GtOrEq{rule.DeletionColumn: window.Start},
		sq.LtOrEq{rule.DeletionColumn: window.End},
	}

	items := []any{}
	total, err := listAndCount(ctx, r.db, rule.Table, columns, where, rule.DeletionColumn+" DESC", p, func(rows *sql.Rows) error {
		item, err := scan(rows)
		if err != nil {
			return fmt.Errorf("failed to scan deleted %s: %w", kind, err)
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
