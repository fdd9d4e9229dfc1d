package postgres

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
)

func TestActiveAlwaysFiltersDeletedRows(t *testing.T) {
	rule := entity.KindClient.MustRule()

	sql, args, err := active(rule).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(deleted_at IS NULL)", sql)
	assert.Empty(t, args)
}

func TestActiveConjoinsExtraPredicates(t *testing.T) {
	rule := entity.KindClient.MustRule()

	sql, args, err := active(rule, sq.Eq{"id": "abc"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(deleted_at IS NULL AND id = ?)", sql)
	assert.Equal(t, []interface{}{"abc"}, args)
}

func TestContains(t *testing.T) {
	sql, args, err := contains("name", "ren").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "name ILIKE ?", sql)
	assert.Equal(t, []interface{}{"%ren%"}, args)
}

func TestExpensePredicateEmptyFilter(t *testing.T) {
	conds := expensePredicate(outbound.ExpenseFilter{})
	assert.Empty(t, conds)
}

func TestExpensePredicateComposesByConjunction(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	filter := outbound.ExpenseFilter{
		TripID:       "trip-1",
		Category:     entity.ExpenseFuel,
		StartingDate: &start,
		EndingDate:   &end,
	}

	sql, args, err := active(expenseRule, expensePredicate(filter)...).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"(deleted_at IS NULL AND trip_id = ? AND category = ? AND created_at >= ? AND created_at <= ?)",
		sql)
	assert.Equal(t, []interface{}{"trip-1", entity.ExpenseFuel, start, end}, args)
}

func TestExpensePredicateIgnoresHalfOpenDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	conds := expensePredicate(outbound.ExpenseFilter{StartingDate: &start})
	assert.Empty(t, conds)
}

func TestAuditScannerCoversEveryKind(t *testing.T) {
	for _, kind := range entity.Kinds() {
		columns, scan, err := auditScanner(kind)
		require.NoError(t, err, "kind %s", kind)
		assert.NotEmpty(t, columns, "kind %s", kind)
		assert.NotNil(t, scan, "kind %s", kind)
	}
}

func TestAuditScannerRejectsUnknownKind(t *testing.T) {
	_, _, err := auditScanner(entity.Kind("payment"))
	assert.ErrorIs(t, err, entity.ErrUnknownKind)
}

func TestDeletionWindowPredicateIsClosed(t *testing.T) {
	rule := entity.KindTrip.MustRule()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	where := sq.And{
		sq.GtOrEq{rule.DeletionColumn: start},
		sq.LtOrEq{rule.DeletionColumn: end},
	}
	sql, args, err := where.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(deleted_at >= ? AND deleted_at <= ?)", sql)
	assert.Equal(t, []interface{}{start, end}, args)
}
