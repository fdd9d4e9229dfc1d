package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fleetora/fleetora/application/port/outbound"
	"github.com/fleetora/fleetora/domain/entity"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) outbound.StatsRepository {
	return &statsRepository{db: db}
}

const tripsPerMonthQuery = `
	SELECT TO_CHAR(DATE_TRUNC('month', start_time), 'YYYY-MM') AS month, COUNT(id) AS trip_count
	FROM trips
	WHERE start_time >= NOW() - INTERVAL '12 months'
	  AND deleted_at IS NULL
	GROUP BY month
	ORDER BY month ASC
`

const ongoingTripsQuery = `
	SELECT COUNT(*) FROM trips WHERE end_time IS NULL AND deleted_at IS NULL
`

// Expenses roll up only when both the expense and its parent trip are still
// active; a soft-deleted trip pulls its expenses out of the figures.
const expensesPerMonthQuery = `
	SELECT TO_CHAR(DATE_TRUNC('month', e.created_at), 'YYYY-MM') AS month, SUM(e.amount) AS total_expense
	FROM expenses e
	JOIN trips t ON e.trip_id = t.id
	WHERE e.created_at >= NOW() - INTERVAL '12 months'
	  AND e.category != 'WEIGHBRIDGE'
	  AND e.deleted_at IS NULL
	  AND t.deleted_at IS NULL
	GROUP BY month
	ORDER BY month ASC
`

const weighbridgeExpensesPerMonthQuery = `
	SELECT TO_CHAR(DATE_TRUNC('month', e.created_at), 'YYYY-MM') AS month, SUM(e.amount) AS total_expense
	FROM expenses e
	JOIN trips t ON e.trip_id = t.id
	WHERE e.created_at >= NOW() - INTERVAL '12 months'
	  AND e.category = 'WEIGHBRIDGE'
	  AND e.deleted_at IS NULL
	  AND t.deleted_at IS NULL
	GROUP BY month
	ORDER BY month ASC
`

func (r *statsRepository) Collect(ctx context.Context) (*entity.Stats, error) {
	stats := &entity.Stats{
		TripsLast12Months:               []entity.MonthlyTripCount{},
		ExpensesLast12Months:            []entity.MonthlyExpenseTotal{},
		WeighbridgeExpensesLast12Months: []entity.MonthlyExpenseTotal{},
	}

	rows, err := r.db.QueryContext(ctx, tripsPerMonthQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly trips: %w", err)
	}
	for rows.Next() {
		var c entity.MonthlyTripCount
		if err := rows.Scan(&c.Month, &c.TripCount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan monthly trips: %w", err)
		}
		stats.TripsLast12Months = append(stats.TripsLast12Months, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate monthly trips: %w", err)
	}
	rows.Close()

	if err := r.db.QueryRowContext(ctx, ongoingTripsQuery).Scan(&stats.OngoingTrips); err != nil {
		return nil, fmt.Errorf("failed to count ongoing trips: %w", err)
	}

	expenses, err := r.monthlyExpenses(ctx, expensesPerMonthQuery)
	if err != nil {
		return nil, err
	}
	stats.ExpensesLast12Months = expenses

	weighbridge, err := r.monthlyExpenses(ctx, weighbridgeExpensesPerMonthQuery)
	if err != nil {
		return nil, err
	}
	stats.WeighbridgeExpensesLast12Months = weighbridge

	return stats, nil
}

func (r *statsRepository) monthlyExpenses(ctx context.Context, query string) ([]entity.MonthlyExpenseTotal, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly expenses: %w", err)
	}
	defer rows.Close()

	totals := []entity.MonthlyExpenseTotal{}
	for rows.Next() {
		var t entity.MonthlyExpenseTotal
		if err := rows.Scan(&t.Month, &t.TotalExpense); err != nil {
			return nil, fmt.Errorf("failed to scan monthly expenses: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate monthly expenses: %w", err)
	}
	return totals, nil
}
