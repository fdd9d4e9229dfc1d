package outbound

import (
	"context"
	"time"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

// ExpenseFilter narrows expense lists. Zero values impose no constraint;
// the date range applies only when both ends are set.
type ExpenseFilter struct {
	TripID       string
	Category     entity.ExpenseCategory
	StartingDate *time.Time
	EndingDate   *time.Time
}

type ExpenseRepository interface {
	FindAll(ctx context.Context, filter ExpenseFilter, p pagination.Pagination) ([]*entity.Expense, int, error)
	FindByID(ctx context.Context, id string) (*entity.Expense, error)
	Create(ctx context.Context, expense *entity.Expense) error
	Update(ctx context.Context, expense *entity.Expense) error
	SoftDelete(ctx context.Context, id string) error
}
