package outbound

import (
	"context"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type TripRepository interface {
	FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Trip, int, error)
	FindByID(ctx context.Context, id string) (*entity.Trip, error)
	Create(ctx context.Context, trip *entity.Trip) error
	Update(ctx context.Context, trip *entity.Trip) error
	SoftDelete(ctx context.Context, id string) error
}
