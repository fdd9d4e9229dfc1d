package outbound

import (
	"context"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type VehicleRepository interface {
	FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Vehicle, int, error)
	FindByID(ctx context.Context, id string) (*entity.Vehicle, error)
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	SoftDelete(ctx context.Context, id string) error
}
