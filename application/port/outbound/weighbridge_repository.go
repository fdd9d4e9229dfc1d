package outbound

import (
	"context"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type WeighbridgeRepository interface {
	FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Weighbridge, int, error)
	FindByID(ctx context.Context, id string) (*entity.Weighbridge, error)
	Create(ctx context.Context, weighbridge *entity.Weighbridge) error
	Update(ctx context.Context, weighbridge *entity.Weighbridge) error
	SoftDelete(ctx context.Context, id string) error
}
