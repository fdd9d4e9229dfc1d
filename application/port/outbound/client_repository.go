package outbound

import (
	"context"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type ClientRepository interface {
	FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Client, int, error)
	FindByID(ctx context.Context, id string) (*entity.Client, error)
	Create(ctx context.Context, client *entity.Client) error
	Update(ctx context.Context, client *entity.Client) error
	SoftDelete(ctx context.Context, id string) error
}
