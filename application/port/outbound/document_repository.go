package outbound

import (
	"context"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type DocumentRepository interface {
	FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Document, int, error)
	FindByID(ctx context.Context, id string) (*entity.Document, error)
	Create(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	SoftDelete(ctx context.Context, id string) error
}
