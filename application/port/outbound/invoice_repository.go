package outbound

import (
	"context"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type InvoiceRepository interface {
	FindAll(ctx context.Context, p pagination.Pagination) ([]*entity.Invoice, int, error)
	FindByID(ctx context.Context, id string) (*entity.Invoice, error)
	Create(ctx context.Context, invoice *entity.Invoice) error
	Update(ctx context.Context, invoice *entity.Invoice) error
	SoftDelete(ctx context.Context, id string) error
}
