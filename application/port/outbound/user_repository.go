package outbound

import (
	"context"
	"time"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

type UserFilter struct {
	Role entity.UserRole
}

type UserRepository interface {
	FindAll(ctx context.Context, filter UserFilter, p pagination.Pagination) ([]*entity.User, int, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, id string) error
	SoftDeleteMany(ctx context.Context, ids []string) (int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindDriversWithTrips(ctx context.Context, start, end time.Time) ([]*entity.DriverTrips, error)
}
