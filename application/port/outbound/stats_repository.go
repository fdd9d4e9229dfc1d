package outbound

import (
	"context"

	"github.com/fleetora/fleetora/domain/entity"
)

type StatsRepository interface {
	Collect(ctx context.Context) (*entity.Stats, error)
}
