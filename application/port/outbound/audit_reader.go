package outbound

import (
	"context"
	"time"

	"github.com/fleetora/fleetora/domain/entity"
	"github.com/fleetora/fleetora/pkg/pagination"
)

// DeletionWindow is the closed [Start, End] range matched against the
// deletion timestamp.
type DeletionWindow struct {
	Start time.Time
	End   time.Time
}

// AuditReader is the only legitimate path for reading soft-deleted rows.
// It bypasses the usual deleted_at IS NULL filter and instead selects rows
// whose deletion timestamp falls inside the window. The kind must come from
// the registry; implementations receive it already parsed.
type AuditReader interface {
	FindDeleted(ctx context.Context, kind entity.Kind, window DeletionWindow, p pagination.Pagination) ([]any, int, error)
}
