package ports

import (
	"context"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// ActivityRecorder accepts audit entries for asynchronous persistence.
// Record must not block the calling request.
type ActivityRecorder interface {
	Record(a domain.Activity)
}

// ActivityRepository persists and reads back audit entries.
type ActivityRepository interface {
	Insert(ctx context.Context, a domain.Activity) error
	// Latest returns the most recent entries, newest first.
	Latest(ctx context.Context, limit int) ([]domain.Activity, error)
}
