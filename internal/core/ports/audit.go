package ports

import (
	"context"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// AuditService processes status-change events off the request path.
type AuditService interface {
	Process(ctx context.Context, event domain.StatusEvent) error
}

// AuditDispatcher is the enqueue side of the async audit pipeline.
type AuditDispatcher interface {
	Enqueue(event domain.StatusEvent)
}
