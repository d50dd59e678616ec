package ports

import (
	"context"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// SessionStore persists the active session records (the user minus the
// credential), keyed by session id.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, s domain.Session) error
	// Get returns domain.ErrNoSession when the id is unknown or expired.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	// Delete is idempotent: deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
