package ports

import (
	"context"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// AuthResult is returned by Register and Login: the authenticated user,
// the signed token and the session id embedded in it.
type AuthResult struct {
	User      *domain.User
	Token     string
	SessionID string
}

// AuthService implements registration, login and session lifecycle.
type AuthService interface {
	// Register creates a PATIENT account and establishes a session for it
	// (implicit login).
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Logout clears the session record; unknown ids are a no-op.
	Logout(ctx context.Context, sessionID string) error
	// CurrentSession restores the persisted session record for sessionID.
	CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error)
}
