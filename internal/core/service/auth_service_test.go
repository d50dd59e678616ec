package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail   map[string]*domain.User
	insertErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	clone := *u
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	saveErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, id string, sess domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[id] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNoSession
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

var discardLogger = zerolog.Nop()

func newAuthService(users *stubUserRepo, sessions *stubSessionStore) *AuthService {
	return NewAuthService(users, sessions, "test-secret", time.Hour, discardLogger)
}

// ---------------------------------------------------------------------------
// Register tests
// ---------------------------------------------------------------------------

func TestAuthService_Register_CreatesPatientWithSession(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := newAuthService(users, sessions)

	result, err := svc.Register(context.Background(), "John Doe", "john@doe.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.User.Role != domain.RolePatient {
		t.Errorf("expected role %s, got %s", domain.RolePatient, result.User.Role)
	}
	if result.User.ID == "" {
		t.Error("expected generated user id")
	}
	if result.Token == "" {
		t.Error("expected a signed token")
	}
	if result.User.PasswordHash == "secret1" {
		t.Error("password must not be stored in plaintext")
	}

	sess, err := sessions.Get(context.Background(), result.SessionID)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if sess.UserID != result.User.ID || sess.Role != domain.RolePatient {
		t.Errorf("unexpected session record: %+v", sess)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubSessionStore())

	if _, err := svc.Register(context.Background(), "John", "john@doe.com", "secret1"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), "Jane", "john@doe.com", "secret2")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_EmptyFields(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	_, err := svc.Register(context.Background(), "", "john@doe.com", "secret1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login tests
// ---------------------------------------------------------------------------

func TestAuthService_Login_AfterRegister(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := newAuthService(users, sessions)

	if _, err := svc.Register(context.Background(), "John", "john@doe.com", "secret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "john@doe.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.Email != "john@doe.com" {
		t.Errorf("unexpected user: %+v", result.User)
	}
	if result.Token == "" {
		t.Error("expected a signed token")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newAuthService(users, newStubSessionStore())

	if _, err := svc.Register(context.Background(), "John", "john@doe.com", "secret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), "john@doe.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	// Unknown emails are indistinguishable from wrong passwords.
	_, err := svc.Login(context.Background(), "ghost@doe.com", "secret1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Session lifecycle tests
// ---------------------------------------------------------------------------

func TestAuthService_Logout_ClearsSession(t *testing.T) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := newAuthService(users, sessions)

	result, err := svc.Register(context.Background(), "John", "john@doe.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), result.SessionID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := svc.CurrentSession(context.Background(), result.SessionID); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}

	// Logout is idempotent.
	if err := svc.Logout(context.Background(), result.SessionID); err != nil {
		t.Fatalf("second logout must be a no-op: %v", err)
	}
}

func TestAuthService_CurrentSession_Empty(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), newStubSessionStore())

	if _, err := svc.CurrentSession(context.Background(), ""); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
