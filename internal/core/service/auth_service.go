package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

// AuthService implements registration, login and session lifecycle.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates a PATIENT account and immediately establishes a session
// for it. Self-registration never produces doctors or admins.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RolePatient,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.log.Info().Str("email", email).Msg("registration rejected, email taken")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return s.establishSession(ctx, user)
}

// Login authenticates email+password. Unknown emails and wrong passwords
// are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login succeeded")
	return s.establishSession(ctx, user)
}

// Logout clears the session record. Unknown session ids are a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// CurrentSession restores the persisted session record.
func (s *AuthService) CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrNoSession
	}
	return s.sessions.Get(ctx, sessionID)
}

func (s *AuthService) establishSession(ctx context.Context, user *domain.User) (*ports.AuthResult, error) {
	sessionID := uuid.NewString()

	token, err := s.generateToken(user, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, sessionID, domain.SessionOf(user)); err != nil {
		return nil, err
	}

	return &ports.AuthResult{User: user, Token: token, SessionID: sessionID}, nil
}

func (s *AuthService) generateToken(user *domain.User, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"name": user.Name,
		"role": user.Role,
		"sid":  sessionID,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
