package domain

import "time"

const (
	RolePatient = "PATIENT"
	RoleDoctor  = "DOCTOR"
	RoleAdmin   = "ADMIN"
)

// User models an authenticated actor: a patient, a doctor, or an admin.
// The role is fixed at creation and never changes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the record persisted for an authenticated identity: the user
// minus the credential.
type Session struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// SessionOf builds the session record for a user.
func SessionOf(u *User) Session {
	return Session{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}
