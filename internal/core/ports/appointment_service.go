package ports

import (
	"context"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// BookAppointmentInput carries everything needed to book a slot. PatientID
// and PatientName come from the authenticated session, never the payload.
type BookAppointmentInput struct {
	PatientID   string
	PatientName string
	DoctorID    string
	Date        string
	Time        string
	Reason      string
}

// ListAppointmentsInput scopes the listing by the caller's role.
type ListAppointmentsInput struct {
	Role    string
	ActorID string
}

// UpdateStatusInput drives a single state machine transition.
type UpdateStatusInput struct {
	AppointmentID string
	NewStatus     domain.AppointmentStatus
	ActorID       string
	ActorRole     string
}

// AppointmentService defines the booking use-cases.
type AppointmentService interface {
	// Book atomically claims the chosen slot and creates a PENDING
	// appointment. A taken or unknown slot yields domain.ErrSlotUnavailable.
	Book(ctx context.Context, input BookAppointmentInput) (*domain.Appointment, error)
	// List returns the appointments visible to the actor: admins see all,
	// patients and doctors see their own, any other role sees none.
	List(ctx context.Context, input ListAppointmentsInput) ([]*domain.Appointment, error)
	// UpdateStatus validates the transition and the actor guard, persists
	// the new status, and releases the slot on CANCELLED or REJECTED.
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.Appointment, error)
}
