package ports

import (
	"context"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// ListAppointmentsFilter scopes the appointment listing. At most one of
// PatientID / DoctorID is set; both empty means every appointment (admin).
type ListAppointmentsFilter struct {
	PatientID string
	DoctorID  string
}

// AppointmentRepository defines persistence for appointments.
type AppointmentRepository interface {
	Insert(ctx context.Context, a *domain.Appointment) error
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	// List returns matching appointments sorted by created_at descending.
	List(ctx context.Context, filter ListAppointmentsFilter) ([]*domain.Appointment, error)
	// UpdateStatus overwrites the status field. Absent ids yield
	// domain.ErrAppointmentNotFound.
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
}

// StatusEventRepository persists the status-change audit trail.
type StatusEventRepository interface {
	Insert(ctx context.Context, e *domain.StatusEvent) error
}
