package ports

import (
	"context"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// ListDoctorsFilter carries the query parameters for listing doctors.
// Zero values mean no filtering: the full directory is returned.
type ListDoctorsFilter struct {
	Specialty string // optional: exact match on specialty
	Search    string // optional: partial match on doctor name
	Page      int    // 1-based
	Limit     int    // max rows per page (capped at 100 by service)
}

// DoctorRepository defines persistence for doctor profiles and their
// embedded slot lists.
type DoctorRepository interface {
	Insert(ctx context.Context, d *domain.Doctor) error
	FindByID(ctx context.Context, id string) (*domain.Doctor, error)
	// List returns a page of doctors matching filter and the total count.
	List(ctx context.Context, filter ListDoctorsFilter) ([]*domain.Doctor, int64, error)
	// Delete removes the doctor. Absent ids yield domain.ErrDoctorNotFound.
	// Appointments referencing the doctor are deliberately left in place.
	Delete(ctx context.Context, id string) error
	AddSlot(ctx context.Context, doctorID string, slot domain.TimeSlot) error
	// BookSlot atomically flips the (date, time) slot from free to booked.
	// It returns domain.ErrSlotUnavailable when no matching free slot exists,
	// so two concurrent bookings can never both succeed.
	BookSlot(ctx context.Context, doctorID, date, time string) error
	// ReleaseSlot clears the booked flag on the (date, time) slot. Releasing
	// an unknown or already free slot is a no-op.
	ReleaseSlot(ctx context.Context, doctorID, date, time string) error
}
