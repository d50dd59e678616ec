package ports

import (
	"context"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

// AddDoctorInput carries the admin-supplied profile fields. Role, rating
// and the slot list are fixed by the service, not the caller.
type AddDoctorInput struct {
	Name            string
	Email           string
	Specialty       string
	Experience      int
	About           string
	ConsultationFee int
	AvailableDays   []string
	Avatar          string
}

// AddSlotInput describes a manually created slot.
type AddSlotInput struct {
	DoctorID string
	Date     string
	Time     string
}

// ListDoctorsResult is returned by ListDoctors.
type ListDoctorsResult struct {
	Items      []*domain.Doctor
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DoctorService defines the doctor directory use-cases.
type DoctorService interface {
	ListDoctors(ctx context.Context, filter ListDoctorsFilter) (*ListDoctorsResult, error)
	AddDoctor(ctx context.Context, input AddDoctorInput) (*domain.Doctor, error)
	RemoveDoctor(ctx context.Context, id string) error
	AddSlot(ctx context.Context, input AddSlotInput) (*domain.TimeSlot, error)
}
