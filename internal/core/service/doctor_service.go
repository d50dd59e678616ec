package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100

	// newDoctorRating is assigned to every freshly created profile and is
	// never recomputed afterwards.
	newDoctorRating = 5.0
)

// DoctorService implements the doctor directory use-cases.
type DoctorService struct {
	repo ports.DoctorRepository
	log  zerolog.Logger
}

func NewDoctorService(repo ports.DoctorRepository, log zerolog.Logger) *DoctorService {
	return &DoctorService{repo: repo, log: log}
}

// ListDoctors returns the directory, optionally filtered and paginated.
func (s *DoctorService) ListDoctors(ctx context.Context, filter ports.ListDoctorsFilter) (*ports.ListDoctorsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list doctors")
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListDoctorsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// AddDoctor creates a new profile. Role, rating and the empty slot list are
// fixed here regardless of the input.
func (s *DoctorService) AddDoctor(ctx context.Context, input ports.AddDoctorInput) (*domain.Doctor, error) {
	doctor := &domain.Doctor{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Email:           input.Email,
		Role:            domain.RoleDoctor,
		Specialty:       input.Specialty,
		Experience:      input.Experience,
		About:           input.About,
		Rating:          newDoctorRating,
		ConsultationFee: input.ConsultationFee,
		AvailableDays:   input.AvailableDays,
		Slots:           []domain.TimeSlot{},
		Avatar:          input.Avatar,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, doctor); err != nil {
		s.log.Error().Err(err).Str("email", input.Email).Msg("failed to add doctor")
		return nil, err
	}

	s.log.Info().Str("doctor_id", doctor.ID).Str("specialty", doctor.Specialty).Msg("doctor added")
	return doctor, nil
}

// RemoveDoctor hard-deletes the profile. Existing appointments referencing
// the doctor are left in place and become orphaned.
func (s *DoctorService) RemoveDoctor(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("doctor_id", id).Msg("doctor removed")
	return nil
}

// AddSlot appends a new unbooked slot to the doctor's list.
func (s *DoctorService) AddSlot(ctx context.Context, input ports.AddSlotInput) (*domain.TimeSlot, error) {
	slot := domain.TimeSlot{
		ID:       uuid.NewString(),
		Date:     input.Date,
		Time:     input.Time,
		IsBooked: false,
	}

	if err := s.repo.AddSlot(ctx, input.DoctorID, slot); err != nil {
		return nil, err
	}

	s.log.Info().Str("doctor_id", input.DoctorID).Str("date", input.Date).Str("time", input.Time).Msg("slot added")
	return &slot, nil
}
