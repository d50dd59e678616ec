package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

// AppointmentService implements booking, listing and status transitions.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	doctors      ports.DoctorRepository
	audit        ports.AuditDispatcher
	log          zerolog.Logger
}

func NewAppointmentService(
	appointments ports.AppointmentRepository,
	doctors ports.DoctorRepository,
	audit ports.AuditDispatcher,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		doctors:      doctors,
		audit:        audit,
		log:          log,
	}
}

// Book claims the chosen slot and creates a PENDING appointment. The slot
// claim is an atomic check-and-set in the repository, so a taken slot is
// rejected before any appointment exists and two racing bookings can never
// both win.
func (s *AppointmentService) Book(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
	doctor, err := s.doctors.FindByID(ctx, input.DoctorID)
	if err != nil {
		return nil, err
	}

	if err := s.doctors.BookSlot(ctx, input.DoctorID, input.Date, input.Time); err != nil {
		s.log.Info().
			Str("doctor_id", input.DoctorID).
			Str("date", input.Date).
			Str("time", input.Time).
			Msg("slot claim rejected")
		return nil, err
	}

	appointment := &domain.Appointment{
		ID:          uuid.NewString(),
		PatientID:   input.PatientID,
		PatientName: input.PatientName,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		Date:        input.Date,
		Time:        input.Time,
		Status:      domain.StatusPending,
		Reason:      input.Reason,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.appointments.Insert(ctx, appointment); err != nil {
		// Give the slot back so the failed booking leaves no phantom claim.
		if relErr := s.doctors.ReleaseSlot(ctx, input.DoctorID, input.Date, input.Time); relErr != nil {
			s.log.Error().Err(relErr).Str("doctor_id", input.DoctorID).Msg("failed to release slot after insert failure")
		}
		s.log.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	s.audit.Enqueue(domain.StatusEvent{
		AppointmentID: appointment.ID,
		To:            domain.StatusPending,
		ActorID:       input.PatientID,
		ActorRole:     domain.RolePatient,
		At:            appointment.CreatedAt,
	})

	s.log.Info().
		Str("appointment_id", appointment.ID).
		Str("patient_id", input.PatientID).
		Str("doctor_id", doctor.ID).
		Msg("appointment booked")

	return appointment, nil
}

// List returns the appointments visible to the actor. Admins see every
// appointment, patients and doctors only their own, anything else nothing.
func (s *AppointmentService) List(ctx context.Context, input ports.ListAppointmentsInput) ([]*domain.Appointment, error) {
	var filter ports.ListAppointmentsFilter
	switch input.Role {
	case domain.RoleAdmin:
		// no scoping
	case domain.RolePatient:
		filter.PatientID = input.ActorID
	case domain.RoleDoctor:
		filter.DoctorID = input.ActorID
	default:
		return []*domain.Appointment{}, nil
	}

	return s.appointments.List(ctx, filter)
}

// UpdateStatus drives a single state machine transition. Illegal
// transitions and disallowed actors are rejected before anything is
// persisted. Cancellation and rejection release the doctor's slot.
func (s *AppointmentService) UpdateStatus(ctx context.Context, input ports.UpdateStatusInput) (*domain.Appointment, error) {
	if !domain.ValidStatus(input.NewStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, input.NewStatus)
	}

	appointment, err := s.appointments.FindByID(ctx, input.AppointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(input.NewStatus) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, appointment.Status, input.NewStatus)
	}
	if !appointment.AllowedActor(input.NewStatus, input.ActorID, input.ActorRole) {
		return nil, domain.ErrForbidden
	}

	if err := s.appointments.UpdateStatus(ctx, input.AppointmentID, input.NewStatus); err != nil {
		return nil, err
	}

	if input.NewStatus == domain.StatusCancelled || input.NewStatus == domain.StatusRejected {
		if err := s.doctors.ReleaseSlot(ctx, appointment.DoctorID, appointment.Date, appointment.Time); err != nil {
			// The status change already happened; a stuck slot is logged,
			// not surfaced.
			s.log.Error().Err(err).
				Str("appointment_id", appointment.ID).
				Str("doctor_id", appointment.DoctorID).
				Msg("failed to release slot")
		}
	}

	previous := appointment.Status
	appointment.Status = input.NewStatus

	s.audit.Enqueue(domain.StatusEvent{
		AppointmentID: appointment.ID,
		From:          previous,
		To:            input.NewStatus,
		ActorID:       input.ActorID,
		ActorRole:     input.ActorRole,
		At:            time.Now().UTC(),
	})

	s.log.Info().
		Str("appointment_id", appointment.ID).
		Str("from", string(previous)).
		Str("to", string(input.NewStatus)).
		Str("actor_role", input.ActorRole).
		Msg("appointment status updated")

	return appointment, nil
}
