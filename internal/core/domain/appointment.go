package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusRejected  AppointmentStatus = "REJECTED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

// validTransitions defines the allowed state machine transitions.
// REJECTED, CANCELLED and COMPLETED are terminal.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrNoSession           = errors.New("no active session")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrSlotUnavailable     = errors.New("slot is not available")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrForbidden           = errors.New("access forbidden")
)

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Appointment is the core aggregate. Patient and doctor names are
// denormalized at booking time; date and time are copied from the chosen
// slot, not a live reference.
type Appointment struct {
	ID          string            `json:"id" bson:"_id"`
	PatientID   string            `json:"patient_id" bson:"patient_id"`
	PatientName string            `json:"patient_name" bson:"patient_name"`
	DoctorID    string            `json:"doctor_id" bson:"doctor_id"`
	DoctorName  string            `json:"doctor_name" bson:"doctor_name"`
	Date        string            `json:"date" bson:"date"`
	Time        string            `json:"time" bson:"time"`
	Status      AppointmentStatus `json:"status" bson:"status"`
	Reason      string            `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
}

// AllowedActor reports whether the given actor may drive the appointment
// to next. Doctors and admins decide the outcome; only the owning patient
// may cancel.
func (a *Appointment) AllowedActor(next AppointmentStatus, actorID, actorRole string) bool {
	switch next {
	case StatusConfirmed, StatusRejected, StatusCompleted:
		if actorRole == RoleAdmin {
			return true
		}
		return actorRole == RoleDoctor && a.DoctorID == actorID
	case StatusCancelled:
		if actorRole == RoleAdmin {
			return true
		}
		return actorRole == RolePatient && a.PatientID == actorID
	}
	return false
}

// StatusEvent is the audit record written for every status change.
type StatusEvent struct {
	AppointmentID string            `json:"appointment_id" bson:"appointment_id"`
	From          AppointmentStatus `json:"from" bson:"from"`
	To            AppointmentStatus `json:"to" bson:"to"`
	ActorID       string            `json:"actor_id" bson:"actor_id"`
	ActorRole     string            `json:"actor_role" bson:"actor_role"`
	At            time.Time         `json:"at" bson:"at"`
}
