package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

type stubAppointmentService struct {
	bookInput   ports.BookAppointmentInput
	bookErr     error
	listInput   ports.ListAppointmentsInput
	listResult  []*domain.Appointment
	updateInput ports.UpdateStatusInput
	updateErr   error
}

func (s *stubAppointmentService) Book(_ context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
	s.bookInput = input
	if s.bookErr != nil {
		return nil, s.bookErr
	}
	return &domain.Appointment{
		ID:        "apt1",
		PatientID: input.PatientID,
		DoctorID:  input.DoctorID,
		Status:    domain.StatusPending,
	}, nil
}

func (s *stubAppointmentService) List(_ context.Context, input ports.ListAppointmentsInput) ([]*domain.Appointment, error) {
	s.listInput = input
	if s.listResult == nil {
		return []*domain.Appointment{}, nil
	}
	return s.listResult, nil
}

func (s *stubAppointmentService) UpdateStatus(_ context.Context, input ports.UpdateStatusInput) (*domain.Appointment, error) {
	s.updateInput = input
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &domain.Appointment{ID: input.AppointmentID, Status: input.NewStatus}, nil
}

func TestAppointmentHandler_Book(t *testing.T) {
	svc := &stubAppointmentService{}
	h := NewAppointmentHandler(svc)
	c, rec := newTestContext(t, http.MethodPost, "/v1/appointments",
		`{"doctor_id":"doc1","date":"2024-05-20","time":"09:00 AM","reason":"checkup"}`)
	setActor(c, "p1", "John Doe", domain.RolePatient, "sess1")

	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	// Patient identity must come from the session claims.
	if svc.bookInput.PatientID != "p1" || svc.bookInput.PatientName != "John Doe" {
		t.Errorf("unexpected booking input: %+v", svc.bookInput)
	}

	var apt domain.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &apt); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if apt.Status != domain.StatusPending {
		t.Errorf("expected PENDING, got %s", apt.Status)
	}
}

func TestAppointmentHandler_Book_MissingFields(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentService{})
	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments", `{"doctor_id":"doc1"}`)
	setActor(c, "p1", "John Doe", domain.RolePatient, "sess1")

	err := h.Book(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAppointmentHandler_Book_SlotTaken(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentService{bookErr: domain.ErrSlotUnavailable})
	c, _ := newTestContext(t, http.MethodPost, "/v1/appointments",
		`{"doctor_id":"doc1","date":"2024-05-20","time":"09:00 AM"}`)
	setActor(c, "p1", "John Doe", domain.RolePatient, "sess1")

	if err := h.Book(c); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestAppointmentHandler_List_ScopesByActor(t *testing.T) {
	svc := &stubAppointmentService{}
	h := NewAppointmentHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/v1/appointments", "")
	setActor(c, "d1", "Dr. X", domain.RoleDoctor, "sess1")

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.listInput.Role != domain.RoleDoctor || svc.listInput.ActorID != "d1" {
		t.Errorf("unexpected list input: %+v", svc.listInput)
	}

	var resp listAppointmentsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data == nil {
		t.Error("data must be an empty array, not null")
	}
}

func TestAppointmentHandler_UpdateStatus(t *testing.T) {
	svc := &stubAppointmentService{}
	h := NewAppointmentHandler(svc)
	c, rec := newTestContext(t, http.MethodPatch, "/v1/appointments/apt1/status",
		`{"status":"CONFIRMED"}`)
	c.SetParamNames("id")
	c.SetParamValues("apt1")
	setActor(c, "d1", "Dr. X", domain.RoleDoctor, "sess1")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if svc.updateInput.AppointmentID != "apt1" || svc.updateInput.NewStatus != domain.StatusConfirmed {
		t.Errorf("unexpected update input: %+v", svc.updateInput)
	}
	if svc.updateInput.ActorID != "d1" || svc.updateInput.ActorRole != domain.RoleDoctor {
		t.Errorf("actor not propagated: %+v", svc.updateInput)
	}
}

func TestAppointmentHandler_UpdateStatus_UnknownStatus(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentService{})
	c, _ := newTestContext(t, http.MethodPatch, "/v1/appointments/apt1/status",
		`{"status":"SCHEDULED"}`)
	c.SetParamNames("id")
	c.SetParamValues("apt1")
	setActor(c, "d1", "Dr. X", domain.RoleDoctor, "sess1")

	err := h.UpdateStatus(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAppointmentHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	h := NewAppointmentHandler(&stubAppointmentService{updateErr: domain.ErrInvalidTransition})
	c, _ := newTestContext(t, http.MethodPatch, "/v1/appointments/apt1/status",
		`{"status":"COMPLETED"}`)
	c.SetParamNames("id")
	c.SetParamValues("apt1")
	setActor(c, "d1", "Dr. X", domain.RoleDoctor, "sess1")

	if err := h.UpdateStatus(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
