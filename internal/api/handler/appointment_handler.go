package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/appointments-api/internal/api/metrics"
	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

// AppointmentHandler handles booking, listing and status transitions.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date"      validate:"required"`
	Time     string `json:"time"      validate:"required"`
	Reason   string `json:"reason"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED REJECTED CANCELLED COMPLETED"`
}

type listAppointmentsResponse struct {
	Data []*domain.Appointment `json:"data"`
}

// Book handles POST /v1/appointments (patient only). The patient identity
// comes from the session, never the payload.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookAppointmentRequest  true  "Booking details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appointment, err := h.service.Book(c.Request().Context(), ports.BookAppointmentInput{
		PatientID:   actor.UserID,
		PatientName: actor.Name,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		Time:        req.Time,
		Reason:      req.Reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			metrics.SlotConflictsTotal.Inc()
		}
		return err
	}

	metrics.AppointmentsBookedTotal.Inc()
	return c.JSON(http.StatusCreated, appointment)
}

// List handles GET /v1/appointments. Admins see everything, patients and
// doctors only their own appointments, newest first.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAppointmentsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	appointments, err := h.service.List(c.Request().Context(), ports.ListAppointmentsInput{
		Role:    actor.Role,
		ActorID: actor.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listAppointmentsResponse{Data: appointments})
}

// UpdateStatus handles PATCH /v1/appointments/:id/status. The state machine
// rejects illegal transitions; the actor guard decides who may drive which
// transition.
//
// @Summary      Update appointment status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Appointment id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	appointment, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		AppointmentID: c.Param("id"),
		NewStatus:     domain.AppointmentStatus(req.Status),
		ActorID:       actor.UserID,
		ActorRole:     actor.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			metrics.StatusTransitionsTotal.WithLabelValues(req.Status, "invalid_transition").Inc()
		case errors.Is(err, domain.ErrForbidden):
			metrics.StatusTransitionsTotal.WithLabelValues(req.Status, "forbidden").Inc()
		}
		return err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(req.Status, "applied").Inc()
	return c.JSON(http.StatusOK, appointment)
}
