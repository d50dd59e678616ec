package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

// DoctorHandler handles the doctor directory endpoints.
type DoctorHandler struct {
	service ports.DoctorService
}

func NewDoctorHandler(service ports.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

type addDoctorRequest struct {
	Name            string   `json:"name"             validate:"required"`
	Email           string   `json:"email"            validate:"required,email"`
	Specialty       string   `json:"specialty"        validate:"required"`
	Experience      int      `json:"experience"       validate:"min=0"`
	About           string   `json:"about"`
	ConsultationFee int      `json:"consultation_fee" validate:"required,gt=0"`
	AvailableDays   []string `json:"available_days"`
	Avatar          string   `json:"avatar"`
}

type addSlotRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listDoctorsResponse struct {
	Data       []*domain.Doctor   `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// List handles GET /v1/doctors.
//
// @Summary      List doctors
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        specialty  query     string  false  "Filter by specialty"
// @Param        search     query     string  false  "Partial match on doctor name"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listDoctorsResponse
// @Failure      401        {object}  errorResponse
// @Router       /v1/doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListDoctors(c.Request().Context(), ports.ListDoctorsFilter{
		Specialty: c.QueryParam("specialty"),
		Search:    c.QueryParam("search"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listDoctorsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Create handles POST /v1/doctors (admin only).
//
// @Summary      Add a doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addDoctorRequest  true  "Doctor profile"
// @Success      201   {object}  domain.Doctor
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/doctors [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var req addDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !domain.ValidSpecialty(req.Specialty) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown specialty")
	}

	doctor, err := h.service.AddDoctor(c.Request().Context(), ports.AddDoctorInput{
		Name:            req.Name,
		Email:           req.Email,
		Specialty:       req.Specialty,
		Experience:      req.Experience,
		About:           req.About,
		ConsultationFee: req.ConsultationFee,
		AvailableDays:   req.AvailableDays,
		Avatar:          req.Avatar,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, doctor)
}

// Delete handles DELETE /v1/doctors/:id (admin only). Appointments
// referencing the doctor remain.
//
// @Summary      Remove a doctor
// @Tags         doctors
// @Security     BearerAuth
// @Param        id  path  string  true  "Doctor id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/doctors/{id} [delete]
func (h *DoctorHandler) Delete(c echo.Context) error {
	if err := h.service.RemoveDoctor(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddSlot handles POST /v1/doctors/:id/slots (admin or the doctor).
//
// @Summary      Add a bookable slot
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Doctor id"
// @Param        body  body      addSlotRequest  true  "Slot date and time"
// @Success      201   {object}  domain.TimeSlot
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/doctors/{id}/slots [post]
func (h *DoctorHandler) AddSlot(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	doctorID := c.Param("id")
	// Doctors may only manage their own slot list.
	if actor.Role == domain.RoleDoctor && actor.UserID != doctorID {
		return domain.ErrForbidden
	}

	var req addSlotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slot, err := h.service.AddSlot(c.Request().Context(), ports.AddSlotInput{
		DoctorID: doctorID,
		Date:     req.Date,
		Time:     req.Time,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, slot)
}
