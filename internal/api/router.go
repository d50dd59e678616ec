package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/medconnect/appointments-api/docs"
	"github.com/medconnect/appointments-api/internal/api/handler"
	"github.com/medconnect/appointments-api/internal/api/middleware"
	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

// Dependencies carries everything the router needs. Services are built in
// main so the audit dispatcher can be started with the process context.
type Dependencies struct {
	AuthService        ports.AuthService
	DoctorService      ports.DoctorService
	AppointmentService ports.AppointmentService
	Mongo              *mongo.Database
	Redis              *redis.Client
	JWTSecret          string
	Logger             zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("medconnect"))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	doctorHandler := handler.NewDoctorHandler(deps.DoctorService)
	appointmentHandler := handler.NewAppointmentHandler(deps.AppointmentService)

	authMW := middleware.Auth(deps.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)
	e.GET("/auth/me", authHandler.Me, authMW)

	// --- Doctor directory ---
	doctors := e.Group("/v1/doctors", authMW)
	doctors.GET("", doctorHandler.List)
	doctors.POST("", doctorHandler.Create, middleware.RBAC(domain.RoleAdmin))
	doctors.DELETE("/:id", doctorHandler.Delete, middleware.RBAC(domain.RoleAdmin))
	doctors.POST("/:id/slots", doctorHandler.AddSlot, middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor))

	// --- Appointments ---
	appointments := e.Group("/v1/appointments", authMW)
	appointments.POST("", appointmentHandler.Book, middleware.RBAC(domain.RolePatient))
	appointments.GET("", appointmentHandler.List)
	appointments.PATCH("/:id/status", appointmentHandler.UpdateStatus)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
