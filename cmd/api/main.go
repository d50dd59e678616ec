package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medconnect/appointments-api/internal/api"
	"github.com/medconnect/appointments-api/internal/core/service"
	"github.com/medconnect/appointments-api/internal/infrastructure/config"
	mongodb "github.com/medconnect/appointments-api/internal/infrastructure/db/mongo"
	redisdb "github.com/medconnect/appointments-api/internal/infrastructure/db/redis"
	"github.com/medconnect/appointments-api/internal/infrastructure/queue"
	"github.com/medconnect/appointments-api/internal/infrastructure/seed"
	"github.com/medconnect/appointments-api/pkg/logger"
)

const (
	tokenTTL        = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

// @title        MedConnect Appointments API
// @version      1.0
// @description  Healthcare appointment booking: patients browse doctors, book time slots, and doctors/admins manage appointments.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	doctorRepo := mongodb.NewDoctorRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	eventRepo := mongodb.NewStatusEventRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":        userRepo.EnsureIndexes,
		"doctors":      doctorRepo.EnsureIndexes,
		"appointments": appointmentRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	sessionStore := redisdb.NewSessionStore(rdb, tokenTTL)
	dedup := redisdb.NewDedupChecker(rdb)

	// --- Audit pipeline ---
	auditService := service.NewAuditService(eventRepo, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, sessionStore, cfg.JWTSecret, tokenTTL, log)
	doctorService := service.NewDoctorService(doctorRepo, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, doctorRepo, dispatcher, log)

	if cfg.Seed {
		if err := seed.Run(ctx, userRepo, doctorRepo, log); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}

	e := api.NewRouter(api.Dependencies{
		AuthService:        authService,
		DoctorService:      doctorService,
		AppointmentService: appointmentService,
		Mongo:              db,
		Redis:              rdb,
		JWTSecret:          cfg.JWTSecret,
		Logger:             log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
