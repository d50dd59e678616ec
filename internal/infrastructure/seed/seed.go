// Package seed loads the demo dataset: a default admin, a sample patient,
// and the doctor roster with their slot sets. Seeding only runs against
// empty collections, so restarting the service never duplicates data.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

// demoPassword is shared by all seeded accounts. Demo data only.
const demoPassword = "password"

type seedUser struct {
	id    string
	name  string
	email string
	role  string
}

var seedUsers = []seedUser{
	{id: "admin1", name: "Admin User", email: "admin@med.com", role: domain.RoleAdmin},
	{id: "patient1", name: "John Doe", email: "john@doe.com", role: domain.RolePatient},
	{id: "doc1", name: "Dr. Sarah Wilson", email: "sarah.wilson@medconnect.com", role: domain.RoleDoctor},
}

// Run seeds users and doctors when their collections are empty.
func Run(ctx context.Context, users ports.UserRepository, doctors ports.DoctorRepository, log zerolog.Logger) error {
	if err := seedUserAccounts(ctx, users, log); err != nil {
		return err
	}
	return seedDoctors(ctx, doctors, log)
}

func seedUserAccounts(ctx context.Context, users ports.UserRepository, log zerolog.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created := 0
	for _, su := range seedUsers {
		if _, err := users.FindByEmail(ctx, su.email); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return err
		}

		user := &domain.User{
			ID:           su.id,
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
			Role:         su.role,
			CreatedAt:    time.Now().UTC(),
		}
		if err := users.Insert(ctx, user); err != nil {
			if errors.Is(err, domain.ErrEmailTaken) {
				continue
			}
			return err
		}
		created++
	}

	if created > 0 {
		log.Info().Int("count", created).Msg("seeded demo users")
	}
	return nil
}

func seedDoctors(ctx context.Context, doctors ports.DoctorRepository, log zerolog.Logger) error {
	existing, total, err := doctors.List(ctx, ports.ListDoctorsFilter{Limit: 1, Page: 1})
	if err != nil {
		return err
	}
	if total > 0 || len(existing) > 0 {
		log.Debug().Int64("total", total).Msg("doctor roster already present, seeding skipped")
		return nil
	}

	for _, d := range demoDoctors() {
		doctor := d
		if err := doctors.Insert(ctx, &doctor); err != nil {
			return err
		}
	}

	log.Info().Int("count", len(demoDoctors())).Msg("seeded doctor roster")
	return nil
}

func demoDoctors() []domain.Doctor {
	now := time.Now().UTC()
	return []domain.Doctor{
		{
			ID: "doc1", Name: "Dr. Sarah Wilson", Email: "sarah.wilson@medconnect.com",
			Role: domain.RoleDoctor, Specialty: "Cardiologist", Experience: 12,
			About:  "Preventive cardiology; manages hypertension and heart rhythm disorders with combined medical and lifestyle therapy.",
			Rating: 4.9, ConsultationFee: 150,
			AvailableDays: []string{"Monday", "Wednesday", "Friday"},
			Slots: []domain.TimeSlot{
				{ID: "s1", Time: "09:00 AM", Date: "2024-05-20"},
				{ID: "s2", Time: "10:30 AM", Date: "2024-05-20"},
				{ID: "s3", Time: "02:00 PM", Date: "2024-05-20"},
			},
			Avatar:    "https://picsum.photos/seed/doctor1/200/200",
			CreatedAt: now,
		},
		{
			ID: "doc2", Name: "Dr. James Miller", Email: "james.miller@medconnect.com",
			Role: domain.RoleDoctor, Specialty: "Dermatologist", Experience: 8,
			About:  "Clinical and surgical dermatology; skin cancer, acne and chronic skin conditions.",
			Rating: 4.7, ConsultationFee: 120,
			AvailableDays: []string{"Tuesday", "Thursday"},
			Slots: []domain.TimeSlot{
				{ID: "s4", Time: "11:00 AM", Date: "2024-05-21"},
				{ID: "s5", Time: "03:00 PM", Date: "2024-05-21"},
			},
			Avatar:    "https://picsum.photos/seed/doctor2/200/200",
			CreatedAt: now,
		},
		{
			ID: "doc3", Name: "Dr. Emily Chen", Email: "emily.chen@medconnect.com",
			Role: domain.RoleDoctor, Specialty: "Pediatrician", Experience: 10,
			About:  "Pediatric care for infants through adolescents, with a focus on nutrition and developmental milestones.",
			Rating: 5.0, ConsultationFee: 100,
			AvailableDays: []string{"Monday", "Tuesday", "Wednesday"},
			Slots: []domain.TimeSlot{
				{ID: "s6", Time: "08:30 AM", Date: "2024-05-20"},
				{ID: "s7", Time: "11:00 AM", Date: "2024-05-20"},
				{ID: "s8", Time: "01:30 PM", Date: "2024-05-20"},
			},
			Avatar:    "https://picsum.photos/seed/doctor3/200/200",
			CreatedAt: now,
		},
		{
			ID: "doc4", Name: "Dr. Michael Ross", Email: "michael.ross@medconnect.com",
			Role: domain.RoleDoctor, Specialty: "Neurologist", Experience: 15,
			About:  "Board-certified neurologist specializing in migraine management and sleep medicine.",
			Rating: 4.8, ConsultationFee: 200,
			AvailableDays: []string{"Wednesday", "Thursday", "Friday"},
			Slots: []domain.TimeSlot{
				{ID: "s9", Time: "10:00 AM", Date: "2024-05-22"},
				{ID: "s10", Time: "03:00 PM", Date: "2024-05-22"},
			},
			Avatar:    "https://picsum.photos/seed/doctor4/200/200",
			CreatedAt: now,
		},
		{
			ID: "doc5", Name: "Dr. Aisha Khan", Email: "aisha.khan@medconnect.com",
			Role: domain.RoleDoctor, Specialty: "General Physician", Experience: 7,
			About:  "Family wellness and primary care; long-term management of chronic disease.",
			Rating: 4.6, ConsultationFee: 80,
			AvailableDays: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			Slots: []domain.TimeSlot{
				{ID: "s11", Time: "09:30 AM", Date: "2024-05-20"},
				{ID: "s12", Time: "12:00 PM", Date: "2024-05-21"},
			},
			Avatar:    "https://picsum.photos/seed/doctor5/200/200",
			CreatedAt: now,
		},
	}
}
