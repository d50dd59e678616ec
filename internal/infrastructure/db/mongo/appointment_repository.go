package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

const collectionAppointments = "appointments"

type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

func (r *AppointmentRepository) Insert(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Appointment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return &a, nil
}

// List returns appointments matching filter, newest first.
func (r *AppointmentRepository) List(ctx context.Context, filter ports.ListAppointmentsFilter) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appointments := []*domain.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return appointments, nil
}

// UpdateStatus overwrites the status field of one appointment.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the role-scoped listings.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
