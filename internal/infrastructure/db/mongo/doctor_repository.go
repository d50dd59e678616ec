package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

const collectionDoctors = "doctors"

type DoctorRepository struct {
	col *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *DoctorRepository {
	return &DoctorRepository{col: db.Collection(collectionDoctors)}
}

// Insert persists a new doctor profile with its embedded slot list.
func (r *DoctorRepository) Insert(ctx context.Context, d *domain.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Doctor
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return &d, nil
}

// List returns a page of doctors matching filter and the total count.
func (r *DoctorRepository) List(ctx context.Context, filter ports.ListDoctorsFilter) ([]*domain.Doctor, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Specialty != "" {
		query["specialty"] = filter.Specialty
	}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Search, Options: "i"}}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count doctors: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if filter.Limit > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []*domain.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, 0, fmt.Errorf("decode doctors: %w", err)
	}
	return doctors, total, nil
}

// Delete removes the doctor document. Appointments referencing it are left
// untouched.
func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDoctorNotFound
	}
	return nil
}

// AddSlot appends a slot to the doctor's embedded list.
func (r *DoctorRepository) AddSlot(ctx context.Context, doctorID string, slot domain.TimeSlot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": doctorID},
		bson.M{"$push": bson.M{"slots": slot}},
	)
	if err != nil {
		return fmt.Errorf("add slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDoctorNotFound
	}
	return nil
}

// BookSlot atomically flips the matching free slot to booked. The filter
// only matches an unbooked slot, so a concurrent booking of the same slot
// modifies nothing and is rejected.
func (r *DoctorRepository) BookSlot(ctx context.Context, doctorID, date, t string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{
			"_id":   doctorID,
			"slots": bson.M{"$elemMatch": bson.M{"date": date, "time": t, "is_booked": false}},
		},
		bson.M{"$set": bson.M{"slots.$.is_booked": true}},
	)
	if err != nil {
		return fmt.Errorf("book slot: %w", err)
	}
	if res.ModifiedCount == 0 {
		return domain.ErrSlotUnavailable
	}
	return nil
}

// ReleaseSlot clears the booked flag on the matching slot. Releasing a slot
// that is already free, or that no longer exists, is a no-op.
func (r *DoctorRepository) ReleaseSlot(ctx context.Context, doctorID, date, t string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{
			"_id":   doctorID,
			"slots": bson.M{"$elemMatch": bson.M{"date": date, "time": t, "is_booked": true}},
		},
		bson.M{"$set": bson.M{"slots.$.is_booked": false}},
	)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes used by the directory queries.
func (r *DoctorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "specialty", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
