package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

const collectionStatusEvents = "status_events"

// StatusEventRepository persists the status-change audit trail.
type StatusEventRepository struct {
	col *mongo.Collection
}

func NewStatusEventRepository(db *mongo.Database) *StatusEventRepository {
	return &StatusEventRepository{col: db.Collection(collectionStatusEvents)}
}

func (r *StatusEventRepository) Insert(ctx context.Context, e *domain.StatusEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert status event: %w", err)
	}
	return nil
}
