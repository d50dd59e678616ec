package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

const dedupTTL = time.Hour

// DedupChecker suppresses duplicate audit events, backed by Redis.
// Key format: audit:<appointment_id>:<status>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact status change has already been recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, appointmentID string, status domain.AppointmentStatus, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(appointmentID, status, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this status change has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, appointmentID string, status domain.AppointmentStatus, ts time.Time) error {
	return d.client.Set(ctx, d.key(appointmentID, status, ts), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(appointmentID string, status domain.AppointmentStatus, ts time.Time) string {
	return fmt.Sprintf("audit:%s:%s:%d", appointmentID, status, ts.Unix())
}
