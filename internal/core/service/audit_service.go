package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

// DedupChecker abstracts the duplicate-suppression store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, appointmentID string, status domain.AppointmentStatus, ts time.Time) (bool, error)
	Mark(ctx context.Context, appointmentID string, status domain.AppointmentStatus, ts time.Time) error
}

type auditService struct {
	events ports.StatusEventRepository
	dedup  DedupChecker
	log    zerolog.Logger
}

// NewAuditService returns the AuditService that persists the status-change
// audit trail.
func NewAuditService(events ports.StatusEventRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{events: events, dedup: dedup, log: log}
}

// Process persists a single status-change event, skipping duplicates.
func (s *auditService) Process(ctx context.Context, event domain.StatusEvent) error {
	isDup, err := s.dedup.IsDuplicate(ctx, event.AppointmentID, event.To, event.At)
	if err != nil {
		s.log.Warn().Err(err).Str("appointment_id", event.AppointmentID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("appointment_id", event.AppointmentID).Str("to", string(event.To)).Msg("duplicate audit event skipped")
		return nil
	}

	if markErr := s.dedup.Mark(ctx, event.AppointmentID, event.To, event.At); markErr != nil {
		s.log.Warn().Err(markErr).Str("appointment_id", event.AppointmentID).Msg("failed to set dedup key")
	}

	if err := s.events.Insert(ctx, &event); err != nil {
		return fmt.Errorf("audit event: %w", err)
	}

	s.log.Debug().
		Str("appointment_id", event.AppointmentID).
		Str("from", string(event.From)).
		Str("to", string(event.To)).
		Msg("audit event recorded")

	return nil
}
