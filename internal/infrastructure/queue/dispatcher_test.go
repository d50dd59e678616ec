package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.StatusEvent
	done   chan struct{}
	expect int
}

func newRecordingAuditService(expect int) *recordingAuditService {
	return &recordingAuditService{done: make(chan struct{}), expect: expect}
}

func (s *recordingAuditService) Process(_ context.Context, event domain.StatusEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.expect {
		close(s.done)
	}
	return nil
}

func (s *recordingAuditService) wait(t *testing.T) []domain.StatusEvent {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.StatusEvent(nil), s.events...)
}

func TestDispatcher_ProcessesEnqueuedEvents(t *testing.T) {
	svc := newRecordingAuditService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for _, id := range []string{"apt1", "apt2", "apt3"} {
		d.Enqueue(domain.StatusEvent{AppointmentID: id, To: domain.StatusPending, At: time.Now()})
	}

	events := svc.wait(t)
	seen := make(map[string]bool, len(events))
	for _, e := range events {
		seen[e.AppointmentID] = true
	}
	for _, id := range []string{"apt1", "apt2", "apt3"} {
		if !seen[id] {
			t.Errorf("event for %s never processed", id)
		}
	}
}

func TestDispatcher_PerAppointmentOrdering(t *testing.T) {
	const n = 20
	svc := newRecordingAuditService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	statuses := []domain.AppointmentStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted}
	for i := 0; i < n; i++ {
		d.Enqueue(domain.StatusEvent{AppointmentID: "apt1", To: statuses[i%len(statuses)], At: time.Now()})
	}

	events := svc.wait(t)
	// All events for one appointment land on one worker, so arrival order
	// must match enqueue order.
	for i, e := range events {
		if e.To != statuses[i%len(statuses)] {
			t.Fatalf("event %d out of order: got %s, want %s", i, e.To, statuses[i%len(statuses)])
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, newRecordingAuditService(0), zerolog.Nop())

	for _, id := range []string{"apt1", "apt2", "a-very-long-appointment-identifier"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shard index for %s changed: %d vs %d", id, first, got)
			}
		}
		if first < 0 || first >= len(d.workers) {
			t.Fatalf("shard index out of range: %d", first)
		}
	}
}
