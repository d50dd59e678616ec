package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medconnect/appointments-api/internal/core/domain"
)

type stubEventRepo struct {
	events    []*domain.StatusEvent
	insertErr error
}

func (r *stubEventRepo) Insert(_ context.Context, e *domain.StatusEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, e)
	return nil
}

type stubDedup struct {
	marked   map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{marked: make(map[string]bool)}
}

func (d *stubDedup) key(id string, status domain.AppointmentStatus, ts time.Time) string {
	return id + ":" + string(status) + ":" + ts.UTC().Format(time.RFC3339)
}

func (d *stubDedup) IsDuplicate(_ context.Context, id string, status domain.AppointmentStatus, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.marked[d.key(id, status, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, id string, status domain.AppointmentStatus, ts time.Time) error {
	d.marked[d.key(id, status, ts)] = true
	return nil
}

func sampleEvent() domain.StatusEvent {
	return domain.StatusEvent{
		AppointmentID: "apt1",
		From:          domain.StatusPending,
		To:            domain.StatusConfirmed,
		ActorID:       "doc1",
		ActorRole:     domain.RoleDoctor,
		At:            time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestAuditService_Process_RecordsEvent(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, newStubDedup(), discardLogger)

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 stored event, got %d", len(repo.events))
	}
	if repo.events[0].To != domain.StatusConfirmed {
		t.Errorf("unexpected event: %+v", repo.events[0])
	}
}

func TestAuditService_Process_SkipsDuplicates(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewAuditService(repo, newStubDedup(), discardLogger)

	event := sampleEvent()
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("first process failed: %v", err)
	}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("duplicate process failed: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("duplicate must be skipped, got %d events", len(repo.events))
	}
}

func TestAuditService_Process_DedupFailureIsNotFatal(t *testing.T) {
	repo := &stubEventRepo{}
	dedup := newStubDedup()
	dedup.checkErr = errors.New("redis down")
	svc := NewAuditService(repo, dedup, discardLogger)

	if err := svc.Process(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("dedup failure must not block processing: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected event stored despite dedup failure, got %d", len(repo.events))
	}
}

func TestAuditService_Process_InsertError(t *testing.T) {
	repo := &stubEventRepo{insertErr: errors.New("db unavailable")}
	svc := NewAuditService(repo, newStubDedup(), discardLogger)

	if err := svc.Process(context.Background(), sampleEvent()); err == nil {
		t.Fatal("expected error when insert fails")
	}
}
