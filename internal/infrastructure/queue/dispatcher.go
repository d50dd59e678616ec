package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/medconnect/appointments-api/internal/api/metrics"
	"github.com/medconnect/appointments-api/internal/core/domain"
	"github.com/medconnect/appointments-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes status-change events to a fixed set of workers using
// consistent hashing on the appointment id, guaranteeing per-appointment
// event ordering in the audit trail.
type Dispatcher struct {
	workers []chan domain.StatusEvent
	service ports.AuditService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.StatusEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.StatusEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its appointment.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.StatusEvent) {
	idx := d.shardIndex(event.AppointmentID)
	d.workers[idx] <- event
	metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an appointment id deterministically to a worker index.
func (d *Dispatcher) shardIndex(appointmentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(appointmentID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.StatusEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				metrics.AuditErrorsTotal.WithLabelValues("process_failed").Inc()
				d.log.Error().Err(err).
					Str("appointment_id", event.AppointmentID).
					Int("worker_id", id).
					Msg("audit event processing failed")
				continue
			}
			metrics.AuditEventsTotal.WithLabelValues(string(event.To)).Inc()
		}
	}
}
