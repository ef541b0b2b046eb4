package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/developia/translation-office/internal/api/metrics"
	"github.com/developia/translation-office/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Sink consumes dispatched events, typically to send notifications.
type Sink interface {
	Handle(ctx context.Context, event domain.Event) error
}

// Dispatcher routes domain events to a fixed set of workers using consistent
// hashing on the project id, so events for one project are handled in
// publication order. Publish is fire-and-forget: when a worker's buffer is
// full the event is dropped (at-most-once, no delivery guarantee).
type Dispatcher struct {
	workers []chan domain.Event
	sink    Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Event, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Event, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands the event to the worker responsible for its project.
func (d *Dispatcher) Publish(event domain.Event) {
	idx := d.shardIndex(event.ProjectID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsPublishedTotal.WithLabelValues(string(event.Kind)).Inc()
	default:
		metrics.EventsDroppedTotal.WithLabelValues(string(event.Kind)).Inc()
		d.log.Warn().
			Str("project_id", event.ProjectID).
			Str("kind", string(event.Kind)).
			Int("worker_id", idx).
			Msg("event dropped, worker queue full")
	}
	metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a project id deterministically to a worker index.
func (d *Dispatcher) shardIndex(projectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sink.Handle(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("project_id", event.ProjectID).
					Str("kind", string(event.Kind)).
					Int("worker_id", id).
					Msg("event handling failed")
			}
		}
	}
}
