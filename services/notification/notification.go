// Package notification delivers domain events to external channels without
// blocking the caller. Delivery is best effort: a full queue drops the event
// and sink failures are logged, never retried.
package notification

import (
	"context"
	"sync"
	"time"

	"hotelbooking/services/logger"
)

const sendTimeout = 5 * time.Second

type Event struct {
	Name       string      `json:"event"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Sink is one delivery channel.
type Sink interface {
	Name() string
	Send(ctx context.Context, e Event) error
}

// Dispatcher fans events out to sinks from a fixed pool of workers.
type Dispatcher struct {
	queue   chan Event
	sinks   []Sink
	workers int
	log     logger.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(log logger.Logger, queueSize, workers int, sinks ...Sink) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		queue:   make(chan Event, queueSize),
		sinks:   sinks,
		workers: workers,
		log:     log,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.work()
	}
}

// Notify enqueues the event and returns immediately.
func (d *Dispatcher) Notify(event string, payload interface{}) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("notification %s dropped: dispatcher closed", event)
		return
	}
	select {
	case d.queue <- Event{Name: event, Payload: payload, OccurredAt: time.Now().UTC()}:
	default:
		d.log.Warn("notification %s dropped: queue full", event)
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for e := range d.queue {
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e Event) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := sink.Send(ctx, e); err != nil {
			d.log.Error("notification %s via %s failed: %v", e.Name, sink.Name(), err)
		}
		cancel()
	}
}

// Close stops accepting events and waits for queued ones to be delivered
// or for ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogSink writes every event to the application log.
type LogSink struct {
	log logger.Logger
}

func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, e Event) error {
	s.log.Info("event %s: %+v", e.Name, e.Payload)
	return nil
}
