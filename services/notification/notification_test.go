package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/services/logger"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Send(_ context.Context, e Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.Name
	}
	return out
}

func TestDispatcher_DeliversToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	d := NewDispatcher(logger.NewDiscardLogger(), 8, 1, first, second)
	d.Start()

	d.Notify("reservation.created", map[string]string{"id": "r1"})
	d.Notify("payment.confirmed", map[string]string{"id": "r1"})
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, []string{"reservation.created", "payment.confirmed"}, first.names())
	assert.Equal(t, []string{"reservation.created", "payment.confirmed"}, second.names())
}

func TestDispatcher_SinkErrorDoesNotStopOthers(t *testing.T) {
	failing := &recordingSink{err: errors.New("broker down")}
	ok := &recordingSink{}
	d := NewDispatcher(logger.NewDiscardLogger(), 8, 2, failing, ok)
	d.Start()

	d.Notify("reservation.cancelled", nil)
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, ok.names(), 1)
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewDispatcher(logger.NewDiscardLogger(), 1, 1, sink)
	d.Start()

	start := time.Now()
	for i := 0; i < 10; i++ {
		d.Notify("reservation.created", i)
	}
	assert.Less(t, time.Since(start), time.Second, "Notify must never block")

	close(sink.block)
	require.NoError(t, d.Close(context.Background()))
	assert.LessOrEqual(t, len(sink.names()), 2)
}

func TestDispatcher_NotifyAfterCloseIsIgnored(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(logger.NewDiscardLogger(), 4, 1, sink)
	d.Start()
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() { d.Notify("reservation.created", nil) })
	assert.Empty(t, sink.names())
}
