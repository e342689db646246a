package utils

import (
	"github.com/iov-one/vault"
)

// EventPublisher forwards events of successfully delivered transactions to
// a sink and renders them as transaction tags. Events of failed
// transactions are dropped together with their state changes.
type EventPublisher struct {
	sink vault.EventSink
}

var _ vault.Decorator = EventPublisher{}

// NewEventPublisher returns a decorator publishing to given sink. A nil
// sink only renders tags.
func NewEventPublisher(sink vault.EventSink) EventPublisher {
	return EventPublisher{sink: sink}
}

// Check does not publish anything, events are only emitted on deliver.
func (p EventPublisher) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	return next.Check(ctx, store, tx)
}

// Deliver publishes all events returned by the handler.
func (p EventPublisher) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	for _, ev := range res.Events {
		res.Tags = append(res.Tags, ev.Tags()...)
		if p.sink != nil {
			p.sink.Publish(ctx, ev)
		}
	}
	return res, nil
}

// LogSink is an event sink writing every event to the context logger.
type LogSink struct{}

var _ vault.EventSink = LogSink{}

// Publish logs the event at info level.
func (LogSink) Publish(ctx vault.Context, ev vault.Event) {
	vault.GetLogger(ctx).With("module", "events").Info("event", ev.Keyvals()...)
}

// CollectSink keeps all published events in memory.
type CollectSink struct {
	Events []vault.Event
}

var _ vault.EventSink = (*CollectSink)(nil)

// Publish appends the event.
func (s *CollectSink) Publish(_ vault.Context, ev vault.Event) {
	s.Events = append(s.Events, ev)
}
