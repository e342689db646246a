package vault

import (
	"fmt"
	"strings"

	"github.com/tendermint/tendermint/libs/common"
)

// Event is a notification about a state change. Events are append only and
// purely observational: they are handed to an EventSink and rendered as
// transaction tags so external indexers can follow the vault.
type Event struct {
	// Topic is the event name in the form "<module>/<action>", for
	// example "vault/lock".
	Topic      string
	Attributes []EventAttribute
}

// EventAttribute is a single named value of an event payload.
type EventAttribute struct {
	Key   string
	Value string
}

// NewEvent returns an event for the given topic. Attributes are given as
// key/value pairs. Values are rendered using their String method when
// available.
func NewEvent(topic string, keyvals ...interface{}) Event {
	if len(keyvals)%2 != 0 {
		panic("event attributes must be key/value pairs")
	}
	ev := Event{Topic: topic}
	for i := 0; i < len(keyvals); i += 2 {
		ev.Attributes = append(ev.Attributes, EventAttribute{
			Key:   fmt.Sprint(keyvals[i]),
			Value: fmt.Sprint(keyvals[i+1]),
		})
	}
	return ev
}

// Attr returns the value of the attribute with given key and true if found.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Tags renders this event as ABCI tags. Each attribute becomes a tag with a
// key of the form "<module>.<action>.<attribute>".
func (e Event) Tags() []common.KVPair {
	prefix := strings.Replace(e.Topic, "/", ".", -1)
	tags := make([]common.KVPair, 0, len(e.Attributes))
	for _, a := range e.Attributes {
		tags = append(tags, common.KVPair{
			Key:   []byte(prefix + "." + a.Key),
			Value: []byte(a.Value),
		})
	}
	return tags
}

// Keyvals returns attributes flattened into a key/value list, the format
// expected by a structured logger.
func (e Event) Keyvals() []interface{} {
	kv := make([]interface{}, 0, 2+2*len(e.Attributes))
	kv = append(kv, "topic", e.Topic)
	for _, a := range e.Attributes {
		kv = append(kv, a.Key, a.Value)
	}
	return kv
}

// EventSink consumes published events. Publishing is fire and forget.
type EventSink interface {
	Publish(Context, Event)
}
