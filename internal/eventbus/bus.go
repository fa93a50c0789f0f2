// Package eventbus is a pub/sub channel between the dialect parser and
// plugins, with sequential delivery and structured error wrapping.
package eventbus

import "fmt"

// Event names the pipeline's pub/sub topics.
type Event string

const (
	Before      Event = "before"
	After       Event = "after"
	Operation   Event = "operation"
	Parameter   Event = "parameter"
	RequestBody Event = "requestBody"
	Schema      Event = "schema"
	Server      Event = "server"
)

// Callback handles one broadcast payload. A non-nil error aborts the run.
type Callback func(payload any) error

// BroadcastError wraps any error raised by a subscriber with the event,
// plugin name, and original cause.
type BroadcastError struct {
	EventName  Event
	PluginName string
	Args       any
	Cause      error
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("eventbus: plugin %q failed on %q: %v", e.PluginName, e.EventName, e.Cause)
}

func (e *BroadcastError) Unwrap() error { return e.Cause }

type subscription struct {
	pluginName string
	callback   Callback
}

// Bus delivers events to subscribers sequentially, in subscription order:
// broadcast awaits each callback before invoking the next, and any failure
// halts delivery of the remaining subscribers for that event.
type Bus struct {
	subs map[Event][]subscription
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subs: map[Event][]subscription{}}
}

// Subscribe registers callback for event under pluginName. Subscription
// order equals plugin instantiation order, which equals pluginOrder.
func (b *Bus) Subscribe(event Event, pluginName string, callback Callback) {
	b.subs[event] = append(b.subs[event], subscription{pluginName: pluginName, callback: callback})
}

// Broadcast delivers payload to event's subscribers in subscription order,
// awaiting each before invoking the next. The first subscriber error is
// wrapped in a *BroadcastError and returned immediately, with no further
// subscribers invoked.
func (b *Bus) Broadcast(event Event, payload any) error {
	for _, sub := range b.subs[event] {
		if err := sub.callback(payload); err != nil {
			return &BroadcastError{EventName: event, PluginName: sub.pluginName, Args: payload, Cause: err}
		}
	}
	return nil
}

// SubscriberCount returns how many subscribers are registered for event,
// mainly useful for tests asserting wiring.
func (b *Bus) SubscriberCount(event Event) int {
	return len(b.subs[event])
}
