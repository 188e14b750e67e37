// internal/event/event.go
package event

import "go-raycaster/internal/types"

// EventType names a notification.
type EventType string

// Event is a notification raised during a world tick.
type Event struct {
	Type   EventType
	Source types.EntityID // entity that caused the event, 0 for the world
	X, Y   int            // sector involved, when relevant
	Data   interface{}
}

// Listener receives dispatched events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Queue collects events during a tick. Producers only append; the owner
// drains it once per tick, so no listener ever runs inside the simulation.
type Queue struct {
	events   []Event
	capacity int
	dropped  int
}

// NewQueue creates a queue holding at most capacity events between drains.
func NewQueue(capacity int) *Queue {
	return &Queue{events: make([]Event, 0, capacity), capacity: capacity}
}

// Push appends e. When the queue is full the event is dropped and counted.
func (q *Queue) Push(e Event) {
	if q.capacity > 0 && len(q.events) >= q.capacity {
		q.dropped++
		return
	}
	q.events = append(q.events, e)
}

// Drain returns the pending events in order and empties the queue.
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return len(q.events) }

// Dropped returns how many events were refused because the queue was full.
func (q *Queue) Dropped() int { return q.dropped }

// Dispatcher fans drained events out to subscribers.
type Dispatcher struct {
	listeners map[EventType][]Listener
	all       []Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers listener for one event type.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll registers listener for every event type.
func (d *Dispatcher) SubscribeAll(listener Listener) {
	d.all = append(d.all, listener)
}

// Unsubscribe removes listener from one event type. The listener must be a
// comparable value (a pointer), not a ListenerFunc.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers event to its subscribers.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
	for _, listener := range d.all {
		listener.OnEvent(event)
	}
}

// DispatchAll delivers events in order.
func (d *Dispatcher) DispatchAll(events []Event) {
	for _, e := range events {
		d.Dispatch(e)
	}
}
