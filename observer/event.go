// Package observer provides the multi-subscriber notification primitive every
// other neocomp package uses to publish lifecycle events.
package observer

// ListenerID identifies a registered listener so it can be removed later.
type ListenerID uint64

type listener[T any] struct {
	id   ListenerID
	fn   func(T)
	once bool
}

// Event is a lightweight typed event. The zero value is ready to use.
type Event[T any] struct {
	nextID    ListenerID
	listeners []listener[T]
}

// Listen registers fn to be called on every trigger.
func (e *Event[T]) Listen(fn func(T)) ListenerID {
	return e.add(fn, false)
}

// Once registers fn to be called on the next trigger only.
func (e *Event[T]) Once(fn func(T)) ListenerID {
	return e.add(fn, true)
}

func (e *Event[T]) add(fn func(T), once bool) ListenerID {
	e.nextID++
	e.listeners = append(e.listeners, listener[T]{id: e.nextID, fn: fn, once: once})
	return e.nextID
}

// Unlisten removes a listener, reporting whether it was registered.
func (e *Event[T]) Unlisten(id ListenerID) bool {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Trigger calls the listeners registered at the time of the call, in
// registration order. Listeners may add or remove listeners while running.
func (e *Event[T]) Trigger(v T) {
	if len(e.listeners) == 0 {
		return
	}
	current := e.listeners
	for _, l := range current {
		if l.once {
			e.Unlisten(l.id)
		}
		l.fn(v)
	}
}

// Len returns the number of registered listeners.
func (e *Event[T]) Len() int {
	return len(e.listeners)
}

// Next returns a channel receiving the payload of the next trigger.
func (e *Event[T]) Next() <-chan T {
	ch := make(chan T, 1)
	e.Once(func(v T) { ch <- v })
	return ch
}

// ListenUntil keeps fn registered on target until source triggers.
func ListenUntil[S, T any](source *Event[S], target *Event[T], fn func(T)) {
	id := target.Listen(fn)
	source.Once(func(S) { target.Unlisten(id) })
}
