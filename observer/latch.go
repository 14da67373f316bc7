package observer

import (
	"errors"

	"github.com/delaneyj/neocomp/comperr"
)

var ErrAlreadyTriggered = errors.New("event already triggered")

// Latch is a one-time-init event. It triggers at most once; listeners added
// after the trigger are called immediately with the recorded payload.
type Latch[T any] struct {
	ev        Event[T]
	triggered bool
	value     T
}

func (l *Latch[T]) Listen(fn func(T)) ListenerID {
	if l.triggered {
		fn(l.value)
		return 0
	}
	return l.ev.Listen(fn)
}

func (l *Latch[T]) Unlisten(id ListenerID) bool {
	return l.ev.Unlisten(id)
}

func (l *Latch[T]) Trigger(v T) error {
	if l.triggered {
		return comperr.New("event", ErrAlreadyTriggered, "")
	}
	l.triggered = true
	l.value = v
	l.ev.Trigger(v)
	l.ev.listeners = nil
	return nil
}

func (l *Latch[T]) Triggered() bool {
	return l.triggered
}

// Next returns a channel receiving the payload; it is ready at once if the
// latch already fired.
func (l *Latch[T]) Next() <-chan T {
	ch := make(chan T, 1)
	l.Listen(func(v T) { ch <- v })
	return ch
}
