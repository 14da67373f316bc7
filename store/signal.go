package store

import "github.com/delaneyj/neocomp/comperr"

// Signals are accessors bound to one property of one store. They hold no
// state of their own and are cheap to create and drop.
//
// Value, Peek and SetValue panic with the *comperr.Error that Get and Set
// would return, typically because the property was removed or holds a value
// of another type.

func as[T any](id PropID, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, comperr.Newf(scope, ErrWrongType, "property %d holds %T, not %T", id, v, zero)
	}
	return t, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

type Signal[T any] struct {
	store *Store
	id    PropID
}

// NewSignal creates a property holding value and returns a read/write handle.
func NewSignal[T any](s *Store, value T, opts ...PropOption) *Signal[T] {
	return &Signal[T]{store: s, id: s.Create(value, opts...)}
}

// SignalOf binds a handle to an existing property.
func SignalOf[T any](s *Store, id PropID) *Signal[T] {
	return &Signal[T]{store: s, id: id}
}

func (sig *Signal[T]) ID() PropID      { return sig.id }
func (sig *Signal[T]) Store() *Store   { return sig.store }
func (sig *Signal[T]) Value() T        { return must(sig.Get()) }
func (sig *Signal[T]) Peek() T         { return must(peek[T](sig.store, sig.id)) }
func (sig *Signal[T]) SetValue(v T)    { must(struct{}{}, sig.Set(v)) }
func (sig *Signal[T]) Update() error   { return sig.store.ForceUpdate(sig.id) }
func (sig *Signal[T]) Set(v T) error   { return sig.store.Set(sig.id, v) }
func (sig *Signal[T]) Get() (T, error) { return get[T](sig.store, sig.id) }

func (sig *Signal[T]) Prop() (*Prop, error) {
	return sig.store.Prop(sig.id)
}

func (sig *Signal[T]) ReadOnly() *ReadOnlySignal[T] {
	return &ReadOnlySignal[T]{store: sig.store, id: sig.id}
}

func (sig *Signal[T]) WriteOnly() *WriteOnlySignal[T] {
	return &WriteOnlySignal[T]{store: sig.store, id: sig.id}
}

type ReadOnlySignal[T any] struct {
	store *Store
	id    PropID
}

func NewReadOnlySignal[T any](s *Store, value T, opts ...PropOption) *ReadOnlySignal[T] {
	return &ReadOnlySignal[T]{store: s, id: s.Create(value, opts...)}
}

func (sig *ReadOnlySignal[T]) ID() PropID      { return sig.id }
func (sig *ReadOnlySignal[T]) Store() *Store   { return sig.store }
func (sig *ReadOnlySignal[T]) Value() T        { return must(sig.Get()) }
func (sig *ReadOnlySignal[T]) Peek() T         { return must(peek[T](sig.store, sig.id)) }
func (sig *ReadOnlySignal[T]) Get() (T, error) { return get[T](sig.store, sig.id) }

type WriteOnlySignal[T any] struct {
	store *Store
	id    PropID
}

func NewWriteOnlySignal[T any](s *Store, value T, opts ...PropOption) *WriteOnlySignal[T] {
	return &WriteOnlySignal[T]{store: s, id: s.Create(value, opts...)}
}

func (sig *WriteOnlySignal[T]) ID() PropID    { return sig.id }
func (sig *WriteOnlySignal[T]) Store() *Store { return sig.store }
func (sig *WriteOnlySignal[T]) SetValue(v T)  { must(struct{}{}, sig.Set(v)) }
func (sig *WriteOnlySignal[T]) Set(v T) error { return sig.store.Set(sig.id, v) }
func (sig *WriteOnlySignal[T]) Update() error { return sig.store.ForceUpdate(sig.id) }

func get[T any](s *Store, id PropID) (T, error) {
	v, err := s.Get(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](id, v)
}

func peek[T any](s *Store, id PropID) (T, error) {
	v, err := s.Peek(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return as[T](id, v)
}
