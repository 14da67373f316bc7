package store

import (
	"github.com/delaneyj/neocomp/dispatch"
)

// EffectFunc is the body of an effect.
type EffectFunc func() error

func (s *Store) effectOptions(opts []EffectOption) effectOptions {
	var o effectOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func handler(fn EffectFunc) dispatch.Handler {
	return func(*dispatch.Unit) error { return fn() }
}

func (s *Store) checkInputs(ids []PropID) error {
	for _, id := range ids {
		if !s.Has(id) {
			return undefinedProp("binding effect to", id)
		}
	}
	return nil
}

// Effect runs fn once, then registers it to run again whenever one of inputs
// changes. outputs declares what fn writes so that consumers of those
// properties are ordered after it.
func (s *Store) Effect(inputs, outputs []Ref, fn EffectFunc, opts ...EffectOption) (*Unit, error) {
	in, out := dispatch.IDs(inputs...), dispatch.IDs(outputs...)
	if err := s.checkInputs(in); err != nil {
		return nil, err
	}
	if err := fn(); err != nil {
		return nil, err
	}
	// fn may have removed one of its own inputs
	if err := s.checkInputs(in); err != nil {
		return nil, err
	}

	o := s.effectOptions(opts)
	return s.dispatcher.Add(in, out, handler(fn), o.owner, o.meta), nil
}

// AutoEffect runs fn once in tracking mode and registers it with the
// properties it read as inputs and the ones it wrote as outputs. Reads made
// through Peek are not dependencies.
func (s *Store) AutoEffect(fn EffectFunc, opts ...EffectOption) (*Unit, error) {
	if err := s.StartTrack(); err != nil {
		return nil, err
	}
	err := fn()
	tracked, trackErr := s.EndTrack()
	if err != nil {
		return nil, err
	}
	if trackErr != nil {
		return nil, trackErr
	}
	if err := s.checkInputs(tracked.Reads); err != nil {
		return nil, err
	}

	o := s.effectOptions(opts)
	return s.dispatcher.Add(tracked.Reads, tracked.Writes, handler(fn), o.owner, o.meta), nil
}

// Computed derives a read-only signal from fn, tracking what fn reads.
func Computed[T any](s *Store, fn func() T, opts ...EffectOption) (*ReadOnlySignal[T], error) {
	var zero T
	id := s.Create(zero)
	if _, err := s.AutoEffect(func() error { return s.Set(id, fn()) }, opts...); err != nil {
		_ = s.Remove(id)
		return nil, err
	}
	return &ReadOnlySignal[T]{store: s, id: id}, nil
}

// ComputedOf derives a read-only signal from fn, recomputed when one of
// inputs changes.
func ComputedOf[T any](s *Store, inputs []Ref, fn func() T, opts ...EffectOption) (*ReadOnlySignal[T], error) {
	var zero T
	id := s.Create(zero)
	_, err := s.Effect(inputs, []Ref{id}, func() error { return s.Set(id, fn()) }, opts...)
	if err != nil {
		_ = s.Remove(id)
		return nil, err
	}
	return &ReadOnlySignal[T]{store: s, id: id}, nil
}
