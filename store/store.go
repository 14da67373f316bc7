// Package store holds reactive properties and wires their changes into an
// update dispatcher.
//
// Properties live in a dense table indexed by PropID. A write whose value the
// property comparator considers unchanged is dropped; any other write to a
// non-static property is delivered to the dispatcher, either immediately or,
// inside a bulk update, once when the outermost bulk update ends.
package store

import (
	"iter"
	"log/slog"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/neocomp/dispatch"
	"github.com/delaneyj/neocomp/link"
	"github.com/delaneyj/neocomp/observer"
)

type (
	PropID = dispatch.PropID
	Ref    = dispatch.Ref
	Unit   = dispatch.Unit
)

// Prop is a property definition. Value, Static and Meta may be changed by
// listeners; ID and Name may not.
type Prop struct {
	ID      PropID
	Name    string
	Value   any
	Static  bool
	Compare CompareFunc
	Meta    map[string]any
}

type Store struct {
	opts   options
	logger *slog.Logger

	// indexed by id, removed properties leave a nil hole
	props      []*Prop
	names      map[uint64][]PropID
	base       link.Linkable
	dispatcher *dispatch.Dispatcher

	onAdd    observer.Event[*Prop]
	onRemove observer.Event[*Prop]
	onChange observer.Event[[]*Prop]

	bulkDepth int
	pending   mapset.Set[PropID]

	tracking bool
	reads    mapset.Set[PropID]
	writes   mapset.Set[PropID]
}

// New creates a store hosted by base. Effects owned by a Linkable are dropped
// when that Linkable is unlinked from base. A nil base gets a private one.
func New(base link.Linkable, opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if base == nil {
		base = &link.Base{}
	}

	s := &Store{
		opts:       o,
		logger:     o.logger,
		names:      map[uint64][]PropID{},
		base:       base,
		dispatcher: dispatch.New(dispatch.WithLogger(o.logger)),
		pending:    mapset.NewThreadUnsafeSet[PropID](),
		reads:      mapset.NewThreadUnsafeSet[PropID](),
		writes:     mapset.NewThreadUnsafeSet[PropID](),
	}
	s.dispatcher.Watch(base)
	return s
}

func (s *Store) Base() link.Linkable                { return s.base }
func (s *Store) Dispatcher() *dispatch.Dispatcher   { return s.dispatcher }
func (s *Store) OnAdd() *observer.Event[*Prop]      { return &s.onAdd }
func (s *Store) OnRemove() *observer.Event[*Prop]   { return &s.onRemove }
func (s *Store) OnChange() *observer.Event[[]*Prop] { return &s.onChange }

// Create adds a property holding value. Unless static, it is marked dirty at
// once so listeners can bind to its first value.
func (s *Store) Create(value any, opts ...PropOption) PropID {
	prop := &Prop{
		ID:      PropID(len(s.props)),
		Value:   value,
		Static:  s.opts.static,
		Compare: s.opts.compare,
		Meta:    map[string]any{},
	}
	for _, opt := range opts {
		opt(prop)
	}
	s.props = append(s.props, prop)

	s.onAdd.Trigger(prop)
	if !prop.Static {
		// nothing can depend on a fresh id yet, so dispatch cannot fail
		_ = s.update(prop, true)
	}
	return prop.ID
}

func (s *Store) lookup(id PropID) (*Prop, bool) {
	if id < 0 || int(id) >= len(s.props) || s.props[id] == nil {
		return nil, false
	}
	return s.props[id], true
}

// Get returns the value of id, recording a read while tracking.
func (s *Store) Get(id PropID) (any, error) {
	prop, ok := s.lookup(id)
	if !ok {
		return nil, undefinedProp("getting", id)
	}
	if s.tracking && !prop.Static {
		s.reads.Add(id)
	}
	return prop.Value, nil
}

// Peek returns the value of id without recording a read.
func (s *Store) Peek(id PropID) (any, error) {
	prop, ok := s.lookup(id)
	if !ok {
		return nil, undefinedProp("peeking", id)
	}
	return prop.Value, nil
}

// Prop returns the definition of id, recording a read while tracking.
func (s *Store) Prop(id PropID) (*Prop, error) {
	prop, ok := s.lookup(id)
	if !ok {
		return nil, undefinedProp("getting definition of", id)
	}
	if s.tracking && !prop.Static {
		s.reads.Add(id)
	}
	return prop, nil
}

// Set writes value to id. The returned error is either ErrUndefinedProperty
// or whatever the resulting dispatch failed with.
func (s *Store) Set(id PropID, value any) error {
	prop, ok := s.lookup(id)
	if !ok {
		return undefinedProp("setting", id)
	}
	old := prop.Value
	prop.Value = value

	if s.tracking && !prop.Static {
		s.writes.Add(id)
	}
	if prop.Static || prop.Compare(old, value) {
		return nil
	}
	return s.update(prop, false)
}

func (s *Store) Has(id PropID) bool {
	_, ok := s.lookup(id)
	return ok
}

// Remove deletes id along with every effect reading it.
func (s *Store) Remove(id PropID) error {
	prop, ok := s.lookup(id)
	if !ok {
		return undefinedProp("removing", id)
	}
	s.props[id] = nil
	s.unname(prop)
	s.pending.Remove(id)
	s.dispatcher.RemoveProps(id)
	s.logger.Debug("property removed", "id", id, "name", prop.Name)
	s.onRemove.Trigger(prop)
	return nil
}

// ForceUpdate notifies dependents of id even if it is static or unchanged.
func (s *Store) ForceUpdate(id PropID) error {
	prop, ok := s.lookup(id)
	if !ok {
		return undefinedProp("force updating", id)
	}
	return s.update(prop, true)
}

// UpdateAll notifies every property in one batch.
func (s *Store) UpdateAll(withStatic bool) error {
	s.StartBulkUpdate()
	for prop := range s.All() {
		if withStatic || !prop.Static {
			s.pending.Add(prop.ID)
		}
	}
	return s.EndBulkUpdate()
}

// All iterates over the live properties in id order.
func (s *Store) All() iter.Seq[*Prop] {
	return func(yield func(*Prop) bool) {
		for _, prop := range s.props {
			if prop == nil {
				continue
			}
			if !yield(prop) {
				return
			}
		}
	}
}

// Len returns the number of live properties.
func (s *Store) Len() int {
	n := 0
	for range s.All() {
		n++
	}
	return n
}

func (s *Store) update(prop *Prop, evenStatic bool) error {
	if !evenStatic && prop.Static {
		return nil
	}
	if s.bulkDepth > 0 {
		s.pending.Add(prop.ID)
		return nil
	}
	return s.notify([]*Prop{prop})
}

func (s *Store) notify(props []*Prop) error {
	s.onChange.Trigger(props)
	ids := make([]PropID, len(props))
	for i, prop := range props {
		ids[i] = prop.ID
	}
	return s.dispatcher.Update(ids)
}
