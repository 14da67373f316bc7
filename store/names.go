package store

import (
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Ensure returns the property registered under name, creating it with a nil
// value and opts if it does not exist yet. Creation never happens on Set.
func (s *Store) Ensure(name string, opts ...PropOption) PropID {
	if id, ok := s.Lookup(name); ok {
		return id
	}
	id := s.Create(nil, append(slices.Clip(opts), named(name))...)
	h := xxhash.Sum64String(name)
	s.names[h] = append(s.names[h], id)
	return id
}

// Lookup finds the property registered under name.
func (s *Store) Lookup(name string) (PropID, bool) {
	for _, id := range s.names[xxhash.Sum64String(name)] {
		if prop, ok := s.lookup(id); ok && prop.Name == name {
			return id, true
		}
	}
	return 0, false
}

func (s *Store) unname(prop *Prop) {
	if prop.Name == "" {
		return
	}
	h := xxhash.Sum64String(prop.Name)
	ids := slices.DeleteFunc(s.names[h], func(id PropID) bool { return id == prop.ID })
	if len(ids) == 0 {
		delete(s.names, h)
		return
	}
	s.names[h] = ids
}
