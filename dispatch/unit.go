package dispatch

import "github.com/delaneyj/neocomp/link"

// PropID identifies a property inside one store. Ids are dense and never
// reused while the store is alive.
type PropID int

// ID makes a bare PropID usable wherever a Ref is expected.
func (id PropID) ID() PropID { return id }

// Ref is anything bound to a property: a PropID or a signal handle.
type Ref interface {
	ID() PropID
}

// IDs flattens refs into property ids.
func IDs(refs ...Ref) []PropID {
	ids := make([]PropID, len(refs))
	for i, r := range refs {
		ids[i] = r.ID()
	}
	return ids
}

type Handler func(u *Unit) error

// Unit is a registered effect. It is indexed under every id in Inputs and,
// when run, may write any id in Outputs.
type Unit struct {
	// Inputs are the properties the unit reads.
	Inputs []PropID
	// Outputs are the properties the unit writes.
	Outputs []PropID
	Handler Handler
	// Owner scopes the unit: unlinking it from the store's base drops the unit.
	Owner link.Linkable
	Meta  map[string]any

	removed bool
}

// Removed reports whether the unit was dropped from its dispatcher.
func (u *Unit) Removed() bool {
	return u.removed
}
