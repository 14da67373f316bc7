package dispatch

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/neocomp/link"
)

// Remove drops the units matching fn from the indexes of props, or from every
// index when props is empty. A unit left without any index is marked removed
// and will not run even if it is pending in the current pass.
func (d *Dispatcher) Remove(fn func(u *Unit) bool, props ...PropID) int {
	if len(props) == 0 {
		props = make([]PropID, 0, len(d.records))
		for id := range d.records {
			props = append(props, id)
		}
	}

	dropped := mapset.NewThreadUnsafeSet[*Unit]()
	for _, id := range props {
		d.filter(id, func(u *Unit) bool {
			if fn(u) {
				dropped.Add(u)
				return true
			}
			return false
		})
	}

	n := 0
	dropped.Each(func(u *Unit) bool {
		if !d.indexed(u) {
			d.retire(u)
			n++
		}
		return false
	})
	d.logger.Debug("removed units", "count", n)
	return n
}

// RemoveProps drops every unit reading one of props.
func (d *Dispatcher) RemoveProps(props ...PropID) int {
	units := mapset.NewThreadUnsafeSet[*Unit]()
	for _, id := range props {
		for _, u := range d.records[id] {
			units.Add(u)
		}
	}
	n := d.drop(units)
	for _, id := range props {
		delete(d.records, id)
	}
	return n
}

// RemoveOwners drops every unit owned by one of owners.
func (d *Dispatcher) RemoveOwners(owners ...link.Linkable) int {
	units := mapset.NewThreadUnsafeSet[*Unit]()
	for _, owner := range owners {
		for _, u := range d.owners[owner] {
			units.Add(u)
		}
		delete(d.owners, owner)
	}
	return d.drop(units)
}

func (d *Dispatcher) drop(units mapset.Set[*Unit]) int {
	if units.Cardinality() == 0 {
		return 0
	}
	involved := mapset.NewThreadUnsafeSet[PropID]()
	units.Each(func(u *Unit) bool {
		for _, id := range u.Inputs {
			involved.Add(id)
		}
		return false
	})
	involved.Each(func(id PropID) bool {
		d.filter(id, func(u *Unit) bool { return units.Contains(u) })
		return false
	})
	units.Each(func(u *Unit) bool {
		d.retire(u)
		return false
	})
	d.logger.Debug("removed units", "count", units.Cardinality())
	return units.Cardinality()
}

// filter removes the units of one index matching fn.
func (d *Dispatcher) filter(id PropID, fn func(u *Unit) bool) {
	units, ok := d.records[id]
	if !ok {
		return
	}
	kept := slices.DeleteFunc(slices.Clone(units), func(u *Unit) bool {
		return fn(u)
	})
	if len(kept) == 0 {
		delete(d.records, id)
		return
	}
	d.records[id] = kept
}

func (d *Dispatcher) indexed(u *Unit) bool {
	for _, id := range u.Inputs {
		if slices.Contains(d.records[id], u) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) retire(u *Unit) {
	u.removed = true
	if u.Owner == nil {
		return
	}
	owned := slices.DeleteFunc(slices.Clone(d.owners[u.Owner]), func(o *Unit) bool {
		return o == u
	})
	if len(owned) == 0 {
		delete(d.owners, u.Owner)
		return
	}
	d.owners[u.Owner] = owned
}

// Records returns a copy of the index of units by input property.
func (d *Dispatcher) Records() map[PropID][]*Unit {
	records := make(map[PropID][]*Unit, len(d.records))
	for id, units := range d.records {
		records[id] = slices.Clone(units)
	}
	return records
}

// Units returns every registered unit once, in input id order.
func (d *Dispatcher) Units() []*Unit {
	ids := make([]PropID, 0, len(d.records))
	for id := range d.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	seen := mapset.NewThreadUnsafeSet[*Unit]()
	var units []*Unit
	for _, id := range ids {
		for _, u := range d.records[id] {
			if seen.Add(u) {
				units = append(units, u)
			}
		}
	}
	return units
}
