// Package dispatch schedules effect units over the property dependency graph.
// Every unit reached by a pass runs at most once, producers before consumers,
// and writes made by a running unit extend the pass in progress instead of
// starting a new one.
package dispatch

import (
	"errors"
	"io"
	"log/slog"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/neocomp/comperr"
	"github.com/delaneyj/neocomp/link"
)

var ErrCircularDependency = errors.New("circular dependency detected in update batch")

const scope = "update dispatcher"

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Stats counts dispatcher activity since creation.
type Stats struct {
	Passes  int64
	Runs    int64
	Splices int64
}

type Dispatcher struct {
	logger *slog.Logger

	// units by the properties they read
	records map[PropID][]*Unit
	// units by owner
	owners map[link.Linkable][]*Unit

	updating bool
	current  []*Unit
	cursor   int
	// units queued but not yet run in the current pass
	unitsInvolved mapset.Set[*Unit]
	// properties already expanded in the current pass
	propsInvolved mapset.Set[PropID]

	stats Stats
}

func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		records:       map[PropID][]*Unit{},
		owners:        map[link.Linkable][]*Unit{},
		unitsInvolved: mapset.NewThreadUnsafeSet[*Unit](),
		propsInvolved: mapset.NewThreadUnsafeSet[PropID](),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Watch drops the units owned by any Linkable that gets unlinked from base.
func (d *Dispatcher) Watch(base link.Linkable) {
	base.OnUnlink().Listen(func(other link.Linkable) {
		d.RemoveOwners(other)
	})
}

// Add registers a unit under every one of its inputs. owner and meta may be nil.
// Owners are used as map keys and must be comparable, which pointer types are.
func (d *Dispatcher) Add(inputs, outputs []PropID, handler Handler, owner link.Linkable, meta map[string]any) *Unit {
	if meta == nil {
		meta = map[string]any{}
	}
	u := &Unit{
		Inputs:  inputs,
		Outputs: outputs,
		Handler: handler,
		Owner:   owner,
		Meta:    meta,
	}
	for _, id := range inputs {
		d.records[id] = append(d.records[id], u)
	}
	if owner != nil {
		d.owners[owner] = append(d.owners[owner], u)
	}
	return u
}

func (d *Dispatcher) IsUpdating() bool {
	return d.updating
}

func (d *Dispatcher) Stats() Stats {
	return d.stats
}

// Update dispatches a change of props. Called while a pass is running, the
// newly reached units are spliced in front of the remaining work and the
// running pass executes them.
func (d *Dispatcher) Update(props []PropID) error {
	fresh := make([]PropID, 0, len(props))
	for _, id := range props {
		if !d.propsInvolved.Contains(id) {
			fresh = append(fresh, id)
		}
	}

	units, err := d.gather(fresh)
	if err != nil {
		d.logger.Debug("dependency cycle", "props", props, "updating", d.updating)
		if !d.updating {
			d.reset()
		}
		return err
	}

	if d.updating {
		if len(units) > 0 {
			d.current = append(units, d.current[d.cursor:]...)
			d.cursor = 0
			d.stats.Splices++
			d.logger.Debug("spliced units into pass", "props", fresh, "units", len(units))
		}
		return nil
	}

	if len(units) == 0 {
		d.reset()
		return nil
	}

	d.current = units
	d.updating = true
	d.stats.Passes++
	d.logger.Debug("pass started", "props", fresh, "units", len(units))
	defer d.reset()

	// not a range loop, units may be spliced in while running
	ran := 0
	for d.cursor < len(d.current) {
		u := d.current[d.cursor]
		d.cursor++
		d.unitsInvolved.Remove(u)
		if u.removed {
			continue
		}
		ran++
		d.stats.Runs++
		if err := u.Handler(u); err != nil {
			d.logger.Debug("pass aborted", "err", err, "ran", ran)
			return err
		}
	}
	d.logger.Debug("pass finished", "ran", ran)
	return nil
}

func (d *Dispatcher) reset() {
	d.updating = false
	d.current = nil
	d.cursor = 0
	d.unitsInvolved.Clear()
	d.propsInvolved.Clear()
}

// gather returns the units reachable from props, producers first. Nothing is
// recorded in the pass state unless the whole expansion succeeds.
func (d *Dispatcher) gather(props []PropID) ([]*Unit, error) {
	var (
		sorted   []*Unit
		visiting = mapset.NewThreadUnsafeSet[*Unit]()
		seen     = mapset.NewThreadUnsafeSet[*Unit]()
		expanded = mapset.NewThreadUnsafeSet[PropID]()
	)

	var visit func(u *Unit) error
	visit = func(u *Unit) error {
		if visiting.Contains(u) {
			return comperr.New(scope, ErrCircularDependency, "")
		}
		if seen.Contains(u) || d.unitsInvolved.Contains(u) {
			return nil
		}

		visiting.Add(u)
		for _, id := range u.Outputs {
			expanded.Add(id)
			for _, next := range d.records[id] {
				if err := visit(next); err != nil {
					return err
				}
			}
		}
		visiting.Remove(u)

		seen.Add(u)
		sorted = append(sorted, u)
		return nil
	}

	for _, id := range props {
		expanded.Add(id)
		for _, u := range d.records[id] {
			if err := visit(u); err != nil {
				return nil, err
			}
		}
	}

	expanded.Each(func(id PropID) bool {
		d.propsInvolved.Add(id)
		return false
	})
	seen.Each(func(u *Unit) bool {
		d.unitsInvolved.Add(u)
		return false
	})

	// post-order has consumers first
	slices.Reverse(sorted)
	return sorted, nil
}
