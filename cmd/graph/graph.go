package main

import (
	"fmt"
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/neocomp/cmd/graph/templates"
	"github.com/delaneyj/neocomp/store"
)

// toGraph converts the properties and effect units of s into template data.
// Properties are named p<id>, units u<index> in input id order.
func toGraph(name string, s *store.Store) *templates.Graph {
	g := &templates.Graph{Name: name}

	for prop := range s.All() {
		label := fmt.Sprintf("#%d", prop.ID)
		if prop.Name != "" {
			label = prop.Name
		}
		g.Nodes = append(g.Nodes, templates.Node{
			ID:    fmt.Sprintf("p%d", prop.ID),
			Label: fmt.Sprintf("%s = %v", label, prop.Value),
		})
	}

	read := mapset.NewThreadUnsafeSet[store.PropID]()
	written := mapset.NewThreadUnsafeSet[store.PropID]()
	for i, u := range s.Dispatcher().Units() {
		id := fmt.Sprintf("u%d", i)
		label := fmt.Sprintf("unit %d", i)
		if name, ok := u.Meta["name"].(string); ok {
			label = name
		}
		g.Nodes = append(g.Nodes, templates.Node{ID: id, Label: label, Unit: true})

		for _, in := range u.Inputs {
			read.Add(in)
			g.Edges = append(g.Edges, templates.Edge{From: fmt.Sprintf("p%d", in), To: id})
		}
		for _, out := range u.Outputs {
			written.Add(out)
			g.Edges = append(g.Edges, templates.Edge{From: id, To: fmt.Sprintf("p%d", out)})
		}
	}

	for prop := range s.All() {
		if read.Contains(prop.ID) && !written.Contains(prop.ID) {
			g.Sources = append(g.Sources, int(prop.ID))
		}
	}
	return g
}

type preset func(s *store.Store, width, height int, random *rand.Rand) error

var presets = map[string]preset{
	"diamond": diamond,
	"chain":   chain,
	"layers":  layers,
}

func named(name string) store.EffectOption {
	return store.EffectMeta(map[string]any{"name": name})
}

func diamond(s *store.Store, _, _ int, _ *rand.Rand) error {
	p := store.SignalOf[int](s, s.Ensure("p"))
	q := store.SignalOf[int](s, s.Ensure("q"))
	c := store.SignalOf[int](s, s.Ensure("c"))
	if err := p.Set(1); err != nil {
		return err
	}

	if _, err := s.Effect([]store.Ref{p}, []store.Ref{q}, func() error {
		return q.Set(p.Value() + 1)
	}, named("a")); err != nil {
		return err
	}
	if _, err := s.Effect([]store.Ref{p}, []store.Ref{q}, func() error {
		return q.Set(p.Value() * 2)
	}, named("b")); err != nil {
		return err
	}
	_, err := s.Effect([]store.Ref{q}, []store.Ref{c}, func() error {
		return c.Set(q.Value())
	}, named("c"))
	return err
}

func chain(s *store.Store, width, height int, _ *rand.Rand) error {
	src := store.NewSignal(s, 1)
	for i := range width {
		var last store.Ref = src
		for j := range height {
			prev := store.SignalOf[int](s, last.ID())
			next, err := store.Computed(s, func() int { return prev.Value() + 1 }, named(fmt.Sprintf("+1 [%d,%d]", i, j)))
			if err != nil {
				return err
			}
			last = next
		}
	}
	return nil
}

// layers builds height rows of width nodes, each summing two or three
// randomly picked nodes of the row above.
func layers(s *store.Store, width, height int, random *rand.Rand) error {
	if width == 0 {
		return nil
	}
	row := make([]*store.ReadOnlySignal[int], width)
	for i := range row {
		row[i] = store.NewReadOnlySignal(s, i)
	}

	for l := range height {
		next := make([]*store.ReadOnlySignal[int], width)
		for i := range next {
			n := 2 + random.Intn(2)
			inputs := make([]store.Ref, n)
			for k := range inputs {
				inputs[k] = row[random.Intn(width)]
			}
			sum, err := store.ComputedOf(s, inputs, func() int {
				total := 0
				for _, in := range inputs {
					v, _ := s.Peek(in.ID())
					total += v.(int)
				}
				return total
			}, named(fmt.Sprintf("sum [%d,%d]", l, i)))
			if err != nil {
				return err
			}
			next[i] = sum
		}
		row = next
	}
	return nil
}
