package main

import (
	"math/rand"
	"testing"

	"github.com/delaneyj/neocomp/cmd/graph/templates"
	"github.com/delaneyj/neocomp/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiamondGraph(t *testing.T) {
	s := store.New(nil)
	require.NoError(t, diamond(s, 0, 0, nil))

	g := toGraph("diamond", s)
	assert.Len(t, g.Nodes, 6)
	assert.Equal(t, []int{0}, g.Sources)
	assert.Equal(t, []templates.Edge{
		{From: "p0", To: "u0"}, {From: "u0", To: "p1"},
		{From: "p0", To: "u1"}, {From: "u1", To: "p1"},
		{From: "p1", To: "u2"}, {From: "u2", To: "p2"},
	}, g.Edges)

	dot := templates.DOT(g)
	assert.Contains(t, dot, `digraph "diamond" {`)
	assert.Contains(t, dot, `p0 [label="p = 1", shape=ellipse];`)
	assert.Contains(t, dot, `u2 [label="c", shape=box, style=rounded];`)
	assert.Contains(t, dot, `{ rank=same; p0 }`)
	assert.Contains(t, dot, "p1 -> u2;")
}

func TestChainGraph(t *testing.T) {
	s := store.New(nil)
	require.NoError(t, chain(s, 2, 3, nil))

	g := toGraph("chain", s)
	assert.Len(t, g.Nodes, 1+2*3+2*3)
	assert.Equal(t, []int{0}, g.Sources)
	assert.Len(t, g.Edges, 2*2*3)
}

func TestLayersGraph(t *testing.T) {
	s := store.New(nil)
	require.NoError(t, layers(s, 4, 2, rand.New(rand.NewSource(1))))

	g := toGraph("layers", s)
	assert.Equal(t, 4+4*2, s.Len())
	assert.Len(t, s.Dispatcher().Units(), 4*2)
	for _, id := range g.Sources {
		assert.Less(t, id, 4)
	}
}

func TestSourcesShareRank(t *testing.T) {
	g := &templates.Graph{Name: "g", Sources: []int{1, 4}}
	assert.Contains(t, templates.DOT(g), "{ rank=same; p1 p4 }")
	assert.NotContains(t, templates.DOT(&templates.Graph{Name: "g"}), "rank=same")
}
