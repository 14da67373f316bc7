package link_test

import (
	"testing"

	"github.com/delaneyj/neocomp/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	link.Base
	name string
}

func newNode(name string) *node {
	return &node{name: name}
}

func TestLinkSymmetric(t *testing.T) {
	a, b := newNode("a"), newNode("b")

	var linkedA, linkedB link.Linkable
	a.OnLink().Listen(func(other link.Linkable) { linkedA = other })
	b.OnLink().Listen(func(other link.Linkable) { linkedB = other })

	require.NoError(t, link.Link(a, b))
	assert.True(t, a.HasLink(b))
	assert.True(t, b.HasLink(a))
	assert.Same(t, b, linkedA)
	assert.Same(t, a, linkedB)

	unlinked := 0
	a.OnUnlink().Listen(func(link.Linkable) { unlinked++ })
	b.OnUnlink().Listen(func(link.Linkable) { unlinked++ })
	require.NoError(t, link.Unlink(a, b))
	assert.False(t, a.HasLink(b))
	assert.False(t, b.HasLink(a))
	assert.Equal(t, 2, unlinked)
}

func TestLinkMisuse(t *testing.T) {
	a, b := newNode("a"), newNode("b")

	require.NoError(t, link.Link(a, b))
	assert.ErrorIs(t, link.Link(a, b), link.ErrAlreadyLinked)
	assert.ErrorIs(t, link.Unlink(a, newNode("c")), link.ErrNotLinked)

	require.NoError(t, link.Unlink(a, b))
	assert.ErrorIs(t, link.Unlink(a, b), link.ErrNotLinked)
}

func TestFailedLinkFiresNoEvents(t *testing.T) {
	a, b := newNode("a"), newNode("b")
	require.NoError(t, b.Link(a))

	events := 0
	a.OnLink().Listen(func(link.Linkable) { events++ })
	a.OnUnlink().Listen(func(link.Linkable) { events++ })

	assert.ErrorIs(t, link.Link(a, b), link.ErrAlreadyLinked)
	assert.Equal(t, 0, events)
	assert.False(t, a.HasLink(b))
	assert.True(t, b.HasLink(a))
}

func TestTryLink(t *testing.T) {
	a, b := newNode("a"), newNode("b")

	require.NoError(t, link.TryLink(a, b))
	require.NoError(t, link.TryLink(a, b))
	assert.True(t, b.HasLink(a))

	require.NoError(t, link.TryUnlink(a, b))
	require.NoError(t, link.TryUnlink(a, b))
	assert.False(t, a.HasLink(b))
}

func TestUnlinkAll(t *testing.T) {
	root := newNode("root")
	children := []*node{newNode("x"), newNode("y"), newNode("z")}
	for _, c := range children {
		require.NoError(t, link.Link(root, c))
	}

	links := root.Links()
	require.Len(t, links, 3)
	for i, c := range children {
		assert.Same(t, c, links[i])
	}

	require.NoError(t, root.UnlinkAll(root))
	assert.Empty(t, root.Links())
	for _, c := range children {
		assert.False(t, c.HasLink(root))
	}
}
