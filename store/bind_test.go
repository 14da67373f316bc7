package store_test

import (
	"testing"

	"github.com/delaneyj/neocomp/link"
	"github.com/delaneyj/neocomp/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInAcrossContexts(t *testing.T) {
	src, dst := store.NewContext(), store.NewContext()
	from := store.NewSignal(src.Store(), "a")
	to := store.NewSignal(dst.Store(), "")

	require.NoError(t, store.In(from, to))
	assert.True(t, src.HasLink(dst))
	assert.Equal(t, "a", to.Value())

	require.NoError(t, from.Set("b"))
	assert.Equal(t, "b", to.Value())

	require.NoError(t, to.Set("c"))
	assert.Equal(t, "b", from.Value())

	require.NoError(t, link.Unlink(src, dst))
	require.NoError(t, from.Set("d"))
	assert.Equal(t, "c", to.Value())
	assert.Empty(t, src.Store().Dispatcher().Units())
}

func TestInSameStore(t *testing.T) {
	s := store.New(nil)
	from := store.NewSignal(s, 1)
	to := store.NewSignal(s, 0)

	require.NoError(t, store.In(from, to))
	require.NoError(t, from.Set(2))
	assert.Equal(t, 2, to.Value())
}

func TestInOut(t *testing.T) {
	left, right := store.NewContext(), store.NewContext()
	a := store.NewSignal(left.Store(), 1)
	b := store.NewSignal(right.Store(), 0)

	require.NoError(t, store.InOut(a, b, nil))
	assert.Equal(t, 1, b.Value())

	require.NoError(t, a.Set(2))
	assert.Equal(t, 2, b.Value())
	require.NoError(t, b.Set(3))
	assert.Equal(t, 3, a.Value())

	require.NoError(t, right.UnlinkAll())
	require.NoError(t, a.Set(4))
	assert.Equal(t, 3, b.Value())
	require.NoError(t, b.Set(5))
	assert.Equal(t, 4, a.Value())
}

func TestInOutCustomEquality(t *testing.T) {
	s := store.New(nil)
	a := store.NewSignal(s, "Go")
	b := store.NewSignal(s, "go")

	sameLength := func(x, y string) bool { return len(x) == len(y) }
	require.NoError(t, store.InOut(a, b, sameLength))
	assert.Equal(t, "go", b.Value())

	require.NoError(t, a.Set("Gopher"))
	assert.Equal(t, "Gopher", b.Value())
}
