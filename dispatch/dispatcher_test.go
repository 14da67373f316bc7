package dispatch_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/delaneyj/neocomp/dispatch"
	"github.com/delaneyj/neocomp/link"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	p dispatch.PropID = iota
	q
	r
	s
)

func ids(v ...dispatch.PropID) []dispatch.PropID { return v }

func record(log *[]string, name string) dispatch.Handler {
	return func(*dispatch.Unit) error {
		*log = append(*log, name)
		return nil
	}
}

func TestDiamondRunsEachUnitOnce(t *testing.T) {
	//     P
	//   /   \
	//  A     B
	//   \   /
	//     Q
	//     |
	//     C
	d := dispatch.New()
	log := []string{}
	d.Add(ids(p), ids(q), record(&log, "a"), nil, nil)
	d.Add(ids(p), ids(q), record(&log, "b"), nil, nil)
	d.Add(ids(q), nil, record(&log, "c"), nil, nil)

	require.NoError(t, d.Update(ids(p)))
	require.Len(t, log, 3)
	assert.ElementsMatch(t, []string{"a", "b"}, log[:2])
	assert.Equal(t, "c", log[2])
	assert.False(t, d.IsUpdating())
}

func TestProducersRunBeforeConsumers(t *testing.T) {
	// P -> A -> Q -> B -> R, and C reads P and R
	d := dispatch.New()
	log := []string{}
	d.Add(ids(p, r), nil, record(&log, "c"), nil, nil)
	d.Add(ids(q), ids(r), record(&log, "b"), nil, nil)
	d.Add(ids(p), ids(q), record(&log, "a"), nil, nil)

	require.NoError(t, d.Update(ids(p)))
	assert.Equal(t, []string{"a", "b", "c"}, log)
}

func TestMultipleChangedInputsRunOnce(t *testing.T) {
	d := dispatch.New()
	runs := 0
	d.Add(ids(p, q), nil, func(*dispatch.Unit) error {
		runs++
		return nil
	}, nil, nil)

	require.NoError(t, d.Update(ids(p, q)))
	assert.Equal(t, 1, runs)
}

func TestCircularDependency(t *testing.T) {
	d := dispatch.New()
	log := []string{}
	d.Add(ids(p), ids(q), record(&log, "u1"), nil, nil)
	d.Add(ids(q), ids(p), record(&log, "u2"), nil, nil)

	err := d.Update(ids(p))
	assert.ErrorIs(t, err, dispatch.ErrCircularDependency)
	assert.Empty(t, log)
	assert.False(t, d.IsUpdating())

	// the failed expansion leaves no trace
	d.Remove(func(u *dispatch.Unit) bool { return true }, q)
	require.NoError(t, d.Update(ids(p)))
	assert.Equal(t, []string{"u1"}, log)
}

func TestReentrantUpdateSplicesIntoPass(t *testing.T) {
	// A reads P and writes R without declaring it; B reads R; C reads P.
	// C is registered first so the pass runs A, C. B lands ahead of C.
	d := dispatch.New()
	log := []string{}
	d.Add(ids(p), nil, record(&log, "c"), nil, nil)
	d.Add(ids(p), nil, func(*dispatch.Unit) error {
		log = append(log, "a")
		require.True(t, d.IsUpdating())
		return d.Update(ids(r))
	}, nil, nil)
	d.Add(ids(r), nil, record(&log, "b"), nil, nil)

	require.NoError(t, d.Update(ids(p)))
	assert.Equal(t, []string{"a", "b", "c"}, log)
	assert.Equal(t, int64(1), d.Stats().Passes)
	assert.Equal(t, int64(1), d.Stats().Splices)
}

func TestCycleReachedInsidePass(t *testing.T) {
	//  P -> A ~~> Q -> U1 -> R -> U2 -> Q
	//  P -> C
	d := dispatch.New()
	log := []string{}
	var inner error
	d.Add(ids(p), nil, record(&log, "c"), nil, nil)
	d.Add(ids(p), nil, func(*dispatch.Unit) error {
		log = append(log, "a")
		inner = d.Update(ids(q))
		return nil
	}, nil, nil)
	d.Add(ids(q), ids(r), record(&log, "u1"), nil, nil)
	d.Add(ids(r), ids(q), record(&log, "u2"), nil, nil)

	require.NoError(t, d.Update(ids(p)))
	assert.ErrorIs(t, inner, dispatch.ErrCircularDependency)
	assert.Equal(t, []string{"a", "c"}, log)
	assert.False(t, d.IsUpdating())
	assert.Equal(t, int64(0), d.Stats().Splices)
}

func TestReentrantUpdateOfExpandedPropIsIgnored(t *testing.T) {
	d := dispatch.New()
	runs := map[string]int{}
	d.Add(ids(p), ids(q), func(*dispatch.Unit) error {
		runs["a"]++
		return d.Update(ids(q))
	}, nil, nil)
	d.Add(ids(q), nil, func(*dispatch.Unit) error {
		runs["b"]++
		return nil
	}, nil, nil)

	require.NoError(t, d.Update(ids(p)))
	assert.Equal(t, map[string]int{"a": 1, "b": 1}, runs)
	assert.Equal(t, int64(0), d.Stats().Splices)
}

func TestRemovedPendingUnitNeverRuns(t *testing.T) {
	d := dispatch.New()
	log := []string{}
	var victim *dispatch.Unit
	d.Add(ids(p), ids(q), func(*dispatch.Unit) error {
		log = append(log, "a")
		d.Remove(func(u *dispatch.Unit) bool { return u == victim })
		return nil
	}, nil, nil)
	victim = d.Add(ids(q), nil, record(&log, "victim"), nil, nil)

	require.NoError(t, d.Update(ids(p)))
	assert.Equal(t, []string{"a"}, log)
	assert.True(t, victim.Removed())
}

func TestHandlerErrorAbortsPass(t *testing.T) {
	d := dispatch.New()
	boom := errors.New("boom")
	log := []string{}
	d.Add(ids(p), ids(q), func(*dispatch.Unit) error { return boom }, nil, nil)
	d.Add(ids(q), nil, record(&log, "b"), nil, nil)

	assert.ErrorIs(t, d.Update(ids(p)), boom)
	assert.Empty(t, log)
	assert.False(t, d.IsUpdating())
}

func TestPanickingHandlerResetsPass(t *testing.T) {
	d := dispatch.New()
	d.Add(ids(p), nil, func(*dispatch.Unit) error { panic("boom") }, nil, nil)

	assert.Panics(t, func() { _ = d.Update(ids(p)) })
	assert.False(t, d.IsUpdating())
}

type owner struct{ link.Base }

func TestRemoveOwners(t *testing.T) {
	base, o := &owner{}, &owner{}
	d := dispatch.New()
	d.Watch(base)

	log := []string{}
	owned := d.Add(ids(p), nil, record(&log, "owned"), o, nil)
	d.Add(ids(p), nil, record(&log, "free"), nil, nil)

	require.NoError(t, link.Link(base, o))
	require.NoError(t, d.Update(ids(p)))
	assert.ElementsMatch(t, []string{"owned", "free"}, log)

	require.NoError(t, link.Unlink(base, o))
	assert.True(t, owned.Removed())

	log = log[:0]
	require.NoError(t, d.Update(ids(p)))
	assert.Equal(t, []string{"free"}, log)
	for _, units := range d.Records() {
		assert.NotContains(t, units, owned)
	}
}

func TestRemoveProps(t *testing.T) {
	d := dispatch.New()
	u := d.Add(ids(p, q), nil, func(*dispatch.Unit) error { return nil }, nil, nil)
	other := d.Add(ids(r), nil, func(*dispatch.Unit) error { return nil }, nil, nil)

	assert.Equal(t, 1, d.RemoveProps(p))
	assert.True(t, u.Removed())
	assert.False(t, other.Removed())

	records := d.Records()
	assert.NotContains(t, records, p)
	assert.NotContains(t, records, q)
	assert.Equal(t, []*dispatch.Unit{other}, records[r])
}

func TestRemoveByPredicateOnSubset(t *testing.T) {
	d := dispatch.New()
	u := d.Add(ids(p, q), nil, func(*dispatch.Unit) error { return nil }, nil, map[string]any{"tag": "x"})
	tagged := func(u *dispatch.Unit) bool { return u.Meta["tag"] == "x" }

	assert.Equal(t, 0, d.Remove(tagged, p))
	assert.False(t, u.Removed())
	assert.Equal(t, []*dispatch.Unit{u}, d.Records()[q])

	assert.Equal(t, 1, d.Remove(tagged, q))
	assert.True(t, u.Removed())
	assert.Empty(t, d.Units())
}

func TestDump(t *testing.T) {
	d := dispatch.New()
	d.Add(ids(p), ids(q), func(*dispatch.Unit) error { return nil }, nil, map[string]any{"name": "double"})

	var buf bytes.Buffer
	d.Dump(&buf)
	out := strings.ToLower(buf.String())
	assert.Contains(t, out, "double")
	assert.Contains(t, out, "1 units")
}

func BenchmarkDiamond(b *testing.B) {
	d := dispatch.New()
	noop := func(*dispatch.Unit) error { return nil }
	d.Add(ids(p), ids(q), noop, nil, nil)
	d.Add(ids(p), ids(q), noop, nil, nil)
	d.Add(ids(q), ids(r), noop, nil, nil)
	d.Add(ids(r, s), nil, noop, nil, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := d.Update(ids(p)); err != nil {
			b.Fatal(err)
		}
	}
}
