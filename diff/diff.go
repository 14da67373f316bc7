// Package diff compares two versions of a list so bound views can patch the
// changed positions instead of rebuilding everything.
package diff

// Op is the kind of edit reported for one position.
type Op int

const (
	None Op = iota
	Add
	Remove
	Change
)

func (o Op) String() string {
	switch o {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Change:
		return "change"
	default:
		return "none"
	}
}

// lookAhead bounds how far a mismatch is searched for a resync point.
const lookAhead = 5

// Func receives one edit. ind is the position in the list being rebuilt,
// oldInd the matching position in the old list.
type Func[T any] func(op Op, ind int, value T, oldInd int)

// Slices walks old and next and reports edits turning old into next, in order.
// Mismatches are resolved by looking a few elements ahead for a change run,
// then an insertion, then a deletion, falling back to a single change.
func Slices[T comparable](old, next []T, fn Func[T]) {
	switch {
	case len(next) == 0:
		for i, v := range old {
			fn(Remove, 0, v, i)
		}
		return
	case len(old) == 0:
		for i, v := range next {
			fn(Add, i, v, 0)
		}
		return
	}

	oldInd, newInd, relInd := 0, 0, 0
outer:
	for oldInd < len(old) && newInd < len(next) {
		oldVal, newVal := old[oldInd], next[newInd]
		if oldVal == newVal {
			fn(None, relInd, newVal, oldInd)
			oldInd, newInd, relInd = oldInd+1, newInd+1, relInd+1
			continue
		}

		// a run of changed elements
		for k := 0; k < lookAhead; k++ {
			if oldInd+k >= len(old) || newInd+k >= len(next) {
				break
			}
			if old[oldInd+k] == next[newInd+k] {
				for i := 0; i < k; i++ {
					fn(Change, relInd+i, next[newInd+i], oldInd+i)
				}
				oldInd, newInd, relInd = oldInd+k, newInd+k, relInd+k
				continue outer
			}
		}

		// inserted elements
		for k := 0; k < lookAhead; k++ {
			if newInd+k >= len(next) {
				break
			}
			if oldVal == next[newInd+k] {
				for i := 0; i < k; i++ {
					fn(Add, relInd+i, next[newInd+i], oldInd)
				}
				newInd, relInd = newInd+k, relInd+k
				continue outer
			}
		}

		// removed elements
		for k := 0; k < lookAhead; k++ {
			if oldInd+k >= len(old) {
				break
			}
			if newVal == old[oldInd+k] {
				for i := 0; i < k; i++ {
					fn(Remove, relInd, old[oldInd+i], oldInd+i)
				}
				oldInd += k
				continue outer
			}
		}

		fn(Change, relInd, newVal, oldInd)
		oldInd, newInd, relInd = oldInd+1, newInd+1, relInd+1
	}

	for i := 0; oldInd+i < len(old); i++ {
		fn(Remove, relInd, old[oldInd+i], oldInd+i)
	}
	for i := 0; newInd+i < len(next); i++ {
		fn(Add, relInd+i, next[newInd+i], oldInd)
	}
}

// Edit is one reported edit, as collected by Collect.
type Edit[T any] struct {
	Op     Op
	Ind    int
	Value  T
	OldInd int
}

// Collect returns the edits of Slices as a list, skipping None.
func Collect[T comparable](old, next []T) []Edit[T] {
	var edits []Edit[T]
	Slices(old, next, func(op Op, ind int, value T, oldInd int) {
		if op != None {
			edits = append(edits, Edit[T]{Op: op, Ind: ind, Value: value, OldInd: oldInd})
		}
	})
	return edits
}

// Apply replays edits produced for old onto a copy of old.
func Apply[T comparable](old []T, edits []Edit[T]) []T {
	out := append([]T(nil), old...)
	for _, e := range edits {
		switch e.Op {
		case Add:
			out = append(out[:e.Ind], append([]T{e.Value}, out[e.Ind:]...)...)
		case Remove:
			out = append(out[:e.Ind], out[e.Ind+1:]...)
		case Change:
			out[e.Ind] = e.Value
		}
	}
	return out
}
