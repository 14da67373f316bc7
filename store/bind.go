package store

import "github.com/delaneyj/neocomp/link"

// bindOwner links the bases of two stores, if distinct, and returns the owner
// to scope a binding effect running in from's store.
func bindOwner(from, to *Store) (link.Linkable, error) {
	if from.base == to.base {
		return nil, nil
	}
	if err := link.TryLink(from.base, to.base); err != nil {
		return nil, err
	}
	return to.base, nil
}

// In makes to follow from. The binding lives until the two stores' bases are
// unlinked.
func In[T any](from, to *Signal[T]) error {
	owner, err := bindOwner(from.store, to.store)
	if err != nil {
		return err
	}
	_, err = from.store.Effect([]Ref{from}, nil, func() error {
		v, err := from.Get()
		if err != nil {
			return err
		}
		return to.Set(v)
	}, OwnedBy(owner))
	return err
}

// InOut keeps a and b equal in both directions, starting from a's value.
// equal defaults to DefaultCompare.
func InOut[T any](a, b *Signal[T], equal func(x, y T) bool) error {
	if equal == nil {
		equal = func(x, y T) bool { return DefaultCompare(x, y) }
	}

	sync := func(src, dst *Signal[T]) EffectFunc {
		return func() error {
			v, err := src.Get()
			if err != nil {
				return err
			}
			cur, err := peek[T](dst.store, dst.id)
			if err != nil {
				return err
			}
			if equal(v, cur) {
				return nil
			}
			return dst.Set(v)
		}
	}

	ownerB, err := bindOwner(a.store, b.store)
	if err != nil {
		return err
	}
	if _, err := a.store.Effect([]Ref{a}, nil, sync(a, b), OwnedBy(ownerB)); err != nil {
		return err
	}
	ownerA, err := bindOwner(b.store, a.store)
	if err != nil {
		return err
	}
	_, err = b.store.Effect([]Ref{b}, nil, sync(b, a), OwnedBy(ownerA))
	return err
}
