package store

import "reflect"

// CompareFunc reports whether a write of next over old is a no-op.
type CompareFunc func(old, next any) bool

// DefaultCompare uses == for comparable values and reflect.DeepEqual for the
// rest, so slices and maps never panic.
func DefaultCompare(old, next any) (equal bool) {
	if old == nil || next == nil {
		return old == next
	}
	if !reflect.TypeOf(old).Comparable() || !reflect.TypeOf(next).Comparable() {
		return reflect.DeepEqual(old, next)
	}
	// structs holding interfaces can still hold uncomparable values
	defer func() {
		if recover() != nil {
			equal = reflect.DeepEqual(old, next)
		}
	}()
	return old == next
}
