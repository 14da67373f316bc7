// Package link implements the ownership protocol: two Linkables link and
// unlink symmetrically and each side announces the change on its own events.
package link

import (
	"errors"
	"fmt"

	"github.com/delaneyj/neocomp/comperr"
	"github.com/delaneyj/neocomp/observer"
)

var (
	ErrAlreadyLinked = errors.New("linking linkable that is linked")
	ErrNotLinked     = errors.New("unlinking linkable that is not linked")
)

const scope = "linking"

// Linkable is implemented by any owner that scopes effects to its lifetime.
// Link and Unlink only update the receiver's side; use the package level
// Link and Unlink to keep both sides consistent.
type Linkable interface {
	OnLink() *observer.Event[Linkable]
	OnUnlink() *observer.Event[Linkable]
	Link(other Linkable) error
	Unlink(other Linkable) error
	HasLink(other Linkable) bool
}

// Link links a and b to each other. If either side already has the other,
// nothing changes and no event fires.
func Link(a, b Linkable) error {
	if a.HasLink(b) {
		return alreadyLinked(a, b)
	}
	if b.HasLink(a) {
		return alreadyLinked(b, a)
	}
	if err := a.Link(b); err != nil {
		return err
	}
	return b.Link(a)
}

// Unlink unlinks a and b from each other.
func Unlink(a, b Linkable) error {
	if err := a.Unlink(b); err != nil {
		return err
	}
	return b.Unlink(a)
}

// TryLink links a and b unless a already has b.
func TryLink(a, b Linkable) error {
	if a.HasLink(b) {
		return nil
	}
	return Link(a, b)
}

// TryUnlink unlinks a and b if a has b.
func TryUnlink(a, b Linkable) error {
	if !a.HasLink(b) {
		return nil
	}
	return Unlink(a, b)
}

func describe(self, other Linkable) string {
	return fmt.Sprintf("linking: %T, to: %T", other, self)
}

func alreadyLinked(self, other Linkable) error {
	return comperr.New(scope, ErrAlreadyLinked, describe(self, other))
}

func notLinked(self, other Linkable) error {
	return comperr.New(scope, ErrNotLinked, describe(self, other))
}
