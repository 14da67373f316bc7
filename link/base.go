package link

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/delaneyj/neocomp/observer"
)

// Base is an embeddable Linkable. Embedders get the whole protocol; the zero
// value is ready to use.
type Base struct {
	onLink   observer.Event[Linkable]
	onUnlink observer.Event[Linkable]
	links    mapset.Set[Linkable]
	order    map[Linkable]uint64
	seq      uint64
}

func (b *Base) OnLink() *observer.Event[Linkable]   { return &b.onLink }
func (b *Base) OnUnlink() *observer.Event[Linkable] { return &b.onUnlink }

func (b *Base) init() {
	if b.links == nil {
		b.links = mapset.NewThreadUnsafeSet[Linkable]()
		b.order = map[Linkable]uint64{}
	}
}

func (b *Base) Link(other Linkable) error {
	b.init()
	if b.links.Contains(other) {
		return alreadyLinked(b, other)
	}
	b.links.Add(other)
	b.seq++
	b.order[other] = b.seq
	b.onLink.Trigger(other)
	return nil
}

func (b *Base) Unlink(other Linkable) error {
	b.init()
	if !b.links.Contains(other) {
		return notLinked(b, other)
	}
	b.links.Remove(other)
	delete(b.order, other)
	b.onUnlink.Trigger(other)
	return nil
}

func (b *Base) HasLink(other Linkable) bool {
	return b.links != nil && b.links.Contains(other)
}

// Links returns the linked peers in the order they were linked.
func (b *Base) Links() []Linkable {
	if b.links == nil {
		return nil
	}
	links := b.links.ToSlice()
	sort.Slice(links, func(i, j int) bool {
		return b.order[links[i]] < b.order[links[j]]
	})
	return links
}

// UnlinkAll symmetrically unlinks self from every peer. self must be the
// Linkable embedding b.
func (b *Base) UnlinkAll(self Linkable) error {
	for _, other := range b.Links() {
		if err := Unlink(self, other); err != nil {
			return err
		}
	}
	return nil
}
