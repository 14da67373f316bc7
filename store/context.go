package store

import "github.com/delaneyj/neocomp/link"

// Context is a Linkable data source hosting its own store. Effects of its
// store owned by a peer are dropped when that peer is unlinked.
type Context struct {
	link.Base
	store *Store
}

func NewContext(opts ...Option) *Context {
	c := &Context{}
	c.store = New(c, opts...)
	return c
}

func (c *Context) Store() *Store {
	return c.store
}

// UnlinkAll symmetrically unlinks every peer.
func (c *Context) UnlinkAll() error {
	return c.Base.UnlinkAll(c)
}

// Source is a Linkable owning a store, such as a Context.
type Source interface {
	link.Linkable
	Store() *Store
}

var _ Source = (*Context)(nil)
