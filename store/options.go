package store

import (
	"io"
	"log/slog"
	"maps"

	"github.com/delaneyj/neocomp/link"
)

type options struct {
	static  bool
	compare CompareFunc
	logger  *slog.Logger
}

func defaultOptions() options {
	return options{
		compare: DefaultCompare,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

type Option func(*options)

// WithStatic makes static the default for new properties.
func WithStatic(static bool) Option {
	return func(o *options) { o.static = static }
}

// WithComparator replaces DefaultCompare for new properties.
func WithComparator(fn CompareFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.compare = fn
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

type PropOption func(*Prop)

// Static properties never trigger dispatch on their own; ForceUpdate still does.
func Static(static bool) PropOption {
	return func(p *Prop) { p.Static = static }
}

func Compare(fn CompareFunc) PropOption {
	return func(p *Prop) {
		if fn != nil {
			p.Compare = fn
		}
	}
}

// Meta merges m into the property metadata.
func Meta(m map[string]any) PropOption {
	return func(p *Prop) { maps.Copy(p.Meta, m) }
}

func named(name string) PropOption {
	return func(p *Prop) { p.Name = name }
}

type effectOptions struct {
	owner link.Linkable
	meta  map[string]any
}

type EffectOption func(*effectOptions)

// OwnedBy scopes the effect to owner: once owner is unlinked from the store's
// base, the effect is dropped.
func OwnedBy(owner link.Linkable) EffectOption {
	return func(o *effectOptions) { o.owner = owner }
}

func EffectMeta(m map[string]any) EffectOption {
	return func(o *effectOptions) {
		if o.meta == nil {
			o.meta = map[string]any{}
		}
		maps.Copy(o.meta, m)
	}
}
