// Package codecctx ties discovery together: a Context owns the registry of
// codecs discovered for one logical worker, and a Controller owns the
// Context slot plus the memoized search path resolution that outlives it.
//
// There is no hidden global state. Each worker that wants its own
// independent registry constructs its own Controller; that isolation is
// what makes the whole pipeline lock-free. A Controller and everything it
// owns must only be used from one goroutine at a time.
package codecctx

import "github.com/vk/codecreg/internal/registry"

// Flags adjusts context initialization.
type Flags uint32

const (
	// FlagPreloadCodecs loads every discovered codec's dynamic module
	// during initialization instead of on first use. Per-codec load
	// failures are logged and ignored.
	FlagPreloadCodecs Flags = 1 << iota
)

// Context is the per-worker discovery state: an initialization flag and
// the registry of discovered codecs.
type Context struct {
	initialized bool
	registry    *registry.Registry
}

// Initialized reports whether initialization ran. It stays true even when
// initialization failed; see Controller.Current.
func (c *Context) Initialized() bool {
	return c.initialized
}

// Registry returns the codecs discovered by this context.
func (c *Context) Registry() *registry.Registry {
	return c.registry
}
