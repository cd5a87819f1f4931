package codecctx

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/codecreg/internal/ctxlog"
	"github.com/vk/codecreg/internal/libpath"
	"github.com/vk/codecreg/internal/loader"
	"github.com/vk/codecreg/internal/pathresolver"
	"github.com/vk/codecreg/internal/registry"
	"github.com/vk/codecreg/internal/scanner"
)

// Action selects a Controller lifecycle operation.
type Action int

const (
	// ActionAllocate constructs an uninitialized Context into an empty
	// slot and returns the slot's Context. An occupied slot is returned
	// as-is, never reallocated.
	ActionAllocate Action = iota

	// ActionFetch returns the slot's Context without allocating, nil if
	// no allocation has happened yet.
	ActionFetch

	// ActionDestroy closes the Context's loaded modules, drops the
	// Context, and clears the slot. A no-op on an empty slot.
	ActionDestroy
)

// Controller owns one Context slot and the collaborators that survive
// Context destroy/recreate cycles. One Controller per logical worker; not
// safe for concurrent use.
type Controller struct {
	resolver *pathresolver.Resolver
	scanner  *scanner.Scanner
	loader   loader.Loader

	slot *Context
}

// Option configures a Controller.
type Option func(*Controller)

// WithResolver replaces the search path resolver.
func WithResolver(r *pathresolver.Resolver) Option {
	return func(c *Controller) { c.resolver = r }
}

// WithScanner replaces the descriptor scanner.
func WithScanner(s *scanner.Scanner) Option {
	return func(c *Controller) { c.scanner = s }
}

// WithLoader replaces the dynamic-module loader.
func WithLoader(ld loader.Loader) Option {
	return func(c *Controller) { c.loader = ld }
}

// NewController returns a Controller with an empty slot and real
// filesystem/loader collaborators.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		resolver: pathresolver.New(),
		scanner:  scanner.New(),
		loader:   loader.NewDynamic(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Control performs one lifecycle action on the Context slot and returns
// the slot's Context (nil after Destroy, or after Fetch on an empty slot).
func (cc *Controller) Control(ctx context.Context, action Action) *Context {
	logger := ctxlog.FromContext(ctx)

	switch action {
	case ActionAllocate:
		if cc.slot == nil {
			cc.slot = &Context{registry: registry.New()}
			logger.Debug("Allocated a new codec context.")
		}
		return cc.slot

	case ActionFetch:
		return cc.slot

	case ActionDestroy:
		if cc.slot == nil {
			return nil
		}
		if err := cc.slot.registry.Close(); err != nil {
			logger.Warn("Failed to close codec modules on context destroy.", "error", err)
		}
		cc.slot = nil
		logger.Debug("Destroyed the codec context.")
		return nil
	}

	return cc.slot
}

// Current returns the ready-to-query Context, allocating and initializing
// it on first use. This is the only acquisition path for callers.
//
// Initialization runs at most once per Context: the initialized flag is
// set before any fallible work, so a Context whose first acquisition
// failed stays marked initialized and later calls return it as-is with
// whatever the registry holds. Recovery is explicit: Destroy, then
// acquire again.
func (cc *Controller) Current(ctx context.Context, flags Flags) (*Context, error) {
	c := cc.Control(ctx, ActionAllocate)
	if err := cc.initContext(ctx, c, flags); err != nil {
		return nil, err
	}
	return c, nil
}

// Destroy clears the Context slot, closing any loaded modules. Safe to
// call repeatedly. The Controller's memoized search paths survive, so a
// recreated Context rescans the filesystem without re-reading the
// environment.
func (cc *Controller) Destroy(ctx context.Context) {
	cc.Control(ctx, ActionDestroy)
}

// initContext runs the initialization state machine: resolve search paths,
// extend the library search path, scan for descriptors, optionally preload
// modules, and log the enumeration.
func (cc *Controller) initContext(ctx context.Context, c *Context, flags Flags) error {
	if c.initialized {
		return nil
	}
	c.initialized = true

	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	builtinPath := cc.resolver.BuiltinPath(ctx)
	if err := libpath.Update(ctx, builtinPath); err != nil {
		return fmt.Errorf("initialize codec context: %w", err)
	}

	clientPath, haveClient := cc.resolver.ClientPath(ctx)
	if haveClient {
		if err := libpath.Update(ctx, clientPath); err != nil {
			return fmt.Errorf("initialize codec context: %w", err)
		}
	}

	searchPaths := []string{builtinPath}
	if haveClient {
		searchPaths = append(searchPaths, clientPath)
	}

	for _, searchPath := range searchPaths {
		result, err := cc.scanner.ScanDir(ctx, searchPath)
		if err != nil {
			// A search path that cannot be listed contributes zero
			// codecs; the other path is still scanned.
			logger.Error("Failed to list a codec search path.", "path", searchPath, "error", err)
			continue
		}
		for _, skip := range result.Skipped {
			logger.Error("Skipped a codec descriptor.", "path", skip.Path, "error", skip.Err)
		}
		for _, info := range result.Infos {
			c.registry.Append(info)
		}
	}

	if flags&FlagPreloadCodecs != 0 {
		logger.Debug("Preloading codec modules.")
		if err := c.registry.Preload(ctx, cc.loader); err != nil {
			// Failed codecs stay listed; they just aren't bound yet.
			logger.Warn("Some codec modules failed to preload.", "error", err)
		}
	}

	logger.Debug("Enumerated codecs.", "count", c.registry.Len())
	for i, entry := range c.registry.Entries() {
		logger.Debug("Discovered codec.",
			"index", i+1,
			"name", entry.Info.Name,
			"description", entry.Info.Description,
			"version", entry.Info.Version,
			"module", entry.Info.ModulePath,
		)
	}

	logger.Debug("Codec context initialized.", "elapsed", time.Since(start))
	return nil
}
