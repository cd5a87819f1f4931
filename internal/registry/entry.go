package registry

import (
	"context"

	"github.com/vk/codecreg/internal/codecinfo"
	"github.com/vk/codecreg/internal/loader"
)

// Entry pairs a parsed descriptor with its lazily bound dynamic module.
type Entry struct {
	Info *codecinfo.Info

	module *loader.Module
}

// Loaded reports whether the entry's module is currently bound.
func (e *Entry) Loaded() bool {
	return e.module != nil
}

// Module returns the entry's dynamic module, loading it on first use.
// The bound module is cached; a load failure leaves the entry unbound so
// a later call may retry.
func (e *Entry) Module(ctx context.Context, ld loader.Loader) (*loader.Module, error) {
	if e.module != nil {
		return e.module, nil
	}

	mod, err := ld.Load(ctx, e.Info.ModulePath)
	if err != nil {
		return nil, err
	}

	e.module = mod
	return e.module, nil
}

// Close unbinds the entry's module if it was loaded.
func (e *Entry) Close() error {
	if e.module == nil {
		return nil
	}
	err := e.module.Close()
	e.module = nil
	return err
}
