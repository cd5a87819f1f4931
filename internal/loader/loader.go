// Package loader binds codec dynamic modules into the process.
//
// Loading is opportunistic: the registry keeps descriptors whether or not
// their module loads, and preload failures are reported, logged, and
// otherwise ignored.
package loader

import (
	"context"
	"fmt"

	"github.com/vk/codecreg/internal/ctxlog"
)

// Module is a codec dynamic module bound into the process.
type Module struct {
	Path   string
	handle uintptr
}

// Lookup resolves an exported symbol in the module.
func (m *Module) Lookup(symbol string) (uintptr, error) {
	addr, err := dlsym(m.handle, symbol)
	if err != nil {
		return 0, fmt.Errorf("lookup %q in %s: %w", symbol, m.Path, err)
	}
	return addr, nil
}

// Close unbinds the module. The Module must not be used afterwards.
func (m *Module) Close() error {
	if m.handle == 0 {
		return nil
	}
	err := dlclose(m.handle)
	m.handle = 0
	if err != nil {
		return fmt.Errorf("close %s: %w", m.Path, err)
	}
	return nil
}

// Loader loads codec dynamic modules by path.
type Loader interface {
	Load(ctx context.Context, path string) (*Module, error)
}

// Dynamic is the real dynamic loader backed by the OS facilities.
type Dynamic struct{}

// NewDynamic returns the OS-backed loader.
func NewDynamic() *Dynamic { return &Dynamic{} }

// Load binds the dynamic module at path.
func (*Dynamic) Load(ctx context.Context, path string) (*Module, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading codec module.", "path", path)

	handle, err := dlopen(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &Module{Path: path, handle: handle}, nil
}
