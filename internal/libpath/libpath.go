// Package libpath extends the dynamic loader's search path with a codec
// directory's optional "lib" subdirectory, so codec modules can resolve
// their own native dependencies when they are loaded later.
package libpath

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/vk/codecreg/internal/ctxlog"
	"github.com/vk/codecreg/internal/fsutil"
)

// ErrEnvUpdate reports a failure to extend the dynamic loader's search
// path. It is fatal to context initialization.
var ErrEnvUpdate = errors.New("failed to update the library search path")

// Update appends <codecsPath>/lib to the dynamic loader's search path.
//
// Codecs without extra native dependencies are the common case: a missing
// lib subdirectory is not an error, Update is a no-op then. An existing
// subdirectory that cannot be registered returns an error wrapping
// ErrEnvUpdate.
func Update(ctx context.Context, codecsPath string) error {
	logger := ctxlog.FromContext(ctx)

	libDir := filepath.Join(codecsPath, "lib")
	if !fsutil.IsDir(libDir) {
		logger.Debug("Optional lib directory doesn't exist, not adding it to the library search path.", "path", libDir)
		return nil
	}

	logger.Debug("Appending lib directory to the library search path.", "path", libDir)
	return appendSearchPath(ctx, libDir)
}
