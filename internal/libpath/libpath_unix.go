//go:build !windows

package libpath

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/codecreg/internal/ctxlog"
)

// searchPathEnvVar is the colon-delimited dynamic loader search path.
const searchPathEnvVar = "LD_LIBRARY_PATH"

// appendSearchPath appends libDir to LD_LIBRARY_PATH, preserving any
// existing entries.
func appendSearchPath(ctx context.Context, libDir string) error {
	logger := ctxlog.FromContext(ctx)

	combined := libDir
	if existing := os.Getenv(searchPathEnvVar); existing != "" {
		combined = existing + string(os.PathListSeparator) + libDir
	}

	if err := os.Setenv(searchPathEnvVar, combined); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrEnvUpdate, searchPathEnvVar, err)
	}

	logger.Debug("Library search path updated.", "var", searchPathEnvVar, "value", combined)
	return nil
}
