//go:build !windows

package platform

import "errors"

// ModuleSuffix is the filename suffix of codec dynamic modules.
const ModuleSuffix = ".so"

// DefaultCodecsPath is the compiled-in fallback codec search directory.
const DefaultCodecsPath = "/usr/local/lib/codecreg/codecs"

// CanSelfLocate reports whether SelfLocate is usable on this platform.
const CanSelfLocate = false

// SelfLocate is unsupported on this platform family; resolution goes
// straight from the environment variable to DefaultCodecsPath.
func SelfLocate() (string, error) {
	return "", errors.ErrUnsupported
}
