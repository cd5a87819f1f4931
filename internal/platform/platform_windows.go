//go:build windows

package platform

import (
	"os"
	"path/filepath"
)

// ModuleSuffix is the filename suffix of codec dynamic modules.
const ModuleSuffix = ".dll"

// DefaultCodecsPath is the compiled-in fallback codec search directory.
const DefaultCodecsPath = `C:\codecreg\codecs`

// CanSelfLocate reports whether SelfLocate is usable on this platform.
const CanSelfLocate = true

// SelfLocate returns the directory containing the running executable.
// Relocatable installs keep their codecs at <exe dir>\..\lib\codecreg\codecs,
// which the path resolver derives from this directory.
func SelfLocate() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
