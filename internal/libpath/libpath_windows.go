//go:build windows

package libpath

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/vk/codecreg/internal/ctxlog"
	"golang.org/x/sys/windows"
)

var (
	kernel32            = windows.NewLazySystemDLL("kernel32.dll")
	procAddDllDirectory = kernel32.NewProc("AddDllDirectory")
)

// appendSearchPath registers libDir as an additional DLL search directory.
// Modules are loaded with LOAD_LIBRARY_SEARCH_USER_DIRS, which consults
// directories registered here.
func appendSearchPath(ctx context.Context, libDir string) error {
	logger := ctxlog.FromContext(ctx)

	libDirW, err := windows.UTF16PtrFromString(libDir)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %v", ErrEnvUpdate, libDir, err)
	}

	cookie, _, callErr := procAddDllDirectory.Call(uintptr(unsafe.Pointer(libDirW)))
	if cookie == 0 {
		return fmt.Errorf("%w: AddDllDirectory(%q): %v", ErrEnvUpdate, libDir, callErr)
	}

	logger.Debug("DLL search path updated.", "path", libDir)
	return nil
}
