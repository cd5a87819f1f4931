//go:build windows

package loader

import "golang.org/x/sys/windows"

// LOAD_LIBRARY_SEARCH_USER_DIRS consults the directories registered by
// the libpath package via AddDllDirectory.
func dlopen(path string) (uintptr, error) {
	handle, err := windows.LoadLibraryEx(path, 0,
		windows.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS|windows.LOAD_LIBRARY_SEARCH_USER_DIRS)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

func dlsym(handle uintptr, symbol string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), symbol)
}

func dlclose(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}
