//go:build unix

package loader

import "github.com/ebitengine/purego"

// Codec modules resolve their own dependencies through LD_LIBRARY_PATH,
// which the libpath package extends before any module is loaded. RTLD_LOCAL
// keeps codec symbols from leaking into each other.
func dlopen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
}

func dlsym(handle uintptr, symbol string) (uintptr, error) {
	return purego.Dlsym(handle, symbol)
}

func dlclose(handle uintptr) error {
	return purego.Dlclose(handle)
}
