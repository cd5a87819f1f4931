// Package registry holds the codec descriptors one context discovered.
//
// The registry is an insertion-ordered sequence: entries appear in the
// order they were discovered (built-in search path first, then the client
// path, each in listing order), and lookups resolve ties in that same
// order. A registry instance belongs to exactly one context and is not
// safe for concurrent use.
package registry

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/vk/codecreg/internal/codecinfo"
	"github.com/vk/codecreg/internal/loader"
)

// Registry is the ordered collection of discovered codecs.
type Registry struct {
	entries []*Entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Append adds a discovered descriptor to the end of the registry and
// returns its entry.
func (r *Registry) Append(info *codecinfo.Info) *Entry {
	entry := &Entry{Info: info}
	r.entries = append(r.entries, entry)
	return entry
}

// Len returns the number of discovered codecs.
func (r *Registry) Len() int {
	return len(r.entries)
}

// At returns the i-th entry in discovery order.
func (r *Registry) At(i int) *Entry {
	return r.entries[i]
}

// Entries returns the entries in discovery order. The returned slice is a
// copy; the entries themselves are shared.
func (r *Registry) Entries() []*Entry {
	return slices.Clone(r.entries)
}

// ByName returns the first codec whose name matches, ignoring case.
func (r *Registry) ByName(name string) (*Entry, bool) {
	for _, entry := range r.entries {
		if strings.EqualFold(entry.Info.Name, name) {
			return entry, true
		}
	}
	return nil, false
}

// ByExtension returns the first codec claiming the file extension,
// ignoring case. The extension is matched without a leading dot.
func (r *Registry) ByExtension(ext string) (*Entry, bool) {
	ext = strings.TrimPrefix(ext, ".")
	for _, entry := range r.entries {
		for _, candidate := range entry.Info.Extensions {
			if strings.EqualFold(candidate, ext) {
				return entry, true
			}
		}
	}
	return nil, false
}

// ByMimeType returns the first codec claiming the MIME type, ignoring case.
func (r *Registry) ByMimeType(mimeType string) (*Entry, bool) {
	for _, entry := range r.entries {
		for _, candidate := range entry.Info.MimeTypes {
			if strings.EqualFold(candidate, mimeType) {
				return entry, true
			}
		}
	}
	return nil, false
}

// Preload attempts to load every codec's dynamic module. Per-codec load
// failures are collected and returned joined; entries stay listed whether
// or not their module loaded.
func (r *Registry) Preload(ctx context.Context, ld loader.Loader) error {
	var errs []error
	for _, entry := range r.entries {
		if _, err := entry.Module(ctx, ld); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close unbinds every loaded module. The registry must not be used
// afterwards.
func (r *Registry) Close() error {
	var errs []error
	for _, entry := range r.entries {
		if err := entry.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.entries = nil
	return errors.Join(errs...)
}
