// Package codecinfo defines the codec descriptor model and parses the
// sidecar ".codec.info" files that describe a codec without loading its
// dynamic module.
//
// A descriptor file contains exactly one 'codec' block:
//
//	codec {
//	  name        = "jpeg"
//	  description = "Joint Photographic Experts Group"
//	  version     = "1.4.2"
//
//	  extensions = ["jpg", "jpeg"]
//	  mime_types = ["image/jpeg"]
//	  magic      = ["FF D8 FF"]
//
//	  properties {
//	    compression = "lossy"
//	  }
//	}
//
// The optional 'properties' block is free-form; its attributes become
// string properties on the parsed descriptor.
package codecinfo

import "errors"

// ErrMalformed marks a descriptor file that could not be parsed or that
// violates the descriptor contract. Scanning treats it as a per-entry
// failure: the entry is skipped, discovery continues.
var ErrMalformed = errors.New("malformed codec descriptor")

// Info is the parsed description of a single codec.
type Info struct {
	Name        string
	Description string
	Version     string

	Extensions []string
	MimeTypes  []string
	Magic      []string

	Properties map[string]string

	// Path is the descriptor file this Info was parsed from.
	Path string

	// ModulePath is the derived path of the codec's dynamic module, always
	// a sibling of Path: the descriptor suffix replaced with the platform
	// module suffix. It is computed by the scanner, not read from the file.
	ModulePath string
}
