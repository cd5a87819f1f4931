// Package scanner discovers codec descriptors in a search directory.
//
// Discovery is best effort: a single unreadable or malformed descriptor
// must not prevent discovery of the others. ScanDir therefore folds a
// directory into two explicit lists, the successfully parsed descriptors
// and the skipped entries with their reasons, and leaves the
// swallow-and-log policy to the caller.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/codecreg/internal/codecinfo"
	"github.com/vk/codecreg/internal/ctxlog"
	"github.com/vk/codecreg/internal/fsutil"
	"github.com/vk/codecreg/internal/platform"
)

// SkipError records one directory entry that was skipped during a scan.
type SkipError struct {
	Path string
	Err  error
}

func (e SkipError) Error() string {
	return fmt.Sprintf("skipped %s: %v", e.Path, e.Err)
}

func (e SkipError) Unwrap() error { return e.Err }

// Result is the outcome of scanning one search directory.
type Result struct {
	// Infos holds the parsed descriptors in directory-listing order.
	// Callers must not assume any particular listing order.
	Infos []*codecinfo.Info

	// Skipped holds the entries that looked like descriptors but could
	// not be parsed.
	Skipped []SkipError
}

// Scanner finds and parses codec descriptor files.
type Scanner struct {
	listDir func(string) ([]os.DirEntry, error)
	parse   func(context.Context, string) (*codecinfo.Info, error)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithListDir replaces the directory listing function. Used by tests to
// count scans and to fake listing failures.
func WithListDir(fn func(string) ([]os.DirEntry, error)) Option {
	return func(s *Scanner) { s.listDir = fn }
}

// WithParse replaces the descriptor parser.
func WithParse(fn func(context.Context, string) (*codecinfo.Info, error)) Option {
	return func(s *Scanner) { s.parse = fn }
}

// New returns a Scanner reading the real filesystem.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		listDir: os.ReadDir,
		parse:   codecinfo.Parse,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanDir scans one search directory for codec descriptors.
//
// The returned error is non-nil only when the directory itself cannot be
// listed; per-entry failures land in Result.Skipped instead. Each parsed
// descriptor gets its ModulePath derived from the descriptor path: the
// descriptor suffix replaced with the platform module suffix, always a
// sibling file.
func (s *Scanner) ScanDir(ctx context.Context, dir string) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scanning directory for codec descriptors.", "path", dir)

	entries, err := s.listDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("list %s: %w", dir, err)
	}

	var res Result
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, platform.DescriptorSuffix) {
			continue
		}

		fullPath := filepath.Join(dir, name)
		if entry.IsDir() || !fsutil.IsFile(fullPath) {
			continue
		}

		logger.Debug("Found codec descriptor.", "name", name)

		info, err := s.parse(ctx, fullPath)
		if err != nil {
			res.Skipped = append(res.Skipped, SkipError{Path: fullPath, Err: err})
			continue
		}

		info.ModulePath = strings.TrimSuffix(fullPath, platform.DescriptorSuffix) + platform.ModuleSuffix
		res.Infos = append(res.Infos, info)
	}

	return res, nil
}
