// Package pathresolver resolves the two codec search directories: the
// built-in directory shipped with the installation and the optional
// client-supplied directory.
//
// Both resolutions are memoized: a Resolver reads the environment (and, on
// platforms that support it, locates the running executable) at most once
// for each path, no matter how many contexts are created and destroyed over
// its lifetime. Environment facts do not change with context lifecycles, so
// the Resolver is owned by the lifecycle controller, not by the context.
package pathresolver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vk/codecreg/internal/ctxlog"
	"github.com/vk/codecreg/internal/platform"
)

const (
	// BuiltinPathEnvVar overrides the built-in codec search directory.
	BuiltinPathEnvVar = "CODECREG_CODECS_PATH"

	// ClientPathEnvVar names an additional client codec search directory.
	// Unset means no client directory is scanned.
	ClientPathEnvVar = "CODECREG_CLIENT_CODECS_PATH"
)

// relativeCodecsDir is where relocatable installs keep their codecs,
// relative to the directory containing the running executable.
var relativeCodecsDir = filepath.Join("..", "lib", "codecreg", "codecs")

// Resolver memoizes codec search path resolution. It is owned by a single
// lifecycle controller and is not safe for concurrent use.
type Resolver struct {
	lookupEnv     func(string) (string, bool)
	selfLocate    func() (string, error)
	canSelfLocate bool
	defaultPath   string

	explicitBuiltin string
	explicitClient  string

	builtinDone bool
	builtin     string

	clientDone bool
	client     string
	clientSet  bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookupEnv replaces the environment lookup function. Used by tests to
// probe how often the environment is read.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(r *Resolver) { r.lookupEnv = fn }
}

// WithSelfLocate replaces the executable self-location function and marks
// the capability as available regardless of platform.
func WithSelfLocate(fn func() (string, error)) Option {
	return func(r *Resolver) {
		r.selfLocate = fn
		r.canSelfLocate = true
	}
}

// WithDefaultPath replaces the compiled-in fallback codecs directory.
func WithDefaultPath(path string) Option {
	return func(r *Resolver) { r.defaultPath = path }
}

// WithExplicitBuiltinPath forces the built-in search directory, bypassing
// the environment and self-location entirely.
func WithExplicitBuiltinPath(path string) Option {
	return func(r *Resolver) { r.explicitBuiltin = path }
}

// WithExplicitClientPath forces the client search directory, bypassing the
// environment.
func WithExplicitClientPath(path string) Option {
	return func(r *Resolver) { r.explicitClient = path }
}

// New returns a Resolver with platform defaults applied.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		lookupEnv:     os.LookupEnv,
		selfLocate:    platform.SelfLocate,
		canSelfLocate: platform.CanSelfLocate,
		defaultPath:   platform.DefaultCodecsPath,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BuiltinPath resolves the built-in codec search directory. The first call
// performs the resolution; later calls return the cached value.
func (r *Resolver) BuiltinPath(ctx context.Context) string {
	if r.builtinDone {
		return r.builtin
	}
	r.builtinDone = true
	r.builtin = r.resolveBuiltin(ctx)
	return r.builtin
}

func (r *Resolver) resolveBuiltin(ctx context.Context) string {
	logger := ctxlog.FromContext(ctx)

	if r.explicitBuiltin != "" {
		logger.Debug("Using explicitly configured codecs path.", "path", r.explicitBuiltin)
		return r.explicitBuiltin
	}

	if env, ok := r.lookupEnv(BuiltinPathEnvVar); ok {
		logger.Debug("Codecs path environment variable is set.", "var", BuiltinPathEnvVar, "path", env)
		return env
	}

	if r.canSelfLocate {
		exeDir, err := r.selfLocate()
		if err != nil {
			logger.Error("Failed to locate the running executable, falling back to the default codecs path.",
				"error", err, "path", r.defaultPath)
			return r.defaultPath
		}
		derived := filepath.Join(exeDir, relativeCodecsDir)
		logger.Debug("Codecs path environment variable is not set, derived the path from the executable location.",
			"var", BuiltinPathEnvVar, "path", derived)
		return derived
	}

	logger.Debug("Codecs path environment variable is not set, using the default codecs path.",
		"var", BuiltinPathEnvVar, "path", r.defaultPath)
	return r.defaultPath
}

// ClientPath resolves the optional client codec search directory. The
// second return value reports whether a client directory is configured at
// all; there is no fallback. Memoized like BuiltinPath.
func (r *Resolver) ClientPath(ctx context.Context) (string, bool) {
	if r.clientDone {
		return r.client, r.clientSet
	}
	r.clientDone = true

	logger := ctxlog.FromContext(ctx)

	if r.explicitClient != "" {
		logger.Debug("Using explicitly configured client codecs path.", "path", r.explicitClient)
		r.client, r.clientSet = r.explicitClient, true
		return r.client, r.clientSet
	}

	env, ok := r.lookupEnv(ClientPathEnvVar)
	if !ok {
		logger.Debug("Client codecs path environment variable is not set, not loading codecs from it.",
			"var", ClientPathEnvVar)
		return "", false
	}

	logger.Debug("Client codecs path environment variable is set.", "var", ClientPathEnvVar, "path", env)
	r.client, r.clientSet = env, true
	return r.client, r.clientSet
}
