//go:build !windows

package libpath

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_NoLibDirIsANoOp(t *testing.T) {
	t.Setenv(searchPathEnvVar, "/existing/entry")

	codecsDir := t.TempDir()
	require.NoError(t, Update(context.Background(), codecsDir))

	assert.Equal(t, "/existing/entry", os.Getenv(searchPathEnvVar),
		"a codecs dir without a lib subdirectory must not touch the search path")
}

func TestUpdate_AppendsPreservingExistingEntries(t *testing.T) {
	t.Setenv(searchPathEnvVar, "/existing/one:/existing/two")

	codecsDir := t.TempDir()
	libDir := filepath.Join(codecsDir, "lib")
	require.NoError(t, os.Mkdir(libDir, 0o755))

	require.NoError(t, Update(context.Background(), codecsDir))

	assert.Equal(t, "/existing/one:/existing/two:"+libDir, os.Getenv(searchPathEnvVar))
}

func TestUpdate_SetsWhenUnset(t *testing.T) {
	t.Setenv(searchPathEnvVar, "")

	codecsDir := t.TempDir()
	libDir := filepath.Join(codecsDir, "lib")
	require.NoError(t, os.Mkdir(libDir, 0o755))

	require.NoError(t, Update(context.Background(), codecsDir))

	assert.Equal(t, libDir, os.Getenv(searchPathEnvVar))
}

func TestUpdate_LibIsAFileNotADir(t *testing.T) {
	t.Setenv(searchPathEnvVar, "/existing/entry")

	codecsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(codecsDir, "lib"), []byte("not a dir"), 0o600))

	require.NoError(t, Update(context.Background(), codecsDir))
	assert.Equal(t, "/existing/entry", os.Getenv(searchPathEnvVar))
}
