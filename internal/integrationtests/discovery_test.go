// Package integrationtests exercises the whole discovery pipeline through
// the public application surface: configuration in, rendered registry out.
package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/codecreg/internal/app"
	"github.com/vk/codecreg/internal/pathresolver"
	"github.com/vk/codecreg/internal/platform"
)

// writeDescriptor drops a descriptor into dir and returns its path.
func writeDescriptor(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name+platform.DescriptorSuffix)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// minimalDescriptor builds a valid descriptor body for name.
func minimalDescriptor(name string) string {
	return `
codec {
  name    = "` + name + `"
  version = "1.0.0"
}
`
}

// runApp runs the application over the given config and returns stdout.
func runApp(t *testing.T, cfg app.Config) string {
	t.Helper()

	cfg.LogLevel = "error"
	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	logW := &bytes.Buffer{}
	a := app.NewApp(out, logW, validated)
	require.NoError(t, a.Run(context.Background()))
	return out.String()
}

func TestDiscovery_TextOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "jpeg", `
codec {
  name        = "jpeg"
  description = "Joint Photographic Experts Group"
  version     = "1.4.2"

  extensions = ["jpg", "jpeg"]
  mime_types = ["image/jpeg"]
}
`)
	writeDescriptor(t, dir, "png", minimalDescriptor("png"))

	out := runApp(t, app.Config{CodecsPath: dir})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, "header plus one line per codec")
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, out, "jpeg")
	assert.Contains(t, out, "Joint Photographic Experts Group")
	assert.Contains(t, out, "png")
}

func TestDiscovery_JSONOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "webp", `
codec {
  name    = "webp"
  version = "2.0.1"

  extensions = ["webp"]
  mime_types = ["image/webp"]

  properties {
    compression = "both"
  }
}
`)

	out := runApp(t, app.Config{CodecsPath: dir, Output: "json"})

	var codecs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &codecs))
	require.Len(t, codecs, 1)

	codec := codecs[0]
	assert.Equal(t, "webp", codec["name"])
	assert.Equal(t, "2.0.1", codec["version"])
	assert.Equal(t, map[string]any{"compression": "both"}, codec["properties"])
	assert.Equal(t, false, codec["loaded"])

	modulePath, ok := codec["module_path"].(string)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "webp"+platform.ModuleSuffix), modulePath)
}

func TestDiscovery_BuiltinAndClientUnion(t *testing.T) {
	t.Parallel()

	builtinDir := t.TempDir()
	writeDescriptor(t, builtinDir, "jpeg", minimalDescriptor("jpeg"))

	clientDir := t.TempDir()
	writeDescriptor(t, clientDir, "avif", minimalDescriptor("avif"))

	out := runApp(t, app.Config{CodecsPath: builtinDir, ClientCodecsPath: clientDir})

	jpegIdx := strings.Index(out, "jpeg")
	avifIdx := strings.Index(out, "avif")
	require.GreaterOrEqual(t, jpegIdx, 0)
	require.GreaterOrEqual(t, avifIdx, 0)
	assert.Less(t, jpegIdx, avifIdx, "built-in codecs precede client codecs")
}

func TestDiscovery_MalformedDescriptorSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDescriptor(t, dir, "jpeg", minimalDescriptor("jpeg"))
	writeDescriptor(t, dir, "broken", "codec {")

	out := runApp(t, app.Config{CodecsPath: dir})

	assert.Contains(t, out, "jpeg")
	assert.NotContains(t, out, "broken")
}

func TestDiscovery_EnvironmentResolution(t *testing.T) {
	builtinDir := t.TempDir()
	writeDescriptor(t, builtinDir, "jpeg", minimalDescriptor("jpeg"))

	clientDir := t.TempDir()
	writeDescriptor(t, clientDir, "heif", minimalDescriptor("heif"))

	t.Setenv(pathresolver.BuiltinPathEnvVar, builtinDir)
	t.Setenv(pathresolver.ClientPathEnvVar, clientDir)

	out := runApp(t, app.Config{})

	assert.Contains(t, out, "jpeg")
	assert.Contains(t, out, "heif")
}

func TestDiscovery_EmptySearchPath(t *testing.T) {
	t.Parallel()

	out := runApp(t, app.Config{CodecsPath: t.TempDir()})

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1, "only the header is printed for an empty registry")
}
