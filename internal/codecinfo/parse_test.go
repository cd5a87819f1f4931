package codecinfo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDescriptor writes a descriptor file into a temp dir and returns its path.
func writeDescriptor(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse_FullDescriptor(t *testing.T) {
	t.Parallel()

	path := writeDescriptor(t, "jpeg.codec.info", `
codec {
  name        = "jpeg"
  description = "Joint Photographic Experts Group"
  version     = "1.4.2"

  extensions = ["jpg", "jpeg"]
  mime_types = ["image/jpeg"]
  magic      = ["FF D8 FF"]

  properties {
    compression = "lossy"
    max_bit_depth = 12
  }
}
`)

	info, err := Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "jpeg", info.Name)
	assert.Equal(t, "Joint Photographic Experts Group", info.Description)
	assert.Equal(t, "1.4.2", info.Version)
	assert.Equal(t, []string{"jpg", "jpeg"}, info.Extensions)
	assert.Equal(t, []string{"image/jpeg"}, info.MimeTypes)
	assert.Equal(t, []string{"FF D8 FF"}, info.Magic)
	assert.Equal(t, path, info.Path)
	assert.Empty(t, info.ModulePath, "ModulePath is derived by the scanner, not the parser")

	// Non-string property values are converted to strings.
	assert.Equal(t, map[string]string{
		"compression":   "lossy",
		"max_bit_depth": "12",
	}, info.Properties)
}

func TestParse_MinimalDescriptor(t *testing.T) {
	t.Parallel()

	path := writeDescriptor(t, "bmp.codec.info", `
codec {
  name    = "bmp"
  version = "0.9.0"
}
`)

	info, err := Parse(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "bmp", info.Name)
	assert.Equal(t, "0.9.0", info.Version)
	assert.Empty(t, info.Description)
	assert.Empty(t, info.Extensions)
	assert.Nil(t, info.Properties)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "syntax error",
			content: `
codec {
  name = "jpeg"
`,
		},
		{
			name:    "no codec block",
			content: `# nothing here`,
		},
		{
			name: "two codec blocks",
			content: `
codec {
  name    = "jpeg"
  version = "1.0.0"
}
codec {
  name    = "png"
  version = "1.0.0"
}
`,
		},
		{
			name: "empty name",
			content: `
codec {
  name    = ""
  version = "1.0.0"
}
`,
		},
		{
			name: "missing version",
			content: `
codec {
  name = "jpeg"
}
`,
		},
		{
			name: "unknown attribute",
			content: `
codec {
  name     = "jpeg"
  version  = "1.0.0"
  codename = "tortoise"
}
`,
		},
		{
			name: "property not convertible to string",
			content: `
codec {
  name    = "jpeg"
  version = "1.0.0"

  properties {
    depths = [8, 12]
  }
}
`,
		},
		{
			name: "null property",
			content: `
codec {
  name    = "jpeg"
  version = "1.0.0"

  properties {
    compression = null
  }
}
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeDescriptor(t, "bad.codec.info", tt.content)

			_, err := Parse(context.Background(), path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParse_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "absent.codec.info"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}
