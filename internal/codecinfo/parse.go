package codecinfo

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/codecreg/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// rootSchema is the top-level structure of a descriptor file.
type rootSchema struct {
	Codecs []*hclCodec `hcl:"codec,block"`
}

// hclCodec mirrors a single 'codec' block for decoding purposes.
type hclCodec struct {
	Name        string   `hcl:"name"`
	Description string   `hcl:"description,optional"`
	Version     string   `hcl:"version"`
	Extensions  []string `hcl:"extensions,optional"`
	MimeTypes   []string `hcl:"mime_types,optional"`
	Magic       []string `hcl:"magic,optional"`

	Properties *hclProperties `hcl:"properties,block"`
}

// hclProperties keeps the free-form block body for attribute-level decoding.
type hclProperties struct {
	Body hcl.Body `hcl:",remain"`
}

// Parse reads and decodes the descriptor file at path.
//
// Any syntax error, schema violation, or missing required attribute is
// reported as an error wrapping ErrMalformed.
func Parse(ctx context.Context, path string) (*Info, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing codec descriptor.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w: %s", path, ErrMalformed, diags.Error())
	}

	var root rootSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %w: %s", path, ErrMalformed, diags.Error())
	}

	if len(root.Codecs) != 1 {
		return nil, fmt.Errorf("%s: %w: expected exactly one codec block, found %d", path, ErrMalformed, len(root.Codecs))
	}
	block := root.Codecs[0]

	if block.Name == "" {
		return nil, fmt.Errorf("%s: %w: codec name must not be empty", path, ErrMalformed)
	}
	if block.Version == "" {
		return nil, fmt.Errorf("%s: %w: codec version must not be empty", path, ErrMalformed)
	}

	info := &Info{
		Name:        block.Name,
		Description: block.Description,
		Version:     block.Version,
		Extensions:  block.Extensions,
		MimeTypes:   block.MimeTypes,
		Magic:       block.Magic,
		Path:        path,
	}

	if block.Properties != nil {
		props, err := decodeProperties(block.Properties.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
		}
		info.Properties = props
	}

	return info, nil
}

// decodeProperties flattens a free-form properties body into string values.
// Attribute values must be convertible to strings; expressions may not
// reference variables or functions.
func decodeProperties(body hcl.Body) (map[string]string, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("properties block: %s", diags.Error())
	}

	props := make(map[string]string, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("property %q: %s", name, diags.Error())
		}
		strVal, err := convert.Convert(val, cty.String)
		if err != nil {
			return nil, fmt.Errorf("property %q is not convertible to string: %w", name, err)
		}
		if strVal.IsNull() {
			return nil, fmt.Errorf("property %q must not be null", name)
		}
		props[name] = strVal.AsString()
	}
	return props, nil
}
