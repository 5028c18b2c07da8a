package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/litgen/internal/config"
	"github.com/vk/litgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// Environ is exposed to the file as the `env` object. It defaults to
	// os.Environ().
	Environ []string
}

// NewLoader creates a new HCL settings loader.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ()}
}

// settingsFile is the schema of litgen.hcl. Every attribute is optional;
// unset ones keep the value of the base settings.
type settingsFile struct {
	Marker        *string        `hcl:"marker,optional"`
	InputExt      *string        `hcl:"input_ext,optional"`
	OutputExt     *string        `hcl:"output_ext,optional"`
	RuntimeImport *string        `hcl:"runtime_import,optional"`
	RuntimeName   *string        `hcl:"runtime_name,optional"`
	Header        *string        `hcl:"header,optional"`
	Exclude       hcl.Expression `hcl:"exclude,optional"`
}

// Load parses the settings file at path and layers it over base.
func (l *Loader) Load(ctx context.Context, path string, base config.Settings) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL settings loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	evalCtx := newEvalContext(l.Environ)
	var root settingsFile
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	out := base
	out.Exclude = append([]string(nil), base.Exclude...)
	setString(&out.Marker, root.Marker)
	setString(&out.InputExt, root.InputExt)
	setString(&out.OutputExt, root.OutputExt)
	setString(&out.RuntimeImport, root.RuntimeImport)
	setString(&out.RuntimeName, root.RuntimeName)
	setString(&out.Header, root.Header)

	exclude, err := decodeStringList(root.Exclude, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("in HCL file %s, attribute exclude: %w", path, err)
	}
	if exclude != nil {
		out.Exclude = exclude
	}

	logger.Debug("HCL settings loaded.", "marker", out.Marker, "input_ext", out.InputExt, "exclude", out.Exclude)
	return &out, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// decodeStringList evaluates expr and converts it into a list of strings. It
// returns nil when the attribute is absent or null.
func decodeStringList(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	listType := cty.List(cty.String)
	converted, err := convert.Convert(val, listType)
	if err != nil {
		return nil, fmt.Errorf("expected a list of strings: %w", err)
	}
	if converted.LengthInt() == 0 {
		return []string{}, nil
	}

	var out []string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, err
	}
	return out, nil
}
