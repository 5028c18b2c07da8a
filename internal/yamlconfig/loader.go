// Package yamlconfig implements config.Loader for YAML settings files, using
// the same attribute names as the HCL format.
package yamlconfig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/litgen/internal/config"
	"github.com/vk/litgen/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type settingsFile struct {
	Marker        *string   `yaml:"marker"`
	InputExt      *string   `yaml:"input_ext"`
	OutputExt     *string   `yaml:"output_ext"`
	RuntimeImport *string   `yaml:"runtime_import"`
	RuntimeName   *string   `yaml:"runtime_name"`
	Header        *string   `yaml:"header"`
	Exclude       *[]string `yaml:"exclude"`
}

// Loader reads settings from a YAML document.
type Loader struct{}

// NewLoader creates a new YAML settings loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes the YAML file at path over base. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, path string, base config.Settings) (*config.Settings, error) {
	ctxlog.FromContext(ctx).Debug("YAML settings loader started.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var root settingsFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	out := base
	out.Exclude = append([]string(nil), base.Exclude...)
	for dst, v := range map[*string]*string{
		&out.Marker:        root.Marker,
		&out.InputExt:      root.InputExt,
		&out.OutputExt:     root.OutputExt,
		&out.RuntimeImport: root.RuntimeImport,
		&out.RuntimeName:   root.RuntimeName,
		&out.Header:        root.Header,
	} {
		if v != nil {
			*dst = *v
		}
	}
	if root.Exclude != nil {
		out.Exclude = append([]string{}, *root.Exclude...)
	}
	return &out, nil
}
