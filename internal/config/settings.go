package config

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"
)

// DefaultFileName is the settings file looked up next to the input path.
const DefaultFileName = "litgen.hcl"

// Settings is the generator configuration.
type Settings struct {
	// Marker is the identifier that introduces a literal, LIT by default.
	Marker string
	// InputExt and OutputExt select source files and name their outputs.
	InputExt  string
	OutputExt string
	// RuntimeImport and RuntimeName locate the constructor package that
	// untyped literals call.
	RuntimeImport string
	RuntimeName   string
	// Header is the generated-code comment; {{file}} expands to the input
	// base name.
	Header string
	// Exclude lists directory names skipped during discovery.
	Exclude []string
}

// Loader reads Settings from a format-specific source.
type Loader interface {
	// Load reads the settings file at path, layered over base.
	Load(ctx context.Context, path string, base Settings) (*Settings, error)
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Marker:        "LIT",
		InputExt:      ".golit",
		OutputExt:     ".go",
		RuntimeImport: "github.com/vk/litgen/lit",
		RuntimeName:   "lit",
		Header:        "Code generated by litgen from {{file}}. DO NOT EDIT.",
		Exclude:       []string{"vendor", "testdata"},
	}
}

// Excluded reports whether a directory with the given base name is skipped.
func (s Settings) Excluded(name string) bool {
	return slices.Contains(s.Exclude, name)
}

// OutputPath returns the path of the file generated from input.
func (s Settings) OutputPath(input string) string {
	return strings.TrimSuffix(input, s.InputExt) + s.OutputExt
}

// Validate checks that the settings can drive a generation run.
func (s Settings) Validate() error {
	var errs []error
	if !token.IsIdentifier(s.Marker) {
		errs = append(errs, fmt.Errorf("marker %q is not a Go identifier", s.Marker))
	}
	for name, ext := range map[string]string{"input_ext": s.InputExt, "output_ext": s.OutputExt} {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("%s %q must start with a dot", name, ext))
		}
	}
	if s.InputExt == s.OutputExt {
		errs = append(errs, fmt.Errorf("input_ext and output_ext must differ, both are %q", s.InputExt))
	}
	if s.RuntimeImport == "" {
		errs = append(errs, errors.New("runtime_import must not be empty"))
	}
	if !token.IsIdentifier(s.RuntimeName) {
		errs = append(errs, fmt.Errorf("runtime_name %q is not a Go identifier", s.RuntimeName))
	}
	return errors.Join(errs...)
}
