package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ByExtension dispatches to a Loader chosen by the settings file extension.
type ByExtension map[string]Loader

// Load implements Loader.
func (b ByExtension) Load(ctx context.Context, path string, base Settings) (*Settings, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := b[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported settings file %s: no loader for %q", path, ext)
	}
	return loader.Load(ctx, path, base)
}
