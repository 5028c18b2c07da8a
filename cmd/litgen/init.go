package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/litgen/internal/config"
	"github.com/vk/litgen/internal/hcl"
)

// initSettings writes the default settings file into dir. An existing file
// is never overwritten.
func initSettings(outW io.Writer, dir string) error {
	path := filepath.Join(dir, config.DefaultFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating settings file: %w", err)
	}
	if err := hcl.WriteSettings(f, config.DefaultSettings()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(outW, "wrote %s\n", path)
	return nil
}
