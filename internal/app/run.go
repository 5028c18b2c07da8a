package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/litgen/internal/ctxlog"
	"github.com/vk/litgen/internal/executor"
	"github.com/vk/litgen/internal/fsutil"
)

// ErrStale is returned in check mode when a generated file is out of date.
var ErrStale = errors.New("generated files are out of date")

// Run discovers the input files and expands them on the worker pool.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "path", a.config.Path)

	files, err := fsutil.FindFilesByExtension(a.config.Path, a.settings.InputExt, a.settings.Excluded)
	if err != nil {
		return fmt.Errorf("failed to discover input files: %w", err)
	}
	if len(files) == 0 {
		a.logger.Warn("No input files found.", "path", a.config.Path, "ext", a.settings.InputExt)
		return nil
	}
	a.logger.Debug("Input files discovered.", "count", len(files))

	exec := executor.New(a.settings, a.config.Workers, a.config.Check)
	results, runErr := exec.Run(ctx, files)

	literals, changed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		literals += r.Literals
		if r.Changed {
			changed++
			if a.config.Check {
				fmt.Fprintf(a.outW, "stale: %s\n", r.Output)
			}
		}
	}
	a.logger.Info("Generation finished.", "files", len(results), "literals", literals, "changed", changed, "check", a.config.Check)

	if runErr != nil {
		return fmt.Errorf("generation failed: %w", runErr)
	}
	if a.config.Check && changed > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrStale, changed)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
