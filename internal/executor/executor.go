// Package executor expands a set of source files concurrently on a bounded
// worker pool and reports a Result per file.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/vk/litgen/internal/config"
	"github.com/vk/litgen/internal/ctxlog"
	"github.com/vk/litgen/internal/expand"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of expanding one file.
type Result struct {
	Input  string
	Output string
	// Literals is the number of literals expanded, nested ones included.
	Literals int
	// Changed reports whether the generated source differs from what is on
	// disk. In check mode nothing is written and Changed marks a stale output.
	Changed bool
	Err     error
}

// Executor expands files with a fixed set of options.
type Executor struct {
	settings config.Settings
	workers  int
	check    bool
}

// New creates an Executor running at most workers files at a time. In check
// mode outputs are compared but never written.
func New(settings config.Settings, workers int, check bool) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{settings: settings, workers: workers, check: check}
}

// Run expands every file and returns the results sorted by input path. The
// returned error joins every per-file error; a failing file does not stop the
// others. Files not yet started when ctx is canceled fail with ctx.Err().
func (e *Executor) Run(ctx context.Context, files []string) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executor starting run.", "files", len(files), "workers", e.workers, "check", e.check)

	results := make([]Result, len(files))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Input: file, Output: e.settings.OutputPath(file), Err: err}
				return nil
			}
			results[i] = e.processFile(ctx, file)
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(results, func(a, b Result) int { return strings.Compare(a.Input, b.Input) })

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	logger.Debug("Executor finished run.", "failed", len(errs))
	return results, errors.Join(errs...)
}

// processFile expands a single file and writes its output unless the
// executor runs in check mode or the output is already up to date.
func (e *Executor) processFile(ctx context.Context, input string) Result {
	res := Result{Input: input, Output: e.settings.OutputPath(input)}
	logger := ctxlog.FromContext(ctx).With("file", input)
	logger.Debug("Worker picked up file.")

	src, err := os.ReadFile(input)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", input, err)
		return res
	}

	out, err := expand.File(ctx, input, src, e.options())
	if err != nil {
		logger.Debug("Expansion failed.", "error", err)
		res.Err = err
		return res
	}
	res.Literals = out.Stats.Total()
	if res.Literals == 0 {
		logger.Warn("No literals found.", "marker", e.settings.Marker)
	}

	existing, err := os.ReadFile(res.Output)
	switch {
	case errors.Is(err, os.ErrNotExist):
		res.Changed = true
	case err != nil:
		res.Err = fmt.Errorf("reading %s: %w", res.Output, err)
		return res
	default:
		res.Changed = !bytes.Equal(existing, out.Source)
	}

	if e.check || !res.Changed {
		logger.Debug("Output not written.", "changed", res.Changed, "check", e.check)
		return res
	}
	if err := os.WriteFile(res.Output, out.Source, 0o644); err != nil {
		res.Err = fmt.Errorf("writing %s: %w", res.Output, err)
		return res
	}
	logger.Debug("Output written.", "output", res.Output, "literals", res.Literals)
	return res
}

func (e *Executor) options() expand.Options {
	return expand.Options{
		Marker:        e.settings.Marker,
		RuntimeImport: e.settings.RuntimeImport,
		RuntimeName:   e.settings.RuntimeName,
		Header:        e.settings.Header,
	}
}
