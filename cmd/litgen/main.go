package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/litgen/internal/app"
	"github.com/vk/litgen/internal/cli"
	"github.com/vk/litgen/internal/config"
	"github.com/vk/litgen/internal/hcl"
	"github.com/vk/litgen/internal/yamlconfig"
)

// main is the entrypoint for the litgen generator.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	if appConfig.Init {
		return initSettings(outW, appConfig.Path)
	}

	// The app panics on critical config errors, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader := config.ByExtension{
		".hcl":  hcl.NewLoader(),
		".yaml": yamlconfig.NewLoader(),
		".yml":  yamlconfig.NewLoader(),
	}
	litgenApp := app.NewApp(outW, appConfig, loader)
	return litgenApp.Run(ctx)
}
