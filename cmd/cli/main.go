package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/eqgen/internal/app"
	"github.com/specialistvlad/eqgen/internal/cli"
	"github.com/specialistvlad/eqgen/internal/hclmodel"
)

// main is the entrypoint for the eqgen application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitRuntime)
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

	// Analysis and generation panic only on programmer errors; report them as
	// a normal failure instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application panicked: %v", r)
		}
	}()

	eqgenApp, err := app.NewApp(outW, appConfig, hclmodel.NewLoader())
	if err != nil {
		return &cli.ExitError{Code: cli.ExitUsage, Message: err.Error()}
	}

	if err := eqgenApp.Run(context.Background()); err != nil {
		if errors.Is(err, app.ErrModelHasErrors) {
			return &cli.ExitError{Code: cli.ExitModelErrors, Message: err.Error()}
		}
		return err
	}
	return nil
}
