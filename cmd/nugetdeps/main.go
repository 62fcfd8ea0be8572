// Package main is the entry point for the nugetdeps CLI.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	logger "github.com/sirupsen/logrus"

	"github.com/git-pkgs/nugetdeps/config"
	"github.com/git-pkgs/nugetdeps/internal/core"
)

// Process exit codes.
const (
	exitOK          = 0
	exitConfigError = 1
	exitFailure     = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(stderr)
	logger.SetLevel(logger.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cmd := newRootCommand(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	code := exitCode(err)
	switch code {
	case exitConfigError:
		logger.Errorf("Configuration error: %s", err)
	case exitFailure:
		var fetchErr *core.FetchError
		if errors.As(err, &fetchErr) && fetchErr.Timeout() {
			logger.Errorf("Feed did not answer in time, consider raising --timeout")
		}
		logger.Errorf("Unexpected error: %s", err)
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, config.ErrInvalidConfig):
		return exitConfigError
	default:
		return exitFailure
	}
}
