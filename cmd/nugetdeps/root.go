package main

import (
	"fmt"
	"io"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/git-pkgs/nugetdeps"
	"github.com/git-pkgs/nugetdeps/config"
	"github.com/git-pkgs/nugetdeps/fetch"
	"github.com/git-pkgs/nugetdeps/internal/output"
)

type rootFlags struct {
	configPath string
	timeout    time.Duration
	format     string
	userAgent  string
	showConfig bool
	verbose    bool
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	flags := &rootFlags{}

	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "nugetdeps",
		Short: "List the direct dependencies of a NuGet package version",
		Long: `Reads a JSON (or YAML) configuration describing a package and a NuGet v2 feed,
validates it, queries the feed for the configured package version and prints
its direct dependencies.

Exit codes:
  0  success
  1  configuration error (missing file, malformed content, schema or range violation)
  2  any other failure (network, malformed feed response, unsupported mode)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if flags.verbose {
				logger.SetLevel(logger.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDependencies(cmd, flags, stdout)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", config.DefaultPath,
		"Path to the configuration file")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", fetch.DefaultTimeout,
		"Timeout for the feed request")
	cmd.Flags().StringVarP(&flags.format, "output", "o", string(output.FormatText),
		"Output format: text or json")
	cmd.Flags().StringVar(&flags.userAgent, "user-agent", "nugetdeps/1.0",
		"User-Agent header sent to the feed")
	cmd.Flags().BoolVar(&flags.showConfig, "show-config", false,
		"Print the loaded configuration before fetching")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func runDependencies(cmd *cobra.Command, flags *rootFlags, stdout io.Writer) error {
	format, err := output.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded configuration from %s", flags.configPath)

	if flags.showConfig {
		if err := output.Config(stdout, cfg); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(stdout, "\nConfiguration loaded and validated."); err != nil {
			return err
		}
	}

	fetcher := fetch.NewFetcher(
		fetch.WithTimeout(flags.timeout),
		fetch.WithUserAgent(flags.userAgent),
	)

	deps, err := nugetdeps.FetchDependencies(cmd.Context(), cfg, nugetdeps.WithFetcher(fetcher))
	if err != nil {
		return err
	}
	logger.Debugf("Found %d dependencies for %s %s", len(deps), cfg.PackageName, cfg.PackageVersion)

	return output.Dependencies(stdout, format, output.Package{
		Name:    cfg.PackageName,
		Version: cfg.PackageVersion,
		URLs:    nugetdeps.URLs(cfg),
	}, deps)
}
