package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/gradspeed/internal/driver"
	"github.com/born-ml/gradspeed/internal/telemetry"
	"github.com/born-ml/gradspeed/internal/ux"
)

// app holds state shared by all commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	logLevel string
	trace    bool

	logger   *slog.Logger
	out      *ux.Printer
	runner   *driver.Runner
	shutdown func(context.Context) error
}

// execute runs the CLI with args and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if a.shutdown != nil {
		if serr := a.shutdown(context.Background()); serr != nil {
			fmt.Fprintf(stderr, "gradspeed: trace shutdown: %v\n", serr)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "gradspeed: %v\n", err)
	}
	return driver.ExitCode(err)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gradspeed",
		Short: "Measure how fast automatic differentiation backends compute gradients",
		Long: `gradspeed measures the rate (evaluations per second) at which a
differentiation backend computes the gradient of a test algorithm, and
appends the result to a CSV report.

Examples:
  gradspeed run -p tape -a det_by_minor -n 25
  gradspeed sweep --config sweep.yaml
  gradspeed plot -f gradspeed.csv -a det_by_minor -o det.html`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.trace, "trace", false, "export trace spans to stderr")

	root.AddCommand(
		a.runCmd(),
		a.sweepCmd(),
		a.listCmd(),
		a.tapeCmd(),
		a.plotCmd(),
		a.versionCmd(),
	)
	return root
}

// setup builds the logger, tracer and runner before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(a.logLevel))); err != nil {
		return &driver.ConfigError{Field: "log-level", Value: a.logLevel, Details: "unknown level", Err: err}
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.out = ux.New(a.stdout)

	exporter := telemetry.ExporterNone
	if a.trace {
		exporter = telemetry.ExporterStdout
	}
	shutdown, err := telemetry.Init(cmd.Context(), telemetry.Config{
		ServiceName:    "gradspeed",
		ServiceVersion: version,
		Exporter:       exporter,
		Writer:         a.stderr,
	})
	if err != nil {
		return err
	}
	a.shutdown = shutdown

	a.runner = driver.NewRunner(driver.Default(), a.logger)
	return nil
}
