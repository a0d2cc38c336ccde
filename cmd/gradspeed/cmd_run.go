package main

import (
	"github.com/spf13/cobra"

	"github.com/born-ml/gradspeed/internal/driver"
)

func (a *app) runCmd() *cobra.Command {
	cfg := driver.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Measure one backend, algorithm and size",
		Long: `Measure one configuration and append the result to the report file.

Exit status: 0 on success, 2 for an invalid configuration, 3 for an unknown
backend, 4 for an unknown algorithm, 5 when the measurement fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			row, err := a.runner.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			a.out.Measured(row)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Backend, "package", "p", cfg.Backend, "backend to measure")
	f.StringVarP(&cfg.Algorithm, "algorithm", "a", cfg.Algorithm, "algorithm to differentiate")
	f.IntVarP(&cfg.Size, "size", "n", cfg.Size, "problem size (matrix entries for det_by_minor)")
	f.BoolVarP(&cfg.TimeSetup, "time-setup", "t", cfg.TimeSetup, "include setup in the timed region")
	f.Float64VarP(&cfg.MinTime, "min-time", "m", cfg.MinTime, "minimum timed seconds, in (0, 1]")
	f.StringVarP(&cfg.File, "file", "f", cfg.File, "report file to append to")
	return cmd
}
