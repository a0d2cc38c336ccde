package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/gradspeed/internal/driver"
)

func (a *app) sweepCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run every measurement listed in a YAML file",
		Long: `Run a batch of measurements. The file lists the report file, the
minimum time and the runs to expand:

  file: gradspeed.csv
  min_time: 0.5
  runs:
    - backend: tape
      algorithm: det_by_minor
      sizes: [9, 16, 25]
      time_setup: [false, true]

Failed runs are reported and the sweep continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := driver.LoadSweep(path)
			if err != nil {
				return err
			}
			rows, err := a.runner.RunSweep(cmd.Context(), s)
			for _, row := range rows {
				a.out.Measured(row)
			}
			if err == nil {
				a.out.Summary(len(rows), 0, s.File)
				return nil
			}

			errs := []error{err}
			if joined, ok := err.(interface{ Unwrap() []error }); ok {
				errs = joined.Unwrap()
			}
			for _, e := range errs {
				a.out.Failed(e)
			}
			total := len(s.Configs())
			a.out.Summary(len(rows), total-len(rows), s.File)
			// The exit status follows the first failure.
			return fmt.Errorf("%d of %d runs failed: %w", total-len(rows), total, errs[0])
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "sweep.yaml", "sweep file")
	return cmd
}
