package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/gradspeed/internal/driver"
	"github.com/born-ml/gradspeed/internal/plot"
	"github.com/born-ml/gradspeed/internal/report"
)

func (a *app) plotCmd() *cobra.Command {
	var (
		file   = driver.DefaultFile
		name   = driver.DefaultAlgorithm
		output = "gradspeed.html"
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart rate against size from a report file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			rows, err := report.ReadAll(file)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := plot.Render(&buf, rows, name); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write chart: %w", err)
			}
			a.logger.Info("chart written", "file", output, "rows", len(rows))
			a.out.Line(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", file, "report file to read")
	cmd.Flags().StringVarP(&name, "algorithm", "a", name, "algorithm to chart")
	cmd.Flags().StringVarP(&output, "output", "o", output, "HTML file to write")
	return cmd
}
