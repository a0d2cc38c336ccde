package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/gradspeed/internal/report"
)

// Sweep is a batch of measurements read from YAML:
//
//	file: speed.csv
//	min_time: 0.5
//	runs:
//	  - backend: tape
//	    algorithm: det_by_minor
//	    sizes: [9, 16, 25]
//	    time_setup: [false, true]
type Sweep struct {
	File    string       `yaml:"file" validate:"required"`
	MinTime float64      `yaml:"min_time" validate:"gt=0,lte=1"`
	Runs    []SweepEntry `yaml:"runs" validate:"required,min=1,dive"`
}

// SweepEntry expands to one configuration per size and time_setup value.
// An empty TimeSetup list means [false].
type SweepEntry struct {
	Backend   string `yaml:"backend" validate:"required"`
	Algorithm string `yaml:"algorithm" validate:"required"`
	Sizes     []int  `yaml:"sizes" validate:"required,min=1,dive,gt=0"`
	TimeSetup []bool `yaml:"time_setup"`
}

// LoadSweep reads and validates the sweep file at path.
func LoadSweep(path string) (*Sweep, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sweep: %w", err)
	}
	defer f.Close()
	return DecodeSweep(f)
}

// DecodeSweep reads and validates a sweep. Unknown keys are rejected.
func DecodeSweep(r io.Reader) (*Sweep, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Sweep
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigError{Field: "sweep", Details: "empty document"}
		}
		return nil, &ConfigError{Field: "sweep", Details: err.Error(), Err: err}
	}
	if err := validate.Struct(&s); err != nil {
		return nil, structError(err)
	}
	return &s, nil
}

// Configs expands s in file order: entries, then sizes, then time_setup.
func (s *Sweep) Configs() []Config {
	var cfgs []Config
	for _, e := range s.Runs {
		timeSetup := e.TimeSetup
		if len(timeSetup) == 0 {
			timeSetup = []bool{false}
		}
		for _, size := range e.Sizes {
			for _, ts := range timeSetup {
				cfgs = append(cfgs, Config{
					Backend:   e.Backend,
					Algorithm: e.Algorithm,
					Size:      size,
					TimeSetup: ts,
					MinTime:   s.MinTime,
					File:      s.File,
				})
			}
		}
	}
	return cfgs
}

// RunSweep runs every configuration of s sequentially. A failed run does
// not stop the sweep; all failures are returned joined. Cancelling ctx stops
// the sweep before the next run.
func (r *Runner) RunSweep(ctx context.Context, s *Sweep) ([]report.Row, error) {
	cfgs := s.Configs()
	r.logger.InfoContext(ctx, "sweep started", slog.Int("runs", len(cfgs)), slog.String("file", s.File))

	var (
		rows []report.Row
		errs []error
	)
	for i, c := range cfgs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		row, err := r.Run(ctx, c)
		if err != nil {
			errs = append(errs, fmt.Errorf("run %d (%s/%s size=%d): %w", i+1, c.Backend, c.Algorithm, c.Size, err))
			continue
		}
		rows = append(rows, row)
	}

	r.logger.InfoContext(ctx, "sweep finished",
		slog.Int("ok", len(rows)),
		slog.Int("failed", len(errs)),
	)
	return rows, errors.Join(errs...)
}
