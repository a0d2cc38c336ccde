package driver

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/born-ml/gradspeed/internal/report"
	"github.com/born-ml/gradspeed/internal/speed"
)

// tracerName identifies driver spans.
const tracerName = "github.com/born-ml/gradspeed/driver"

// Runner executes measurements.
type Runner struct {
	registry *Registry
	logger   *slog.Logger
}

// NewRunner creates a runner over registry. A nil logger discards output.
func NewRunner(registry *Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{registry: registry, logger: logger}
}

// Registry returns the backends the runner selects from.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// Run measures the configuration c and appends the result to c.File.
func (r *Runner) Run(ctx context.Context, c Config) (report.Row, error) {
	if err := r.registry.Validate(c); err != nil {
		return report.Row{}, err
	}
	if err := ctx.Err(); err != nil {
		return report.Row{}, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "driver.Run",
		trace.WithAttributes(
			attribute.String("gradspeed.backend", c.Backend),
			attribute.String("gradspeed.algorithm", c.Algorithm),
			attribute.Int("gradspeed.size", c.Size),
			attribute.Bool("gradspeed.time_setup", c.TimeSetup),
			attribute.Float64("gradspeed.min_time", c.MinTime),
		),
	)
	defer span.End()

	row, err := r.run(ctx, c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Error("measurement failed",
			slog.String("backend", c.Backend),
			slog.String("algorithm", c.Algorithm),
			slog.Int("size", c.Size),
			slog.Any("error", err),
		)
		return report.Row{}, err
	}
	span.SetAttributes(attribute.Float64("gradspeed.rate", row.Rate))
	return row, nil
}

func (r *Runner) run(ctx context.Context, c Config) (report.Row, error) {
	target, err := r.registry.Construct(c)
	if err != nil {
		return report.Row{}, fmt.Errorf("%w: construct %s: %w", ErrTiming, c.Backend, err)
	}

	r.logger.DebugContext(ctx, "measurement started",
		slog.String("backend", c.Backend),
		slog.String("algorithm", c.Algorithm),
		slog.Int("size", c.Size),
		slog.Bool("time_setup", c.TimeSetup),
	)
	res, err := speed.FunSpeed(target, c.Option(), c.Duration())
	if err != nil {
		return report.Row{}, err
	}
	r.logger.InfoContext(ctx, "measurement finished",
		slog.String("backend", c.Backend),
		slog.String("algorithm", c.Algorithm),
		slog.Int("size", c.Size),
		slog.Int("repetitions", res.Repetitions),
		slog.Duration("elapsed", res.Elapsed),
		slog.Float64("rate", res.Rate),
	)

	row := report.Row{
		Backend:   c.Backend,
		Algorithm: c.Algorithm,
		Size:      c.Size,
		TimeSetup: c.TimeSetup,
		MinTime:   c.MinTime,
		Rate:      res.Rate,
	}
	if err := report.Append(c.File, row); err != nil {
		return report.Row{}, err
	}
	return row, nil
}
