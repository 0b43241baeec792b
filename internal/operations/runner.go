package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	apperrors "github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/errors"
	"github.com/GabrielVelosoDEV/ProjetoEBAC-Final/internal/infrastructure"
)

// StepFunc is the body of a step. A nil error with an empty status is
// recorded as completed.
type StepFunc func(ctx context.Context) (StepResult, error)

// Runner executes the steps of one job in order and keeps their results.
type Runner struct {
	job       string
	tracer    trace.Tracer
	metrics   *infrastructure.PipelineMetrics
	logger    *slog.Logger
	startedAt time.Time
	results   []StepResult
}

// NewRunner creates a runner for job. tracer and metrics may be nil.
func NewRunner(job string, tracer trace.Tracer, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *Runner {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(job)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		job:       job,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger.With(slog.String("job", job)),
		startedAt: time.Now(),
	}
}

// Job returns the job name
func (r *Runner) Job() string {
	return r.job
}

// Run executes fn as step id and records its result.
func (r *Runner) Run(ctx context.Context, id, name string, fn StepFunc) (StepResult, error) {
	ctx, span := r.tracer.Start(ctx, fmt.Sprintf("%s.%s", r.job, id),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("job", r.job),
			attribute.String("step.id", id),
		),
	)
	defer span.End()

	r.logger.DebugContext(ctx, "Step started", slog.String("step", id))

	start := time.Now()
	res, err := fn(ctx)
	res.ID = id
	res.Name = name
	res.Duration = time.Since(start)

	switch {
	case err != nil:
		res.Status = StepStatusFailed
		res.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.ErrorContext(ctx, "Step failed",
			slog.String("step", id),
			slog.String("error", err.Error()),
			slog.Duration("duration", res.Duration))
	case res.Status == StepStatusSkipped:
		gap := apperrors.NewSchemaError(res.Missing)
		span.SetAttributes(attribute.StringSlice("step.missing", res.Missing))
		span.AddEvent("schema_gap", trace.WithAttributes(
			attribute.String("error.type", string(gap.Type)),
			attribute.String("error.message", gap.Error()),
		))
		r.logger.WarnContext(ctx, "Step skipped, required columns missing",
			slog.String("step", id),
			slog.String("error_type", string(gap.Type)),
			slog.Any("missing", res.Missing))
	default:
		res.Status = StepStatusCompleted
		span.SetStatus(codes.Ok, "")
		attrs := []any{
			slog.String("step", id),
			slog.Int("rows", res.Rows),
			slog.Duration("duration", res.Duration),
		}
		if len(res.Missing) > 0 {
			attrs = append(attrs, slog.Any("missing", res.Missing))
		}
		if len(res.Outputs) > 0 {
			attrs = append(attrs, slog.Any("outputs", res.Outputs))
		}
		r.logger.InfoContext(ctx, "Step completed", attrs...)
	}

	span.SetAttributes(
		attribute.String("step.status", string(res.Status)),
		attribute.Int("step.rows", res.Rows),
	)
	r.metrics.RecordStep(ctx, r.job, id, string(res.Status), res.Duration)

	r.results = append(r.results, res)
	return res, err
}

// Results returns a copy of the results recorded so far
func (r *Runner) Results() []StepResult {
	return append([]StepResult(nil), r.results...)
}

// Manifest summarises the job so far.
func (r *Runner) Manifest(runID string) *RunManifest {
	return NewRunManifest(r.job, runID, r.startedAt, r.Results())
}
